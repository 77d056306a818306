package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Prashantshurpalii/url-shortner/pkg/core/domain"
	"github.com/Prashantshurpalii/url-shortner/pkg/ports"
)

type HTTPHandler struct {
	service ports.LinkService
	baseURL string
}

func NewHTTPHandler(service ports.LinkService, baseURL string) *HTTPHandler {
	return &HTTPHandler{service: service, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// ShortenRequest payload
type ShortenRequest struct {
	OriginalURL string `json:"original_url"`
	ExpiryHours int    `json:"expiry_hours,omitempty"`
	Password    string `json:"password,omitempty"`
}

// ShortenResponse payload
type ShortenResponse struct {
	ShortURL string `json:"short_url"`
}

// Shorten creates (or re-uses) a short link
func (h *HTTPHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	var req ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	expiry := time.Duration(req.ExpiryHours) * time.Hour

	code, err := h.service.Shorten(r.Context(), req.OriginalURL, expiry, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Shorten failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ShortenResponse{ShortURL: h.baseURL + "/" + code})
}

// Redirect resolves a short code: password form for protected links,
// otherwise a logged 302 to the original URL
func (h *HTTPHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("short_code")
	if code == "" {
		http.Error(w, "Short code missing", http.StatusBadRequest)
		return
	}

	res, err := h.service.Resolve(r.Context(), code, clientIP(r))
	if err != nil {
		writeResolveError(w, code, err)
		return
	}

	if res.PasswordRequired {
		renderChallenge(w, "This URL is Protected. Password required", "/"+code+"/validate")
		return
	}

	http.Redirect(w, r, res.OriginalURL, http.StatusFound)
}

// Validate checks the form password and serves the redirect page
func (h *HTTPHandler) Validate(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("short_code")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	originalURL, err := h.service.ValidateAndResolve(r.Context(), code, r.PostFormValue("password"), clientIP(r))
	if err != nil {
		writeResolveError(w, code, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := validatedTmpl.Execute(w, validatedData{OriginalURL: originalURL}); err != nil {
		log.Printf("Render redirect page failed for %s: %v", code, err)
	}
}

func renderChallenge(w http.ResponseWriter, heading, action string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := challengeTmpl.Execute(w, challengeData{Heading: heading, Action: action}); err != nil {
		log.Printf("Render challenge failed: %v", err)
	}
}

func writeResolveError(w http.ResponseWriter, code string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "Short URL not found.", http.StatusNotFound)
	case errors.Is(err, domain.ErrLinkExpired):
		http.Error(w, "Short URL has expired.", http.StatusGone)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, "Password is incorrect.", http.StatusForbidden)
	default:
		log.Printf("Request failed for %s: %v", code, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// clientIP prefers proxy headers over the raw connection address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// May hold a chain; the first entry is the caller.
		ip, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(ip)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
