package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/Prashantshurpalii/url-shortner/pkg/core/domain"
	"github.com/Prashantshurpalii/url-shortner/pkg/ports"
)

type AnalyticsHandler struct {
	service ports.AnalyticsService
	baseURL string
}

func NewAnalyticsHandler(service ports.AnalyticsService, baseURL string) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, baseURL: baseURL}
}

// Get serves the read-only analytics page. The credential, if any, arrives
// in the X-Password header; this path never appends an access log entry.
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("short_code")

	report, err := h.service.GetReport(r.Context(), code, r.Header.Get("X-Password"))
	if err != nil {
		if errors.Is(err, domain.ErrPasswordRequired) {
			renderChallenge(w, "Password Required for Analytics", "/analytics/"+code+"/validate")
			return
		}
		writeResolveError(w, code, err)
		return
	}

	h.renderReport(w, report)
}

// Validate serves the form-submitted analytics page. A correct password here
// counts as an access and is logged under the sentinel marker.
func (h *AnalyticsHandler) Validate(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("short_code")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	report, err := h.service.ValidateAndReport(r.Context(), code, r.PostFormValue("password"))
	if err != nil {
		writeResolveError(w, code, err)
		return
	}

	h.renderReport(w, report)
}

func (h *AnalyticsHandler) renderReport(w http.ResponseWriter, report *domain.Report) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		ShortURL string
		Report   *domain.Report
	}{
		ShortURL: h.baseURL + "/" + report.ShortCode,
		Report:   report,
	}
	if err := reportTmpl.Execute(w, data); err != nil {
		log.Printf("Render report failed for %s: %v", report.ShortCode, err)
	}
}
