package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Prashantshurpalii/url-shortner/pkg/config"
	"github.com/Prashantshurpalii/url-shortner/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, service ports.LinkService, analytics ports.AnalyticsService) http.Handler {
	// Initialize Handlers
	h := NewHTTPHandler(service, cfg.BaseURL)
	ah := NewAnalyticsHandler(analytics, cfg.BaseURL)

	// Setup Router
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
	})

	mux.HandleFunc("POST /shorten", h.Shorten)

	// Analytics routes are registered alongside the catch-all short-code
	// routes; the literal "analytics" segment takes precedence in the mux.
	mux.HandleFunc("GET /analytics/{short_code}", ah.Get)
	mux.HandleFunc("POST /analytics/{short_code}/validate", ah.Validate)

	mux.HandleFunc("GET /{short_code}", h.Redirect)
	mux.HandleFunc("POST /{short_code}/validate", h.Validate)

	return RequestLogger(mux)
}
