package handler

import (
	"net/http"

	"github.com/Prashantshurpalii/url-shortner/pkg/adapters/handler"
	"github.com/Prashantshurpalii/url-shortner/pkg/adapters/repository/sqlite"
	"github.com/Prashantshurpalii/url-shortner/pkg/config"
	"github.com/Prashantshurpalii/url-shortner/pkg/core/services"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	// Note: On Vercel, db.sqlite is ephemeral unless DATABASE_URL points at a
	// remote libsql/Turso database.
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	service := services.NewLinkService(repo, repo)
	analytics := services.NewAnalyticsService(repo, repo)
	mux = handler.NewRouter(cfg, service, analytics)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
