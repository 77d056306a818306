package main

import (
	"log"
	"net/http"
	"time"

	"github.com/Prashantshurpalii/url-shortner/pkg/adapters/handler"
	"github.com/Prashantshurpalii/url-shortner/pkg/adapters/repository/cache"
	"github.com/Prashantshurpalii/url-shortner/pkg/adapters/repository/sqlite"
	"github.com/Prashantshurpalii/url-shortner/pkg/config"
	"github.com/Prashantshurpalii/url-shortner/pkg/core/services"
	"github.com/Prashantshurpalii/url-shortner/pkg/ports"
)

func main() {
	cfg := config.Load()

	// Initialize Repository
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Optionally front the link lookups with Redis
	var links ports.LinkRepository = repo
	if cfg.RedisURL != "" {
		client, err := cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		links = cache.NewLinkCache(repo, client, time.Hour)
		log.Printf("Link cache enabled via %s", cfg.RedisURL)
	}

	// Initialize Services
	service := services.NewLinkService(links, repo)
	analytics := services.NewAnalyticsService(links, repo)

	// Initialize Router
	mux := handler.NewRouter(cfg, service, analytics)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
