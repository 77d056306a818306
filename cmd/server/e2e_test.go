package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Prashantshurpalii/url-shortner/pkg/adapters/handler"
	"github.com/Prashantshurpalii/url-shortner/pkg/adapters/repository/sqlite"
	"github.com/Prashantshurpalii/url-shortner/pkg/config"
	"github.com/Prashantshurpalii/url-shortner/pkg/core/services"
)

func TestIntegration(t *testing.T) {
	// 1. Setup DB (in-memory SQLite)
	dbURL := "file:e2edb1?mode=memory&cache=shared"
	repo, err := sqlite.NewSQLiteRepository(dbURL)
	if err != nil {
		t.Fatalf("Failed to init db: %v", err)
	}

	// 2. Setup Services
	service := services.NewLinkService(repo, repo)
	analytics := services.NewAnalyticsService(repo, repo)

	// 3. Setup Router
	cfg := &config.Config{BaseURL: "http://sho.rt"}
	mux := handler.NewRouter(cfg, service, analytics)

	server := httptest.NewServer(mux)
	defer server.Close()

	client := server.Client()
	// Don't follow redirects automatically, we assert on them.
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	shorten := func(payload map[string]interface{}) string {
		t.Helper()
		body, _ := json.Marshal(payload)
		resp, err := client.Post(server.URL+"/shorten", "application/json", bytes.NewBuffer(body))
		if err != nil {
			t.Fatalf("Failed JSON POST: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			t.Fatalf("Shorten expected 200, got %d: %s", resp.StatusCode, b)
		}
		var created struct {
			ShortURL string `json:"short_url"`
		}
		json.NewDecoder(resp.Body).Decode(&created)
		if !strings.HasPrefix(created.ShortURL, "http://sho.rt/") {
			t.Fatalf("Short URL not host-qualified: %s", created.ShortURL)
		}
		return strings.TrimPrefix(created.ShortURL, "http://sho.rt/")
	}

	// TEST 1: Shorten, then re-shorten the same URL
	code := shorten(map[string]interface{}{
		"original_url": "http://example.com",
		"expiry_hours": 24,
	})
	if len(code) != 8 {
		t.Errorf("Expected 8-char code, got %q", code)
	}
	again := shorten(map[string]interface{}{"original_url": "http://example.com"})
	if again != code {
		t.Errorf("Re-shortening returned different code: %s vs %s", again, code)
	}
	links, err := repo.Dump(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 1 {
		t.Errorf("Expected 1 link after duplicate shorten, got %d", len(links))
	}

	// TEST 2: Redirect and access logging
	resp, err := client.Get(server.URL + "/" + code)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Errorf("Redirect expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "http://example.com" {
		t.Errorf("Redirect location mismatch: %s", loc)
	}
	entries, err := repo.ListByShortCode(context.Background(), code)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 access log entry, got %d", len(entries))
	}

	// TEST 3: Unknown code
	resp, err = client.Get(server.URL + "/nosuch00")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Unknown code expected 404, got %d", resp.StatusCode)
	}

	// TEST 4: Password-protected flow
	gated := shorten(map[string]interface{}{
		"original_url": "http://protected.example.com",
		"password":     "secret",
	})

	resp, err = client.Get(server.URL + "/" + gated)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Challenge expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "/"+gated+"/validate") {
		t.Errorf("Challenge page missing validate form: %s", body)
	}
	if strings.Contains(string(body), "protected.example.com") {
		t.Error("Challenge page leaked the original URL")
	}

	resp, err = client.PostForm(server.URL+"/"+gated+"/validate", url.Values{"password": {"wrong"}})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Wrong password expected 403, got %d", resp.StatusCode)
	}

	resp, err = client.PostForm(server.URL+"/"+gated+"/validate", url.Values{"password": {"secret"}})
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Validate expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "http://protected.example.com") {
		t.Errorf("Validated page missing redirect target: %s", body)
	}
	entries, _ = repo.ListByShortCode(context.Background(), gated)
	if len(entries) != 1 {
		t.Errorf("Expected 1 log entry after validate, got %d", len(entries))
	}

	// TEST 5: Analytics asymmetry (header read vs form validate)
	req, _ := http.NewRequest("GET", server.URL+"/analytics/"+gated, nil)
	req.Header.Set("X-Password", "secret")
	resp, err = client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Analytics expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Access Count:</strong> 1") {
		t.Errorf("Analytics count mismatch: %s", body)
	}
	entries, _ = repo.ListByShortCode(context.Background(), gated)
	if len(entries) != 1 {
		t.Errorf("Header analytics read must not log, have %d entries", len(entries))
	}

	resp, err = client.PostForm(server.URL+"/analytics/"+gated+"/validate", url.Values{"password": {"secret"}})
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Analytics validate expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Validated Access") {
		t.Errorf("Analytics page missing sentinel entry: %s", body)
	}
	entries, _ = repo.ListByShortCode(context.Background(), gated)
	if len(entries) != 2 {
		t.Errorf("Form analytics validate must log, have %d entries", len(entries))
	}

	// TEST 6: Health
	resp, err = client.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Health expected 200, got %d", resp.StatusCode)
	}
}
