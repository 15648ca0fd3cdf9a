package bootstrap

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"retrolog/internal/platform/config"
	"retrolog/internal/platform/logging"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.DBPath = filepath.Join(t.TempDir(), "retrolog.db")
	cfg.Suggest.Plugin = "none"
	app, err := New(cfg, logging.Nop())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return app
}

func TestRouterServesHealthAndMetrics(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(Router(newTestApp(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("healthz = %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/api/dashboard?from=2024-03-01&to=2024-03-07")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "retrolog_analytics_requests_total") {
		t.Fatalf("metrics output missing analytics counter")
	}
}
