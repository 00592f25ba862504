package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arzan03/bssm-backend/internal/config"
	"github.com/arzan03/bssm-backend/internal/db"
	"github.com/arzan03/bssm-backend/internal/handlers"
	"github.com/arzan03/bssm-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, origins string) *fiber.App {
	t.Helper()
	log, _ := test.NewNullLogger()
	store := db.NewMemoryStore()
	services.Bootstrap(context.Background(), store, log)

	h := handlers.New(
		services.NewAuthService(store, services.DemoTokenIssuer{Prefix: "demo-"}),
		services.NewTransactionService(store),
		services.NewStatusService(store),
		services.NewReportService(store, nil, time.Hour),
		log,
	)
	return New(&config.Config{CORSOrigins: origins}, h, log)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestCORS_AnyOriginWithCredentials(t *testing.T) {
	app := newApp(t, "*")

	req := httptest.NewRequest(http.MethodOptions, "/transactions", nil)
	req.Header.Set("Origin", "http://frontend.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Custom")

	resp, _ := do(t, app, req)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://frontend.test", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
	assert.Equal(t, "Content-Type, X-Custom", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	app := newApp(t, "http://allowed.test")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://other.test")
	resp, _ := do(t, app, req)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://allowed.test")
	resp, _ = do(t, app, req)
	assert.Equal(t, "http://allowed.test", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	app := newApp(t, "*")

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"Not Found"}`, body)
}

func TestRequestID(t *testing.T) {
	app := newApp(t, "*")

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newApp(t, "*")

	do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "bssm_http_requests_total")
}
