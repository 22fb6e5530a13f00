package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Post("/envelopes", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	app.Get("/envelopes/:id", func(c *fiber.Ctx) error {
		if c.Params("id") == "missing" {
			return fiber.NewError(fiber.StatusNotFound, "envelope not found")
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Put("/callbacks", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, m, reg
}

func TestPrometheusMiddleware_Counts(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		labels []string
	}{
		{"created envelope", "POST", "/envelopes", []string{"POST", "/envelopes", "201"}},
		{"route pattern instead of id", "GET", "/envelopes/abc-123", []string{"GET", "/envelopes/:id", "200"}},
		{"error status from fiber error", "GET", "/envelopes/missing", []string{"GET", "/envelopes/:id", "404"}},
		{"callback update", "PUT", "/callbacks", []string{"PUT", "/callbacks", "200"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, m, _ := newMetricsApp(t)

			_, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil))
			require.NoError(t, err)

			assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues(tt.labels...)))
			assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
		})
	}
}

func TestPrometheusMiddleware_SkipsMetricsScrape(t *testing.T) {
	app, m, reg := newMetricsApp(t)

	_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	assert.Equal(t, 0, testutil.CollectAndCount(m.requestCount))
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		assert.Empty(t, mf.GetMetric(), mf.GetName())
	}
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
