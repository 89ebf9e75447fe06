package fiber_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	httpadapter "blog-analytics-service/internal/analytics/adapters/http/fiber"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

type fakeBreaker string

func (b fakeBreaker) BreakerState() string { return string(b) }

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		pinger     fakePinger
		breaker    httpadapter.BreakerStater
		wantStatus int
		wantBody   string
		wantDB     string
	}{
		{"healthy", fakePinger{}, fakeBreaker("closed"), http.StatusOK, "healthy", "healthy"},
		{"database down", fakePinger{err: errors.New("dial tcp: refused")}, fakeBreaker("open"), http.StatusServiceUnavailable, "unhealthy", "unhealthy: dial tcp: refused"},
		{"no breaker", fakePinger{}, nil, http.StatusOK, "healthy", "healthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", httpadapter.NewHealthHandler(tt.pinger, tt.breaker).Health)

			resp, body := doGet(t, app, "/health")
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBody, body["status"])

			components := body["components"].(map[string]any)
			assert.Equal(t, tt.wantDB, components["database"])
			if tt.breaker == nil {
				assert.NotContains(t, components, "circuit_breaker")
			} else {
				assert.Equal(t, tt.breaker.BreakerState(), components["circuit_breaker"])
			}
		})
	}
}
