package fiber

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type BreakerStater interface {
	BreakerState() string
}

type HealthHandler struct {
	db      Pinger
	breaker BreakerStater
	timeout time.Duration
	now     func() time.Time
}

// NewHealthHandler reports on db and, when not nil, the storage breaker.
func NewHealthHandler(db Pinger, breaker BreakerStater) *HealthHandler {
	return &HealthHandler{db: db, breaker: breaker, timeout: 2 * time.Second, now: time.Now}
}

// Health godoc
// @Summary Service health
// @Description Pings the database and reports the storage circuit breaker state.
// @Tags Monitoring
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:     "healthy",
		Timestamp:  h.now().UTC(),
		Components: map[string]string{"api": "healthy", "database": "healthy"},
	}
	status := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		resp.Components["database"] = "unhealthy: " + err.Error()
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	if h.breaker != nil {
		resp.Components["circuit_breaker"] = h.breaker.BreakerState()
	}

	return c.Status(status).JSON(resp)
}
