package fiber

import (
	"strings"
	"time"

	"blog-analytics-service/internal/logger"
	"blog-analytics-service/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLogger assigns every request an id, echoed in X-Request-ID, stores
// a request-scoped logger in the user context and logs the request and its
// response. Swagger assets are not logged.
func RequestLogger(base *zap.Logger) fiber.Handler {
	if base == nil {
		base = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)

		log := base.With(zap.String("request_id", requestID))
		c.SetUserContext(logger.WithContext(c.UserContext(), log))

		quiet := strings.HasPrefix(c.Path(), "/docs")
		if !quiet {
			log.Info("api request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("query", string(c.Request().URI().QueryString())),
				zap.String("client_ip", c.IP()),
				zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
			)
		}

		if err := c.Next(); err != nil {
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		took := time.Since(start)
		metrics.RecordHTTPRequest(c.Method(), c.Route().Path, status, took)

		if !quiet {
			log.Info("api response",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status_code", status),
				zap.Float64("duration_ms", float64(took.Microseconds())/1000),
				zap.Int("response_size", len(c.Response().Body())),
			)
		}
		return nil
	}
}
