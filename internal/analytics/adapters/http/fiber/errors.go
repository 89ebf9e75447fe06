package fiber

import (
	"errors"
	"net/http"

	"blog-analytics-service/internal/analytics/core/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeError maps a service error onto the error envelope. Not-found errors
// are answered by the caller, which knows the query echo.
func (h *AnalyticsHandler) writeError(c *fiber.Ctx, op string, err error) error {
	log := h.requestLogger(c)

	switch {
	case errors.Is(err, domain.ErrInvalidFilter):
		log.Warn("invalid filter", zap.String("handler", op), zap.Error(err))
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
			Code:  domain.CodeInvalidFilter,
		})
	case errors.Is(err, domain.ErrTimeRange):
		log.Warn("invalid time range", zap.String("handler", op), zap.Error(err))
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
			Code:  domain.CodeTimeRange,
		})
	default:
		log.Error("unexpected error", zap.String("handler", op), zap.Error(err))
		resp := InternalErrorResponse{
			Error: "Internal server error",
			Code:  "internal_error",
		}
		if h.debug {
			detail := err.Error()
			resp.Detail = &detail
		}
		return c.Status(http.StatusInternalServerError).JSON(resp)
	}
}
