package middleware

import (
	"github.com/Soybean501/clipvox-ai/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// RequestContextMiddleware gắn request id (do middleware requestid tạo) vào context
// để các service log cùng request_id với handler.
func RequestContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if rid := logger.RequestID(c); rid != "" {
			c.SetContext(logger.ContextWithRequestID(c.Context(), rid))
		}
		return c.Next()
	}
}
