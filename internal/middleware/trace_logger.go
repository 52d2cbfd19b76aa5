package middleware

import (
	"time"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/observability"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TraceLoggerMiddleware stores a logger carrying the request's trace and span
// ids in Locals("logger") and logs every finished request with it.
func TraceLoggerMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()

		traceLogger := observability.WithContext(c.UserContext(), logger)
		c.Locals("logger", traceLogger)

		err := c.Next()

		traceLogger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(started)),
		)

		return err
	}
}
