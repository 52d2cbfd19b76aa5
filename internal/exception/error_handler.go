package exception

import (
	"fmt"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func Recovery(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				var errMsg string
				switch v := r.(type) {
				case error:
					errMsg = v.Error()
				case string:
					errMsg = v
				default:
					errMsg = fmt.Sprintf("%v", v)
				}

				middleware.GetLoggerFromContext(c, log).Error("panic occurred and recovered",
					zap.String("error", errMsg),
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.Stack("stack"),
				)

				_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": fiber.Map{
						"code":    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
						"message": constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
					},
				})
			}
		}()

		return c.Next()
	}
}

// ErrorHandler answers errors returned by handlers, e.g. fiber's own 404 and
// 405, with the JSON error envelope.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE

		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		errorCode := constant.ERR_INTERNAL_SERVER_ERROR_CODE
		switch {
		case code == fiber.StatusNotFound:
			errorCode = constant.ERR_NOT_FOUND_ERROR
		case code < fiber.StatusInternalServerError:
			errorCode = constant.ERR_VALIDATION_CODE
		default:
			middleware.GetLoggerFromContext(c, log).Error("unhandled error", zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errorCode,
				"message": message,
			},
		})
	}
}
