package util

import (
	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ReadRequestBody(ctx *fiber.Ctx, result interface{}) error {
	err := ctx.BodyParser(result)
	if err != nil {
		return err
	}
	return nil
}

func SendSuccessResponseNoData(ctx *fiber.Ctx) error {
	err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "OK",
	})
	if err != nil {
		return err
	}
	return nil
}

func SendSuccessResponseWithData(ctx *fiber.Ctx, data interface{}) error {
	err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": data,
	})
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponse(ctx *fiber.Ctx, error error) error {
	err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": error,
	})
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponseNotFound(ctx *fiber.Ctx, error error) error {
	err := ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": error,
	})
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponseUnauthorized(ctx *fiber.Ctx, error error) error {
	err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": error,
	})
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponseInternalServer(ctx *fiber.Ctx, log *zap.Logger, error error) error {
	log.Error("internal server error occured", zap.Error(error))
	err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
			"message": constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
		},
	})

	if err != nil {
		return err
	}

	return err
}

// StatusFromErrorType maps the error taxonomy onto HTTP status codes.
func StatusFromErrorType(errorType model.ErrorType) int {
	switch errorType {
	case model.ErrorTypeBadRequest:
		return fiber.StatusBadRequest
	case model.ErrorTypeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func codeFromErrorType(errorType model.ErrorType) string {
	switch errorType {
	case model.ErrorTypeBadRequest:
		return constant.ERR_VALIDATION_CODE
	case model.ErrorTypeNotFound:
		return constant.ERR_NOT_FOUND_ERROR
	default:
		return constant.ERR_INTERNAL_SERVER_ERROR_CODE
	}
}

// SendResult writes the value of a successful result, or its fault with the
// matching status code.
func SendResult[T any](ctx *fiber.Ctx, result model.Result[T]) error {
	if result.Succeeded() {
		return SendSuccessResponseWithData(ctx, result.Value)
	}

	return ctx.Status(StatusFromErrorType(result.Fault.ErrorType)).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    codeFromErrorType(result.Fault.ErrorType),
			"message": result.Fault.ErrorMessage,
		},
	})
}
