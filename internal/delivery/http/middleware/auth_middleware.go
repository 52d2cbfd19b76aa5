package middleware

import (
	"context"
	"errors"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/util"
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticate(ctx context.Context, authHeader string) (uuid.UUID, error)
}

type AuthMiddleware struct {
	Log         *zap.Logger
	UserUsecase Authenticator
}

func NewAuthMiddleware(zap *zap.Logger, userUsecase Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		Log:         zap,
		UserUsecase: userUsecase,
	}
}

// ProtectedRoute stores the caller's id in Locals("userId").
func (middleware *AuthMiddleware) ProtectedRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var validationErr *model.ValidationError

		userId, err := middleware.UserUsecase.Authenticate(ctx.UserContext(), ctx.Get(fiber.HeaderAuthorization))
		if err != nil {
			if errors.As(err, &validationErr) {
				return util.SendErrorResponseUnauthorized(ctx, err)
			}

			return util.SendErrorResponseInternalServer(ctx, middleware.Log, err)
		}

		ctx.Locals("userId", userId)

		return ctx.Next()
	}
}
