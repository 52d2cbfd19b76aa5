package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthenticator struct {
	userId uuid.UUID
	err    error
	header string
}

func (a *stubAuthenticator) Authenticate(ctx context.Context, authHeader string) (uuid.UUID, error) {
	a.header = authHeader
	return a.userId, a.err
}

func newProtectedApp(auth *stubAuthenticator) *fiber.App {
	app := fiber.New()
	middleware := NewAuthMiddleware(zap.NewNop(), auth)
	app.Get("/protected", middleware.ProtectedRoute(), func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("userId").(uuid.UUID).String())
	})

	return app
}

func TestProtectedRoute(t *testing.T) {
	userId := uuid.New()
	auth := &stubAuthenticator{userId: userId}
	app := newProtectedApp(auth)

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer token")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Bearer token", auth.header)
}

func TestProtectedRouteRejects(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"invalid token": {
			err:    model.NewValidationError(constant.ERR_UNATHORIZED_ERROR, "Authentication token is invalid", "accessToken"),
			status: fiber.StatusUnauthorized,
		},
		"token store down": {
			err:    errors.New("redis: connection refused"),
			status: fiber.StatusInternalServerError,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := newProtectedApp(&stubAuthenticator{err: tc.err})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil), -1)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAuthRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/login", SetupAuthRateLimiter(zap.NewNop()), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
