package graphql

import (
	_ "embed"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type Handler struct {
	Schema *graphql.Schema
	Log    *zap.Logger
}

func NewHandler(resolver *Resolver, zap *zap.Logger) *Handler {
	schema := graphql.MustParseSchema(schemaSDL, resolver,
		graphql.MaxDepth(8),
		graphql.MaxParallelism(10),
	)

	return &Handler{
		Schema: schema,
		Log:    zap,
	}
}

// Serve runs one GraphQL operation for the authenticated caller. Resolver
// errors are reported in the response body with status 200.
func (handler *Handler) Serve(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	var payload request
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil || payload.Query == "" {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	response := handler.Schema.Exec(WithCaller(ctx.UserContext(), userId), payload.Query, payload.OperationName, payload.Variables)

	return ctx.Status(fiber.StatusOK).JSON(response)
}
