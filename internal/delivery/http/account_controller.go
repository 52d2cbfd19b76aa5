package http

import (
	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/usecase"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountController struct {
	UserUsecase usecase.AccountService
	Log         *zap.Logger
}

func NewAccountController(userUsecase usecase.AccountService, zap *zap.Logger) *AccountController {
	return &AccountController{
		UserUsecase: userUsecase,
		Log:         zap,
	}
}

func (controller *AccountController) Register(ctx *fiber.Ctx) error {
	var payload model.UserRegisterRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	result := controller.UserUsecase.Register(ctx.UserContext(), payload)
	if result.Succeeded() {
		ctx.Status(fiber.StatusCreated)
		return ctx.JSON(fiber.Map{"data": result.Value})
	}

	return util.SendResult(ctx, result)
}

func (controller *AccountController) ConfirmEmail(ctx *fiber.Ctx) error {
	result := controller.UserUsecase.ConfirmEmail(ctx.UserContext(), ctx.Query("userId"), ctx.Query("token"))
	if !result.Succeeded() {
		return util.SendResult(ctx, result)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller *AccountController) Login(ctx *fiber.Ctx) error {
	var payload model.UserLoginRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	result := controller.UserUsecase.Login(ctx.UserContext(), payload)

	return util.SendResult(ctx, result)
}

func (controller *AccountController) Logout(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	err := controller.UserUsecase.Logout(ctx.UserContext(), userId)
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
