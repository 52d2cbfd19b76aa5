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

type FollowerController struct {
	FollowerUsecase usecase.FollowerService
	Log             *zap.Logger
}

func NewFollowerController(followerUsecase usecase.FollowerService, zap *zap.Logger) *FollowerController {
	return &FollowerController{
		FollowerUsecase: followerUsecase,
		Log:             zap,
	}
}

func (controller *FollowerController) GetFollowers(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	followers, err := controller.FollowerUsecase.GetFollowers(ctx.UserContext(), userId)
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, followers)
}

func (controller *FollowerController) GetFollowing(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	following, err := controller.FollowerUsecase.GetFollowing(ctx.UserContext(), userId)
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, following)
}

func (controller *FollowerController) GetFollower(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	follower, err := controller.FollowerUsecase.GetFollower(ctx.UserContext(), userId, ctx.Params("userId"))
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return sendFollower(ctx, follower)
}

func (controller *FollowerController) GetFollowee(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	followee, err := controller.FollowerUsecase.GetFollowee(ctx.UserContext(), userId, ctx.Params("userId"))
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return sendFollower(ctx, followee)
}

func (controller *FollowerController) Follow(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	result := controller.FollowerUsecase.Follow(ctx.UserContext(), userId, ctx.Params("userId"))

	return util.SendResult(ctx, result)
}

func (controller *FollowerController) Unfollow(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	result := controller.FollowerUsecase.Unfollow(ctx.UserContext(), userId, ctx.Params("userId"))
	if !result.Succeeded() {
		return util.SendResult(ctx, result)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func sendFollower(ctx *fiber.Ctx, follower *model.Follower) error {
	if follower == nil {
		return util.SendErrorResponseNotFound(ctx, &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: constant.MSG_FOLLOWER_NOT_FOUND,
			Param:   "userId",
		})
	}

	return util.SendSuccessResponseWithData(ctx, follower)
}
