package http

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/usecase"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostController struct {
	PostUsecase usecase.PostService
	Log         *zap.Logger
}

func NewPostController(postUsecase usecase.PostService, zap *zap.Logger) *PostController {
	return &PostController{
		PostUsecase: postUsecase,
		Log:         zap,
	}
}

func (controller *PostController) GetRelevantPosts(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	limit := constant.DEFAULT_LIMIT
	if rawLimit := ctx.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			return util.SendErrorResponse(ctx, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Limit must be a number",
				Param:   "limit",
			})
		}
		limit = parsed
	}
	cursor := ctx.Query("cursor", "")

	if limit < 0 {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Limit must be greater or equal than 0",
			Param:   "limit",
		})
	} else if limit > constant.MAX_LIMIT {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Limit is exceeded max limit: %d", constant.MAX_LIMIT),
			Param:   "limit",
		})
	}

	var validationErr *model.ValidationError

	response, err := controller.PostUsecase.GetRelevantPostsPage(ctx.UserContext(), userId, limit, cursor)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendErrorResponse(ctx, err)
		}

		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller *PostController) GetPost(ctx *fiber.Ctx) error {
	post, err := controller.PostUsecase.GetPostById(ctx.UserContext(), ctx.Params("postId"))
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	if post == nil {
		return util.SendErrorResponseNotFound(ctx, &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: constant.MSG_POST_NOT_FOUND,
			Param:   "postId",
		})
	}

	return util.SendSuccessResponseWithData(ctx, post)
}

func (controller *PostController) GetPostContent(ctx *fiber.Ctx) error {
	content, err := controller.PostUsecase.GetPostContent(ctx.UserContext(), ctx.Params("fileName"))
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	if content == nil {
		return util.SendErrorResponseNotFound(ctx, &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "File not found.",
			Param:   "fileName",
		})
	}

	if content.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, content.ContentType)
	}
	ctx.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")

	// The response body stream closes the reader once it is written.
	return ctx.Status(fiber.StatusOK).SendStream(content.Reader, int(content.Size))
}

func (controller *PostController) CreatePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	form, err := ctx.MultipartForm()
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	request := model.CreatePostRequest{
		Caption:     formValue(form.Value, "caption"),
		Description: formValue(form.Value, "description"),
	}

	files := form.File["file"]
	if len(files) > 0 {
		fileHeader := files[0]
		file, err := fileHeader.Open()
		if err != nil {
			return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
		}

		request.File = &model.FilePayload{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
			Content:     content,
		}
	}

	result := controller.PostUsecase.Post(ctx.UserContext(), request, userId)
	if result.Succeeded() {
		ctx.Status(fiber.StatusCreated)
		return ctx.JSON(fiber.Map{"data": result.Value})
	}

	return util.SendResult(ctx, result)
}

func (controller *PostController) UpdatePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	var payload model.UpdatePostRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	result := controller.PostUsecase.UpdatePost(ctx.UserContext(), ctx.Params("postId"), payload, userId)

	return util.SendResult(ctx, result)
}

func (controller *PostController) DeletePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	result := controller.PostUsecase.DeletePost(ctx.UserContext(), ctx.Params("postId"), userId)
	if !result.Succeeded() {
		return util.SendResult(ctx, result)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func formValue(values map[string][]string, key string) *string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return &v[0]
	}

	return nil
}
