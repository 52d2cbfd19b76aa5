package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/observability"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostStore interface {
	Find(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindOwned(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*model.Post, error)
	FeedFor(ctx context.Context, userId uuid.UUID, limit int, cursor *model.PostCursor) ([]model.Post, error)
	Insert(ctx context.Context, post model.Post) error
	// Update and Remove return model.ErrPostNotFound when no owned row matched.
	Update(ctx context.Context, post model.Post) error
	Remove(ctx context.Context, post model.Post) error
}

type BlobStore interface {
	Upload(ctx context.Context, file model.FilePayload) (string, error)
	// Download returns nil when no blob has that name.
	Download(ctx context.Context, name string) (*model.BlobContent, error)
	// Delete succeeds when the blob is already gone.
	Delete(ctx context.Context, name string) error
}

type MediaEncoder interface {
	Encode(file model.FilePayload) (model.FilePayload, error)
}

type PostEventPublisher interface {
	Publish(ctx context.Context, event model.PostEvent) error
}

// PostService is what the transports need from the post usecase.
type PostService interface {
	GetPostById(ctx context.Context, id string) (*model.Post, error)
	GetPostContent(ctx context.Context, fileName string) (*model.BlobContent, error)
	GetRelevantPosts(ctx context.Context, callerId uuid.UUID, limit int) ([]model.Post, error)
	GetRelevantPostsPage(ctx context.Context, callerId uuid.UUID, limit int, cursor string) (model.PostPage, error)
	Post(ctx context.Context, request model.CreatePostRequest, callerId uuid.UUID) model.Result[model.Post]
	UpdatePost(ctx context.Context, postId string, request model.UpdatePostRequest, callerId uuid.UUID) model.Result[model.Post]
	DeletePost(ctx context.Context, postId string, callerId uuid.UUID) model.Result[bool]
}

type PostUsecase struct {
	PostRepository  PostStore
	BlobRepository  BlobStore
	EventRepository PostEventPublisher
	Encoder         MediaEncoder
	Log             *zap.Logger
	now             func() time.Time
}

func NewPostUsecase(postRepository PostStore, blobRepository BlobStore, eventRepository PostEventPublisher, encoder MediaEncoder, zap *zap.Logger) *PostUsecase {
	return &PostUsecase{
		PostRepository:  postRepository,
		BlobRepository:  blobRepository,
		EventRepository: eventRepository,
		Encoder:         encoder,
		Log:             zap,
		now:             defaultNow,
	}
}

// Postgres keeps microseconds, so timestamps are truncated to compare equal
// after a round trip.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (usecase *PostUsecase) GetPostById(ctx context.Context, id string) (*model.Post, error) {
	postId, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	return usecase.PostRepository.Find(ctx, postId)
}

func (usecase *PostUsecase) GetPostContent(ctx context.Context, fileName string) (*model.BlobContent, error) {
	if fileName == "" {
		return nil, nil
	}

	return usecase.BlobRepository.Download(ctx, fileName)
}

func (usecase *PostUsecase) GetRelevantPosts(ctx context.Context, callerId uuid.UUID, limit int) ([]model.Post, error) {
	if limit <= 0 {
		return []model.Post{}, nil
	}

	posts, err := usecase.PostRepository.FeedFor(ctx, callerId, limit, nil)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (usecase *PostUsecase) GetRelevantPostsPage(ctx context.Context, callerId uuid.UUID, limit int, cursor string) (model.PostPage, error) {
	response := model.PostPage{Data: []model.Post{}}

	postCursor, err := DecodePostCursor(cursor)
	if err != nil {
		return response, err
	}

	if limit <= 0 {
		return response, nil
	}

	// Fetch limit + 1 to know whether another page exists
	posts, err := usecase.PostRepository.FeedFor(ctx, callerId, limit+1, postCursor)
	if err != nil {
		return response, err
	}

	if len(posts) <= limit {
		response.Data = posts
		return response, nil
	}

	response.Data = posts[:limit]
	last := posts[limit-1]

	response.Page.NextCursor, err = EncodePostCursor(model.PostCursor{
		Id:          last.Id,
		DateCreated: last.DateCreated,
	})
	if err != nil {
		return response, err
	}

	return response, nil
}

// Post uploads the file before writing the row, so a row never names a
// missing blob. A failed insert leaves the blob orphaned.
func (usecase *PostUsecase) Post(ctx context.Context, request model.CreatePostRequest, callerId uuid.UUID) (result model.Result[model.Post]) {
	ctx, finish := observability.StartOperation(ctx, "post.create")
	defer func() { finish(result.Outcome()) }()

	log := observability.WithContext(ctx, usecase.Log)

	validation := ValidateCreatePost(request)
	if !validation.Valid() {
		log.Debug("create post rejected", zap.String("reason", validation.ErrorMessage()))
		return model.Failure[model.Post](model.ErrorTypeBadRequest, constant.MSG_INVALID_INPUT)
	}

	file := *request.File
	if usecase.Encoder != nil {
		encoded, err := usecase.Encoder.Encode(file)
		if err != nil {
			log.Debug("failed to encode post file", zap.String("file", file.Name), zap.Error(err))
			return model.Failure[model.Post](model.ErrorTypeBadRequest, constant.MSG_INVALID_INPUT)
		}
		file = encoded
	}

	fileName, err := usecase.BlobRepository.Upload(ctx, file)
	if err != nil {
		log.Error("failed to upload post file", zap.Error(err))
		return model.Failure[model.Post](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	now := usecase.now()
	post := model.Post{
		Id:           uuid.New(),
		Caption:      valueOrEmpty(request.Caption),
		Description:  valueOrEmpty(request.Description),
		FileName:     fileName,
		UserId:       callerId,
		DateCreated:  now,
		DateModified: now,
	}

	err = usecase.PostRepository.Insert(ctx, post)
	if err != nil {
		observability.OrphanedBlobs.Inc()
		log.Warn("failed to insert post, blob left orphaned",
			zap.String("file_name", fileName),
			zap.Error(err),
		)
		return model.Failure[model.Post](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	usecase.publish(ctx, log, model.PostEventCreated, post)

	return model.Success(post)
}

func (usecase *PostUsecase) UpdatePost(ctx context.Context, postId string, request model.UpdatePostRequest, callerId uuid.UUID) (result model.Result[model.Post]) {
	ctx, finish := observability.StartOperation(ctx, "post.update")
	defer func() { finish(result.Outcome()) }()

	log := observability.WithContext(ctx, usecase.Log)

	validation := ValidateUpdatePost(request)
	if !validation.Valid() {
		return model.Failure[model.Post](model.ErrorTypeBadRequest, validation.ErrorMessage())
	}

	id, err := uuid.Parse(postId)
	if err != nil || postId != request.Id {
		return model.Failure[model.Post](model.ErrorTypeBadRequest, constant.MSG_INVALID_ID)
	}

	post, err := usecase.PostRepository.FindOwned(ctx, id, callerId)
	if err != nil {
		log.Error("failed to find post", zap.String("post_id", postId), zap.Error(err))
		return model.Failure[model.Post](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	if post == nil {
		return model.Failure[model.Post](model.ErrorTypeNotFound, constant.MSG_POST_NOT_FOUND)
	}

	if request.Caption != nil {
		post.Caption = *request.Caption
	}

	if request.Description != nil {
		post.Description = *request.Description
	}

	post.DateModified = usecase.now()

	err = usecase.PostRepository.Update(ctx, *post)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return model.Failure[model.Post](model.ErrorTypeNotFound, constant.MSG_POST_NOT_FOUND)
		}

		log.Error("failed to update post", zap.String("post_id", postId), zap.Error(err))
		return model.Failure[model.Post](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	return model.Success(*post)
}

// DeletePost removes the blob before the row. If the blob delete fails the
// row stays, so a retry can find the blob again.
func (usecase *PostUsecase) DeletePost(ctx context.Context, postId string, callerId uuid.UUID) (result model.Result[bool]) {
	ctx, finish := observability.StartOperation(ctx, "post.delete")
	defer func() { finish(result.Outcome()) }()

	log := observability.WithContext(ctx, usecase.Log)

	id, err := uuid.Parse(postId)
	if err != nil {
		return model.Failure[bool](model.ErrorTypeBadRequest, constant.MSG_INVALID_INPUT)
	}

	post, err := usecase.PostRepository.FindOwned(ctx, id, callerId)
	if err != nil {
		log.Error("failed to find post", zap.String("post_id", postId), zap.Error(err))
		return model.Failure[bool](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	if post == nil {
		return model.Failure[bool](model.ErrorTypeNotFound, constant.MSG_POST_NOT_FOUND)
	}

	err = usecase.BlobRepository.Delete(ctx, post.FileName)
	if err != nil {
		log.Error("failed to delete post file, row kept",
			zap.String("post_id", postId),
			zap.String("file_name", post.FileName),
			zap.Error(err),
		)
		return model.Failure[bool](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	err = usecase.PostRepository.Remove(ctx, *post)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return model.Failure[bool](model.ErrorTypeNotFound, constant.MSG_POST_NOT_FOUND)
		}

		log.Error("failed to remove post", zap.String("post_id", postId), zap.Error(err))
		return model.Failure[bool](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	usecase.publish(ctx, log, model.PostEventDeleted, *post)

	return model.Success(true)
}

func (usecase *PostUsecase) publish(ctx context.Context, log *zap.Logger, eventType string, post model.Post) {
	if usecase.EventRepository == nil {
		return
	}

	err := usecase.EventRepository.Publish(ctx, model.PostEvent{
		Type:       eventType,
		PostId:     post.Id,
		UserId:     post.UserId,
		FileName:   post.FileName,
		OccurredAt: usecase.now(),
	})
	if err != nil {
		observability.EventPublishFailures.WithLabelValues(eventType).Inc()
		log.Warn("failed to publish post event", zap.String("type", eventType), zap.String("post_id", post.Id.String()), zap.Error(err))
	}
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
