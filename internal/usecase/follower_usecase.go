package usecase

import (
	"context"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/observability"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FollowerStore interface {
	Find(ctx context.Context, followerId uuid.UUID, followeeId uuid.UUID) (*model.Follower, error)
	// Insert returns the stored edge, which is the existing one if the pair
	// was already present.
	Insert(ctx context.Context, follower model.Follower) (model.Follower, error)
	Remove(ctx context.Context, followerId uuid.UUID, followeeId uuid.UUID) (bool, error)
	ListFollowers(ctx context.Context, followeeId uuid.UUID) ([]model.Follower, error)
	ListFollowing(ctx context.Context, followerId uuid.UUID) ([]model.Follower, error)
}

type UserLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type FollowerService interface {
	Follow(ctx context.Context, callerId uuid.UUID, userId string) model.Result[model.Follower]
	Unfollow(ctx context.Context, callerId uuid.UUID, userId string) model.Result[bool]
	GetFollowers(ctx context.Context, callerId uuid.UUID) ([]model.Follower, error)
	GetFollowing(ctx context.Context, callerId uuid.UUID) ([]model.Follower, error)
	GetFollowee(ctx context.Context, callerId uuid.UUID, userId string) (*model.Follower, error)
	GetFollower(ctx context.Context, callerId uuid.UUID, userId string) (*model.Follower, error)
}

type FollowerUsecase struct {
	FollowerRepository FollowerStore
	UserRepository     UserLookup
	Log                *zap.Logger
}

func NewFollowerUsecase(followerRepository FollowerStore, userRepository UserLookup, zap *zap.Logger) *FollowerUsecase {
	return &FollowerUsecase{
		FollowerRepository: followerRepository,
		UserRepository:     userRepository,
		Log:                zap,
	}
}

func (usecase *FollowerUsecase) Follow(ctx context.Context, callerId uuid.UUID, userId string) (result model.Result[model.Follower]) {
	ctx, finish := observability.StartOperation(ctx, "follower.follow")
	defer func() { finish(result.Outcome()) }()

	log := observability.WithContext(ctx, usecase.Log)

	followeeId, err := uuid.Parse(userId)
	if err != nil {
		return model.Failure[model.Follower](model.ErrorTypeBadRequest, constant.MSG_INVALID_INPUT)
	}

	if followeeId == callerId {
		return model.Failure[model.Follower](model.ErrorTypeBadRequest, constant.MSG_SELF_FOLLOW)
	}

	exists, err := usecase.UserRepository.Exists(ctx, followeeId)
	if err != nil {
		log.Error("failed to look up user", zap.String("user_id", userId), zap.Error(err))
		return model.Failure[model.Follower](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	if !exists {
		return model.Failure[model.Follower](model.ErrorTypeNotFound, constant.MSG_USER_NOT_FOUND)
	}

	follower, err := usecase.FollowerRepository.Insert(ctx, model.Follower{
		Id:          uuid.New(),
		FollowerId:  callerId,
		FolloweeId:  followeeId,
		DateCreated: defaultNow(),
	})
	if err != nil {
		log.Error("failed to insert follower", zap.String("user_id", userId), zap.Error(err))
		return model.Failure[model.Follower](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	return model.Success(follower)
}

func (usecase *FollowerUsecase) Unfollow(ctx context.Context, callerId uuid.UUID, userId string) (result model.Result[bool]) {
	ctx, finish := observability.StartOperation(ctx, "follower.unfollow")
	defer func() { finish(result.Outcome()) }()

	log := observability.WithContext(ctx, usecase.Log)

	followeeId, err := uuid.Parse(userId)
	if err != nil {
		return model.Failure[bool](model.ErrorTypeBadRequest, constant.MSG_INVALID_INPUT)
	}

	removed, err := usecase.FollowerRepository.Remove(ctx, callerId, followeeId)
	if err != nil {
		log.Error("failed to remove follower", zap.String("user_id", userId), zap.Error(err))
		return model.Failure[bool](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	if !removed {
		return model.Failure[bool](model.ErrorTypeNotFound, constant.MSG_FOLLOWER_NOT_FOUND)
	}

	return model.Success(true)
}

func (usecase *FollowerUsecase) GetFollowers(ctx context.Context, callerId uuid.UUID) ([]model.Follower, error) {
	return usecase.FollowerRepository.ListFollowers(ctx, callerId)
}

func (usecase *FollowerUsecase) GetFollowing(ctx context.Context, callerId uuid.UUID) ([]model.Follower, error) {
	return usecase.FollowerRepository.ListFollowing(ctx, callerId)
}

// GetFollowee returns the edge caller -> userId, if the caller follows them.
func (usecase *FollowerUsecase) GetFollowee(ctx context.Context, callerId uuid.UUID, userId string) (*model.Follower, error) {
	followeeId, err := uuid.Parse(userId)
	if err != nil {
		return nil, nil
	}

	return usecase.FollowerRepository.Find(ctx, callerId, followeeId)
}

// GetFollower returns the edge userId -> caller, if they follow the caller.
func (usecase *FollowerUsecase) GetFollower(ctx context.Context, callerId uuid.UUID, userId string) (*model.Follower, error) {
	followerId, err := uuid.Parse(userId)
	if err != nil {
		return nil, nil
	}

	return usecase.FollowerRepository.Find(ctx, followerId, callerId)
}
