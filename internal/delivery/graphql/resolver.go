package graphql

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/usecase"
	"github.com/google/uuid"
	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

type callerKey struct{}

func WithCaller(ctx context.Context, callerId uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey{}, callerId)
}

func callerFrom(ctx context.Context) (uuid.UUID, error) {
	callerId, ok := ctx.Value(callerKey{}).(uuid.UUID)
	if !ok || callerId == uuid.Nil {
		return uuid.Nil, &ResolverError{Code: CodeUnauthenticated, Message: "Authentication is required."}
	}

	return callerId, nil
}

// Resolver is the root of both Query and Mutation.
type Resolver struct {
	PostUsecase     usecase.PostService
	FollowerUsecase usecase.FollowerService
	Log             *zap.Logger
}

func NewResolver(postUsecase usecase.PostService, followerUsecase usecase.FollowerService, zap *zap.Logger) *Resolver {
	return &Resolver{
		PostUsecase:     postUsecase,
		FollowerUsecase: followerUsecase,
		Log:             zap,
	}
}

func (r *Resolver) problem(operation string, err error) error {
	r.Log.Error("graphql resolver failed", zap.String("operation", operation), zap.Error(err))
	return problemError()
}

// Queries

func (r *Resolver) Post(ctx context.Context, args struct{ PostId graphql.ID }) (*PostResolver, error) {
	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}

	post, err := r.PostUsecase.GetPostById(ctx, string(args.PostId))
	if err != nil {
		return nil, r.problem("post", err)
	}

	if post == nil {
		return nil, nil
	}

	return &PostResolver{post: *post}, nil
}

func (r *Resolver) RelevantPosts(ctx context.Context, args struct{ Limit int32 }) ([]*PostResolver, error) {
	callerId, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	if args.Limit > constant.MAX_LIMIT {
		return nil, &ResolverError{Code: CodeBadRequest, Message: constant.MSG_INVALID_INPUT}
	}

	posts, err := r.PostUsecase.GetRelevantPosts(ctx, callerId, int(args.Limit))
	if err != nil {
		return nil, r.problem("relevantPosts", err)
	}

	resolvers := make([]*PostResolver, 0, len(posts))
	for _, post := range posts {
		resolvers = append(resolvers, &PostResolver{post: post})
	}

	return resolvers, nil
}

func (r *Resolver) Followers(ctx context.Context) ([]*FollowerResolver, error) {
	callerId, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	followers, err := r.FollowerUsecase.GetFollowers(ctx, callerId)
	if err != nil {
		return nil, r.problem("followers", err)
	}

	return followerResolvers(followers), nil
}

func (r *Resolver) Following(ctx context.Context) ([]*FollowerResolver, error) {
	callerId, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	following, err := r.FollowerUsecase.GetFollowing(ctx, callerId)
	if err != nil {
		return nil, r.problem("following", err)
	}

	return followerResolvers(following), nil
}

func (r *Resolver) Followee(ctx context.Context, args struct{ UserId graphql.ID }) (*FollowerResolver, error) {
	callerId, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	followee, err := r.FollowerUsecase.GetFollowee(ctx, callerId, string(args.UserId))
	if err != nil {
		return nil, r.problem("followee", err)
	}

	if followee == nil {
		return nil, nil
	}

	return &FollowerResolver{follower: *followee}, nil
}

func (r *Resolver) Follower(ctx context.Context, args struct{ UserId graphql.ID }) (*FollowerResolver, error) {
	callerId, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	follower, err := r.FollowerUsecase.GetFollower(ctx, callerId, string(args.UserId))
	if err != nil {
		return nil, r.problem("follower", err)
	}

	if follower == nil {
		return nil, nil
	}

	return &FollowerResolver{follower: *follower}, nil
}

// Mutations

type CreatePostInput struct {
	Caption     *string
	Description *string
	FileName    string
	ContentType string
	Content     string
}

type UpdatePostInput struct {
	Id          graphql.ID
	Caption     *string
	Description *string
}

func (r *Resolver) CreatePost(ctx context.Context, args struct{ Input CreatePostInput }) (*PostResolver, error) {
	callerId, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	content, err := base64.StdEncoding.DecodeString(args.Input.Content)
	if err != nil {
		return nil, &ResolverError{Code: CodeBadRequest, Message: constant.MSG_INVALID_INPUT}
	}

	result := r.PostUsecase.Post(ctx, model.CreatePostRequest{
		Caption:     args.Input.Caption,
		Description: args.Input.Description,
		File: &model.FilePayload{
			Name:        args.Input.FileName,
			ContentType: args.Input.ContentType,
			Content:     content,
		},
	}, callerId)
	if !result.Succeeded() {
		return nil, faultError(result.Fault)
	}

	return &PostResolver{post: result.Value}, nil
}

func (r *Resolver) UpdatePost(ctx context.Context, args struct {
	PostId graphql.ID
	Input  UpdatePostInput
}) (*PostResolver, error) {
	callerId, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	result := r.PostUsecase.UpdatePost(ctx, string(args.PostId), model.UpdatePostRequest{
		Id:          string(args.Input.Id),
		Caption:     args.Input.Caption,
		Description: args.Input.Description,
	}, callerId)
	if !result.Succeeded() {
		return nil, faultError(result.Fault)
	}

	return &PostResolver{post: result.Value}, nil
}

func (r *Resolver) DeletePost(ctx context.Context, args struct{ PostId graphql.ID }) (bool, error) {
	callerId, err := callerFrom(ctx)
	if err != nil {
		return false, err
	}

	result := r.PostUsecase.DeletePost(ctx, string(args.PostId), callerId)
	if !result.Succeeded() {
		return false, faultError(result.Fault)
	}

	return result.Value, nil
}

func (r *Resolver) Follow(ctx context.Context, args struct{ UserId graphql.ID }) (*FollowerResolver, error) {
	callerId, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	result := r.FollowerUsecase.Follow(ctx, callerId, string(args.UserId))
	if !result.Succeeded() {
		return nil, faultError(result.Fault)
	}

	return &FollowerResolver{follower: result.Value}, nil
}

func (r *Resolver) Unfollow(ctx context.Context, args struct{ UserId graphql.ID }) (bool, error) {
	callerId, err := callerFrom(ctx)
	if err != nil {
		return false, err
	}

	result := r.FollowerUsecase.Unfollow(ctx, callerId, string(args.UserId))
	if !result.Succeeded() {
		return false, faultError(result.Fault)
	}

	return result.Value, nil
}

// Object resolvers

type PostResolver struct {
	post model.Post
}

func (p *PostResolver) Id() graphql.ID { return graphql.ID(p.post.Id.String()) }
func (p *PostResolver) Caption() string { return p.post.Caption }
func (p *PostResolver) Description() string { return p.post.Description }
func (p *PostResolver) FileName() string { return p.post.FileName }
func (p *PostResolver) UserId() graphql.ID { return graphql.ID(p.post.UserId.String()) }
func (p *PostResolver) DateCreated() string { return p.post.DateCreated.Format(time.RFC3339Nano) }
func (p *PostResolver) DateModified() string { return p.post.DateModified.Format(time.RFC3339Nano) }

type FollowerResolver struct {
	follower model.Follower
}

func (f *FollowerResolver) Id() graphql.ID { return graphql.ID(f.follower.Id.String()) }
func (f *FollowerResolver) FollowerId() graphql.ID { return graphql.ID(f.follower.FollowerId.String()) }
func (f *FollowerResolver) FolloweeId() graphql.ID { return graphql.ID(f.follower.FolloweeId.String()) }
func (f *FollowerResolver) DateCreated() string { return f.follower.DateCreated.Format(time.RFC3339Nano) }

func followerResolvers(followers []model.Follower) []*FollowerResolver {
	resolvers := make([]*FollowerResolver, 0, len(followers))
	for _, follower := range followers {
		resolvers = append(resolvers, &FollowerResolver{follower: follower})
	}

	return resolvers
}
