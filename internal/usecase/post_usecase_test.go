package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type postFixture struct {
	usecase   *PostUsecase
	posts     *fakePostStore
	blobs     *fakeBlobStore
	publisher *fakePublisher
	clock     *clock
}

func newPostFixture() *postFixture {
	fixture := &postFixture{
		posts:     newFakePostStore(),
		blobs:     newFakeBlobStore(),
		publisher: &fakePublisher{},
		clock:     newClock(),
	}

	fixture.usecase = NewPostUsecase(fixture.posts, fixture.blobs, fixture.publisher, nil, zap.NewNop())
	fixture.usecase.now = fixture.clock.now

	return fixture
}

func pngFile() *model.FilePayload {
	return &model.FilePayload{
		Name:        "sunset.png",
		ContentType: "image/png",
		Content:     []byte("\x89PNG fake image"),
	}
}

func stringPtr(value string) *string {
	return &value
}

func (fixture *postFixture) createPost(t *testing.T, callerId uuid.UUID, caption string) model.Post {
	t.Helper()

	result := fixture.usecase.Post(context.Background(), model.CreatePostRequest{
		Caption: stringPtr(caption),
		File:    pngFile(),
	}, callerId)
	require.True(t, result.Succeeded(), "create failed: %v", result.Fault)

	return result.Value
}

// TestPostCreate tests that a created post names the uploaded blob and is stored.
func TestPostCreate(t *testing.T) {
	fixture := newPostFixture()
	ctx := context.Background()
	callerId := uuid.New()

	result := fixture.usecase.Post(ctx, model.CreatePostRequest{
		Caption: stringPtr("Hello"),
		File:    pngFile(),
	}, callerId)

	require.True(t, result.Succeeded())
	post := result.Value
	require.NotEqual(t, uuid.Nil, post.Id)
	require.Equal(t, "Hello", post.Caption)
	require.Equal(t, "", post.Description)
	require.Equal(t, callerId, post.UserId)
	require.Equal(t, fixture.clock.now(), post.DateCreated)
	require.Equal(t, post.DateCreated, post.DateModified)

	require.Equal(t, 1, fixture.blobs.uploads)
	require.True(t, fixture.blobs.exists(post.FileName))
	require.True(t, fixture.posts.exists(post.Id))

	stored, err := fixture.usecase.GetPostById(ctx, post.Id.String())
	require.NoError(t, err)
	require.Equal(t, post, *stored)

	require.Len(t, fixture.publisher.events, 1)
	require.Equal(t, model.PostEventCreated, fixture.publisher.events[0].Type)
	require.Equal(t, post.Id, fixture.publisher.events[0].PostId)
}

// TestPostCreateInvalid tests that invalid requests never reach blob storage.
func TestPostCreateInvalid(t *testing.T) {
	tests := []struct {
		name    string
		request model.CreatePostRequest
	}{
		{
			name:    "missing file",
			request: model.CreatePostRequest{Caption: stringPtr("Hello")},
		},
		{
			name: "empty file",
			request: model.CreatePostRequest{
				File: &model.FilePayload{Name: "a.png", ContentType: "image/png"},
			},
		},
		{
			name: "unsupported content type",
			request: model.CreatePostRequest{
				File: &model.FilePayload{Name: "a.txt", ContentType: "text/plain", Content: []byte("hi")},
			},
		},
		{
			name: "extension mismatch",
			request: model.CreatePostRequest{
				File: &model.FilePayload{Name: "a.gif", ContentType: "image/png", Content: []byte("hi")},
			},
		},
		{
			name: "caption too long",
			request: model.CreatePostRequest{
				Caption: stringPtr(strings.Repeat("a", constant.MAX_CAPTION_LENGTH+1)),
				File:    pngFile(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newPostFixture()

			result := fixture.usecase.Post(context.Background(), tt.request, uuid.New())

			require.False(t, result.Succeeded())
			require.Equal(t, model.ErrorTypeBadRequest, result.Fault.ErrorType)
			require.Equal(t, constant.MSG_INVALID_INPUT, result.Fault.ErrorMessage)
			require.Equal(t, 0, fixture.blobs.uploads)
			require.Equal(t, 0, fixture.posts.calls)
		})
	}
}

// TestPostCreateUploadFailure tests that no row is written when the upload fails.
func TestPostCreateUploadFailure(t *testing.T) {
	fixture := newPostFixture()
	fixture.blobs.uploadErr = errStorage

	result := fixture.usecase.Post(context.Background(), model.CreatePostRequest{File: pngFile()}, uuid.New())

	require.False(t, result.Succeeded())
	require.Equal(t, model.ErrorTypeProblem, result.Fault.ErrorType)
	require.Equal(t, constant.MSG_PROBLEM, result.Fault.ErrorMessage)
	require.Equal(t, 0, fixture.posts.calls)
	require.Empty(t, fixture.publisher.events)
}

// TestPostCreateInsertFailure tests that a failed insert reports a problem and
// leaves the uploaded blob behind.
func TestPostCreateInsertFailure(t *testing.T) {
	fixture := newPostFixture()
	fixture.posts.insertErr = errStorage

	result := fixture.usecase.Post(context.Background(), model.CreatePostRequest{File: pngFile()}, uuid.New())

	require.False(t, result.Succeeded())
	require.Equal(t, model.ErrorTypeProblem, result.Fault.ErrorType)
	require.Len(t, fixture.blobs.blobs, 1)
	require.Empty(t, fixture.posts.posts)
	require.Empty(t, fixture.publisher.events)
}

// TestPostCreateEncodesFile tests that the encoder output is what gets uploaded.
func TestPostCreateEncodesFile(t *testing.T) {
	fixture := newPostFixture()
	fixture.usecase.Encoder = fakeEncoder{}

	result := fixture.usecase.Post(context.Background(), model.CreatePostRequest{File: pngFile()}, uuid.New())
	require.True(t, result.Succeeded())

	uploaded := fixture.blobs.blobs[result.Value.FileName]
	require.Equal(t, "image/webp", uploaded.ContentType)
	require.True(t, strings.HasPrefix(string(uploaded.Content), "webp:"))
}

// TestPostCreateEncoderFailure tests that an undecodable image is a caller fault.
func TestPostCreateEncoderFailure(t *testing.T) {
	fixture := newPostFixture()
	fixture.usecase.Encoder = fakeEncoder{err: errStorage}

	result := fixture.usecase.Post(context.Background(), model.CreatePostRequest{File: pngFile()}, uuid.New())

	require.False(t, result.Succeeded())
	require.Equal(t, model.ErrorTypeBadRequest, result.Fault.ErrorType)
	require.Equal(t, 0, fixture.blobs.uploads)
}

// TestPostCreatePublishFailure tests that a lost event does not fail the create.
func TestPostCreatePublishFailure(t *testing.T) {
	fixture := newPostFixture()
	fixture.publisher.err = errStorage

	result := fixture.usecase.Post(context.Background(), model.CreatePostRequest{File: pngFile()}, uuid.New())

	require.True(t, result.Succeeded())
	require.True(t, fixture.posts.exists(result.Value.Id))
}

// TestMalformedPostIds tests that malformed ids never reach storage.
func TestMalformedPostIds(t *testing.T) {
	fixture := newPostFixture()
	ctx := context.Background()
	callerId := uuid.New()

	post, err := fixture.usecase.GetPostById(ctx, "not-a-uuid")
	require.NoError(t, err)
	require.Nil(t, post)

	update := fixture.usecase.UpdatePost(ctx, "not-a-uuid", model.UpdatePostRequest{Id: "not-a-uuid"}, callerId)
	require.False(t, update.Succeeded())
	require.Equal(t, model.ErrorTypeBadRequest, update.Fault.ErrorType)
	require.Equal(t, constant.MSG_INVALID_ID, update.Fault.ErrorMessage)

	deleted := fixture.usecase.DeletePost(ctx, "not-a-uuid", callerId)
	require.False(t, deleted.Succeeded())
	require.Equal(t, model.ErrorTypeBadRequest, deleted.Fault.ErrorType)
	require.Equal(t, constant.MSG_INVALID_INPUT, deleted.Fault.ErrorMessage)

	require.Equal(t, 0, fixture.posts.calls)
	require.Equal(t, 0, fixture.blobs.deletes)
}

// TestGetPostByIdMissing tests that an unknown id is absent, not an error.
func TestGetPostByIdMissing(t *testing.T) {
	fixture := newPostFixture()

	post, err := fixture.usecase.GetPostById(context.Background(), uuid.NewString())

	require.NoError(t, err)
	require.Nil(t, post)
}

// TestUpdatePostIdMismatch tests that the path id must equal the body id.
func TestUpdatePostIdMismatch(t *testing.T) {
	fixture := newPostFixture()
	callerId := uuid.New()
	post := fixture.createPost(t, callerId, "Hello")
	callsBefore := fixture.posts.calls

	result := fixture.usecase.UpdatePost(context.Background(), post.Id.String(), model.UpdatePostRequest{
		Id:      uuid.NewString(),
		Caption: stringPtr("Changed"),
	}, callerId)

	require.False(t, result.Succeeded())
	require.Equal(t, model.ErrorTypeBadRequest, result.Fault.ErrorType)
	require.Equal(t, constant.MSG_INVALID_ID, result.Fault.ErrorMessage)
	require.Equal(t, callsBefore, fixture.posts.calls)
}

// TestUpdatePostValidation tests that every validation message is reported.
func TestUpdatePostValidation(t *testing.T) {
	fixture := newPostFixture()

	result := fixture.usecase.UpdatePost(context.Background(), uuid.NewString(), model.UpdatePostRequest{
		Caption:     stringPtr(strings.Repeat("a", constant.MAX_CAPTION_LENGTH+1)),
		Description: stringPtr(strings.Repeat("b", constant.MAX_DESCRIPTION_LENGTH+1)),
	}, uuid.New())

	require.False(t, result.Succeeded())
	require.Equal(t, model.ErrorTypeBadRequest, result.Fault.ErrorType)
	require.Contains(t, result.Fault.ErrorMessage, "Id is required.")
	require.Contains(t, result.Fault.ErrorMessage, "Caption must be at most")
	require.Contains(t, result.Fault.ErrorMessage, "Description must be at most")
	require.Equal(t, 0, fixture.posts.calls)
}

// TestUpdatePostOnlyRefreshesDateModified tests that an update without fields
// keeps the content and moves DateModified forward.
func TestUpdatePostOnlyRefreshesDateModified(t *testing.T) {
	fixture := newPostFixture()
	callerId := uuid.New()
	post := fixture.createPost(t, callerId, "Hello")

	fixture.clock.advance(time.Minute)
	result := fixture.usecase.UpdatePost(context.Background(), post.Id.String(), model.UpdatePostRequest{
		Id: post.Id.String(),
	}, callerId)

	require.True(t, result.Succeeded())
	require.Equal(t, post.Caption, result.Value.Caption)
	require.Equal(t, post.Description, result.Value.Description)
	require.Equal(t, post.FileName, result.Value.FileName)
	require.Equal(t, post.DateCreated, result.Value.DateCreated)
	require.Equal(t, fixture.clock.now(), result.Value.DateModified)
	require.True(t, result.Value.DateModified.After(post.DateModified))
}

// TestUpdatePostDescriptionOnly tests that an absent caption is left untouched.
func TestUpdatePostDescriptionOnly(t *testing.T) {
	fixture := newPostFixture()
	ctx := context.Background()
	callerId := uuid.New()
	post := fixture.createPost(t, callerId, "Hello")

	result := fixture.usecase.UpdatePost(ctx, post.Id.String(), model.UpdatePostRequest{
		Id:          post.Id.String(),
		Description: stringPtr("x"),
	}, callerId)
	require.True(t, result.Succeeded())

	stored, err := fixture.usecase.GetPostById(ctx, post.Id.String())
	require.NoError(t, err)
	require.Equal(t, "Hello", stored.Caption)
	require.Equal(t, "x", stored.Description)
}

// TestUpdatePostEmptyCaptionClears tests that a present empty caption is applied.
func TestUpdatePostEmptyCaptionClears(t *testing.T) {
	fixture := newPostFixture()
	callerId := uuid.New()
	post := fixture.createPost(t, callerId, "Hello")

	result := fixture.usecase.UpdatePost(context.Background(), post.Id.String(), model.UpdatePostRequest{
		Id:      post.Id.String(),
		Caption: stringPtr(""),
	}, callerId)

	require.True(t, result.Succeeded())
	require.Equal(t, "", result.Value.Caption)
}

// TestOtherCallerCannotMutatePost tests that another user sees NotFound and
// the post stays unchanged.
func TestOtherCallerCannotMutatePost(t *testing.T) {
	fixture := newPostFixture()
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()
	post := fixture.createPost(t, owner, "Hello")

	update := fixture.usecase.UpdatePost(ctx, post.Id.String(), model.UpdatePostRequest{
		Id:      post.Id.String(),
		Caption: stringPtr("Hijacked"),
	}, other)
	require.False(t, update.Succeeded())
	require.Equal(t, model.ErrorTypeNotFound, update.Fault.ErrorType)
	require.Equal(t, constant.MSG_POST_NOT_FOUND, update.Fault.ErrorMessage)

	deleted := fixture.usecase.DeletePost(ctx, post.Id.String(), other)
	require.False(t, deleted.Succeeded())
	require.Equal(t, model.ErrorTypeNotFound, deleted.Fault.ErrorType)

	stored, err := fixture.usecase.GetPostById(ctx, post.Id.String())
	require.NoError(t, err)
	require.Equal(t, post, *stored)
	require.True(t, fixture.blobs.exists(post.FileName))
	require.Equal(t, 0, fixture.blobs.deletes)
}

// TestUpdatePostConcurrentDelete tests that a row vanishing between the
// ownership check and the write is reported as NotFound.
func TestUpdatePostConcurrentDelete(t *testing.T) {
	fixture := newPostFixture()
	callerId := uuid.New()
	post := fixture.createPost(t, callerId, "Hello")
	fixture.posts.updateErr = model.ErrPostNotFound

	result := fixture.usecase.UpdatePost(context.Background(), post.Id.String(), model.UpdatePostRequest{
		Id:      post.Id.String(),
		Caption: stringPtr("Changed"),
	}, callerId)

	require.False(t, result.Succeeded())
	require.Equal(t, model.ErrorTypeNotFound, result.Fault.ErrorType)
}

// TestUpdatePostStorageFailure tests that storage errors surface as problems.
func TestUpdatePostStorageFailure(t *testing.T) {
	fixture := newPostFixture()
	callerId := uuid.New()
	post := fixture.createPost(t, callerId, "Hello")
	fixture.posts.updateErr = errStorage

	result := fixture.usecase.UpdatePost(context.Background(), post.Id.String(), model.UpdatePostRequest{
		Id: post.Id.String(),
	}, callerId)

	require.False(t, result.Succeeded())
	require.Equal(t, model.ErrorTypeProblem, result.Fault.ErrorType)
	require.Equal(t, constant.MSG_PROBLEM, result.Fault.ErrorMessage)
}

// TestDeletePost tests that deleting removes both the blob and the row.
func TestDeletePost(t *testing.T) {
	fixture := newPostFixture()
	ctx := context.Background()
	callerId := uuid.New()
	post := fixture.createPost(t, callerId, "Hello")

	result := fixture.usecase.DeletePost(ctx, post.Id.String(), callerId)

	require.True(t, result.Succeeded())
	require.True(t, result.Value)
	require.False(t, fixture.blobs.exists(post.FileName))

	stored, err := fixture.usecase.GetPostById(ctx, post.Id.String())
	require.NoError(t, err)
	require.Nil(t, stored)

	require.Len(t, fixture.publisher.events, 2)
	require.Equal(t, model.PostEventDeleted, fixture.publisher.events[1].Type)

	again := fixture.usecase.DeletePost(ctx, post.Id.String(), callerId)
	require.False(t, again.Succeeded())
	require.Equal(t, model.ErrorTypeNotFound, again.Fault.ErrorType)
}

// TestDeletePostBlobFailureKeepsRow tests that the row survives a failed blob delete.
func TestDeletePostBlobFailureKeepsRow(t *testing.T) {
	fixture := newPostFixture()
	ctx := context.Background()
	callerId := uuid.New()
	post := fixture.createPost(t, callerId, "Hello")
	fixture.blobs.deleteErr = errStorage

	result := fixture.usecase.DeletePost(ctx, post.Id.String(), callerId)

	require.False(t, result.Succeeded())
	require.Equal(t, model.ErrorTypeProblem, result.Fault.ErrorType)
	require.True(t, fixture.posts.exists(post.Id))
	require.True(t, fixture.blobs.exists(post.FileName))

	fixture.blobs.deleteErr = nil
	retry := fixture.usecase.DeletePost(ctx, post.Id.String(), callerId)
	require.True(t, retry.Succeeded())
	require.False(t, fixture.posts.exists(post.Id))
}

// TestDeletePostMissingBlob tests that a post whose blob is already gone can
// still be deleted.
func TestDeletePostMissingBlob(t *testing.T) {
	fixture := newPostFixture()
	callerId := uuid.New()
	post := fixture.createPost(t, callerId, "Hello")
	delete(fixture.blobs.blobs, post.FileName)

	result := fixture.usecase.DeletePost(context.Background(), post.Id.String(), callerId)

	require.True(t, result.Succeeded())
	require.False(t, fixture.posts.exists(post.Id))
}

// TestGetPostContent tests that content is streamed from blob storage.
func TestGetPostContent(t *testing.T) {
	fixture := newPostFixture()
	ctx := context.Background()
	post := fixture.createPost(t, uuid.New(), "Hello")

	content, err := fixture.usecase.GetPostContent(ctx, post.FileName)
	require.NoError(t, err)
	require.NotNil(t, content)
	defer content.Reader.Close()

	body, err := io.ReadAll(content.Reader)
	require.NoError(t, err)
	require.Equal(t, pngFile().Content, body)
	require.Equal(t, "image/png", content.ContentType)

	missing, err := fixture.usecase.GetPostContent(ctx, "missing.png")
	require.NoError(t, err)
	require.Nil(t, missing)

	empty, err := fixture.usecase.GetPostContent(ctx, "")
	require.NoError(t, err)
	require.Nil(t, empty)
}

// TestGetRelevantPostsNonPositiveLimit tests that a limit below one returns an
// empty feed without touching storage.
func TestGetRelevantPostsNonPositiveLimit(t *testing.T) {
	for _, limit := range []int{0, -5} {
		fixture := newPostFixture()

		posts, err := fixture.usecase.GetRelevantPosts(context.Background(), uuid.New(), limit)

		require.NoError(t, err)
		require.NotNil(t, posts)
		require.Empty(t, posts)
		require.Equal(t, 0, fixture.posts.calls)
	}
}

// TestGetRelevantPosts tests that the feed holds followees' posts, newest first.
func TestGetRelevantPosts(t *testing.T) {
	fixture := newPostFixture()
	ctx := context.Background()
	reader := uuid.New()
	author := uuid.New()
	stranger := uuid.New()
	fixture.posts.follow(reader, author)

	fixture.createPost(t, author, "t1")
	fixture.clock.advance(time.Second)
	fixture.createPost(t, stranger, "unfollowed")
	fixture.clock.advance(time.Second)
	fixture.createPost(t, author, "t2")
	fixture.clock.advance(time.Second)
	fixture.createPost(t, author, "t3")

	posts, err := fixture.usecase.GetRelevantPosts(ctx, reader, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "t3", posts[0].Caption)
	require.Equal(t, "t2", posts[1].Caption)

	own, err := fixture.usecase.GetRelevantPosts(ctx, author, 10)
	require.NoError(t, err)
	require.Empty(t, own)
}

// TestGetRelevantPostsPage tests that the cursor walks the feed without gaps.
func TestGetRelevantPostsPage(t *testing.T) {
	fixture := newPostFixture()
	ctx := context.Background()
	reader := uuid.New()
	author := uuid.New()
	fixture.posts.follow(reader, author)

	for _, caption := range []string{"p1", "p2", "p3", "p4", "p5"} {
		fixture.createPost(t, author, caption)
		fixture.clock.advance(time.Second)
	}

	first, err := fixture.usecase.GetRelevantPostsPage(ctx, reader, 2, "")
	require.NoError(t, err)
	require.Equal(t, []string{"p5", "p4"}, captions(first.Data))
	require.NotEmpty(t, first.Page.NextCursor)

	second, err := fixture.usecase.GetRelevantPostsPage(ctx, reader, 2, first.Page.NextCursor)
	require.NoError(t, err)
	require.Equal(t, []string{"p3", "p2"}, captions(second.Data))
	require.NotEmpty(t, second.Page.NextCursor)

	last, err := fixture.usecase.GetRelevantPostsPage(ctx, reader, 2, second.Page.NextCursor)
	require.NoError(t, err)
	require.Equal(t, []string{"p1"}, captions(last.Data))
	require.Empty(t, last.Page.NextCursor)
}

// TestGetRelevantPostsPageSameTimestamp tests that posts created at the same
// instant are paged by descending id, each exactly once.
func TestGetRelevantPostsPageSameTimestamp(t *testing.T) {
	fixture := newPostFixture()
	ctx := context.Background()
	reader := uuid.New()
	author := uuid.New()
	fixture.posts.follow(reader, author)

	expected := []string{}
	for _, caption := range []string{"s1", "s2", "s3"} {
		post := fixture.createPost(t, author, caption)
		expected = append(expected, post.Id.String())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(expected)))

	seen := []string{}
	cursor := ""
	for range expected {
		page, err := fixture.usecase.GetRelevantPostsPage(ctx, reader, 1, cursor)
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		seen = append(seen, page.Data[0].Id.String())
		cursor = page.Page.NextCursor
	}

	require.Equal(t, expected, seen)
	require.Empty(t, cursor)
}

// TestGetRelevantPostsPageInvalidCursor tests that a tampered cursor is a validation error.
func TestGetRelevantPostsPageInvalidCursor(t *testing.T) {
	fixture := newPostFixture()

	_, err := fixture.usecase.GetRelevantPostsPage(context.Background(), uuid.New(), 10, "%%%")

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "cursor", validationErr.Param)
	require.Equal(t, 0, fixture.posts.calls)
}

func captions(posts []model.Post) []string {
	result := make([]string, 0, len(posts))
	for _, post := range posts {
		result = append(result, post.Caption)
	}

	return result
}
