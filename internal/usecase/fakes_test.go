package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var errStorage = errors.New("storage unavailable")

// tracedLogger installs a recording tracer provider for the test and returns
// a logger whose entries can be inspected.
func tracedLogger(t *testing.T) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()

	previous := otel.GetTracerProvider()
	provider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})

	core, logs := observer.New(zap.DebugLevel)

	return zap.New(core), logs
}

func hasTraceFields(entry observer.LoggedEntry) bool {
	fields := entry.ContextMap()
	traceId, _ := fields["trace_id"].(string)
	spanId, _ := fields["span_id"].(string)

	return traceId != "" && spanId != ""
}

type fakePostStore struct {
	mu      sync.Mutex
	posts   map[uuid.UUID]model.Post
	follows map[uuid.UUID][]uuid.UUID
	calls   int

	findErr   error
	insertErr error
	updateErr error
	removeErr error
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{
		posts:   map[uuid.UUID]model.Post{},
		follows: map[uuid.UUID][]uuid.UUID{},
	}
}

func (s *fakePostStore) follow(followerId uuid.UUID, followeeId uuid.UUID) {
	s.follows[followerId] = append(s.follows[followerId], followeeId)
}

func (s *fakePostStore) Find(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.findErr != nil {
		return nil, s.findErr
	}

	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}

	return &post, nil
}

func (s *fakePostStore) FindOwned(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.findErr != nil {
		return nil, s.findErr
	}

	post, ok := s.posts[id]
	if !ok || post.UserId != userId {
		return nil, nil
	}

	return &post, nil
}

func (s *fakePostStore) FeedFor(ctx context.Context, userId uuid.UUID, limit int, cursor *model.PostCursor) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	followees := map[uuid.UUID]bool{}
	for _, id := range s.follows[userId] {
		followees[id] = true
	}

	posts := []model.Post{}
	for _, post := range s.posts {
		if followees[post.UserId] {
			posts = append(posts, post)
		}
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].DateCreated.Equal(posts[j].DateCreated) {
			return posts[i].DateCreated.After(posts[j].DateCreated)
		}
		return posts[i].Id.String() > posts[j].Id.String()
	})

	if cursor != nil {
		after := []model.Post{}
		for _, post := range posts {
			if post.DateCreated.Before(cursor.DateCreated) ||
				(post.DateCreated.Equal(cursor.DateCreated) && post.Id.String() < cursor.Id.String()) {
				after = append(after, post)
			}
		}
		posts = after
	}

	if len(posts) > limit {
		posts = posts[:limit]
	}

	return posts, nil
}

func (s *fakePostStore) Insert(ctx context.Context, post model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.insertErr != nil {
		return s.insertErr
	}

	s.posts[post.Id] = post
	return nil
}

func (s *fakePostStore) Update(ctx context.Context, post model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.updateErr != nil {
		return s.updateErr
	}

	stored, ok := s.posts[post.Id]
	if !ok || stored.UserId != post.UserId {
		return model.ErrPostNotFound
	}

	s.posts[post.Id] = post
	return nil
}

func (s *fakePostStore) Remove(ctx context.Context, post model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.removeErr != nil {
		return s.removeErr
	}

	stored, ok := s.posts[post.Id]
	if !ok || stored.UserId != post.UserId {
		return model.ErrPostNotFound
	}

	delete(s.posts, post.Id)
	return nil
}

func (s *fakePostStore) exists(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.posts[id]
	return ok
}

type fakeBlobStore struct {
	mu      sync.Mutex
	blobs   map[string]model.FilePayload
	uploads int
	deletes int

	uploadErr error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: map[string]model.FilePayload{}}
}

func (s *fakeBlobStore) Upload(ctx context.Context, file model.FilePayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads++

	if s.uploadErr != nil {
		return "", s.uploadErr
	}

	name := uuid.NewString() + ".png"
	s.blobs[name] = file
	return name, nil
}

func (s *fakeBlobStore) Download(ctx context.Context, name string) (*model.BlobContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := s.blobs[name]
	if !ok {
		return nil, nil
	}

	return &model.BlobContent{
		Reader:      io.NopCloser(bytes.NewReader(file.Content)),
		ContentType: file.ContentType,
		Size:        int64(len(file.Content)),
	}, nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++

	if s.deleteErr != nil {
		return s.deleteErr
	}

	delete(s.blobs, name)
	return nil
}

func (s *fakeBlobStore) exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.blobs[name]
	return ok
}

type fakePublisher struct {
	mu     sync.Mutex
	events []model.PostEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event model.PostEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}

	p.events = append(p.events, event)
	return nil
}

type fakeEncoder struct {
	err error
}

func (e fakeEncoder) Encode(file model.FilePayload) (model.FilePayload, error) {
	if e.err != nil {
		return model.FilePayload{}, e.err
	}

	return model.FilePayload{
		Name:        "encoded.webp",
		ContentType: "image/webp",
		Content:     append([]byte("webp:"), file.Content...),
	}, nil
}

// clock is a manual time source for the usecases.
type clock struct {
	current time.Time
}

func newClock() *clock {
	return &clock{current: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) now() time.Time {
	return c.current
}

func (c *clock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}
