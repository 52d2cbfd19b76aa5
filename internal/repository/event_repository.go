package repository

import (
	"context"
	"time"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PostEventRepository publishes post events to a Kafka topic, keyed by post
// id so events of one post stay ordered within a partition. The writer is
// owned and closed by the caller that built it.
type PostEventRepository struct {
	Log    *zap.Logger
	Writer *kafka.Writer
}

func NewPostEventRepository(zap *zap.Logger, writer *kafka.Writer) *PostEventRepository {
	return &PostEventRepository{
		Log:    zap,
		Writer: writer,
	}
}

func (repository *PostEventRepository) Publish(ctx context.Context, event model.PostEvent) error {
	payload, err := sonic.Marshal(event)
	if err != nil {
		return err
	}

	err = repository.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.PostId.String()),
		Value: payload,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return err
	}

	repository.Log.Debug("published post event", zap.String("type", event.Type), zap.String("post_id", event.PostId.String()))

	return nil
}

// NoopPostEventRepository drops events; used when no broker is configured.
type NoopPostEventRepository struct{}

func (NoopPostEventRepository) Publish(ctx context.Context, event model.PostEvent) error {
	return nil
}
