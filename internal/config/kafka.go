package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NewKafkaWriter returns nil when KAFKA_BROKERS is empty.
func NewKafkaWriter(config *koanf.Koanf, log *zap.Logger) *kafka.Writer {
	brokers := strings.TrimSpace(config.String("KAFKA_BROKERS"))
	if brokers == "" {
		log.Info("KAFKA_BROKERS not set, post events disabled")
		return nil
	}

	topic := config.String("KAFKA_POST_TOPIC")
	if topic == "" {
		topic = "post-events"
	}

	addrs := strings.Split(brokers, ",")
	for i := range addrs {
		addrs[i] = strings.TrimSpace(addrs[i])
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}

	log.Info("kafka writer configured", zap.Strings("brokers", addrs), zap.String("topic", topic))

	return writer
}
