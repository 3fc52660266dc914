package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// messageWriter is the slice of kafka.Writer the sink needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes failure notifications to a topic for a UI consumer to
// render. Publish failures are logged and swallowed: the engine's contract is
// fire and forget.
type KafkaSink struct {
	writer messageWriter
	log    *logrus.Logger
}

func NewKafkaSink(brokers []string, topic string, log *logrus.Logger) *KafkaSink {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaSink{writer: writer, log: log}
}

type notificationEvent struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (s *KafkaSink) Notify(ctx context.Context, c Category) {
	event := notificationEvent{
		ID:         uuid.New().String(),
		Category:   c.Name,
		Message:    c.Message,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.WithError(err).Error("failed to marshal notification")
		return
	}

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(c.Name),
		Value: payload,
	})
	if err != nil {
		s.log.WithError(err).WithField("category", c.Name).Warn("failed to publish notification")
	}
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
