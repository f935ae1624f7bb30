package services

//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// eventPublisher sends account events. Publishing never fails the caller:
// errors are logged and dropped.
type eventPublisher struct {
	writer KafkaWriter
	now    func() time.Time
}

func newEventPublisher(writer KafkaWriter) eventPublisher {
	return eventPublisher{writer: writer, now: time.Now}
}

// publish sends an event keyed by user id so a user's events stay ordered.
func (p eventPublisher) publish(ctx context.Context, eventType models.EventType, userID uuid.UUID, payload map[string]any) {
	evt := models.UserEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	}

	if p.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", evt.EventID, "type", evt.Type)
		return
	}

	data, err := json.Marshal(evt)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_id", evt.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(userID.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", evt.EventID, "type", evt.Type, "error", err)
	} else {
		logger.Log.Infow("Event published to Kafka", "event_id", evt.EventID, "type", evt.Type, "user_id", userID)
	}
}

// CommitDeferrer registers fn to run after the transaction carried by ctx
// commits and reports whether ctx carried one.
type CommitDeferrer func(ctx context.Context, fn func()) bool

// PublishAfterCommit wraps w so that messages written inside a request
// transaction are sent only once it commits. Outside a transaction writes go
// straight to w.
func PublishAfterCommit(w KafkaWriter, deferrer CommitDeferrer) KafkaWriter {
	return &afterCommitWriter{KafkaWriter: w, deferrer: deferrer}
}

type afterCommitWriter struct {
	KafkaWriter
	deferrer CommitDeferrer
}

func (w *afterCommitWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	deferred := w.deferrer(ctx, func() {
		if err := w.KafkaWriter.WriteMessages(context.WithoutCancel(ctx), msgs...); err != nil {
			logger.Log.Errorw("Failed to publish event to Kafka after commit", "messages", len(msgs), "error", err)
		}
	})
	if deferred {
		return nil
	}
	return w.KafkaWriter.WriteMessages(ctx, msgs...)
}
