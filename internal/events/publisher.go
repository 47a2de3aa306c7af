package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yourorg/shorted-service/internal/model"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher emits sync lifecycle events to Kafka
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// syncCompletedEvent is the payload published after each sync run. The
// full per-stock results stay in the RPC response; the event carries the
// summary only.
type syncCompletedEvent struct {
	Event              string    `json:"event"`
	TotalRequested     int32     `json:"total_requested"`
	SuccessfullySynced int32     `json:"successfully_synced"`
	Failed             int32     `json:"failed"`
	DurationSeconds    float64   `json:"duration_seconds"`
	CompletedAt        time.Time `json:"completed_at"`
}

// NewPublisher creates a Kafka publisher for sync events
func NewPublisher(brokers []string, topic, clientID string, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		Transport: &kafka.Transport{
			ClientID: clientID,
		},
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// PublishSyncCompleted publishes a summary of a finished sync run
func (p *Publisher) PublishSyncCompleted(ctx context.Context, report *model.SyncKeyMetricsResponse) error {
	event := syncCompletedEvent{
		Event:              "metrics.sync.completed",
		TotalRequested:     report.TotalRequested,
		SuccessfullySynced: report.SuccessfullySynced,
		Failed:             report.Failed,
		DurationSeconds:    report.DurationSeconds,
		CompletedAt:        time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal sync event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Event),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish sync event",
			zap.Error(err),
			zap.String("topic", p.writer.Topic))
		return err
	}

	p.logger.Debug("Sync event published", zap.String("topic", p.writer.Topic))
	return nil
}

// Close closes the underlying Kafka writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
