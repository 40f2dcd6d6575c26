package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Handler processes one decoded event. A returned error leaves the message
// uncommitted.
type Handler func(context.Context, Event) error

type Consumer struct {
	reader  KafkaReader
	logger  *zap.Logger
	handler Handler
	// retry paces fetches after a failure; reset on the next success.
	retry backoff.BackOff
}

// NewConsumer reads the dog events topic as part of a consumer group.
// Until a handler is registered every event is logged at info level.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return newConsumer(kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
		Dialer:  kafka.DefaultDialer,
	}), logger)
}

func newConsumer(reader KafkaReader, logger *zap.Logger) *Consumer {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = 100 * time.Millisecond
	retry.MaxInterval = 5 * time.Second
	retry.MaxElapsedTime = 0

	c := &Consumer{
		reader: reader,
		logger: logger.Named("kafka_consumer"),
		retry:  retry,
	}
	c.handler = c.logEvent
	return c
}

func (c *Consumer) logEvent(_ context.Context, event Event) error {
	fields := []zap.Field{zap.String("event_type", string(event.Type))}
	if event.Dog != nil {
		fields = append(fields,
			zap.String("dog_id", event.Dog.ID.String()),
			zap.String("name", event.Dog.Name),
			zap.Bool("deleted", event.Dog.Deleted),
		)
	}
	c.logger.Info("Dog event", fields...)
	return nil
}

// Start runs the consume loop in the background until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Consumer) run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			wait := c.retry.NextBackOff()
			c.logger.Error("Failed to fetch message", zap.Error(err), zap.Duration("backoff", wait))
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}
		c.retry.Reset()

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("Failed to parse event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := c.handler(ctx, event); err != nil {
			c.logger.Error("Failed to handle event",
				zap.Error(err),
				zap.String("event_type", string(event.Type)),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("Failed to commit message",
				zap.Error(err),
				zap.String("event_type", string(event.Type)),
			)
		}
	}
}

func (c *Consumer) RegisterHandler(fn Handler) {
	c.handler = fn
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka reader", zap.Error(err))
	}
}
