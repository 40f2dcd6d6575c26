// Package events publishes and consumes dog lifecycle events over Kafka.
package events

import (
	"context"
	"encoding/json"

	"github.com/gartstein/dogs/internal/dogs/models"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

const queueSize = 1000

type EventType string

const (
	DogCreated EventType = "dog_created"
	DogUpdated EventType = "dog_updated"
	DogDeleted EventType = "dog_deleted"
)

// Event is the message body written to the dog events topic.
type Event struct {
	Type EventType   `json:"type"`
	Dog  *models.Dog `json:"dog"`
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer queues events and writes them to Kafka from a single background loop.
// Produce never blocks: when the queue is full the event is dropped.
type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
	done      chan struct{}
}

// NewProducer makes sure the topic exists and starts the delivery loop.
func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err), zap.String("topic", topic))
	}

	p := newProducer(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		Topic:                  topic,
		AllowAutoTopicCreation: true,
	}, logger, queueSize)

	go p.eventLoop()
	return p, nil
}

func newProducer(writer KafkaWriter, logger *zap.Logger, size int) *Producer {
	return &Producer{
		writer:    writer,
		events:    make(chan Event, size),
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (p *Producer) Produce(eventType EventType, dog *models.Dog) {
	select {
	case p.events <- Event{Type: eventType, Dog: dog}:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.String("dog_id", dog.ID.String()),
		)
	}
}

func (p *Producer) eventLoop() {
	defer close(p.done)
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("dog_id", event.Dog.ID.String()),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Dog.ID.String()),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("dog_id", event.Dog.ID.String()),
		)
	}
}

// Close stops the delivery loop and closes the writer. Queued events that
// were not yet written are discarded.
func (p *Producer) Close() {
	close(p.closeChan)
	<-p.done
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}

// NopProducer discards every event. It is used when no brokers are configured.
type NopProducer struct{}

func (NopProducer) Produce(EventType, *models.Dog) {}

func (NopProducer) Close() {}
