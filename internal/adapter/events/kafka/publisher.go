// Package kafka publishes booking events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/retry"
)

// EventTypeBookingConfirmed is sent in the event-type message header.
const EventTypeBookingConfirmed = "booking.confirmed"

// Config holds the Kafka producer settings.
type Config struct {
	Brokers []string
	Topic   string

	// WriteTimeout bounds a single write; zero uses the kafka-go default
	WriteTimeout time.Duration
}

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements domain.EventPublisher on a kafka-go Writer.
type Publisher struct {
	writer messageWriter
	topic  string
}

// NewPublisher creates a synchronous producer for cfg.Topic.
// Connections are opened lazily on the first write.
func NewPublisher(cfg Config) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}

	return newPublisher(writer, cfg.Topic), nil
}

func newPublisher(w messageWriter, topic string) *Publisher {
	return &Publisher{writer: w, topic: topic}
}

// Name implements domain.EventPublisher.
func (p *Publisher) Name() string {
	return "kafka"
}

// PublishBookingConfirmed writes the event keyed by booking reference, so
// every event for one booking lands on the same partition.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return retry.NewPermanent(fmt.Errorf("kafka: encode event: %w", err))
	}

	msg := kafka.Message{
		Key:   []byte(event.Reference),
		Value: payload,
		Time:  event.ConfirmedAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(EventTypeBookingConfirmed)},
			{Key: "session-id", Value: []byte(event.SessionID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes pending writes and closes connections.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ domain.EventPublisher = (*Publisher)(nil)
