// Package rabbitmq publishes booking events to a durable RabbitMQ queue.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/retry"
)

// DefaultQueue receives confirmed bookings.
const DefaultQueue = "booking.confirmed"

// Config holds the RabbitMQ settings.
type Config struct {
	URL   string
	Queue string

	// ConnectRetry controls the initial dial; zero uses retry.ConnectConfig
	ConnectRetry retry.Config
}

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// opener dials the broker and opens a channel on the new connection.
type opener func() (channel, io.Closer, error)

// Publisher implements domain.EventPublisher over one long-lived connection.
// A failed publish drops the connection; the next publish redials.
type Publisher struct {
	queue string
	open  opener

	mu   sync.Mutex
	ch   channel
	conn io.Closer
}

// NewPublisher dials url, retrying per cfg.ConnectRetry, and declares the queue.
func NewPublisher(ctx context.Context, cfg Config) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq: url is required")
	}

	p := newPublisher(cfg.Queue, dialer(cfg.URL))

	connectRetry := cfg.ConnectRetry
	if connectRetry.MaxAttempts == 0 {
		connectRetry = retry.ConnectConfig
	}

	err := retry.Do(ctx, func() error {
		p.mu.Lock()
		defer p.mu.Unlock()
		_, err := p.channelLocked()
		return err
	}, connectRetry)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: connect: %w", err)
	}
	return p, nil
}

func newPublisher(queue string, open opener) *Publisher {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Publisher{queue: queue, open: open}
}

func dialer(url string) opener {
	return func() (channel, io.Closer, error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, nil, err
		}
		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return ch, conn, nil
	}
}

// Name implements domain.EventPublisher.
func (p *Publisher) Name() string {
	return "rabbitmq"
}

// PublishBookingConfirmed sends the event as a persistent JSON message
// through the default exchange, routed by queue name.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return retry.NewPermanent(fmt.Errorf("rabbitmq: encode event: %w", err))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return fmt.Errorf("rabbitmq: connect: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		Timestamp:     event.ConfirmedAt.UTC(),
		MessageId:     event.Reference,
		CorrelationId: event.SessionID,
		Type:          DefaultQueue,
		Body:          body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.resetLocked()
		return fmt.Errorf("rabbitmq: publish to %s: %w", p.queue, err)
	}
	return nil
}

// Close closes the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	p.ch, p.conn = nil, nil
	return errors.Join(errs...)
}

// channelLocked returns the open channel, dialing and declaring the queue if needed.
func (p *Publisher) channelLocked() (channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}

	ch, conn, err := p.open()
	if err != nil {
		return nil, err
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	p.ch, p.conn = ch, conn
	return ch, nil
}

func (p *Publisher) resetLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

var _ domain.EventPublisher = (*Publisher)(nil)
