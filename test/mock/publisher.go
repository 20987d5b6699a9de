// Package mock provides test doubles for the booking wizard.
// These mocks are meant for integration tests that need configurable
// behavior (delays, errors) and a record of what was sent.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
)

// Publisher is a recording implementation of domain.EventPublisher.
type Publisher struct {
	name      string
	err       error
	failFirst int
	delay     time.Duration

	mu        sync.Mutex
	events    []domain.BookingConfirmedEvent
	callCount int
	closed    bool
}

// NewPublisher creates a mock publisher with the given name.
// It is configured using the builder methods.
func NewPublisher(name string) *Publisher {
	return &Publisher{name: name}
}

// WithError makes every publish fail with err.
func (p *Publisher) WithError(err error) *Publisher {
	p.err = err
	return p
}

// WithFailFirst makes the first n publishes fail with err before succeeding.
func (p *Publisher) WithFailFirst(n int, err error) *Publisher {
	p.failFirst = n
	p.err = err
	return p
}

// WithDelay waits d before each publish.
func (p *Publisher) WithDelay(d time.Duration) *Publisher {
	p.delay = d
	return p
}

// Name implements domain.EventPublisher.
func (p *Publisher) Name() string {
	return p.name
}

// PublishBookingConfirmed implements domain.EventPublisher.
// Successful events are recorded in call order.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error {
	p.mu.Lock()
	p.callCount++
	call := p.callCount
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay):
		}
	}

	if p.err != nil && (p.failFirst == 0 || call <= p.failFirst) {
		return p.err
	}

	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
	return nil
}

// Close implements domain.EventPublisher.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Events returns a copy of the recorded events.
func (p *Publisher) Events() []domain.BookingConfirmedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.BookingConfirmedEvent, len(p.events))
	copy(out, p.events)
	return out
}

// CallCount returns the number of publish attempts, failed ones included.
func (p *Publisher) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Closed reports whether Close was called.
func (p *Publisher) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Reset clears recorded events and the call count.
func (p *Publisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.callCount = 0
}

var _ domain.EventPublisher = (*Publisher)(nil)

// SampleFlights returns count flights from origin to destination on date,
// numbered from FL 101 with prices rising by 250.
func SampleFlights(origin, destination string, date domain.Date, count int) []domain.Flight {
	flights := make([]domain.Flight, count)
	for i := 0; i < count; i++ {
		flights[i] = domain.Flight{
			FlightNumber:   fmt.Sprintf("FL %d", 101+i),
			Origin:         origin,
			Destination:    destination,
			Date:           date,
			DepartureTime:  domain.TimeOfDay{Hour: 6 + 2*i, Minute: 30},
			Price:          domain.NewPrice(float64(2500 + 250*i)),
			FareClass:      domain.FarePromo,
			AvailableSeats: 20 + i,
			Duration:       "1h 20m",
			Terminal:       "T3",
		}
	}
	return flights
}
