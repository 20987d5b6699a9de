package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/logger"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/retry"
)

// BookingService drives wizard sessions kept in a SessionStore.
type BookingService interface {
	// Start creates a new session at the Home step.
	Start(ctx context.Context) (View, error)

	// Get returns the current view of a session.
	Get(ctx context.Context, id string) (View, error)

	// StartBooking moves Home -> Booking.
	StartBooking(ctx context.Context, id string) (View, error)

	// SubmitQuery validates the booking form and runs the search.
	SubmitQuery(ctx context.Context, id string, form BookingForm) (View, error)

	// SelectFlight picks one of the shown results.
	SelectFlight(ctx context.Context, id string, flightNumber string) (View, error)

	// BackToBooking returns to the booking form with the query prefilled.
	BackToBooking(ctx context.Context, id string) (View, error)

	// SubmitPassengers records passenger details.
	SubmitPassengers(ctx context.Context, id string, forms []PassengerForm) (View, error)

	// Confirm books the flight and publishes a BookingConfirmedEvent.
	Confirm(ctx context.Context, id string) (View, error)

	// ReturnHome clears the session for a fresh booking.
	ReturnHome(ctx context.Context, id string) (View, error)

	// Abandon drops the session from any step. Its ID becomes unknown.
	Abandon(ctx context.Context, id string) error

	// Session returns the raw session, for renderers that need more than the view.
	Session(ctx context.Context, id string) (domain.Session, error)

	// FindFlights searches the catalog directly, outside any session.
	FindFlights(ctx context.Context, origin, destination string, date domain.Date) []domain.Flight
}

// ServiceConfig contains optional dependencies for the booking service.
type ServiceConfig struct {
	// Publisher receives confirmed bookings; defaults to domain.NopPublisher
	Publisher domain.EventPublisher

	// PublishRetry controls retries of failed publishes
	PublishRetry retry.Config

	// Logger defaults to a no-op logger
	Logger *logger.Logger

	// NewID generates session IDs; defaults to uuid.NewString
	NewID func() string
}

type bookingService struct {
	store     domain.SessionStore
	wizard    *Wizard
	publisher domain.EventPublisher
	retry     retry.Config
	log       *logger.Logger
	newID     func() string
	locks     *keyedMutex
}

// NewBookingService creates a BookingService. A nil config uses defaults.
func NewBookingService(store domain.SessionStore, wizard *Wizard, config *ServiceConfig) BookingService {
	svc := &bookingService{
		store:     store,
		wizard:    wizard,
		publisher: domain.NopPublisher{},
		retry:     retry.DefaultConfig.WithRetryIf(retry.SkipPermanent),
		log:       logger.Nop(),
		newID:     uuid.NewString,
		locks:     newKeyedMutex(),
	}

	if config != nil {
		if config.Publisher != nil {
			svc.publisher = config.Publisher
		}
		if config.PublishRetry.MaxAttempts > 0 {
			svc.retry = config.PublishRetry
		}
		if config.Logger != nil {
			svc.log = config.Logger
		}
		if config.NewID != nil {
			svc.newID = config.NewID
		}
	}

	return svc
}

func (s *bookingService) Start(ctx context.Context) (View, error) {
	session := s.wizard.NewSession(s.newID())
	if err := s.store.Create(ctx, session); err != nil {
		return View{}, fmt.Errorf("create session: %w", err)
	}

	s.log.WithSession(session.ID).Debug().Msg("Session started")
	return BuildView(session), nil
}

func (s *bookingService) Get(ctx context.Context, id string) (View, error) {
	session, err := s.Session(ctx, id)
	if err != nil {
		return View{}, err
	}
	return BuildView(session), nil
}

func (s *bookingService) Session(ctx context.Context, id string) (domain.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session %s: %w", id, err)
	}
	return session, nil
}

func (s *bookingService) StartBooking(ctx context.Context, id string) (View, error) {
	return viewOf(s.apply(ctx, id, s.wizard.StartBooking))
}

func (s *bookingService) SubmitQuery(ctx context.Context, id string, form BookingForm) (View, error) {
	return viewOf(s.apply(ctx, id, func(session domain.Session) (domain.Session, error) {
		return s.wizard.SubmitQuery(session, form)
	}))
}

func (s *bookingService) SelectFlight(ctx context.Context, id string, flightNumber string) (View, error) {
	return viewOf(s.apply(ctx, id, func(session domain.Session) (domain.Session, error) {
		return s.wizard.SelectFlight(session, flightNumber)
	}))
}

func (s *bookingService) BackToBooking(ctx context.Context, id string) (View, error) {
	return viewOf(s.apply(ctx, id, s.wizard.BackToBooking))
}

func (s *bookingService) SubmitPassengers(ctx context.Context, id string, forms []PassengerForm) (View, error) {
	return viewOf(s.apply(ctx, id, func(session domain.Session) (domain.Session, error) {
		return s.wizard.SubmitPassengers(session, forms)
	}))
}

func (s *bookingService) Confirm(ctx context.Context, id string) (View, error) {
	session, err := s.apply(ctx, id, s.wizard.Confirm)
	if err != nil {
		return viewOf(session, err)
	}

	// Publish failures are logged only; the booking stands.
	s.publishConfirmed(context.WithoutCancel(ctx), session)

	return BuildView(session), nil
}

func (s *bookingService) ReturnHome(ctx context.Context, id string) (View, error) {
	return viewOf(s.apply(ctx, id, s.wizard.ReturnHome))
}

func (s *bookingService) Abandon(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := s.Session(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.log.WithSession(id).Error().Err(err).Msg("Failed to delete session")
		return fmt.Errorf("delete session %s: %w", id, err)
	}

	s.log.WithSession(id).Debug().
		Str("step", session.Step.String()).
		Msg("Session abandoned")
	return nil
}

func (s *bookingService) FindFlights(_ context.Context, origin, destination string, date domain.Date) []domain.Flight {
	return s.wizard.search.Find(origin, destination, date)
}

// apply loads the session, runs the transition and saves the result.
// Transitions on the same session ID are serialized.
//
// It returns the new session on success, the unchanged session when the
// transition or save fails, and a zero session when loading fails.
func (s *bookingService) apply(ctx context.Context, id string, transition func(domain.Session) (domain.Session, error)) (domain.Session, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := s.Session(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	next, err := transition(session)
	if err != nil {
		s.log.WithSession(id).Debug().
			Err(err).
			Str("step", session.Step.String()).
			Msg("Transition rejected")
		return session, err
	}

	if err := s.store.Save(ctx, next); err != nil {
		s.log.WithSession(id).Error().Err(err).Msg("Failed to save session")
		return session, fmt.Errorf("save session %s: %w", id, err)
	}

	s.log.WithSession(id).Debug().
		Str("from", session.Step.String()).
		Str("to", next.Step.String()).
		Msg("Transition applied")

	return next, nil
}

// viewOf renders session unless loading it failed.
func viewOf(session domain.Session, err error) (View, error) {
	if session.ID == "" {
		return View{}, err
	}
	return BuildView(session), err
}

func (s *bookingService) publishConfirmed(ctx context.Context, session domain.Session) {
	event, ok := NewBookingConfirmedEvent(session)
	if !ok {
		return
	}

	log := s.log.WithSession(session.ID)
	err := retry.Do(ctx, func() error {
		return s.publisher.PublishBookingConfirmed(ctx, event)
	}, s.retry)
	if err != nil {
		log.Error().
			Err(err).
			Str("publisher", s.publisher.Name()).
			Str("reference", event.Reference).
			Msg("Failed to publish booking confirmation")
		return
	}

	log.Info().
		Str("publisher", s.publisher.Name()).
		Str("reference", event.Reference).
		Msg("Booking confirmed")
}

// NewBookingConfirmedEvent builds the event for a confirmed session.
// It returns false when the session has no confirmation or selected flight.
func NewBookingConfirmedEvent(session domain.Session) (domain.BookingConfirmedEvent, bool) {
	if session.Confirmation == nil || session.SelectedFlight == nil {
		return domain.BookingConfirmedEvent{}, false
	}

	f := session.SelectedFlight
	return domain.BookingConfirmedEvent{
		SessionID:      session.ID,
		Reference:      session.Confirmation.Reference,
		FlightNumber:   f.FlightNumber,
		Origin:         f.Origin,
		Destination:    f.Destination,
		Date:           f.Date,
		PassengerCount: session.Query.PassengerCount,
		Passengers:     session.Passengers,
		Total:          session.Confirmation.Total,
		ConfirmedAt:    session.Confirmation.ConfirmedAt,
	}, true
}

// keyedMutex hands out one mutex per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

// Lock blocks until key is free and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()

	return func() {
		m.Unlock()

		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
