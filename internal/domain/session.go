package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

//go:generate mockgen -source=session.go -destination=mock_session.go -package=domain

// Step is a wizard state.
type Step int

// Wizard steps in traversal order.
const (
	StepHome Step = iota
	StepBooking
	StepFlightResults
	StepPassengerInfo
	StepSummary
	StepSuccess
)

var stepNames = map[Step]string{
	StepHome:          "home",
	StepBooking:       "booking",
	StepFlightResults: "flights",
	StepPassengerInfo: "passenger",
	StepSummary:       "summary",
	StepSuccess:       "success",
}

// String returns the wire name of the step.
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStep converts a wire name back to a Step.
func ParseStep(name string) (Step, bool) {
	for step, n := range stepNames {
		if n == name {
			return step, true
		}
	}
	return StepHome, false
}

// MarshalJSON encodes the step by name.
func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a step name.
func (s *Step) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	step, ok := ParseStep(name)
	if !ok {
		return fmt.Errorf("unknown step %q", name)
	}
	*s = step
	return nil
}

// ProgressIndex returns the highlighted position in the four-step
// progress bar, or -1 when no step is highlighted (Home, Success).
func (s Step) ProgressIndex() int {
	switch s {
	case StepBooking:
		return 0
	case StepFlightResults:
		return 1
	case StepPassengerInfo:
		return 2
	case StepSummary:
		return 3
	default:
		return -1
	}
}

// Session is the booking context accumulated over one wizard traversal.
// Sessions are values: wizard transitions return a new Session and never
// modify the one they were given.
type Session struct {
	ID   string `json:"id"`
	Step Step   `json:"step"`

	// Query is the last accepted search; kept for prefill on back-navigation
	Query BookingQuery `json:"query"`

	// Results is nil until a search has run; an empty slice means the
	// search ran and matched nothing
	Results []Flight `json:"results"`

	// SelectedFlight is the flight picked from Results
	SelectedFlight *Flight `json:"selectedFlight,omitempty"`

	// Passengers is filled at the PassengerInfo step
	Passengers []Passenger `json:"passengers,omitempty"`

	// Confirmation is set once the booking is confirmed
	Confirmation *Confirmation `json:"confirmation,omitempty"`

	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession creates an empty session at the Home step.
func NewSession(id string, now time.Time) Session {
	return Session{
		ID:        id,
		Step:      StepHome,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Searched reports whether a search has run since the last reset.
func (s Session) Searched() bool {
	return s.Results != nil
}

// Total returns selected flight price x passenger count.
// Returns a zero PriceInfo when no flight is selected.
func (s Session) Total() PriceInfo {
	if s.SelectedFlight == nil {
		return PriceInfo{}
	}
	return s.SelectedFlight.Price.Times(s.Query.PassengerCount)
}

// Clone returns a deep copy so callers can modify it freely.
func (s Session) Clone() Session {
	out := s
	if s.Results != nil {
		out.Results = make([]Flight, len(s.Results))
		copy(out.Results, s.Results)
	}
	if s.SelectedFlight != nil {
		f := *s.SelectedFlight
		out.SelectedFlight = &f
	}
	if s.Passengers != nil {
		out.Passengers = make([]Passenger, len(s.Passengers))
		copy(out.Passengers, s.Passengers)
	}
	if s.Confirmation != nil {
		c := *s.Confirmation
		out.Confirmation = &c
	}
	return out
}

// SessionStore keeps in-flight wizard sessions keyed by ID.
type SessionStore interface {
	// Create stores a new session. It fails if the ID already exists.
	Create(ctx context.Context, s Session) error

	// Get returns the session or ErrSessionNotFound.
	Get(ctx context.Context, id string) (Session, error)

	// Save replaces an existing session or returns ErrSessionNotFound.
	Save(ctx context.Context, s Session) error

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}

// BookingConfirmedEvent is emitted when a wizard reaches the Success step.
type BookingConfirmedEvent struct {
	SessionID      string      `json:"sessionId"`
	Reference      string      `json:"reference"`
	FlightNumber   string      `json:"flightNumber"`
	Origin         string      `json:"origin"`
	Destination    string      `json:"destination"`
	Date           Date        `json:"date"`
	PassengerCount int         `json:"passengerCount"`
	Passengers     []Passenger `json:"passengers"`
	Total          PriceInfo   `json:"total"`
	ConfirmedAt    time.Time   `json:"confirmedAt"`
}

// EventPublisher delivers booking events to downstream consumers.
type EventPublisher interface {
	// Name identifies the publisher for logging.
	Name() string

	// PublishBookingConfirmed sends the event.
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error

	// Close releases any connections.
	Close() error
}

// NopPublisher discards all events.
type NopPublisher struct{}

// Name implements EventPublisher.
func (NopPublisher) Name() string { return "none" }

// PublishBookingConfirmed implements EventPublisher.
func (NopPublisher) PublishBookingConfirmed(context.Context, BookingConfirmedEvent) error {
	return nil
}

// Close implements EventPublisher.
func (NopPublisher) Close() error { return nil }

var _ EventPublisher = NopPublisher{}
