package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/timeutil"
)

// BookingForm holds the raw Booking step inputs as typed by the user.
type BookingForm struct {
	Origin        string
	Destination   string
	TripType      string
	DepartureDate string
	ReturnDate    string
	Passengers    string
}

// PassengerForm holds one raw passenger slot.
type PassengerForm struct {
	Name  string
	Age   string
	Email string
}

// Wizard applies step transitions to sessions.
//
// Every transition takes a Session and returns the next one. On error the
// returned Session is the input, untouched, so callers can keep using it.
type Wizard struct {
	search       *SearchEngine
	clock        timeutil.Clock
	newReference func() string
}

// WizardOption customizes a Wizard.
type WizardOption func(*Wizard)

// WithReferenceGenerator overrides the booking reference generator.
func WithReferenceGenerator(fn func() string) WizardOption {
	return func(w *Wizard) {
		w.newReference = fn
	}
}

// NewWizard creates a Wizard searching with search and stamping times from clock.
// A nil clock uses the system time.
func NewWizard(search *SearchEngine, clock timeutil.Clock, opts ...WizardOption) *Wizard {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	w := &Wizard{
		search:       search,
		clock:        clock,
		newReference: NewBookingReference,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewBookingReference returns a reference like "BK-1F0C9A2E".
func NewBookingReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK-" + strings.ToUpper(id[:8])
}

// NewSession creates a session at the Home step.
func (w *Wizard) NewSession(id string) domain.Session {
	return domain.NewSession(id, w.clock.Now())
}

// StartBooking moves Home -> Booking.
func (w *Wizard) StartBooking(s domain.Session) (domain.Session, error) {
	if s.Step != domain.StepHome {
		return s, domain.NewInvalidTransitionError("start booking", s.Step)
	}

	next := s.Clone()
	next.Step = domain.StepBooking
	next.UpdatedAt = w.clock.Now()
	return next, nil
}

// SubmitQuery validates the booking form, runs the search and moves
// Booking -> FlightResults. An empty result set still advances.
func (w *Wizard) SubmitQuery(s domain.Session, form BookingForm) (domain.Session, error) {
	if s.Step != domain.StepBooking {
		return s, domain.NewInvalidTransitionError("search flights", s.Step)
	}

	query, err := ParseBookingForm(form)
	if err != nil {
		return s, err
	}

	next := s.Clone()
	next.Step = domain.StepFlightResults
	next.Query = query
	next.Results = w.search.Search(query)
	next.SelectedFlight = nil
	next.Passengers = nil
	next.UpdatedAt = w.clock.Now()
	return next, nil
}

// SelectFlight picks one of the shown results and moves
// FlightResults -> PassengerInfo.
func (w *Wizard) SelectFlight(s domain.Session, flightNumber string) (domain.Session, error) {
	if s.Step != domain.StepFlightResults {
		return s, domain.NewInvalidTransitionError("select a flight", s.Step)
	}
	if len(s.Results) == 0 {
		return s, domain.ErrNoResults
	}

	flightNumber = strings.TrimSpace(flightNumber)
	idx := -1
	for i := range s.Results {
		if s.Results[i].FlightNumber == flightNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, fmt.Errorf("%w: %q", domain.ErrFlightNotInResults, flightNumber)
	}

	next := s.Clone()
	selected := next.Results[idx]
	next.SelectedFlight = &selected
	next.Passengers = nil
	next.Step = domain.StepPassengerInfo
	next.UpdatedAt = w.clock.Now()
	return next, nil
}

// BackToBooking moves FlightResults -> Booking. Results are dropped and
// the query is kept for prefill.
func (w *Wizard) BackToBooking(s domain.Session) (domain.Session, error) {
	if s.Step != domain.StepFlightResults {
		return s, domain.NewInvalidTransitionError("go back to booking", s.Step)
	}

	next := s.Clone()
	next.Step = domain.StepBooking
	next.Results = nil
	next.SelectedFlight = nil
	next.UpdatedAt = w.clock.Now()
	return next, nil
}

// SubmitPassengers validates every passenger slot and moves
// PassengerInfo -> Summary. Any invalid slot rejects the whole form with
// a single message and nothing is kept.
func (w *Wizard) SubmitPassengers(s domain.Session, forms []PassengerForm) (domain.Session, error) {
	if s.Step != domain.StepPassengerInfo {
		return s, domain.NewInvalidTransitionError("submit passengers", s.Step)
	}

	passengers, ok := parsePassengers(forms, s.Query.PassengerCount)
	if !ok {
		return s, domain.NewValidationError("passengers", domain.PassengerValidationMessage)
	}

	next := s.Clone()
	next.Passengers = passengers
	next.Step = domain.StepSummary
	next.UpdatedAt = w.clock.Now()
	return next, nil
}

// Confirm books the selected flight and moves Summary -> Success.
func (w *Wizard) Confirm(s domain.Session) (domain.Session, error) {
	if s.Step != domain.StepSummary {
		return s, domain.NewInvalidTransitionError("confirm booking", s.Step)
	}

	now := w.clock.Now()
	next := s.Clone()
	next.Confirmation = &domain.Confirmation{
		Reference:   w.newReference(),
		ConfirmedAt: now,
		Total:       s.Total(),
	}
	next.Step = domain.StepSuccess
	next.UpdatedAt = now
	return next, nil
}

// ReturnHome moves Success -> Home and clears everything but the session ID.
func (w *Wizard) ReturnHome(s domain.Session) (domain.Session, error) {
	if s.Step != domain.StepSuccess {
		return s, domain.NewInvalidTransitionError("return home", s.Step)
	}
	return w.NewSession(s.ID), nil
}

// ParseBookingForm validates raw booking inputs into a BookingQuery.
// All field problems are reported together in a *domain.ValidationErrors.
func ParseBookingForm(form BookingForm) (domain.BookingQuery, error) {
	var verrs domain.ValidationErrors
	q := domain.BookingQuery{
		Origin:      strings.TrimSpace(form.Origin),
		Destination: strings.TrimSpace(form.Destination),
	}

	if q.Origin == "" {
		verrs.Add("origin", "origin is required")
	}
	if q.Destination == "" {
		verrs.Add("destination", "destination is required")
	}

	tripType, ok := domain.ParseTripType(form.TripType)
	if !ok {
		verrs.Add("tripType", "trip type must be oneway or roundtrip")
	}
	q.TripType = tripType

	departure, departureOK := parseFormDate(&verrs, "departureDate", "departure date", form.DepartureDate)
	q.DepartureDate = departure

	count, err := strconv.Atoi(strings.TrimSpace(form.Passengers))
	if err != nil || count < domain.MinPassengers || count > domain.MaxPassengers {
		verrs.Add("passengers", fmt.Sprintf("passengers must be a number between %d and %d", domain.MinPassengers, domain.MaxPassengers))
	}
	q.PassengerCount = count

	if tripType == domain.TripRoundTrip {
		ret, retOK := parseFormDate(&verrs, "returnDate", "return date", form.ReturnDate)
		if retOK && departureOK && !ret.After(departure) {
			verrs.Add("returnDate", "return date must be after departure date")
		}
		q.ReturnDate = ret
	}

	if verrs.HasErrors() {
		return domain.BookingQuery{}, &verrs
	}
	return q, nil
}

// parseFormDate parses a required YYYY-MM-DD field, recording any problem in verrs.
func parseFormDate(verrs *domain.ValidationErrors, field, label, raw string) (domain.Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		verrs.Add(field, label+" is required")
		return domain.Date{}, false
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		verrs.Add(field, label+" must be in YYYY-MM-DD format")
		return domain.Date{}, false
	}
	return d, true
}

// parsePassengers converts exactly want slots into passengers.
func parsePassengers(forms []PassengerForm, want int) ([]domain.Passenger, bool) {
	if want < domain.MinPassengers || len(forms) != want {
		return nil, false
	}

	passengers := make([]domain.Passenger, 0, want)
	for _, f := range forms {
		age, err := strconv.Atoi(strings.TrimSpace(f.Age))
		if err != nil {
			return nil, false
		}
		p := domain.Passenger{
			FullName: strings.TrimSpace(f.Name),
			Age:      age,
			Email:    strings.TrimSpace(f.Email),
		}
		if !p.IsValid() {
			return nil, false
		}
		passengers = append(passengers, p)
	}
	return passengers, true
}
