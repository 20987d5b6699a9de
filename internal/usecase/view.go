package usecase

import (
	"fmt"
	"strconv"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
)

// View describes what the current step should render.
type View struct {
	SessionID string
	Step      domain.Step

	// Progress is the highlighted progress bar position, -1 for none
	Progress int

	// Query prefills the booking form; nil before the first accepted search
	Query *domain.BookingQuery

	// Results are the cards shown at the FlightResults step
	Results []domain.Flight

	// NoFlights is set when a search ran and matched nothing
	NoFlights bool

	// PassengerSlots is the number of passenger forms to show
	PassengerSlots int

	// Summary is set from the Summary step on
	Summary *SummaryView

	// Confirmation is set at the Success step
	Confirmation *domain.Confirmation
}

// SummaryView is the review shown before confirming.
type SummaryView struct {
	Flight         domain.Flight
	Passengers     []domain.Passenger
	UnitPrice      domain.PriceInfo
	PassengerCount int
	Total          domain.PriceInfo

	// PriceLine reads like "₱3000 x 2 passenger(s)"
	PriceLine string
}

// BuildView derives the render description for s.
func BuildView(s domain.Session) View {
	v := View{
		SessionID: s.ID,
		Step:      s.Step,
		Progress:  s.Step.ProgressIndex(),
	}

	if !s.Query.IsZero() {
		q := s.Query
		v.Query = &q
	}

	switch s.Step {
	case domain.StepFlightResults:
		v.Results = s.Results
		v.NoFlights = s.Searched() && len(s.Results) == 0
	case domain.StepPassengerInfo:
		v.PassengerSlots = s.Query.PassengerCount
	case domain.StepSummary, domain.StepSuccess:
		v.Summary = buildSummary(s)
		v.Confirmation = s.Confirmation
	}

	return v
}

func buildSummary(s domain.Session) *SummaryView {
	if s.SelectedFlight == nil {
		return nil
	}
	flight := *s.SelectedFlight
	return &SummaryView{
		Flight:         flight,
		Passengers:     s.Passengers,
		UnitPrice:      flight.Price,
		PassengerCount: s.Query.PassengerCount,
		Total:          s.Total(),
		PriceLine:      PriceLine(flight.Price, s.Query.PassengerCount),
	}
}

// PriceLine formats the unit price times passenger count line.
func PriceLine(unit domain.PriceInfo, count int) string {
	amount := strconv.FormatFloat(unit.Amount, 'f', -1, 64)
	return fmt.Sprintf("%s%s x %d passenger(s)", unit.Symbol(), amount, count)
}
