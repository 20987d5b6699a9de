package http

import (
	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-booking-wizard/internal/usecase"
)

// ToViewResponse converts a wizard view to its JSON form.
func ToViewResponse(v usecase.View) *ViewResponse {
	resp := &ViewResponse{
		SessionID:      v.SessionID,
		Step:           v.Step.String(),
		Progress:       v.Progress,
		NoFlights:      v.NoFlights,
		PassengerSlots: v.PassengerSlots,
	}

	if v.Query != nil {
		resp.Query = toQueryDTO(*v.Query)
	}
	if len(v.Results) > 0 {
		resp.Results = ToFlightDTOs(v.Results)
	}
	if v.Summary != nil {
		resp.Summary = toSummaryDTO(v.Summary)
	}
	if v.Confirmation != nil {
		resp.Confirmation = &ConfirmationDTO{
			Reference:        v.Confirmation.Reference,
			ConfirmedAt:      v.Confirmation.ConfirmedAt,
			ConfirmedAtLocal: timeutil.FormatIn(v.Confirmation.ConfirmedAt, timeutil.PHT),
			Total:            toPriceDTO(v.Confirmation.Total),
		}
	}

	return resp
}

// ToFlightDTOs converts flights to cards, never returning nil.
func ToFlightDTOs(flights []domain.Flight) []FlightDTO {
	out := make([]FlightDTO, 0, len(flights))
	for _, f := range flights {
		out = append(out, toFlightDTO(f))
	}
	return out
}

func toFlightDTO(f domain.Flight) FlightDTO {
	return FlightDTO{
		FlightNumber:   f.FlightNumber,
		Origin:         f.Origin,
		Destination:    f.Destination,
		Date:           f.Date.String(),
		DepartureTime:  f.DepartureTime.String(),
		Price:          toPriceDTO(f.Price),
		FareClass:      string(f.FareClass),
		AvailableSeats: f.AvailableSeats,
		Duration:       f.Duration,
		Terminal:       f.Terminal,
	}
}

func toPriceDTO(p domain.PriceInfo) PriceDTO {
	return PriceDTO{
		Amount:    p.Amount,
		Currency:  p.Currency,
		Formatted: p.Formatted(),
	}
}

func toQueryDTO(q domain.BookingQuery) *QueryDTO {
	dto := &QueryDTO{
		Origin:         q.Origin,
		Destination:    q.Destination,
		TripType:       string(q.TripType),
		DepartureDate:  q.DepartureDate.String(),
		PassengerCount: q.PassengerCount,
	}
	if !q.ReturnDate.IsZero() {
		dto.ReturnDate = q.ReturnDate.String()
	}
	return dto
}

func toSummaryDTO(s *usecase.SummaryView) *SummaryDTO {
	passengers := make([]PassengerDTO, 0, len(s.Passengers))
	for _, p := range s.Passengers {
		passengers = append(passengers, PassengerDTO{FullName: p.FullName, Age: p.Age, Email: p.Email})
	}

	return &SummaryDTO{
		Flight:         toFlightDTO(s.Flight),
		Passengers:     passengers,
		UnitPrice:      toPriceDTO(s.UnitPrice),
		PassengerCount: s.PassengerCount,
		Total:          toPriceDTO(s.Total),
		PriceLine:      s.PriceLine,
	}
}
