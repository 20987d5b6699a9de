// Package http provides the HTTP handler layer for the booking wizard API.
// It handles request parsing, response formatting, and error mapping.
package http

import (
	"strings"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/usecase"
)

// SearchRequest is the booking form as submitted by the client.
// All values are raw strings; the wizard parses and validates them.
type SearchRequest struct {
	// Origin is the departure city (e.g., "Manila")
	Origin string `json:"origin" example:"Manila"`

	// Destination is the arrival city (e.g., "Cebu")
	Destination string `json:"destination" example:"Cebu"`

	// TripType is oneway or roundtrip
	TripType string `json:"tripType" example:"oneway"`

	// DepartureDate is in YYYY-MM-DD format
	DepartureDate string `json:"departureDate" example:"2025-10-20"`

	// ReturnDate is in YYYY-MM-DD format; ignored for one-way trips
	ReturnDate string `json:"returnDate,omitempty" example:""`

	// Passengers is the number of travellers (1-9)
	Passengers string `json:"passengers" example:"1"`
}

// SelectRequest picks one flight from the shown results.
type SelectRequest struct {
	FlightNumber string `json:"flightNumber" example:"FL 101"`
}

// PassengerRequest is one passenger form.
type PassengerRequest struct {
	Name  string `json:"name" example:"Juan Dela Cruz"`
	Age   string `json:"age" example:"34"`
	Email string `json:"email" example:"juan@example.com"`
}

// PassengersRequest carries one form per passenger slot.
type PassengersRequest struct {
	Passengers []PassengerRequest `json:"passengers"`
}

// FlightsQuery is the query string of the direct catalog search.
type FlightsQuery struct {
	Origin      string `query:"origin"`
	Destination string `query:"destination"`
	Date        string `query:"date"`
}

// Validate checks the catalog search parameters.
func (q *FlightsQuery) Validate() (domain.Date, error) {
	errs := &domain.ValidationErrors{}

	if strings.TrimSpace(q.Origin) == "" {
		errs.Add("origin", "origin is required")
	}
	if strings.TrimSpace(q.Destination) == "" {
		errs.Add("destination", "destination is required")
	}

	var date domain.Date
	if strings.TrimSpace(q.Date) == "" {
		errs.Add("date", "date is required")
	} else if d, err := domain.ParseDate(strings.TrimSpace(q.Date)); err != nil {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	} else {
		date = d
	}

	if errs.HasErrors() {
		return domain.Date{}, errs
	}
	return date, nil
}

// ToBookingForm converts the request into the wizard's raw form.
func ToBookingForm(req *SearchRequest) usecase.BookingForm {
	return usecase.BookingForm{
		Origin:        req.Origin,
		Destination:   req.Destination,
		TripType:      req.TripType,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Passengers:    req.Passengers,
	}
}

// ToPassengerForms converts the request into the wizard's raw forms.
func ToPassengerForms(req *PassengersRequest) []usecase.PassengerForm {
	forms := make([]usecase.PassengerForm, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		forms = append(forms, usecase.PassengerForm{
			Name:  p.Name,
			Age:   p.Age,
			Email: p.Email,
		})
	}
	return forms
}
