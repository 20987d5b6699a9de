package http

import "time"

// ViewResponse is the JSON form of a wizard view.
// Fields that do not apply to the current step are omitted.
type ViewResponse struct {
	// SessionID identifies the wizard session
	SessionID string `json:"sessionId" example:"5f0c7a9e-8a3b-4a57-9f55-2d0c1b8e6f10"`

	// Step is one of home, booking, flights, passenger, summary, success
	Step string `json:"step" example:"booking"`

	// Progress is the highlighted progress bar position, -1 for none
	Progress int `json:"progress" example:"0"`

	// Query prefills the booking form
	Query *QueryDTO `json:"query,omitempty"`

	// Results are the flight cards at the flights step
	Results []FlightDTO `json:"results,omitempty"`

	// NoFlights is true when the search matched nothing
	NoFlights bool `json:"noFlights,omitempty"`

	// PassengerSlots is the number of passenger forms to show
	PassengerSlots int `json:"passengerSlots,omitempty" example:"2"`

	// Summary is the booking review
	Summary *SummaryDTO `json:"summary,omitempty"`

	// Confirmation is set once the booking is confirmed
	Confirmation *ConfirmationDTO `json:"confirmation,omitempty"`
}

// QueryDTO is an accepted booking query.
type QueryDTO struct {
	Origin         string `json:"origin" example:"Manila"`
	Destination    string `json:"destination" example:"Cebu"`
	TripType       string `json:"tripType" example:"oneway"`
	DepartureDate  string `json:"departureDate" example:"2025-10-20"`
	ReturnDate     string `json:"returnDate,omitempty" example:""`
	PassengerCount int    `json:"passengerCount" example:"1"`
}

// FlightDTO is one flight card.
type FlightDTO struct {
	FlightNumber   string   `json:"flightNumber" example:"FL 101"`
	Origin         string   `json:"origin" example:"Manila"`
	Destination    string   `json:"destination" example:"Cebu"`
	Date           string   `json:"date" example:"2025-10-20"`
	DepartureTime  string   `json:"departureTime" example:"08:30"`
	Price          PriceDTO `json:"price"`
	FareClass      string   `json:"fareClass" example:"Promo"`
	AvailableSeats int      `json:"availableSeats" example:"12"`
	Duration       string   `json:"duration" example:"1h 20m"`
	Terminal       string   `json:"terminal" example:"T3"`
}

// PriceDTO is a price with its display form.
type PriceDTO struct {
	Amount    float64 `json:"amount" example:"3000"`
	Currency  string  `json:"currency" example:"PHP"`
	Formatted string  `json:"formatted" example:"₱3,000"`
}

// PassengerDTO is an accepted passenger.
type PassengerDTO struct {
	FullName string `json:"fullName" example:"Juan Dela Cruz"`
	Age      int    `json:"age" example:"34"`
	Email    string `json:"email" example:"juan@example.com"`
}

// SummaryDTO is the review shown before confirming.
type SummaryDTO struct {
	Flight         FlightDTO      `json:"flight"`
	Passengers     []PassengerDTO `json:"passengers"`
	UnitPrice      PriceDTO       `json:"unitPrice"`
	PassengerCount int            `json:"passengerCount" example:"2"`
	Total          PriceDTO       `json:"total"`
	PriceLine      string         `json:"priceLine" example:"₱3000 x 2 passenger(s)"`
}

// ConfirmationDTO is the issued booking confirmation.
type ConfirmationDTO struct {
	Reference   string    `json:"reference" example:"BK-3F9A1C2D"`
	ConfirmedAt time.Time `json:"confirmedAt"`

	// ConfirmedAtLocal is ConfirmedAt in Philippine time
	ConfirmedAtLocal string   `json:"confirmedAtLocal" example:"2025-10-01 17:00 PST"`
	Total            PriceDTO `json:"total"`
}

// FlightsResponse is the result of a direct catalog search.
type FlightsResponse struct {
	Flights []FlightDTO `json:"flights"`
	Total   int         `json:"total" example:"3"`
}
