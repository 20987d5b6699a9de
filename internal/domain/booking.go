package domain

import (
	"regexp"
	"strings"
	"time"
)

// TripType distinguishes one-way from round-trip bookings.
type TripType string

// Available trip types.
const (
	TripOneWay    TripType = "oneway"
	TripRoundTrip TripType = "roundtrip"
)

// ParseTripType converts a raw form value to a TripType.
// Matching is case-insensitive and tolerates "one-way"/"round-trip" spellings.
// Empty input defaults to TripOneWay.
func ParseTripType(s string) (TripType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)

	switch normalized {
	case "", "oneway":
		return TripOneWay, true
	case "roundtrip", "return":
		return TripRoundTrip, true
	default:
		return "", false
	}
}

// Passenger limits for a single booking.
const (
	MinPassengers = 1
	MaxPassengers = 9
)

// BookingQuery is the validated search captured at the Booking step.
type BookingQuery struct {
	// Origin is the departure city as typed by the user (trimmed)
	Origin string `json:"origin"`

	// Destination is the arrival city as typed by the user (trimmed)
	Destination string `json:"destination"`

	// TripType is oneway or roundtrip
	TripType TripType `json:"tripType"`

	// DepartureDate is the outbound travel date
	DepartureDate Date `json:"departureDate"`

	// ReturnDate is set only for round trips
	ReturnDate Date `json:"returnDate"`

	// PassengerCount is the number of travellers (1-9)
	PassengerCount int `json:"passengerCount"`
}

// IsZero reports whether no query has been captured.
func (q BookingQuery) IsZero() bool {
	return q == BookingQuery{}
}

// emailRegex is the simple address pattern accepted for passengers.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// Passenger holds the details collected for one traveller.
type Passenger struct {
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
}

// IsValid checks the passenger against the presence and format rules.
func (p Passenger) IsValid() bool {
	return strings.TrimSpace(p.FullName) != "" &&
		p.Age >= 1 &&
		p.Email != "" &&
		IsValidEmail(p.Email)
}

// Confirmation is issued when a booking is confirmed.
type Confirmation struct {
	// Reference is the human-facing booking code (e.g., "BK-3F9A1C2D")
	Reference string `json:"reference"`

	// ConfirmedAt is when the user confirmed
	ConfirmedAt time.Time `json:"confirmedAt"`

	// Total is the charged amount (price x passengers)
	Total PriceInfo `json:"total"`
}
