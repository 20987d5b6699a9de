// Package domain contains the core business entities and rules for the booking wizard.
// These entities are transport-agnostic and form the foundation upon which all other components are built.
package domain

import (
	"math"
	"strconv"
	"strings"
)

// FareClass is the fare bucket a flight is sold under.
type FareClass string

// Available fare classes.
const (
	FarePromo   FareClass = "Promo"
	FareRegular FareClass = "Regular"
)

// IsValid checks if the fare class is a known value.
func (f FareClass) IsValid() bool {
	switch f {
	case FarePromo, FareRegular:
		return true
	default:
		return false
	}
}

// DefaultCurrency is the currency all generated fares are priced in.
const DefaultCurrency = "PHP"

// Flight is a single generated flight offering.
// Flights are immutable once generated and owned by the catalog.
type Flight struct {
	// FlightNumber is the unique flight designator (e.g., "FL 101")
	FlightNumber string `json:"flightNumber"`

	// Origin is the departure city (e.g., "Manila")
	Origin string `json:"origin"`

	// Destination is the arrival city (e.g., "Cebu")
	Destination string `json:"destination"`

	// Date is the departure date
	Date Date `json:"date"`

	// DepartureTime is the scheduled local departure time
	DepartureTime TimeOfDay `json:"departureTime"`

	// Price is the per-passenger fare
	Price PriceInfo `json:"price"`

	// FareClass is Promo or Regular
	FareClass FareClass `json:"fareClass"`

	// AvailableSeats is the number of seats left
	AvailableSeats int `json:"availableSeats"`

	// Duration is a human-readable flight time (e.g., "1h 20m")
	Duration string `json:"duration"`

	// Terminal is the departure terminal (e.g., "T1")
	Terminal string `json:"terminal"`
}

// PriceInfo contains pricing information for a flight.
type PriceInfo struct {
	// Amount is the numeric price value
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 currency code (e.g., "PHP")
	Currency string `json:"currency"`
}

// NewPrice creates a PriceInfo in DefaultCurrency.
func NewPrice(amount float64) PriceInfo {
	return PriceInfo{Amount: amount, Currency: DefaultCurrency}
}

// Times returns the price multiplied by n, in the same currency.
func (p PriceInfo) Times(n int) PriceInfo {
	return PriceInfo{Amount: p.Amount * float64(n), Currency: p.Currency}
}

// Formatted renders the price for display, e.g. "₱3,000".
// Fractional amounts keep two decimals, rounded to the nearest cent.
func (p PriceInfo) Formatted() string {
	symbol := currencySymbol(p.Currency)

	cents := int64(math.Round(p.Amount * 100))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	out := sign + symbol + groupThousands(cents/100)
	if p.Amount != math.Trunc(p.Amount) {
		out += "." + leftPad2(cents%100)
	}
	return out
}

// Symbol returns the display prefix for the price's currency.
func (p PriceInfo) Symbol() string {
	return currencySymbol(p.Currency)
}

// currencySymbol maps a currency code to its display symbol.
func currencySymbol(code string) string {
	switch code {
	case "PHP":
		return "₱"
	case "USD":
		return "$"
	case "":
		return ""
	default:
		return code + " "
	}
}

// groupThousands inserts comma separators into n.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func leftPad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// Route returns the "Origin-Destination" key used for route tables.
func (f Flight) Route() string {
	return RouteKey(f.Origin, f.Destination)
}

// RouteKey builds the ordered route key for an origin/destination pair.
func RouteKey(origin, destination string) string {
	return origin + "-" + destination
}
