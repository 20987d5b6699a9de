// Package usecase contains the booking wizard business logic: the flight
// search filter, the wizard state machine and the service that drives it
// over stored sessions.
package usecase

import (
	"strings"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
)

// FlightCatalog is the read-only flight source searched by the wizard.
type FlightCatalog interface {
	// Flights returns the catalog in insertion order.
	// Callers may modify the returned slice.
	Flights() []domain.Flight
}

// SearchEngine filters a catalog by route and date.
type SearchEngine struct {
	catalog FlightCatalog
}

// NewSearchEngine creates a SearchEngine over catalog.
func NewSearchEngine(catalog FlightCatalog) *SearchEngine {
	return &SearchEngine{catalog: catalog}
}

// Search returns the flights matching the query's origin, destination
// and departure date.
func (e *SearchEngine) Search(q domain.BookingQuery) []domain.Flight {
	return FilterFlights(e.catalog.Flights(), q.Origin, q.Destination, q.DepartureDate)
}

// Find is Search without a full BookingQuery.
func (e *SearchEngine) Find(origin, destination string, date domain.Date) []domain.Flight {
	return FilterFlights(e.catalog.Flights(), origin, destination, date)
}

// FilterFlights returns the flights whose origin and destination match
// case-insensitively (ignoring surrounding spaces) and whose date equals
// date exactly.
//
// Behavior:
//   - Catalog order is preserved
//   - The result is never nil; no match yields an empty slice
//   - The input slice is not modified
func FilterFlights(flights []domain.Flight, origin, destination string, date domain.Date) []domain.Flight {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	result := make([]domain.Flight, 0)
	for _, f := range flights {
		if f.Date != date {
			continue
		}
		if !strings.EqualFold(f.Origin, origin) || !strings.EqualFold(f.Destination, destination) {
			continue
		}
		result = append(result, f)
	}

	return result
}
