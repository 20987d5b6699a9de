package catalog

import (
	"math/rand/v2"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
)

// Catalog is a read-only list of flights built once at startup.
// It is safe for concurrent use because nothing mutates it after construction.
type Catalog struct {
	flights []domain.Flight
}

// New wraps an existing flight list. The slice is copied.
func New(flights []domain.Flight) *Catalog {
	owned := make([]domain.Flight, len(flights))
	copy(owned, flights)
	return &Catalog{flights: owned}
}

// Build generates a catalog from cfg using rng.
func Build(cfg Config, rng *rand.Rand) *Catalog {
	return &Catalog{flights: Generate(cfg, rng)}
}

// Flights returns a copy of all flights in catalog order.
func (c *Catalog) Flights() []domain.Flight {
	out := make([]domain.Flight, len(c.flights))
	copy(out, c.flights)
	return out
}

// Len returns the number of flights.
func (c *Catalog) Len() int {
	return len(c.flights)
}
