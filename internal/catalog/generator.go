package catalog

import (
	"fmt"
	"math/rand/v2"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
)

// firstFlightNumber is the numeric part of the first generated flight number.
const firstFlightNumber = 101

// NewRandomSource returns a random source for Generate.
// A zero seed draws a fresh seed from the runtime, so catalogs differ between runs.
func NewRandomSource(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Generate produces one flight per date in the range and per ordered pair
// of distinct cities. Flights are ordered by date, then origin, then
// destination, following the order of cfg.Cities.
//
// Generate is a pure function of cfg and rng: the same seed yields the
// same catalog. cfg is assumed valid (see Config.Validate).
func Generate(cfg Config, rng *rand.Rand) []domain.Flight {
	flights := make([]domain.Flight, 0, cfg.Size())
	priceSlots := int((cfg.PriceMax-cfg.PriceMin)/cfg.PriceStep) + 1

	seq := 0
	for date := cfg.StartDate; !date.After(cfg.EndDate); date = date.AddDays(1) {
		for _, origin := range cfg.Cities {
			for _, destination := range cfg.Cities {
				if origin == destination {
					continue
				}

				flights = append(flights, domain.Flight{
					FlightNumber:   fmt.Sprintf("FL %d", firstFlightNumber+seq),
					Origin:         origin,
					Destination:    destination,
					Date:           date,
					DepartureTime:  cfg.DepartureTimes[rng.IntN(len(cfg.DepartureTimes))],
					Price:          domain.PriceInfo{Amount: cfg.PriceMin + float64(rng.IntN(priceSlots))*cfg.PriceStep, Currency: cfg.Currency},
					FareClass:      coinFlip(rng),
					AvailableSeats: cfg.SeatsMin + rng.IntN(cfg.SeatsMax-cfg.SeatsMin+1),
					Duration:       cfg.DurationFor(origin, destination),
					Terminal:       cfg.Terminals[rng.IntN(len(cfg.Terminals))],
				})
				seq++
			}
		}
	}

	return flights
}

func coinFlip(rng *rand.Rand) domain.FareClass {
	if rng.IntN(2) == 0 {
		return domain.FarePromo
	}
	return domain.FareRegular
}
