package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
)

func TestGenerate_Size(t *testing.T) {
	cfg := DefaultConfig()

	flights := Generate(cfg, NewRandomSource(42))

	// 31 days x 4 cities x 3 destinations
	assert.Len(t, flights, 31*4*3)
	assert.Equal(t, cfg.Size(), len(flights))
}

func TestGenerate_FieldsWithinBands(t *testing.T) {
	cfg := DefaultConfig()
	flights := Generate(cfg, NewRandomSource(7))

	terminals := toSet(cfg.Terminals)
	times := make(map[domain.TimeOfDay]bool)
	for _, tod := range cfg.DepartureTimes {
		times[tod] = true
	}
	numbers := make(map[string]bool, len(flights))

	for _, f := range flights {
		assert.NotEqual(t, f.Origin, f.Destination, "origin must differ from destination")
		assert.False(t, f.Date.Before(cfg.StartDate), "date before range: %s", f.Date)
		assert.False(t, f.Date.After(cfg.EndDate), "date after range: %s", f.Date)

		assert.GreaterOrEqual(t, f.Price.Amount, cfg.PriceMin)
		assert.LessOrEqual(t, f.Price.Amount, cfg.PriceMax)
		assert.Zero(t, int(f.Price.Amount-cfg.PriceMin)%int(cfg.PriceStep), "price off step: %v", f.Price.Amount)
		assert.Equal(t, cfg.Currency, f.Price.Currency)

		assert.GreaterOrEqual(t, f.AvailableSeats, cfg.SeatsMin)
		assert.LessOrEqual(t, f.AvailableSeats, cfg.SeatsMax)

		assert.True(t, f.FareClass.IsValid(), "fare class %q", f.FareClass)
		assert.True(t, terminals[f.Terminal], "terminal %q", f.Terminal)
		assert.True(t, times[f.DepartureTime], "departure time %s", f.DepartureTime)

		assert.False(t, numbers[f.FlightNumber], "duplicate flight number %s", f.FlightNumber)
		numbers[f.FlightNumber] = true
	}
}

func TestGenerate_EveryRouteEveryDay(t *testing.T) {
	cfg := DefaultConfig()
	flights := Generate(cfg, NewRandomSource(3))

	type key struct {
		route string
		date  domain.Date
	}
	seen := make(map[key]int)
	for _, f := range flights {
		seen[key{f.Route(), f.Date}]++
	}

	for d := cfg.StartDate; !d.After(cfg.EndDate); d = d.AddDays(1) {
		for _, from := range cfg.Cities {
			for _, to := range cfg.Cities {
				if from == to {
					continue
				}
				assert.Equal(t, 1, seen[key{domain.RouteKey(from, to), d}], "%s-%s on %s", from, to, d)
			}
		}
	}
}

func TestGenerate_SameSeedSameCatalog(t *testing.T) {
	cfg := DefaultConfig()

	a := Generate(cfg, NewRandomSource(99))
	b := Generate(cfg, NewRandomSource(99))
	c := Generate(cfg, NewRandomSource(100))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerate_OrderAndNumbering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cities = []string{"Manila", "Cebu", "Davao"}
	cfg.EndDate = cfg.StartDate.AddDays(1)

	flights := Generate(cfg, NewRandomSource(1))
	require.Len(t, flights, 12)

	assert.Equal(t, "FL 101", flights[0].FlightNumber)
	assert.Equal(t, "Manila", flights[0].Origin)
	assert.Equal(t, "Cebu", flights[0].Destination)
	assert.Equal(t, cfg.StartDate, flights[0].Date)

	assert.Equal(t, "Davao", flights[1].Destination)
	assert.Equal(t, "Cebu", flights[2].Origin)
	assert.Equal(t, cfg.StartDate.AddDays(1), flights[6].Date)
	assert.Equal(t, "FL 112", flights[11].FlightNumber)
}

func TestGenerate_DurationLookup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cities = []string{"Manila", "Cebu", "Bacolod"}
	cfg.EndDate = cfg.StartDate

	flights := Generate(cfg, NewRandomSource(5))

	byRoute := make(map[string]string)
	for _, f := range flights {
		byRoute[f.Route()] = f.Duration
	}

	assert.Equal(t, "1h 20m", byRoute["Manila-Cebu"])
	assert.Equal(t, cfg.DefaultDuration, byRoute["Manila-Bacolod"], "unknown route uses default")
	assert.Equal(t, cfg.DefaultDuration, byRoute["Bacolod-Cebu"])
}

func TestGenerate_FixedBands(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PriceMin, cfg.PriceMax = 3000, 3000
	cfg.SeatsMin, cfg.SeatsMax = 12, 12
	cfg.Terminals = []string{"T9"}

	for _, f := range Generate(cfg, NewRandomSource(11)) {
		assert.Equal(t, 3000.0, f.Price.Amount)
		assert.Equal(t, 12, f.AvailableSeats)
		assert.Equal(t, "T9", f.Terminal)
	}
}

func TestGenerate_BothFareClassesAppear(t *testing.T) {
	flights := Generate(DefaultConfig(), NewRandomSource(21))

	counts := map[domain.FareClass]int{}
	for _, f := range flights {
		counts[f.FareClass]++
	}
	assert.Positive(t, counts[domain.FarePromo])
	assert.Positive(t, counts[domain.FareRegular])
}

func TestNewRandomSource_ZeroSeedIsRandom(t *testing.T) {
	cfg := DefaultConfig()
	a := Generate(cfg, NewRandomSource(0))
	b := Generate(cfg, NewRandomSource(0))

	// 372 flights with several random fields each; a collision is not realistic.
	assert.NotEqual(t, a, b)
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
