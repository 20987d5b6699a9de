// Package catalog builds the in-memory flight catalog the wizard searches.
// Flights are generated once at startup from a route set and a date range.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
)

// Config describes the catalog to generate.
type Config struct {
	// Cities is the city set; one flight is generated per ordered pair of distinct cities per day
	Cities []string

	// StartDate and EndDate bound the generated dates (both inclusive)
	StartDate domain.Date
	EndDate   domain.Date

	// Terminals is the set terminals are drawn from
	Terminals []string

	// DepartureTimes is the set departure times are drawn from
	DepartureTimes []domain.TimeOfDay

	// SeatsMin and SeatsMax bound the available seat count (inclusive)
	SeatsMin int
	SeatsMax int

	// PriceMin, PriceMax and PriceStep define the fare band: min, min+step, ..., max
	PriceMin  float64
	PriceMax  float64
	PriceStep float64

	// Currency is the ISO 4217 code for all fares
	Currency string

	// RouteDurations maps "Origin-Destination" to a display duration
	RouteDurations map[string]string

	// DefaultDuration is used for routes missing from RouteDurations
	DefaultDuration string
}

// DefaultConfig returns the October 2025 domestic schedule.
func DefaultConfig() Config {
	return Config{
		Cities:    []string{"Manila", "Cebu", "Davao", "Iloilo"},
		StartDate: domain.MustParseDate("2025-10-01"),
		EndDate:   domain.MustParseDate("2025-10-31"),
		Terminals: []string{"T1", "T2", "T3"},
		DepartureTimes: []domain.TimeOfDay{
			{Hour: 8}, {Hour: 11}, {Hour: 14}, {Hour: 17},
		},
		SeatsMin:  30,
		SeatsMax:  69,
		PriceMin:  2500,
		PriceMax:  3500,
		PriceStep: 100,
		Currency:  domain.DefaultCurrency,
		RouteDurations: map[string]string{
			"Manila-Cebu":   "1h 20m",
			"Cebu-Manila":   "1h 20m",
			"Manila-Davao":  "1h 55m",
			"Davao-Manila":  "1h 55m",
			"Manila-Iloilo": "1h 10m",
			"Iloilo-Manila": "1h 10m",
			"Cebu-Davao":    "1h 0m",
			"Davao-Cebu":    "1h 0m",
			"Cebu-Iloilo":   "0h 50m",
			"Iloilo-Cebu":   "0h 50m",
		},
		DefaultDuration: "1h 20m",
	}
}

// DurationFor looks up the display duration for an ordered route.
func (c Config) DurationFor(origin, destination string) string {
	if d, ok := c.RouteDurations[domain.RouteKey(origin, destination)]; ok {
		return d
	}
	return c.DefaultDuration
}

// Days returns the number of dates in the configured range.
func (c Config) Days() int {
	if c.EndDate.Before(c.StartDate) {
		return 0
	}
	return int(c.EndDate.Time().Sub(c.StartDate.Time()).Hours()/24) + 1
}

// Size returns the number of flights Generate will produce.
func (c Config) Size() int {
	n := len(c.Cities)
	return c.Days() * n * (n - 1)
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if len(c.Cities) < 2 {
		return errors.New("catalog needs at least two cities")
	}
	seen := make(map[string]bool, len(c.Cities))
	for _, city := range c.Cities {
		if city == "" {
			return errors.New("city names must not be empty")
		}
		if seen[city] {
			return fmt.Errorf("duplicate city %q", city)
		}
		seen[city] = true
	}

	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return errors.New("start and end dates are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("end date %s is before start date %s", c.EndDate, c.StartDate)
	}

	if len(c.Terminals) == 0 {
		return errors.New("at least one terminal is required")
	}
	if len(c.DepartureTimes) == 0 {
		return errors.New("at least one departure time is required")
	}

	if c.SeatsMin < 0 || c.SeatsMax < c.SeatsMin {
		return fmt.Errorf("invalid seat band [%d, %d]", c.SeatsMin, c.SeatsMax)
	}

	if c.PriceStep <= 0 {
		return errors.New("price step must be positive")
	}
	if c.PriceMin < 0 || c.PriceMax < c.PriceMin {
		return fmt.Errorf("invalid price band [%.2f, %.2f]", c.PriceMin, c.PriceMax)
	}

	if c.DefaultDuration == "" {
		return errors.New("default duration is required")
	}

	return nil
}

// fileConfig is the YAML shape of a catalog config file.
// Omitted fields keep their defaults.
type fileConfig struct {
	Cities          []string          `yaml:"cities"`
	StartDate       string            `yaml:"start_date"`
	EndDate         string            `yaml:"end_date"`
	Terminals       []string          `yaml:"terminals"`
	DepartureTimes  []string          `yaml:"departure_times"`
	Seats           *bandConfig       `yaml:"seats"`
	Price           *priceConfig      `yaml:"price"`
	Currency        string            `yaml:"currency"`
	RouteDurations  map[string]string `yaml:"route_durations"`
	DefaultDuration string            `yaml:"default_duration"`
}

type bandConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type priceConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// LoadFile reads a YAML catalog config and merges it onto DefaultConfig.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read catalog config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML catalog config bytes and merges them onto DefaultConfig.
func Parse(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse catalog config: %w", err)
	}

	cfg, err := fc.apply(DefaultConfig())
	if err != nil {
		return Config{}, fmt.Errorf("parse catalog config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate catalog config: %w", err)
	}
	return cfg, nil
}

func (fc fileConfig) apply(cfg Config) (Config, error) {
	if len(fc.Cities) > 0 {
		cfg.Cities = fc.Cities
	}
	if fc.StartDate != "" {
		d, err := domain.ParseDate(fc.StartDate)
		if err != nil {
			return cfg, fmt.Errorf("start_date: %w", err)
		}
		cfg.StartDate = d
	}
	if fc.EndDate != "" {
		d, err := domain.ParseDate(fc.EndDate)
		if err != nil {
			return cfg, fmt.Errorf("end_date: %w", err)
		}
		cfg.EndDate = d
	}
	if len(fc.Terminals) > 0 {
		cfg.Terminals = fc.Terminals
	}
	if len(fc.DepartureTimes) > 0 {
		times := make([]domain.TimeOfDay, 0, len(fc.DepartureTimes))
		for _, raw := range fc.DepartureTimes {
			t, err := domain.ParseTimeOfDay(raw)
			if err != nil {
				return cfg, fmt.Errorf("departure_times: %w", err)
			}
			times = append(times, t)
		}
		cfg.DepartureTimes = times
	}
	if fc.Seats != nil {
		cfg.SeatsMin = fc.Seats.Min
		cfg.SeatsMax = fc.Seats.Max
	}
	if fc.Price != nil {
		cfg.PriceMin = fc.Price.Min
		cfg.PriceMax = fc.Price.Max
		if fc.Price.Step != 0 {
			cfg.PriceStep = fc.Price.Step
		}
	}
	if fc.Currency != "" {
		cfg.Currency = fc.Currency
	}
	if fc.RouteDurations != nil {
		cfg.RouteDurations = fc.RouteDurations
	}
	if fc.DefaultDuration != "" {
		cfg.DefaultDuration = fc.DefaultDuration
	}
	return cfg, nil
}
