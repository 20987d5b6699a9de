// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/usecase"
)

// ProjectRoot returns the repository root directory.
func ProjectRoot(t *testing.T) string {
	t.Helper()

	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// testutil lives in test/testutil
	return filepath.Join(filepath.Dir(currentFile), "..", "..")
}

// LoadProjectFile reads a file relative to the repository root.
func LoadProjectFile(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(ProjectRoot(t), path))
	if err != nil {
		t.Fatalf("Failed to load file %s: %v", path, err)
	}
	return data
}

// CatalogConfigPath returns the path of the bundled catalog configuration.
func CatalogConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(ProjectRoot(t), "configs", "catalog.yaml")
}

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", value, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, value string) domain.Date {
	t.Helper()
	parsed, err := domain.ParseDate(value)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", value, err)
	}
	return parsed
}

// OneWayForm returns a one-way Booking step form.
func OneWayForm(origin, destination, date, passengers string) usecase.BookingForm {
	return usecase.BookingForm{
		Origin:        origin,
		Destination:   destination,
		TripType:      string(domain.TripOneWay),
		DepartureDate: date,
		Passengers:    passengers,
	}
}

// PassengerForms returns n valid passenger slots.
func PassengerForms(n int) []usecase.PassengerForm {
	forms := make([]usecase.PassengerForm, n)
	for i := range forms {
		forms[i] = usecase.PassengerForm{
			Name:  "Juan Dela Cruz",
			Age:   "34",
			Email: "juan@example.com",
		}
	}
	return forms
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}
