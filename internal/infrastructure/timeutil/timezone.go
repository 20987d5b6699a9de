package timeutil

import (
	"fmt"
	"sync"
	"time"

	// Asia/Manila must resolve in scratch images
	_ "time/tzdata"
)

// locationCache stores loaded timezone locations by name.
var locationCache sync.Map

// Timezone names used by the service.
const (
	UTC = "UTC"

	// PHT is Philippine Time, where all catalog flights depart.
	PHT = "Asia/Manila"
)

// DisplayLayout is the layout for human-facing timestamps.
const DisplayLayout = "2006-01-02 15:04 MST"

// GetLocation returns the named location, loading it once.
func GetLocation(name string) (*time.Location, error) {
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

// MustGetLocation is GetLocation for known-good names; it panics on error.
func MustGetLocation(name string) *time.Location {
	loc, err := GetLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// InTimezone converts t to the named timezone.
func InTimezone(t time.Time, timezone string) (time.Time, error) {
	loc, err := GetLocation(timezone)
	if err != nil {
		return t, err
	}
	return t.In(loc), nil
}

// FormatIn renders t in timezone using DisplayLayout.
// An unknown timezone falls back to UTC.
func FormatIn(t time.Time, timezone string) string {
	local, err := InTimezone(t, timezone)
	if err != nil {
		local = t.UTC()
	}
	return local.Format(DisplayLayout)
}
