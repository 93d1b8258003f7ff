// Package timezone converts between the UTC instants persisted by the
// application and the civil datetimes exposed through the API. One zone is
// configured for the whole process; every comparison or sort on a datetime
// happens on the UTC instant, never on a formatted string.
package timezone

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultZone is used when configuration supplies no zone.
	DefaultZone = "Asia/Jakarta"

	apiLayout     = "2006-01-02T15:04:05"
	displayLayout = "2006-01-02 15:04:05"
)

// Converter translates between UTC instants and civil datetimes in the
// configured zone. It is immutable after construction.
type Converter struct {
	loc *time.Location
}

// Load resolves the named zone. An empty name selects DefaultZone.
func Load(name string) (*Converter, error) {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone: load %q: %w", name, err)
	}
	return &Converter{loc: loc}, nil
}

// MustLoad is Load for wiring code and tests where the zone is known good.
func MustLoad(name string) *Converter {
	c, err := Load(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Zone reports the configured zone name.
func (c *Converter) Zone() string {
	return c.loc.String()
}

// Now returns the current instant in UTC.
func (c *Converter) Now() time.Time {
	return time.Now().UTC()
}

// ToLocal converts a UTC instant to the configured zone. The zero value
// passes through unchanged.
func (c *Converter) ToLocal(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.In(c.loc)
}

// ToUTC interprets the wall-clock fields of local as a civil datetime in
// the configured zone and returns the corresponding UTC instant. The zero
// value passes through unchanged.
func (c *Converter) ToUTC(local time.Time) time.Time {
	if local.IsZero() {
		return time.Time{}
	}
	return time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), c.loc).UTC()
}

// Format renders an instant for display in the configured zone.
func (c *Converter) Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(c.loc).Format(displayLayout)
}

// FormatAPI renders an instant as the API's civil datetime, without offset.
func (c *Converter) FormatAPI(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(c.loc).Format(apiLayout)
}

// ParseAPI parses an API datetime field into a UTC instant. Civil datetimes
// are interpreted in the configured zone; values carrying an explicit offset
// or Z suffix are taken as absolute.
func (c *Converter) ParseAPI(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("timezone: empty datetime")
	}
	if hasOffset(value) {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("timezone: parse %q: %w", value, err)
		}
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(apiLayout, value, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("timezone: parse %q: %w", value, err)
	}
	return t.UTC(), nil
}

func hasOffset(value string) bool {
	if strings.HasSuffix(value, "Z") {
		return true
	}
	// An offset suffix looks like +07:00 or -05:30 after the time part.
	if len(value) < 6 {
		return false
	}
	tail := value[len(value)-6:]
	return (tail[0] == '+' || tail[0] == '-') && tail[3] == ':'
}
