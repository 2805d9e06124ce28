package timezone

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"bistro/config"

	"github.com/rs/zerolog/log"
)

const fallbackZone = "UTC"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidClock = errors.New("invalid time")
)

var location atomic.Pointer[time.Location]

var (
	dateLayouts  = []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05", "01/02/2006", "02-01-2006"}
	clockLayouts = []string{"15:04", time.TimeOnly, "3:04 PM", "3:04PM", "03:04 PM", time.RFC3339}
)

// Init loads the configured timezone, keeping UTC when it is unset or unknown.
func Init(cfg *config.Config) {
	name := cfg.App.Timezone
	if name == "" {
		log.Warn().Str("timezone", fallbackZone).Msg("APP_TIMEZONE not set")

		name = fallbackZone
	}

	if err := Load(name); err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, falling back to UTC")
	}
}

// Load switches the restaurant timezone. An unknown IANA name leaves UTC in place.
func Load(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		location.Store(time.UTC)

		return fmt.Errorf("load timezone %q: %w", name, err)
	}

	location.Store(loc)

	log.Debug().Str("timezone", loc.String()).Msg("timezone loaded")

	return nil
}

// Location returns the restaurant timezone.
func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location())
}

// In converts t to the restaurant timezone.
func In(t time.Time) time.Time {
	return t.In(Location())
}

func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, Location())
}

func Format(t time.Time, layout string) string {
	return In(t).Format(layout)
}

// ParseDate accepts the date layouts clients send and returns local midnight of that day.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range dateLayouts {
		if parsed, err := Parse(layout, value); err == nil {
			return StartOfDay(parsed), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// ParseClock accepts 24h or 12h clock values and returns the hour and minute.
func ParseClock(value string) (hour, minute int, err error) {
	value = strings.ToUpper(strings.TrimSpace(value))

	for _, layout := range clockLayouts {
		if parsed, err := Parse(layout, value); err == nil {
			parsed = In(parsed)

			return parsed.Hour(), parsed.Minute(), nil
		}
	}

	return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
}

// StartOfDay returns local midnight of the day t falls on.
func StartOfDay(t time.Time) time.Time {
	year, month, day := In(t).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, Location())
}

// Combine places a clock time on the given day.
func Combine(day time.Time, hour, minute int) time.Time {
	year, month, date := day.Date()

	return time.Date(year, month, date, hour, minute, 0, 0, day.Location())
}

// NormalizeClock rewrites any accepted clock value as HH:MM.
func NormalizeClock(value string) (string, error) {
	hour, minute, err := ParseClock(value)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
