package domain

import (
	"fmt"
	"time"
)

// gamingDayLayout is the wire and database format of a gaming day.
const gamingDayLayout = "2006-01-02"

// TimeOfDay is a wall-clock time without a date, used for the gaming day boundary.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// DefaultGamingDayStart is the boundary used when a casino has not configured one.
var DefaultGamingDayStart = TimeOfDay{Hour: 6}

// ParseTimeOfDay parses "HH:MM" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) minutes() int { return t.Hour*60 + t.Minute }

// MarshalJSON renders the time of day as "HH:MM".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON parses "HH:MM".
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("time of day must be a JSON string")
	}
	parsed, err := ParseTimeOfDay(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// GamingDay is a casino's operational date. It is derived from an instant and never stored.
type GamingDay struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseGamingDay parses a "YYYY-MM-DD" gaming day.
func ParseGamingDay(s string) (GamingDay, error) {
	t, err := time.Parse(gamingDayLayout, s)
	if err != nil {
		return GamingDay{}, fmt.Errorf("invalid gaming day %q, expected YYYY-MM-DD", s)
	}
	return GamingDay{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d GamingDay) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalJSON renders the gaming day as "YYYY-MM-DD".
func (d GamingDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses "YYYY-MM-DD".
func (d *GamingDay) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("gaming day must be a JSON string")
	}
	parsed, err := ParseGamingDay(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddDays returns the gaming day n calendar days later (or earlier for negative n).
func (d GamingDay) AddDays(n int) GamingDay {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return GamingDay{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ResolveGamingDay maps an instant to the gaming day it belongs to: the instant is converted
// to the casino's local time, and a local time-of-day before start belongs to the previous
// calendar date. Every caller that needs a gaming day goes through this function; slicing
// the UTC date diverges once UTC midnight passes before the local boundary.
func ResolveGamingDay(at time.Time, loc *time.Location, start TimeOfDay) GamingDay {
	if loc == nil {
		loc = time.UTC
	}
	local := at.In(loc)
	day := GamingDay{Year: local.Year(), Month: local.Month(), Day: local.Day()}
	if local.Hour()*60+local.Minute() < start.minutes() {
		return day.AddDays(-1)
	}
	return day
}

// GamingDayBounds returns the half-open instant range [from, to) covered by day.
// Across a DST change the range is 23 or 25 hours long.
func GamingDayBounds(day GamingDay, loc *time.Location, start TimeOfDay) (from, to time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	from = time.Date(day.Year, day.Month, day.Day, start.Hour, start.Minute, 0, 0, loc)
	next := day.AddDays(1)
	to = time.Date(next.Year, next.Month, next.Day, start.Hour, start.Minute, 0, 0, loc)
	return from, to
}
