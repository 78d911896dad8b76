package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DayLayout is the canonical key format for a calendar day.
	DayLayout = "2006-01-02"
	// LegacyDayLayout 旧版快照的日期 key，例如 "Mon Jan 01 2024"
	LegacyDayLayout = "Mon Jan 02 2006"

	secondsPerDay = 24 * 60 * 60
)

// Day is a calendar day counted from 1970-01-01. It carries no time zone,
// so two Days compare and subtract as plain integers.
type Day int32

// DayOf returns the calendar day t falls on in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	secs := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
	return Day(floorDiv(secs, secondsPerDay))
}

// Date builds a Day from its components. Out-of-range values normalize
// the way time.Date does.
func Date(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Today is the current local calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay accepts the canonical "2006-01-02" form and the legacy
// "Mon Jan 02 2006" form.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DayLayout, LegacyDayLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid day %q: want YYYY-MM-DD", s)
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// AddDays moves the day n days forward (or backward for negative n).
func (d Day) AddDays(n int) Day {
	return d + Day(n)
}

// Sub returns the number of days from o to d.
func (d Day) Sub(o Day) int {
	return int(d) - int(o)
}

func (d Day) String() string {
	return d.Time().Format(DayLayout)
}

// MarshalText makes Day usable as a JSON object key.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
