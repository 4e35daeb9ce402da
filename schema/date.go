package schema

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts used across burndown.
const (
	KeyLayout   = "20060102"   // storage keys and file names
	LabelLayout = "01/02"      // chart axis labels
	ISOLayout   = "2006-01-02" // human input
)

// Date is a civil calendar date. It carries no time zone; the zero value is invalid.
type Date struct {
	t time.Time // always midnight UTC
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate accepts either YYYYMMDD or YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{KeyLayout, ISOLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: expected YYYYMMDD or YYYY-MM-DD", s)
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Key formats d as YYYYMMDD. Lexicographic order of keys equals chronological order.
func (d Date) Key() string { return d.t.Format(KeyLayout) }

// Label formats d as MM/DD.
func (d Date) Label() string { return d.t.Format(LabelLayout) }

// String formats d as YYYY-MM-DD.
func (d Date) String() string { return d.t.Format(ISOLayout) }

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// DaysSince returns the number of calendar days from o to d (negative if d is before o).
func (d Date) DaysSince(o Date) int {
	return int(d.t.Sub(o.t).Hours() / 24)
}

// Before reports whether d is before o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After reports whether d is after o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal reports whether d and o are the same day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), 0, 0, 0, 0, loc)
}

// MinDate returns the earlier of a and b.
func MinDate(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// DateRange returns every date from start to end inclusive. It is empty when end is before start.
func DateRange(start, end Date) []Date {
	n := end.DaysSince(start)
	if n < 0 {
		return nil
	}
	dates := make([]Date, 0, n+1)
	for i := 0; i <= n; i++ {
		dates = append(dates, start.AddDays(i))
	}
	return dates
}

// MarshalJSON encodes d as "YYYYMMDD", the format the snapshot files have always used.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Key() + `"`), nil
}

// UnmarshalJSON decodes "YYYYMMDD" or "YYYY-MM-DD"; an empty string yields the zero date.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
