package archive

import (
	"fmt"
	"time"
)

// isoLayout is the calendar date layout used for file names and display.
const isoLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component.
// The zero value is not a valid archive date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate returns the normalized Date for year, month and day.
// Out of range values roll over the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC at the start of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String returns d in ISO form, e.g. 2025-01-01.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// MarshalText implements encoding.TextMarshaler so a Date shows up in JSON
// output as "YYYY-MM-DD".
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Today returns the current UTC calendar date.
func Today(now time.Time) Date {
	return DaysAgo(now, 0)
}

// DaysAgo returns the UTC calendar date n days before now.
// Successive values of n are exactly 24 hours apart since UTC has no
// daylight saving transitions.
func DaysAgo(now time.Time, n int) Date {
	midnight := DateOf(now).Time()
	return DateOf(midnight.AddDate(0, 0, -n))
}

// DaysSinceFirst returns the number of whole days between the first archive
// entry and the UTC calendar date of now. It is negative before First.
func DaysSinceFirst(now time.Time) int {
	return int(Today(now).Time().Sub(First.Time()) / (24 * time.Hour))
}

// DateDaysAgo returns the archive date n days before now and checks it with
// Validate. Offsets reaching past First fail with ErrDateOutOfRange before any
// date arithmetic, so huge values cannot wrap around to a recent date.
func DateDaysAgo(now time.Time, n int) (Date, error) {
	if n < 0 || n > DaysSinceFirst(now) {
		return Date{}, fmt.Errorf("%d days ago: %w", n, ErrDateOutOfRange)
	}
	d := DaysAgo(now, n)
	if err := d.Validate(now); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate reports whether d names a page that exists in the archive as of
// now. It returns ErrDateOutOfRange or ErrDateInGap otherwise.
func (d Date) Validate(now time.Time) error {
	start := d.Time()
	if d.Before(First) || start.After(LatestInstant(now)) {
		return fmt.Errorf("%s: %w", d, ErrDateOutOfRange)
	}
	end := start.Add(24*time.Hour - time.Nanosecond)
	for _, gap := range Gaps {
		if gap.Overlaps(start, end) {
			return fmt.Errorf("%s: %w", d, ErrDateInGap)
		}
	}
	return nil
}
