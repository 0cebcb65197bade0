package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/waeller/apod-wallpaper/internal/archive"
)

// Kind is the way a run picks its archive entry.
type Kind int

const (
	// KindToday targets the current picture page.
	KindToday Kind = iota

	// KindRandom draws dates until a page with a picture is found.
	KindRandom

	// KindYesterday targets the entry one day before today.
	KindYesterday

	// KindDaysAgo targets the entry a given number of days before today.
	KindDaysAgo
)

// String returns the lower case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindToday:
		return "today"
	case KindRandom:
		return "random"
	case KindYesterday:
		return "yesterday"
	case KindDaysAgo:
		return "days-ago"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Mode is a parsed mode argument.
type Mode struct {
	Kind Kind `json:"kind"`

	// DaysAgo is the offset for KindDaysAgo. It is 1 for KindYesterday and
	// 0 otherwise.
	DaysAgo int `json:"days_ago,omitempty"`
}

// ParseMode interprets the optional positional argument.
// "random" or "r" selects a random date, "yesterday" or "y" the previous day,
// and a non-negative integer that many days ago. Anything else, including the
// empty string, selects today. A negative integer returns ErrNegativeDays.
func ParseMode(arg string) (Mode, error) {
	switch arg {
	case "random", "r":
		return Mode{Kind: KindRandom}, nil
	case "yesterday", "y":
		return Mode{Kind: KindYesterday, DaysAgo: 1}, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return Mode{Kind: KindToday}, nil
	}
	if n < 0 {
		return Mode{}, fmt.Errorf("%w: %d", ErrNegativeDays, n)
	}
	return Mode{Kind: KindDaysAgo, DaysAgo: n}, nil
}

// Fixed reports whether the mode targets a single known date.
func (m Mode) Fixed() bool {
	return m.Kind == KindYesterday || m.Kind == KindDaysAgo
}

// Date returns the target date of a fixed mode relative to now.
// It returns ErrNotFixed for today and random, and the archive range or gap
// error when the offset does not name an archive entry.
func (m Mode) Date(now time.Time) (archive.Date, error) {
	if !m.Fixed() {
		return archive.Date{}, fmt.Errorf("%s: %w", m, ErrNotFixed)
	}
	return archive.DateDaysAgo(now, m.DaysAgo)
}

// String returns a short label such as "random" or "3 days ago".
func (m Mode) String() string {
	if m.Kind == KindDaysAgo {
		if m.DaysAgo == 1 {
			return "1 day ago"
		}
		return strconv.Itoa(m.DaysAgo) + " days ago"
	}
	return m.Kind.String()
}
