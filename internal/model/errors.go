package model

import "errors"

var (
	// ErrNegativeDays is returned by ParseMode for a negative day count.
	ErrNegativeDays = errors.New("days ago must not be negative")

	// ErrNotFixed is returned by Mode.Date for modes without a fixed date.
	ErrNotFixed = errors.New("mode has no fixed date")
)
