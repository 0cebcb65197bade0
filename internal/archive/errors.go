package archive

import "errors"

// Date validation errors.
// These are returned by Date.Validate when a date cannot map to an archive page.
var (
	// ErrDateOutOfRange is returned for dates before the first archive page
	// or after the most recent page that is expected to be published.
	ErrDateOutOfRange = errors.New("date is outside the archive range")

	// ErrDateInGap is returned for dates inside the unpublished gap in
	// June 1995.
	ErrDateInGap = errors.New("date falls in the archive gap")
)
