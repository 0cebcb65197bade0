package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrEmptyDownloadDir is returned when no download directory is set
	// and the Pictures directory is not requested.
	ErrEmptyDownloadDir = errors.New("download directory must not be empty")

	// ErrInvalidMaxPageSize is returned when the page size limit is not positive.
	ErrInvalidMaxPageSize = errors.New("invalid max page size: must be positive")

	// ErrEmptyUserAgent is returned when the User-Agent is blank.
	ErrEmptyUserAgent = errors.New("user agent must not be empty")

	// ErrInvalidBaseURL is returned when the archive address is not an
	// absolute http or https URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http(s) URL")
)
