package wallpaper

import (
	"errors"
	"fmt"
)

var (
	// ErrWallpaper is the kind of every error returned by a Setter.
	ErrWallpaper = errors.New("set wallpaper failed")

	// ErrUnsupportedPlatform is returned on hosts with no known mechanism.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// Error describes a failed attempt to apply a wallpaper.
type Error struct {
	// Setter is the name of the variant that failed.
	Setter string

	// Path is the picture that was being applied.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("set wallpaper (%s): %v", e.Setter, e.Err)
	}
	return fmt.Sprintf("set wallpaper %s (%s): %v", e.Path, e.Setter, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrWallpaper.
func (e *Error) Is(target error) bool {
	return target == ErrWallpaper
}
