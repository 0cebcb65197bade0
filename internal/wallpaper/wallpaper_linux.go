//go:build linux

package wallpaper

import "os"

// New returns the Setter for the current desktop session.
func New(opts ...Option) Setter {
	o := newOptions(opts)
	desktop := o.desktop
	if desktop == "" {
		desktop = os.Getenv("XDG_CURRENT_DESKTOP")
	}
	if desktop == "" {
		desktop = os.Getenv("DESKTOP_SESSION")
	}
	if desktop == "" && os.Getenv("SWAYSOCK") != "" {
		desktop = "sway"
	}
	return forDesktop(desktop, o)
}
