//go:build !linux && !darwin && !windows

package wallpaper

// New returns a Setter that reports the platform as unsupported.
func New(_ ...Option) Setter {
	return Unsupported()
}
