//go:build darwin

package wallpaper

// New returns the osascript based Setter.
func New(opts ...Option) Setter {
	return newMacOS(newOptions(opts))
}
