// Package wallpaper applies a local picture as the desktop background.
//
// Every platform is reached through the same Setter interface. New returns
// the variant for the host:
//
//   - linux: chosen from the desktop session (XDG_CURRENT_DESKTOP):
//     gsettings for GNOME, Cinnamon and MATE, the Plasma shell D-Bus
//     scripting API for KDE, swaymsg for sway, and feh for anything else
//   - darwin: osascript driving System Events
//   - windows: SystemParametersInfoW from user32.dll
//   - everything else: a Setter that always fails with ErrUnsupportedPlatform
//
// Setters never touch the picture file itself, so a failure leaves the
// downloaded file in place.
package wallpaper
