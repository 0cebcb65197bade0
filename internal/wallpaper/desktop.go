package wallpaper

import (
	"net/url"
	"strings"
)

// fileURI returns abs as a file:// URI, escaping it as gsettings expects.
func fileURI(abs string) string {
	u := url.URL{Scheme: "file", Path: abs}
	return u.String()
}

func newGNOME(o *options) Setter {
	return &CommandSetter{
		name: "gnome",
		commands: func(abs string) []command {
			uri := fileURI(abs)
			return []command{
				{argv: []string{"gsettings", "set", "org.gnome.desktop.background", "picture-uri", uri}},
				{argv: []string{"gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", uri}, optional: true},
				{argv: []string{"gsettings", "set", "org.gnome.desktop.background", "picture-options", "zoom"}, optional: true},
			}
		},
		run:    o.run,
		logger: o.logger,
	}
}

func newCinnamon(o *options) Setter {
	return &CommandSetter{
		name: "cinnamon",
		commands: func(abs string) []command {
			return []command{
				{argv: []string{"gsettings", "set", "org.cinnamon.desktop.background", "picture-uri", fileURI(abs)}},
			}
		},
		run:    o.run,
		logger: o.logger,
	}
}

func newMATE(o *options) Setter {
	return &CommandSetter{
		name: "mate",
		commands: func(abs string) []command {
			return []command{
				{argv: []string{"gsettings", "set", "org.mate.background", "picture-filename", abs}},
			}
		},
		run:    o.run,
		logger: o.logger,
	}
}

func newSway(o *options) Setter {
	return &CommandSetter{
		name: "sway",
		commands: func(abs string) []command {
			return []command{
				{argv: []string{"swaymsg", "output", "*", "bg", abs, "fill"}},
			}
		},
		run:    o.run,
		logger: o.logger,
	}
}

func newFeh(o *options) Setter {
	return &CommandSetter{
		name: "feh",
		commands: func(abs string) []command {
			return []command{
				{argv: []string{"feh", "--no-fehbg", "--bg-fill", abs}},
			}
		},
		run:    o.run,
		logger: o.logger,
	}
}

// macOSScript tells every desktop to show the picture.
func macOSScript(abs string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(abs)
	return `tell application "System Events" to tell every desktop to set picture to "` + escaped + `"`
}

func newMacOS(o *options) Setter {
	return &CommandSetter{
		name: "macos",
		commands: func(abs string) []command {
			return []command{
				{argv: []string{"osascript", "-e", macOSScript(abs)}},
			}
		},
		run:    o.run,
		logger: o.logger,
	}
}

// ForDesktop returns the Setter for a linux desktop session name as found in
// XDG_CURRENT_DESKTOP, which may hold several colon separated entries.
// Unknown sessions fall back to feh.
func ForDesktop(desktop string, opts ...Option) Setter {
	o := newOptions(opts)
	return forDesktop(desktop, o)
}

func forDesktop(desktop string, o *options) Setter {
	for _, entry := range strings.Split(strings.ToLower(desktop), ":") {
		switch strings.TrimSpace(entry) {
		case "gnome", "gnome-classic", "ubuntu", "unity", "pantheon", "budgie", "budgie-desktop":
			return newGNOME(o)
		case "x-cinnamon", "cinnamon":
			return newCinnamon(o)
		case "mate":
			return newMATE(o)
		case "kde", "plasma":
			return newPlasma(o)
		case "sway":
			return newSway(o)
		}
	}
	return newFeh(o)
}
