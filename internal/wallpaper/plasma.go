package wallpaper

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/godbus/dbus/v5"
)

const (
	plasmaDest   = "org.kde.plasmashell"
	plasmaPath   = dbus.ObjectPath("/PlasmaShell")
	plasmaMethod = "org.kde.PlasmaShell.evaluateScript"
)

// plasmaScript sets the image plugin on every Plasma desktop containment.
func plasmaScript(abs string) string {
	return fmt.Sprintf(`var all = desktops();
for (var i = 0; i < all.length; i++) {
	var d = all[i];
	d.wallpaperPlugin = "org.kde.image";
	d.currentConfigGroup = ["Wallpaper", "org.kde.image", "General"];
	d.writeConfig("Image", %s);
}`, strconv.Quote(fileURI(abs)))
}

// PlasmaSetter applies a wallpaper through the Plasma shell scripting API on
// the D-Bus session bus.
type PlasmaSetter struct {
	evaluate func(ctx context.Context, script string) error
	logger   *slog.Logger
}

func newPlasma(o *options) Setter {
	return &PlasmaSetter{
		evaluate: evaluateOnSessionBus,
		logger:   o.logger,
	}
}

// Name implements Setter.
func (p *PlasmaSetter) Name() string {
	return "kde"
}

// Set implements Setter.
func (p *PlasmaSetter) Set(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &Error{Setter: p.Name(), Path: path, Err: err}
	}

	p.logger.Debug("calling plasma shell", "dest", plasmaDest, "method", plasmaMethod)
	if err := p.evaluate(ctx, plasmaScript(abs)); err != nil {
		return &Error{Setter: p.Name(), Path: abs, Err: err}
	}
	return nil
}

func evaluateOnSessionBus(ctx context.Context, script string) error {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	call := conn.Object(plasmaDest, plasmaPath).CallWithContext(ctx, plasmaMethod, 0, script)
	if call.Err != nil {
		return fmt.Errorf("%s: %w", plasmaMethod, call.Err)
	}
	return nil
}
