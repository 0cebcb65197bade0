//go:build windows

package wallpaper

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procSystemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

type windowsSetter struct {
	logger *slog.Logger
}

// New returns the user32 based Setter.
func New(opts ...Option) Setter {
	return &windowsSetter{logger: newOptions(opts).logger}
}

// Name implements Setter.
func (w *windowsSetter) Name() string {
	return "windows"
}

// Set implements Setter.
func (w *windowsSetter) Set(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &Error{Setter: w.Name(), Path: path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &Error{Setter: w.Name(), Path: abs, Err: err}
	}

	p, err := windows.UTF16PtrFromString(abs)
	if err != nil {
		return &Error{Setter: w.Name(), Path: abs, Err: err}
	}

	w.logger.Debug("calling SystemParametersInfoW", "path", abs)
	ret, _, callErr := procSystemParametersInfo.Call(
		spiSetDeskWallpaper,
		0,
		uintptr(unsafe.Pointer(p)),
		spifUpdateIniFile|spifSendChange,
	)
	if ret == 0 {
		return &Error{Setter: w.Name(), Path: abs, Err: fmt.Errorf("SystemParametersInfoW: %w", callErr)}
	}
	return nil
}
