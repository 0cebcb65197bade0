package wallpaper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeRunner records commands instead of running them.
type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string
	fail  func(argv []string) error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) error {
	argv := append([]string{name}, args...)
	f.mu.Lock()
	f.calls = append(f.calls, argv)
	f.mu.Unlock()
	if f.fail != nil {
		return f.fail(argv)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestForDesktop tests desktop session detection.
func TestForDesktop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desktop string
		want    string
	}{
		{desktop: "GNOME", want: "gnome"},
		{desktop: "ubuntu:GNOME", want: "gnome"},
		{desktop: "Unity", want: "gnome"},
		{desktop: "X-Cinnamon", want: "cinnamon"},
		{desktop: "MATE", want: "mate"},
		{desktop: "KDE", want: "kde"},
		{desktop: "sway", want: "sway"},
		{desktop: "i3", want: "feh"},
		{desktop: "", want: "feh"},
	}

	for _, tt := range tests {
		t.Run(tt.desktop, func(t *testing.T) {
			t.Parallel()

			got := ForDesktop(tt.desktop, WithLogger(discardLogger())).Name()
			if got != tt.want {
				t.Errorf("ForDesktop(%q) = %q, want %q", tt.desktop, got, tt.want)
			}
		})
	}
}

// TestCommandSetter tests the command based variants.
func TestCommandSetter(t *testing.T) {
	t.Parallel()

	t.Run("gnome sets picture uri with absolute file uri", func(t *testing.T) {
		t.Parallel()

		f := &fakeRunner{}
		s := ForDesktop("GNOME", WithRunner(f.run), WithLogger(discardLogger()))

		if err := s.Set(context.Background(), "/tmp/apod dir/apod-2025-01-01.jpg"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.calls) != 3 {
			t.Fatalf("expected 3 commands, got %d", len(f.calls))
		}
		first := f.calls[0]
		want := "file:///tmp/apod%20dir/apod-2025-01-01.jpg"
		if first[0] != "gsettings" || first[3] != "picture-uri" || first[4] != want {
			t.Errorf("unexpected first command: %v", first)
		}
	})

	t.Run("relative path is made absolute", func(t *testing.T) {
		t.Parallel()

		f := &fakeRunner{}
		s := ForDesktop("MATE", WithRunner(f.run), WithLogger(discardLogger()))

		if err := s.Set(context.Background(), "download/apod-2025-01-01.jpg"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := f.calls[0][len(f.calls[0])-1]
		if !filepath.IsAbs(got) {
			t.Errorf("expected absolute path, got %q", got)
		}
		if !strings.HasSuffix(got, filepath.Join("download", "apod-2025-01-01.jpg")) {
			t.Errorf("unexpected path %q", got)
		}
	})

	t.Run("optional command failure is ignored", func(t *testing.T) {
		t.Parallel()

		f := &fakeRunner{fail: func(argv []string) error {
			if argv[3] == "picture-uri-dark" {
				return errors.New("no such key")
			}
			return nil
		}}
		s := ForDesktop("GNOME", WithRunner(f.run), WithLogger(discardLogger()))

		if err := s.Set(context.Background(), "/tmp/a.jpg"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.calls) != 3 {
			t.Errorf("expected all 3 commands to run, got %d", len(f.calls))
		}
	})

	t.Run("required command failure is reported", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("swaymsg: exit status 1")
		f := &fakeRunner{fail: func([]string) error { return cause }}
		s := ForDesktop("sway", WithRunner(f.run), WithLogger(discardLogger()))

		err := s.Set(context.Background(), "/tmp/a.jpg")
		if !errors.Is(err, ErrWallpaper) {
			t.Errorf("expected ErrWallpaper, got %v", err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("expected wrapped cause, got %v", err)
		}
		var werr *Error
		if !errors.As(err, &werr) {
			t.Fatalf("expected *Error, got %T", err)
		}
		if werr.Setter != "sway" || werr.Path != "/tmp/a.jpg" {
			t.Errorf("unexpected error fields: %+v", werr)
		}
	})

	t.Run("macos script quotes the path", func(t *testing.T) {
		t.Parallel()

		f := &fakeRunner{}
		s := newMacOS(newOptions([]Option{WithRunner(f.run), WithLogger(discardLogger())}))

		if err := s.Set(context.Background(), `/tmp/a "b".jpg`); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		argv := f.calls[0]
		if argv[0] != "osascript" || argv[1] != "-e" {
			t.Fatalf("unexpected command: %v", argv)
		}
		if !strings.Contains(argv[2], `set picture to "/tmp/a \"b\".jpg"`) {
			t.Errorf("unexpected script: %s", argv[2])
		}
	})
}

// TestPlasmaSetter tests the KDE variant without a session bus.
func TestPlasmaSetter(t *testing.T) {
	t.Parallel()

	t.Run("evaluates script with file uri", func(t *testing.T) {
		t.Parallel()

		var got string
		p := &PlasmaSetter{
			evaluate: func(_ context.Context, script string) error {
				got = script
				return nil
			},
			logger: discardLogger(),
		}

		if err := p.Set(context.Background(), "/tmp/apod-2025-01-01.jpg"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, `"file:///tmp/apod-2025-01-01.jpg"`) {
			t.Errorf("script does not reference picture: %s", got)
		}
		if !strings.Contains(got, "org.kde.image") {
			t.Errorf("script does not select image plugin: %s", got)
		}
	})

	t.Run("bus failure is reported", func(t *testing.T) {
		t.Parallel()

		p := &PlasmaSetter{
			evaluate: func(context.Context, string) error { return errors.New("no session bus") },
			logger:   discardLogger(),
		}

		err := p.Set(context.Background(), "/tmp/a.jpg")
		if !errors.Is(err, ErrWallpaper) {
			t.Errorf("expected ErrWallpaper, got %v", err)
		}
	})
}

// TestUnsupported tests the fallback Setter.
func TestUnsupported(t *testing.T) {
	t.Parallel()

	err := Unsupported().Set(context.Background(), "/tmp/a.jpg")
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
	}
	if !errors.Is(err, ErrWallpaper) {
		t.Errorf("expected ErrWallpaper, got %v", err)
	}
}
