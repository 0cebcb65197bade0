//go:build linux

package wallpaper

import (
	"context"
	"testing"
)

// TestNewLinux tests that an explicit desktop overrides session detection.
func TestNewLinux(t *testing.T) {
	t.Parallel()

	f := &fakeRunner{}
	s := New(WithDesktop("MATE"), WithRunner(f.run), WithLogger(discardLogger()))
	if s.Name() != "mate" {
		t.Fatalf("expected mate setter, got %q", s.Name())
	}

	if err := s.Set(context.Background(), "/tmp/apod.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.calls) == 0 || f.calls[0][0] != "gsettings" {
		t.Errorf("expected a gsettings call, got %v", f.calls)
	}
}
