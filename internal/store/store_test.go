package store

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/waeller/apod-wallpaper/internal/archive"
)

var fixedNow = time.Date(2025, time.January, 4, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) (*Store, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	opts = append([]Option{
		WithFs(fs),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	return New(DefaultDir, opts...), fs
}

// TestFileName tests output file naming.
func TestFileName(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	jan1 := archive.Date{Year: 2025, Month: time.January, Day: 1}

	tests := []struct {
		name      string
		imagePath string
		date      *archive.Date
		want      string
	}{
		{"explicit date jpg", "image/2501/pic.jpg", &jan1, "apod-2025-01-01.jpg"},
		{"explicit date png", "image/2501/pic.png", &jan1, "apod-2025-01-01.png"},
		{"current date when nil", "image/2501/pic.gif", nil, "apod-2025-01-04.gif"},
		{"absolute URL", "https://apod.nasa.gov/apod/image/2501/pic.jpg", &jan1, "apod-2025-01-01.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := s.FileName(tt.imagePath, tt.date); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.imagePath, got, tt.want)
			}
		})
	}

	if s.Dir() != "download" {
		t.Errorf("unexpected dir %q", s.Dir())
	}
	if got := s.Path("image/2501/pic.jpg", &jan1); got != filepath.Join("download", "apod-2025-01-01.jpg") {
		t.Errorf("unexpected path %q", got)
	}
}

// TestSave tests streaming a body to disk.
func TestSave(t *testing.T) {
	t.Parallel()

	jan1 := archive.Date{Year: 2025, Month: time.January, Day: 1}

	t.Run("creates directory and writes file", func(t *testing.T) {
		t.Parallel()

		s, fs := newTestStore(t)
		content := []byte("picture bytes")

		saved, err := s.Save("image/ap250101.jpg", &jan1, bytes.NewReader(content), int64(len(content)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := filepath.Join("download", "apod-2025-01-01.jpg")
		if saved.Path != want {
			t.Errorf("expected path %q, got %q", want, saved.Path)
		}
		if saved.Bytes != int64(len(content)) {
			t.Errorf("expected %d bytes, got %d", len(content), saved.Bytes)
		}
		if saved.Elapsed < 0 {
			t.Errorf("expected non-negative elapsed time, got %s", saved.Elapsed)
		}

		got, err := afero.ReadFile(fs, want)
		if err != nil {
			t.Fatalf("read back failed: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("expected %q, got %q", content, got)
		}
	})

	t.Run("overwrites an existing file for the same date", func(t *testing.T) {
		t.Parallel()

		s, fs := newTestStore(t)

		if _, err := s.Save("a.jpg", &jan1, strings.NewReader("a much longer first version"), -1); err != nil {
			t.Fatalf("first save failed: %v", err)
		}
		if _, err := s.Save("b.jpg", &jan1, strings.NewReader("second"), -1); err != nil {
			t.Fatalf("second save failed: %v", err)
		}

		got, err := afero.ReadFile(fs, s.Path("b.jpg", &jan1))
		if err != nil {
			t.Fatalf("read back failed: %v", err)
		}
		if string(got) != "second" {
			t.Errorf("expected file to be truncated and overwritten, got %q", got)
		}

		entries, err := afero.ReadDir(fs, "download")
		if err != nil {
			t.Fatalf("read dir failed: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected exactly one file, got %d", len(entries))
		}
	})

	t.Run("existing directory is fine", func(t *testing.T) {
		t.Parallel()

		s, fs := newTestStore(t)
		if err := fs.MkdirAll("download", 0o750); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if _, err := s.Save("pic.png", nil, strings.NewReader("x"), 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok, _ := afero.Exists(fs, filepath.Join("download", "apod-2025-01-04.png")); !ok {
			t.Error("expected file named after current date")
		}
	})

	t.Run("nested directory is created", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		s := New(filepath.Join("a", "b", "c"), WithFs(fs))
		saved, err := s.Save("pic.jpg", &jan1, strings.NewReader("x"), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok, _ := afero.Exists(fs, saved.Path); !ok {
			t.Errorf("expected %s to exist", saved.Path)
		}
	})

	t.Run("renders progress", func(t *testing.T) {
		t.Parallel()

		var progress bytes.Buffer
		s, fs := newTestStore(t, WithProgress(&progress))
		content := bytes.Repeat([]byte("x"), 64*1024)

		saved, err := s.Save("pic.jpg", &jan1, bytes.NewReader(content), int64(len(content)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.Bytes != int64(len(content)) {
			t.Errorf("expected %d bytes, got %d", len(content), saved.Bytes)
		}
		if got, _ := afero.ReadFile(fs, saved.Path); len(got) != len(content) {
			t.Errorf("expected %d bytes on disk, got %d", len(content), len(got))
		}
		if progress.Len() == 0 {
			t.Error("expected progress output")
		}
	})

	t.Run("progress leaves the body open", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestStore(t, WithProgress(io.Discard))
		body := &closeRecorder{Reader: strings.NewReader("picture bytes")}
		if _, err := s.Save("pic.jpg", &jan1, body, int64(len("picture bytes"))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if body.closed {
			t.Error("expected Save to leave the body open")
		}
	})

	t.Run("progress with unknown size", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestStore(t, WithProgress(io.Discard))
		saved, err := s.Save("pic.jpg", &jan1, strings.NewReader("unknown length"), -1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.Bytes != int64(len("unknown length")) {
			t.Errorf("unexpected byte count %d", saved.Bytes)
		}
	})
}

// closeRecorder is a body that records whether it was closed.
type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

// failingReader returns an error after a short prefix.
type failingReader struct {
	sent bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.sent {
		return 0, errors.New("connection reset by peer")
	}
	f.sent = true
	return copy(p, "partial"), nil
}

// noCreateFs refuses to open files for writing.
type noCreateFs struct {
	afero.Fs
}

func (noCreateFs) OpenFile(name string, _ int, _ os.FileMode) (afero.File, error) {
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
}

// TestSaveErrors tests storage failure reporting.
func TestSaveErrors(t *testing.T) {
	t.Parallel()

	jan1 := archive.Date{Year: 2025, Month: time.January, Day: 1}

	t.Run("directory cannot be created", func(t *testing.T) {
		t.Parallel()

		s := New("download", WithFs(afero.NewReadOnlyFs(afero.NewMemMapFs())))
		_, err := s.Save("pic.jpg", &jan1, strings.NewReader("x"), 1)
		if !errors.Is(err, ErrStorage) {
			t.Fatalf("expected ErrStorage, got %v", err)
		}

		var se *StorageError
		if !errors.As(err, &se) {
			t.Fatalf("expected *StorageError, got %T", err)
		}
		if se.Op != "mkdir" {
			t.Errorf("expected mkdir op, got %q", se.Op)
		}
	})

	t.Run("file cannot be created", func(t *testing.T) {
		t.Parallel()

		s := New("download", WithFs(&noCreateFs{Fs: afero.NewMemMapFs()}))

		_, err := s.Save("pic.jpg", &jan1, strings.NewReader("x"), 1)
		var se *StorageError
		if !errors.As(err, &se) {
			t.Fatalf("expected *StorageError, got %v", err)
		}
		if se.Op != "create" {
			t.Errorf("expected create op, got %q", se.Op)
		}
		if !errors.Is(err, os.ErrPermission) {
			t.Errorf("expected permission error to be wrapped, got %v", err)
		}
	})

	t.Run("body read fails", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestStore(t)
		_, err := s.Save("pic.jpg", &jan1, &failingReader{}, -1)

		var se *StorageError
		if !errors.As(err, &se) {
			t.Fatalf("expected *StorageError, got %v", err)
		}
		if se.Op != "write" {
			t.Errorf("expected write op, got %q", se.Op)
		}
		if !strings.Contains(se.Error(), "connection reset") {
			t.Errorf("expected cause in message, got %q", se.Error())
		}
	})
}
