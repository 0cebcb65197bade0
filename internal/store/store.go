package store

import (
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/waeller/apod-wallpaper/internal/archive"
)

const (
	// DefaultDir is the download directory, relative to the working directory.
	DefaultDir = "download"

	// FilePrefix starts every stored file name.
	FilePrefix = "apod-"

	// dirPerm and filePerm are the modes for created directories and files.
	dirPerm  = 0o750
	filePerm = 0o644
)

// Store persists downloaded pictures.
type Store struct {
	// fs is the filesystem files are written to.
	fs afero.Fs

	// dir is the download directory.
	dir string

	// now returns the current time, used when no date is given.
	now func() time.Time

	// progress receives a progress bar while saving. Nil disables it.
	progress io.Writer

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem. The default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithProgress renders a progress bar to w while saving.
func WithProgress(w io.Writer) Option {
	return func(s *Store) {
		s.progress = w
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store that writes into dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		fs:     afero.NewOsFs(),
		dir:    dir,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the download directory.
func (s *Store) Dir() string {
	return s.dir
}

// Fs returns the filesystem the store writes to.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// Saved describes a stored picture.
type Saved struct {
	// Path is the local file path.
	Path string `json:"path"`

	// Bytes is the number of bytes written.
	Bytes int64 `json:"bytes"`

	// Elapsed is the wall-clock time spent streaming the body.
	Elapsed time.Duration `json:"elapsed"`
}

// FileName returns the file name for a picture at imagePath fetched for d.
// A nil d means the current UTC date. The extension is taken from imagePath.
func (s *Store) FileName(imagePath string, d *archive.Date) string {
	date := archive.Today(s.now())
	if d != nil {
		date = *d
	}
	return FilePrefix + date.String() + path.Ext(imagePath)
}

// Path returns the full local path for a picture at imagePath fetched for d.
func (s *Store) Path(imagePath string, d *archive.Date) string {
	return filepath.Join(s.dir, s.FileName(imagePath, d))
}

// Save streams body into the file for imagePath and d, creating the
// download directory if needed. size is the expected length, or -1 if
// unknown; it only drives the progress bar. Save does not close body.
func (s *Store) Save(imagePath string, d *archive.Date, body io.Reader, size int64) (*Saved, error) {
	if err := s.fs.MkdirAll(s.dir, dirPerm); err != nil {
		return nil, &StorageError{Op: "mkdir", Path: s.dir, Err: err}
	}

	target := s.Path(imagePath, d)
	f, err := s.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return nil, &StorageError{Op: "create", Path: target, Err: err}
	}

	start := time.Now()
	written, copyErr := s.copy(f, body, size)
	elapsed := time.Since(start)

	// Close even after a failed copy so the handle is released; the partial
	// file is left for the next run to overwrite.
	closeErr := f.Close()
	if copyErr != nil {
		return nil, &StorageError{Op: "write", Path: target, Err: copyErr}
	}
	if closeErr != nil {
		return nil, &StorageError{Op: "close", Path: target, Err: closeErr}
	}

	s.logger.Info("image saved",
		"path", target,
		"bytes", written,
		"elapsed", elapsed,
	)

	return &Saved{Path: target, Bytes: written, Elapsed: elapsed}, nil
}

// copy streams body into w, through a progress bar when one is configured.
func (s *Store) copy(w io.Writer, body io.Reader, size int64) (int64, error) {
	if s.progress == nil {
		return io.Copy(w, body)
	}

	p := mpb.New(
		mpb.WithOutput(s.progress),
		mpb.WithWidth(64),
		mpb.WithRefreshRate(100*time.Millisecond),
	)
	bar := newBar(p, size)

	// The proxy stays open; closing it would close body.
	written, err := io.Copy(w, bar.ProxyReader(body))

	if err != nil {
		bar.Abort(false)
	} else {
		// Completes bars with an unknown or wrong total.
		bar.SetTotal(-1, true)
	}
	p.Wait()

	return written, err
}

// newBar creates the download bar. A non-positive size leaves the total open.
func newBar(p *mpb.Progress, size int64) *mpb.Bar {
	barStyle := mpb.BarStyle().Lbound("╢").Filler("█").Tip("█").Padding("░").Rbound("╟")

	total := size
	if total < 0 {
		total = 0
	}

	name := "Downloading"
	return p.New(total,
		barStyle,
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight}),
			decor.CountersKibiByte("% .2f / % .2f"),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.AverageSpeed(decor.SizeB1024(0), "% .2f"), "done"),
		),
	)
}
