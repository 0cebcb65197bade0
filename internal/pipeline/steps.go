package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/afero"

	"github.com/waeller/apod-wallpaper/internal/archive"
	"github.com/waeller/apod-wallpaper/internal/imageinfo"
	"github.com/waeller/apod-wallpaper/internal/model"
	"github.com/waeller/apod-wallpaper/internal/scraper"
	"github.com/waeller/apod-wallpaper/internal/source"
	"github.com/waeller/apod-wallpaper/internal/store"
	"github.com/waeller/apod-wallpaper/internal/wallpaper"
)

// PageSource fetches archive pages and pictures. *source.Client implements it.
type PageSource interface {
	FetchPage(ctx context.Context, pageName string) (io.ReadCloser, error)
	FetchImage(ctx context.Context, imagePath string) (*source.Image, error)
}

// ImageSaver stores a downloaded picture. *store.Store implements it.
type ImageSaver interface {
	Save(imagePath string, d *archive.Date, body io.Reader, size int64) (*store.Saved, error)
}

// notFound skips the steps that need a picture.
type notFound struct{}

// Skip implements Skipper.
func (notFound) Skip(run *model.Run) bool {
	return !run.Found || run.ImagePath == ""
}

// LocateStep finds the picture path for the run's mode and records it on the
// run. It never downloads anything.
//
// Today mode fetches the current page once. Yesterday and days-ago modes
// resolve their date against the step's clock and reject dates outside the
// archive, or inside one of its gaps, before any request is made. A fetched
// page whose first link after the archive link is not a picture leaves
// run.Found false and is not an error in these modes.
//
// Random mode draws candidate dates from the sampler until a page yields a
// picture. Pages without a picture and pages the server reports as missing
// (404) are drawn again. Any other fetch failure, including other HTTP
// statuses, ends the step with that error, as does cancellation of ctx, which
// is checked before every draw. run.Attempts counts every page requested.
type LocateStep struct {
	source  PageSource
	sampler *archive.Sampler
	now     func() time.Time
	logger  *slog.Logger
}

// LocateStepOption configures a LocateStep.
type LocateStepOption func(*LocateStep)

// WithLocateSampler sets the date sampler used in random mode.
func WithLocateSampler(sampler *archive.Sampler) LocateStepOption {
	return func(s *LocateStep) {
		s.sampler = sampler
	}
}

// WithLocateClock sets the clock used to resolve relative dates.
func WithLocateClock(now func() time.Time) LocateStepOption {
	return func(s *LocateStep) {
		s.now = now
	}
}

// WithLocateLogger sets a custom logger for the locate step.
func WithLocateLogger(logger *slog.Logger) LocateStepOption {
	return func(s *LocateStep) {
		s.logger = logger
	}
}

// NewLocateStep creates a locate step reading pages from src.
func NewLocateStep(src PageSource, opts ...LocateStepOption) *LocateStep {
	s := &LocateStep{
		source: src,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sampler == nil {
		s.sampler = archive.NewSampler(archive.WithClock(s.now))
	}
	return s
}

// Name returns the step name.
func (s *LocateStep) Name() string {
	return "locate"
}

// Do executes the locate step.
func (s *LocateStep) Do(ctx context.Context, run *model.Run) error {
	switch run.Mode.Kind {
	case model.KindRandom:
		return s.random(ctx, run)
	case model.KindYesterday, model.KindDaysAgo:
		d, err := run.Mode.Date(s.now())
		if err != nil {
			return err
		}
		return s.once(ctx, run, &d, archive.PageName(d))
	default:
		return s.once(ctx, run, nil, archive.TodayPage)
	}
}

// once fetches a single page. A page without a picture is not an error.
func (s *LocateStep) once(ctx context.Context, run *model.Run, d *archive.Date, page string) error {
	run.Date = d
	run.PageName = page
	run.Attempts++

	path, ok, err := s.extract(ctx, page)
	if err != nil {
		return err
	}
	s.record(run, path, ok)
	return nil
}

// random draws dates until a page yields a picture. A missing page counts as
// a page without a picture.
func (s *LocateStep) random(ctx context.Context, run *model.Run) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		d := s.sampler.Candidate()
		page := archive.PageName(d)
		run.Date = &d
		run.PageName = page
		run.Attempts++

		path, ok, err := s.extract(ctx, page)
		if err != nil {
			var fe *source.FetchError
			if errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound {
				s.logger.Debug("page unavailable, drawing again", "page", page, "status", fe.StatusCode)
				continue
			}
			return err
		}
		if s.record(run, path, ok) {
			return nil
		}
		s.logger.Debug("no picture on page, drawing again", "page", page, "href", path)
	}
}

func (s *LocateStep) extract(ctx context.Context, page string) (string, bool, error) {
	body, err := s.source.FetchPage(ctx, page)
	if err != nil {
		return "", false, err
	}
	defer body.Close()

	path, ok := scraper.ExtractImagePath(body)
	return path, ok, nil
}

// record stores the extracted path and reports whether it is a picture.
func (s *LocateStep) record(run *model.Run, path string, ok bool) bool {
	run.ImagePath = path
	run.Found = ok && scraper.IsImagePath(path)
	s.logger.Debug("page scanned", "page", run.PageName, "href", path, "found", run.Found)
	return run.Found
}

// DownloadStep fetches the located picture and stores it.
type DownloadStep struct {
	notFound
	source PageSource
	store  ImageSaver
	logger *slog.Logger
}

// NewDownloadStep creates a download step.
func NewDownloadStep(src PageSource, st ImageSaver, logger *slog.Logger) *DownloadStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &DownloadStep{source: src, store: st, logger: logger}
}

// Name returns the step name.
func (s *DownloadStep) Name() string {
	return "download"
}

// Do executes the download step.
func (s *DownloadStep) Do(ctx context.Context, run *model.Run) error {
	img, err := s.source.FetchImage(ctx, run.ImagePath)
	if err != nil {
		return err
	}
	defer img.Body.Close()

	run.ImageURL = img.URL
	s.logger.Debug("downloading picture", "url", img.URL, "size", img.Size)

	saved, err := s.store.Save(run.ImagePath, run.Date, img.Body, img.Size)
	if err != nil {
		return err
	}
	run.Saved = saved
	return nil
}

// InspectStep reads the stored picture's dimensions and EXIF summary.
// Failures are logged and never stop the run.
type InspectStep struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewInspectStep creates an inspect step reading from fs.
func NewInspectStep(fs afero.Fs, logger *slog.Logger) *InspectStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &InspectStep{fs: fs, logger: logger}
}

// Name returns the step name.
func (s *InspectStep) Name() string {
	return "inspect"
}

// Skip implements Skipper.
func (s *InspectStep) Skip(run *model.Run) bool {
	return run.Saved == nil
}

// Do executes the inspect step.
func (s *InspectStep) Do(_ context.Context, run *model.Run) error {
	info, err := imageinfo.InspectFile(s.fs, run.Saved.Path)
	if err != nil {
		s.logger.Debug("picture not inspected", "path", run.Saved.Path, "error", err)
		return nil
	}
	run.Info = info
	s.logger.Debug("picture inspected", "path", run.Saved.Path, "info", info.String())
	return nil
}

// WallpaperStep applies the stored picture as the desktop background.
type WallpaperStep struct {
	setter wallpaper.Setter
	logger *slog.Logger
}

// NewWallpaperStep creates a wallpaper step using setter.
func NewWallpaperStep(setter wallpaper.Setter, logger *slog.Logger) *WallpaperStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &WallpaperStep{setter: setter, logger: logger}
}

// Name returns the step name.
func (s *WallpaperStep) Name() string {
	return "wallpaper"
}

// Skip implements Skipper.
func (s *WallpaperStep) Skip(run *model.Run) bool {
	return run.Saved == nil
}

// Do executes the wallpaper step. The stored file is kept on failure.
func (s *WallpaperStep) Do(ctx context.Context, run *model.Run) error {
	run.Setter = s.setter.Name()
	if err := s.setter.Set(ctx, run.Saved.Path); err != nil {
		return err
	}
	run.WallpaperSet = true
	s.logger.Debug("wallpaper applied", "setter", run.Setter, "path", run.Saved.Path)
	return nil
}

// DefaultPipelineConfig holds the settings of the default pipeline.
type DefaultPipelineConfig struct {
	// Now is the clock used for relative dates and the random range.
	Now func() time.Time

	// Seed seeds the random mode sampler. Zero means an unseeded source.
	Seed uint64
}

// DefaultPipelineOption configures DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineClock sets the clock.
func WithPipelineClock(now func() time.Time) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Now = now
	}
}

// WithPipelineSeed sets the random mode seed.
func WithPipelineSeed(seed uint64) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Seed = seed
	}
}

// DefaultPipeline creates the locate, download, inspect and wallpaper
// pipeline over the given source, store and setter.
func DefaultPipeline(
	src *source.Client,
	st *store.Store,
	setter wallpaper.Setter,
	pipelineOpts []Option,
	configOpts ...DefaultPipelineOption,
) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		Now: time.Now,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	sampler := archive.NewSampler(
		archive.WithClock(cfg.Now),
		archive.WithSeed(cfg.Seed),
	)

	p.AddSteps(
		NewLocateStep(src,
			WithLocateSampler(sampler),
			WithLocateClock(cfg.Now),
			WithLocateLogger(p.logger),
		),
		NewDownloadStep(src, st, p.logger),
		NewInspectStep(st.Fs(), p.logger),
		NewWallpaperStep(setter, p.logger),
	)
	return p
}
