package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/waeller/apod-wallpaper/internal/source"
	"github.com/waeller/apod-wallpaper/internal/store"
)

const (
	// AppName is used for the Pictures subdirectory.
	AppName = "apod-wallpaper"

	// DefaultTimeout bounds each HTTP request. Full size pictures can be
	// tens of megabytes.
	DefaultTimeout = source.DefaultTimeout
)

// Config holds all options of one run. It is a single flat struct filled
// from CLI flags and passed down explicitly.
type Config struct {
	// Mode is the raw positional argument; see model.ParseMode.
	Mode string

	// DownloadDir is where pictures are stored, relative to the working
	// directory unless absolute.
	DownloadDir string

	// UsePictures stores pictures under the user's Pictures directory
	// instead of DownloadDir.
	UsePictures bool

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Progress shows a progress bar on stderr while downloading.
	Progress bool

	// JSON prints the run record as JSON instead of status lines.
	JSON bool

	// Seed seeds random mode. Zero means a random seed.
	Seed uint64

	// Verbose enables debug logging.
	Verbose bool

	// BaseURL is the archive root that page names and picture paths are
	// resolved against.
	BaseURL string

	// UserAgent is sent with every request.
	UserAgent string

	// MaxPageSize caps how much of a page is read.
	MaxPageSize int64
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		DownloadDir: store.DefaultDir,
		Timeout:     DefaultTimeout,
		BaseURL:     source.BaseURL,
		UserAgent:   source.DefaultUserAgent,
		MaxPageSize: source.DefaultMaxPageSize,
	}
}

// PicturesDir returns the apod-wallpaper folder inside the XDG Pictures
// directory, e.g. ~/Pictures/apod-wallpaper on Linux.
func PicturesDir() string {
	return filepath.Join(xdg.UserDirs.Pictures, AppName)
}

// DownloadPath returns the directory pictures are stored in.
func (c *Config) DownloadPath() string {
	if c.UsePictures {
		return PicturesDir()
	}
	return c.DownloadDir
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if !c.UsePictures && strings.TrimSpace(c.DownloadDir) == "" {
		return ErrEmptyDownloadDir
	}
	if c.MaxPageSize <= 0 {
		return ErrInvalidMaxPageSize
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		return ErrEmptyUserAgent
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	return nil
}
