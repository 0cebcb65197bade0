package model

import (
	"time"

	"github.com/waeller/apod-wallpaper/internal/archive"
	"github.com/waeller/apod-wallpaper/internal/imageinfo"
	"github.com/waeller/apod-wallpaper/internal/store"
)

// Run is the record of one invocation.
// Steps fill in their fields as they complete; a field left at its zero value
// means the step did not get that far.
type Run struct {
	// Mode is the requested mode.
	Mode Mode `json:"mode"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Date is the archive date of the page. It is nil for today's page.
	Date *archive.Date `json:"date,omitempty"`

	// PageName is the last page that was fetched.
	PageName string `json:"page_name,omitempty"`

	// Attempts is the number of pages fetched while locating the picture.
	Attempts int `json:"attempts"`

	// ImagePath is the raw href found on the page.
	ImagePath string `json:"image_path,omitempty"`

	// Found reports whether the page carried a picture.
	Found bool `json:"found"`

	// ImageURL is the absolute address the picture was downloaded from.
	ImageURL string `json:"image_url,omitempty"`

	// Saved describes the downloaded file.
	Saved *store.Saved `json:"saved,omitempty"`

	// Info is the decoded picture summary, when it could be read.
	Info *imageinfo.Info `json:"info,omitempty"`

	// Setter is the name of the wallpaper mechanism that was used.
	Setter string `json:"setter,omitempty"`

	// WallpaperSet reports whether the wallpaper was applied.
	WallpaperSet bool `json:"wallpaper_set"`

	// Steps lists the names of the steps that ran, in order.
	Steps []string `json:"steps,omitempty"`

	// Error holds the message of the error that ended the run.
	Error string `json:"error,omitempty"`
}

// NewRun returns a Run for mode starting at now.
func NewRun(mode Mode, now time.Time) *Run {
	return &Run{
		Mode:      mode,
		StartedAt: now,
	}
}

// DateLabel returns the date as YYYY-MM-DD, or "today" for today's page.
func (r *Run) DateLabel() string {
	if r.Date == nil {
		return "today"
	}
	return r.Date.String()
}
