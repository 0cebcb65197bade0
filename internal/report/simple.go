package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/waeller/apod-wallpaper/internal/model"
)

// SimpleWriter outputs one aligned "Label: value" line per fact.
type SimpleWriter struct {
	baseWriter

	// verbose adds the attempts and the steps that ran.
	verbose bool

	title cases.Caser
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the extra lines.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		title:      cases.Title(language.English),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements Writer.
func (w *SimpleWriter) Write(run *model.Run) (int, error) {
	var sb strings.Builder

	line(&sb, "Mode", w.title.String(run.Mode.String()))
	if run.PageName != "" {
		line(&sb, "Page", fmt.Sprintf("%s (%s)", run.PageName, run.DateLabel()))
	}
	if w.verbose {
		line(&sb, "Attempts", fmt.Sprintf("%d", run.Attempts))
	}

	switch {
	case run.PageName == "":
		// Stopped before any page was fetched.
	case !run.Found:
		line(&sb, "Picture", "none, nothing to do")
	default:
		w.writePicture(&sb, run)
	}

	if w.verbose && len(run.Steps) > 0 {
		line(&sb, "Steps", strings.Join(run.Steps, ", "))
	}
	if run.Error != "" {
		line(&sb, "Status", "failed")
	}

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writePicture(sb *strings.Builder, run *model.Run) {
	picture := run.ImagePath
	if run.ImageURL != "" {
		picture = run.ImageURL
	}
	line(sb, "Picture", picture)

	if run.Saved != nil {
		line(sb, "Saved", fmt.Sprintf("%s (%s in %s)",
			run.Saved.Path,
			humanize.Bytes(uint64(max(run.Saved.Bytes, 0))),
			run.Saved.Elapsed.Round(time.Millisecond),
		))
	}
	if run.Info != nil {
		line(sb, "Image", run.Info.String())
		if run.Info.Copyright != "" {
			line(sb, "Credit", run.Info.Copyright)
		}
	}

	switch {
	case run.WallpaperSet:
		line(sb, "Wallpaper", "set ("+run.Setter+")")
	case run.Setter != "":
		line(sb, "Wallpaper", "not set ("+run.Setter+")")
	}
}

func line(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "%-10s %s\n", label+":", value)
}
