package report

import (
	"io"

	"github.com/waeller/apod-wallpaper/internal/model"
)

// Writer prints a finished run.
type Writer interface {
	// Write outputs the run and returns the number of bytes written.
	Write(run *model.Run) (int, error)
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
