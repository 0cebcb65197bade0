// Package log builds the program's slog logger.
//
// Handler wraps any slog.Handler and rewrites a few attribute kinds so the
// text output stays readable:
//   - integer attributes whose key ends in "bytes" or "size" are shown as
//     humanized sizes ("1.5 MB"); negative values, used for unknown
//     lengths, become "unknown"
//   - durations are rounded to the millisecond
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	logger.Debug("image saved", "path", p, "bytes", n, "elapsed", d)
package log
