package wallpaper

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Setter applies a picture as the desktop background.
type Setter interface {
	// Name identifies the mechanism, e.g. "gnome" or "windows".
	Name() string

	// Set applies the picture at path. Relative paths are made absolute.
	Set(ctx context.Context, path string) error
}

// Runner runs an external command and returns an error describing any
// failure, including the command's output.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// options holds settings shared by all variants.
type options struct {
	run     Runner
	logger  *slog.Logger
	desktop string
}

// Option configures New.
type Option func(*options)

// WithRunner sets the command runner used by command-based variants.
func WithRunner(run Runner) Option {
	return func(o *options) {
		o.run = run
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDesktop overrides the detected desktop session on linux.
func WithDesktop(desktop string) Option {
	return func(o *options) {
		o.desktop = desktop
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		run:    ExecRunner,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// command is one external invocation. Optional commands may fail without
// failing the Setter; they cover keys that only newer desktops know.
type command struct {
	argv     []string
	optional bool
}

// CommandSetter applies a wallpaper by running a fixed list of commands.
type CommandSetter struct {
	name     string
	commands func(abs string) []command
	run      Runner
	logger   *slog.Logger
}

// Name implements Setter.
func (c *CommandSetter) Name() string {
	return c.name
}

// Set implements Setter.
func (c *CommandSetter) Set(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &Error{Setter: c.name, Path: path, Err: err}
	}

	for _, cmd := range c.commands(abs) {
		c.logger.Debug("running wallpaper command", "setter", c.name, "argv", cmd.argv)
		if err := c.run(ctx, cmd.argv[0], cmd.argv[1:]...); err != nil {
			if cmd.optional {
				c.logger.Debug("optional wallpaper command failed", "setter", c.name, "error", err)
				continue
			}
			return &Error{Setter: c.name, Path: abs, Err: err}
		}
	}
	return nil
}

// unsupported is the Setter for hosts with no known mechanism.
type unsupported struct {
	goos string
}

// Name implements Setter.
func (u unsupported) Name() string {
	return u.goos
}

// Set implements Setter.
func (u unsupported) Set(_ context.Context, path string) error {
	return &Error{Setter: u.goos, Path: path, Err: fmt.Errorf("%w: %s", ErrUnsupportedPlatform, u.goos)}
}

// Unsupported returns a Setter that always fails with ErrUnsupportedPlatform.
func Unsupported() Setter {
	return unsupported{goos: runtime.GOOS}
}
