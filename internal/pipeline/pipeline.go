package pipeline

import (
	"context"
	"log/slog"

	"github.com/waeller/apod-wallpaper/internal/model"
)

// Step is one stage of a run.
//
// Steps communicate only through the shared *model.Run: each step reads what
// earlier steps recorded and writes its own results back. A step that finds
// nothing to do for a run should implement Skipper rather than return an
// error, so the run can still end successfully.
type Step interface {
	// Do executes the step, recording its results in run.
	// A returned error stops the pipeline and is stored in run.Error.
	// Long running steps must return promptly once ctx is done.
	Do(ctx context.Context, run *model.Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Skipper is implemented by steps that only apply to some runs. Execute asks
// a Skipper before calling Do, and a skipped step is neither run nor recorded
// in run.Steps.
type Skipper interface {
	// Skip reports whether the step has nothing to do for run.
	Skip(run *model.Run) bool
}

// Pipeline executes steps in order against a single run.
//
// The default pipeline built by DefaultPipeline has four steps: locate,
// download, inspect and wallpaper. Only locate always runs. The others skip
// themselves when no picture was found, so a page showing a video ends the
// run without an error.
//
// A Pipeline holds no per-run state and may execute several runs in turn,
// but not concurrently on the same run.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs the steps in sequence and returns the first error.
//
// Cancellation is checked before each step; a step in progress is expected
// to honour ctx on its own. When a step fails or ctx is done, the error text
// is copied to run.Error and the remaining steps are not run. The names of
// completed steps are appended to run.Steps, which report writers use to show
// how far a run got.
func (p *Pipeline) Execute(ctx context.Context, run *model.Run) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "reason", err)
			run.Error = err.Error()
			return err
		}

		if s, ok := step.(Skipper); ok && s.Skip(run) {
			p.logger.Debug("step skipped", "step", step.Name(), "mode", run.Mode.String())
			continue
		}

		p.logger.Debug("executing step", "step", step.Name(), "mode", run.Mode.String())
		if err := step.Do(ctx, run); err != nil {
			p.logger.Debug("step failed", "step", step.Name(), "error", err)
			run.Error = err.Error()
			return err
		}
		run.Steps = append(run.Steps, step.Name())
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
