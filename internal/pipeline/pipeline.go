package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/pagegrade/internal/document"
	"github.com/nao1215/pagegrade/internal/model"
)

// ErrStepPanicked is returned when a step panics.
var ErrStepPanicked = errors.New("pipeline step panicked")

// Run holds the state of one grading job. Steps fill it in order.
type Run struct {
	// Dir is the submission directory.
	Dir string

	// Submission is set by the load step.
	Submission *model.Submission

	// Document is set by the parse step.
	Document *document.Document

	// ImageCredits and Stylesheet are set by the inspect step.
	ImageCredits []model.ImageCredit
	Stylesheet   *model.StylesheetSummary

	// Report is set by the evaluate step.
	Report *model.Report

	// Err is the error that stopped the run, if any.
	Err error

	// Steps lists the names of the steps that completed.
	Steps []string
}

// NewRun creates the state for grading dir.
func NewRun(dir string) *Run {
	return &Run{
		Dir:          dir,
		ImageCredits: make([]model.ImageCredit, 0),
		Steps:        make([]string, 0),
	}
}

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Do executes the step. A returned error stops the run unless the
	// pipeline continues on error.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to keep going after a step
// fails. Later steps see whatever state earlier steps managed to set.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
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

// Execute runs all steps in sequence. Context cancellation is checked
// before each step. The first error is recorded in run.Err and returned
// (or, with continueOnError, the run proceeds and the last error wins).
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	var lastErr error
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"dir", run.Dir,
				"reason", ctx.Err(),
			)
			run.Err = ctx.Err()
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"dir", run.Dir,
		)

		if err := p.do(ctx, step, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"dir", run.Dir,
				"error", err,
			)
			run.Err = err
			lastErr = err

			if !p.continueOnError {
				return err
			}
			continue
		}

		run.Steps = append(run.Steps, step.Name())
	}

	return lastErr
}

// do runs one step and converts a panic into ErrStepPanicked.
func (p *Pipeline) do(ctx context.Context, step Step, run *Run) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrStepPanicked, step.Name(), r)
		}
	}()
	return step.Do(ctx, run)
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
