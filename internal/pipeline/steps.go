package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/pagegrade/internal/document"
	"github.com/nao1215/pagegrade/internal/imagemeta"
	"github.com/nao1215/pagegrade/internal/loader"
	"github.com/nao1215/pagegrade/internal/rubric"
	"github.com/nao1215/pagegrade/internal/stylesheet"
)

// ErrMissingInput is returned when a step runs before the step that
// produces its input.
var ErrMissingInput = errors.New("missing input from previous step")

// LoadStep reads the submission from disk.
type LoadStep struct {
	opts []loader.Option
}

// NewLoadStep creates a LoadStep.
func NewLoadStep(opts ...loader.Option) *LoadStep {
	return &LoadStep{opts: opts}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do executes the load step.
func (s *LoadStep) Do(_ context.Context, run *Run) error {
	sub, err := loader.Load(run.Dir, s.opts...)
	if err != nil {
		return err
	}
	run.Submission = sub
	return nil
}

// ParseStep parses the HTML document.
type ParseStep struct{}

// NewParseStep creates a ParseStep.
func NewParseStep() *ParseStep {
	return &ParseStep{}
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do executes the parse step.
func (s *ParseStep) Do(_ context.Context, run *Run) error {
	if run.Submission == nil {
		return fmt.Errorf("%w: submission", ErrMissingInput)
	}
	run.Document = document.Parse(run.Submission.HTML)
	return nil
}

// InspectStep gathers information that is reported but not scored
// directly: image credits and the stylesheet overview.
type InspectStep struct {
	extractor *imagemeta.Extractor
	logger    *slog.Logger
}

// InspectStepOption configures an InspectStep.
type InspectStepOption func(*InspectStep)

// WithInspectLogger sets a custom logger for the inspect step.
func WithInspectLogger(logger *slog.Logger) InspectStepOption {
	return func(s *InspectStep) {
		s.logger = logger
	}
}

// WithExtractor sets the image metadata extractor.
func WithExtractor(e *imagemeta.Extractor) InspectStepOption {
	return func(s *InspectStep) {
		s.extractor = e
	}
}

// NewInspectStep creates an InspectStep.
func NewInspectStep(opts ...InspectStepOption) *InspectStep {
	s := &InspectStep{
		extractor: imagemeta.NewExtractor(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *InspectStep) Name() string {
	return "inspect"
}

// Do executes the inspect step.
func (s *InspectStep) Do(ctx context.Context, run *Run) error {
	if run.Submission == nil || run.Document == nil {
		return fmt.Errorf("%w: document", ErrMissingInput)
	}

	credits, err := s.extractor.Extract(ctx, run.Submission.Dir, run.Document.ImageSources())
	if err != nil {
		return fmt.Errorf("failed to read image metadata: %w", err)
	}
	run.ImageCredits = credits
	s.logger.Debug("image metadata read",
		"dir", run.Dir,
		"credits", len(credits),
	)

	if run.Submission.HasStylesheet() {
		run.Stylesheet = stylesheet.Summarize(run.Submission.Stylesheet(), run.Submission.CSS)
		if run.Stylesheet.ParseError != "" {
			s.logger.Debug("stylesheet could not be parsed",
				"file", run.Submission.StylesheetPath(),
				"error", run.Stylesheet.ParseError,
			)
		}
	}
	return nil
}

// EvaluateStep scores the submission.
type EvaluateStep struct {
	engine *rubric.Engine
}

// NewEvaluateStep creates an EvaluateStep for the given engine.
func NewEvaluateStep(engine *rubric.Engine) *EvaluateStep {
	return &EvaluateStep{engine: engine}
}

// Name returns the step name.
func (s *EvaluateStep) Name() string {
	return "evaluate"
}

// Do executes the evaluate step.
func (s *EvaluateStep) Do(_ context.Context, run *Run) error {
	if run.Submission == nil || run.Document == nil {
		return fmt.Errorf("%w: document", ErrMissingInput)
	}

	report := s.engine.Evaluate(&rubric.Input{
		Document:      run.Document,
		HTML:          run.Submission.HTML,
		CSS:           run.Submission.CSS,
		HasStylesheet: run.Submission.HasStylesheet(),
		ImageCredits:  run.ImageCredits,
	})
	report.Stylesheet = run.Stylesheet
	run.Report = report
	return nil
}

// NewGrading creates a pipeline with the standard grading steps.
func NewGrading(engine *rubric.Engine, loaderOpts []loader.Option, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewLoadStep(loaderOpts...),
		NewParseStep(),
		NewInspectStep(WithInspectLogger(p.logger)),
		NewEvaluateStep(engine),
	)
	return p
}
