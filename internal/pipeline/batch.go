package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// defaultConcurrency is the number of submissions graded at once.
const defaultConcurrency = 4

// BatchProcessor grades several submissions concurrently.
// Each submission gets a fresh pipeline from the factory.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each submission.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent runs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent runs.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     defaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch grades every directory and returns one Run per directory,
// in input order. A failed run keeps its error in Run.Err and does not stop
// the others. The returned error is non-nil only when ctx was cancelled;
// runs that never started are then left with Err set to the context error.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, dirs []string) ([]*Run, error) {
	bp.logger.Debug("starting batch grading",
		"total", len(dirs),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	// Each goroutine writes only its own index.
	runs := make([]*Run, len(dirs))
	for i, dir := range dirs {
		runs[i] = NewRun(dir)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i := range dirs {
		run := runs[i]
		g.Go(func() error {
			select {
			case <-gctx.Done():
				run.Err = gctx.Err()
				return gctx.Err()
			default:
			}

			if err := bp.pipelineFactory().Execute(gctx, run); err != nil {
				bp.logger.Warn("grading failed",
					"dir", run.Dir,
					"index", i+1,
					"total", len(dirs),
					"error", err,
				)
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch grading complete",
		"total", len(dirs),
		"elapsed", time.Since(startTime),
	)

	return runs, err
}
