package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wtthornton/tappscheck/internal/domain"
	"github.com/wtthornton/tappscheck/internal/domain/rules"
)

// FileProcessor runs the evaluator over many files with bounded parallelism.
type FileProcessor struct {
	source      domain.FileSource
	evaluator   *rules.Evaluator
	workers     int
	fileTimeout time.Duration
	logger      *slog.Logger
}

// NewFileProcessor creates a processor. Non-positive workers or timeout fall
// back to the defaults; a nil logger discards.
func NewFileProcessor(source domain.FileSource, evaluator *rules.Evaluator, workers int, fileTimeout time.Duration, logger *slog.Logger) *FileProcessor {
	if workers <= 0 {
		workers = domain.DefaultWorkers
	}
	if fileTimeout <= 0 {
		fileTimeout = domain.DefaultFileTimeout
	}
	return &FileProcessor{
		source:      source,
		evaluator:   evaluator,
		workers:     workers,
		fileTimeout: fileTimeout,
		logger:      orDiscard(logger),
	}
}

// Process evaluates every path and returns one result per path, in input
// order. A file that cannot be read or evaluated yields a single ERROR
// violation; it never stops the other workers.
func (p *FileProcessor) Process(ctx context.Context, paths []string) []domain.FileResult {
	results := make([]domain.FileResult, len(paths))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = p.processFile(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (p *FileProcessor) processFile(ctx context.Context, path string) domain.FileResult {
	fctx, cancel := context.WithTimeout(ctx, p.fileTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan domain.FileResult, 1)
	go func() { done <- p.evaluateFile(fctx, path) }()

	var fr domain.FileResult
	select {
	case fr = <-done:
	case <-fctx.Done():
		err := fctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("exceeded %s", p.fileTimeout)
		}
		fr = failedResult(path, &domain.FileProcessingError{File: path, Op: "process", Err: err})
	}
	fr.Timing.Path = path
	fr.Timing.Duration = time.Since(start)

	if fr.Failed {
		p.logger.Warn("file failed", "path", path, "error", fr.Error)
	} else {
		p.logger.Debug("file evaluated", "path", path, "checks", fr.Checks, "violations", len(fr.Violations), "duration", fr.Timing.Duration)
	}
	return fr
}

func (p *FileProcessor) evaluateFile(ctx context.Context, path string) domain.FileResult {
	content, err := p.source.Read(ctx, path)
	if err != nil {
		var fpe *domain.FileProcessingError
		if !errors.As(err, &fpe) {
			err = &domain.FileProcessingError{File: path, Op: "read", Err: err}
		}
		return failedResult(path, err)
	}

	ev, err := p.evaluator.Evaluate(path, content)
	if err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			err = &domain.ValidationError{File: path, Reason: "evaluate", Err: err}
		}
		fr := failedResult(path, err)
		fr.Timing.Bytes = len(content)
		return fr
	}

	return domain.FileResult{
		Path:       path,
		Violations: ev.Violations,
		Checks:     ev.Checks,
		Passed:     ev.Passed,
		CheckStats: ev.Stats,
		Timing: domain.FileTiming{
			Bytes:      len(content),
			Lines:      ev.Lines,
			Categories: ev.Categories,
		},
	}
}

func failedResult(path string, err error) domain.FileResult {
	return domain.FileResult{
		Path:       path,
		Violations: []domain.Violation{domain.ProcessingViolation(path, err)},
		Failed:     true,
		Error:      err.Error(),
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
