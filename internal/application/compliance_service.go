package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wtthornton/tappscheck/internal/domain"
	"github.com/wtthornton/tappscheck/internal/domain/analytics"
	"github.com/wtthornton/tappscheck/internal/domain/rules"
	"github.com/wtthornton/tappscheck/internal/domain/scoring"
)

// RunOptions adjusts a single compliance run.
type RunOptions struct {
	// Workers overrides the configured worker count when positive.
	Workers int
	// NoHistory skips appending the run to history. Trends still read it.
	NoHistory bool
	// DaysAhead is the forecast horizon; nil uses the default.
	DaysAhead *int
}

// ComplianceService orchestrates the scan pipeline:
// config → standards → rules → discover → process → aggregate → history → trends.
type ComplianceService struct {
	configLoader domain.ConfigLoader
	standards    domain.StandardsLoader
	sources      domain.FileSourceFactory
	histories    domain.HistoryStoreFactory
	baselines    domain.BaselineStore
	git          domain.GitInfo
	logger       *slog.Logger
	now          func() time.Time
}

// NewComplianceService wires the pipeline. git may be nil.
func NewComplianceService(
	configLoader domain.ConfigLoader,
	standards domain.StandardsLoader,
	sources domain.FileSourceFactory,
	histories domain.HistoryStoreFactory,
	baselines domain.BaselineStore,
	git domain.GitInfo,
	logger *slog.Logger,
) *ComplianceService {
	return &ComplianceService{
		configLoader: configLoader,
		standards:    standards,
		sources:      sources,
		histories:    histories,
		baselines:    baselines,
		git:          git,
		logger:       orDiscard(logger),
		now:          time.Now,
	}
}

// scanOutcome is everything a scan produces before persistence.
type scanOutcome struct {
	cfg      domain.ProjectConfig
	run      domain.RunResult
	metrics  domain.RunMetrics
	disabled []string
}

// Run scans the project, records the result, and analyzes history. Only
// failures that precede scoring are returned as errors; a history write
// failure is reported in Report.HistoryError.
func (s *ComplianceService) Run(ctx context.Context, projectPath string, opts RunOptions) (*domain.Report, error) {
	out, err := s.scan(ctx, projectPath, opts.Workers)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ProjectPath: projectPath,
		Run:         out.run,
		Metrics:     out.metrics,
		Disabled:    out.disabled,
		GeneratedAt: s.now(),
	}

	store := s.histories.Open(projectPath, out.cfg)
	if !opts.NoHistory {
		entry := domain.NewHistoryEntry(out.run, report.GeneratedAt)
		if err := store.Append(entry); err != nil {
			s.logger.Error("history append failed", "run_id", out.run.RunID, "error", err)
			report.HistoryError = err.Error()
		} else {
			report.Entry = &entry
		}
	}

	entries, stats, err := store.Load()
	report.HistoryStats = stats
	report.Metrics.HistoryDiscarded = stats.Discarded
	if err != nil {
		s.logger.Warn("history load failed", "error", err)
		if report.HistoryError == "" {
			report.HistoryError = err.Error()
		}
	} else {
		tr := analytics.Analyze(entries, analytics.Options{DaysAhead: opts.DaysAhead})
		report.Trends = &tr
	}

	baselines, err := s.baselines.Load(projectPath)
	if err != nil {
		s.logger.Warn("baselines unreadable, using defaults", "error", err)
		baselines = domain.DefaultBaselines()
	}
	perf := analytics.ClassifyPerformance(out.run.Timings, baselines)
	report.Performance = &perf

	s.logger.Info("scan complete",
		"run_id", out.run.RunID,
		"score", out.run.Score,
		"files", out.run.FilesScanned,
		"violations", len(out.run.Violations),
		"duration", out.run.Duration,
	)
	return report, nil
}

// scan runs discovery, evaluation, and aggregation without touching
// persisted state.
func (s *ComplianceService) scan(ctx context.Context, projectPath string, workers int) (scanOutcome, error) {
	started := s.now()

	cfg, evaluator, disabled, err := loadRules(s.configLoader, s.standards, projectPath)
	if err != nil {
		return scanOutcome{}, err
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	for _, id := range disabled {
		s.logger.Warn("rule disabled, standard not found", "rule", id)
	}

	source, err := s.sources.Open(projectPath, cfg)
	if err != nil {
		return scanOutcome{}, fmt.Errorf("opening project: %w", err)
	}
	paths, err := source.List(ctx)
	if err != nil {
		return scanOutcome{}, fmt.Errorf("discovering files: %w", err)
	}
	s.logger.Debug("files discovered", "count", len(paths), "rules", len(evaluator.Rules()))

	proc := NewFileProcessor(source, evaluator, cfg.EffectiveWorkers(), cfg.EffectiveFileTimeout(), s.logger)
	results := proc.Process(ctx, paths)

	metrics := domain.RunMetrics{
		FilesDiscovered: len(paths),
		RulesDisabled:   len(disabled),
	}
	run := scoring.Aggregate(results, cfg.EffectivePenalties(), &metrics)

	if s.git != nil {
		if hash, err := s.git.CommitHash(projectPath); err == nil {
			run.CommitHash = hash
		} else {
			s.logger.Debug("no commit hash", "error", err)
		}
	}

	run = scoring.Finish(run, uuid.NewString(), started, s.now().Sub(started))
	return scanOutcome{cfg: cfg, run: run, metrics: metrics, disabled: disabled}, nil
}

// loadRules loads the project config and standards and compiles the rule set.
func loadRules(configLoader domain.ConfigLoader, standards domain.StandardsLoader, projectPath string) (domain.ProjectConfig, *rules.Evaluator, []string, error) {
	cfg, err := configLoader.Load(projectPath)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	std, err := standards.Load(projectPath, cfg)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("loading standards: %w", err)
	}
	evaluator, disabled, err := rules.Build(cfg.Rules, std)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("building rules: %w", err)
	}
	return cfg, evaluator, disabled, nil
}
