package application

import (
	"fmt"

	"github.com/wtthornton/tappscheck/internal/domain"
	"github.com/wtthornton/tappscheck/internal/domain/rules"
)

// ValidateService checks a project's configuration, rules, and persisted
// state without scanning any files.
type ValidateService struct {
	configLoader domain.ConfigLoader
	standards    domain.StandardsLoader
	histories    domain.HistoryStoreFactory
	baselines    domain.BaselineStore
	git          domain.GitInfo
}

// NewValidateService creates a new ValidateService. git may be nil.
func NewValidateService(
	configLoader domain.ConfigLoader,
	standards domain.StandardsLoader,
	histories domain.HistoryStoreFactory,
	baselines domain.BaselineStore,
	git domain.GitInfo,
) *ValidateService {
	return &ValidateService{
		configLoader: configLoader, standards: standards,
		histories: histories, baselines: baselines, git: git,
	}
}

// Validate runs every check and returns a pass/warn/fail report. Problems
// are findings in the report, not errors.
func (s *ValidateService) Validate(projectPath string) *domain.ValidationReport {
	report := &domain.ValidationReport{Status: domain.StatusPass}

	// 1. Config
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		report.Add("config", domain.StatusFail, err.Error())
		report.Suggestions = append(report.Suggestions, "fix .tappscheck.yaml or run `tappscheck init --force`")
		cfg = domain.DefaultConfig()
	} else {
		report.Add("config", domain.StatusPass, "")
	}

	// 2. Standards and rules
	standards, err := s.standards.Load(projectPath, cfg)
	if err != nil {
		report.Add("standards", domain.StatusFail, err.Error())
	} else {
		report.Add("standards", domain.StatusPass, fmt.Sprintf("%d standards loaded", len(standards)))
	}

	evaluator, disabled, err := rules.Build(cfg.Rules, standards)
	switch {
	case err != nil:
		report.Add("rules", domain.StatusFail, err.Error())
	case len(disabled) > 0:
		report.Rules = len(evaluator.Rules())
		report.Disabled = disabled
		report.Add("rules", domain.StatusWarn, fmt.Sprintf("%d rules disabled by missing standards", len(disabled)))
		report.Suggestions = append(report.Suggestions, "add the missing standards under "+cfg.EffectiveStandardsDir())
	default:
		report.Rules = len(evaluator.Rules())
		report.Add("rules", domain.StatusPass, fmt.Sprintf("%d rules compiled", report.Rules))
	}

	// 3. History integrity
	_, stats, err := s.histories.Open(projectPath, cfg).Load()
	report.HistoryStats = stats
	switch {
	case err != nil:
		report.Add("history", domain.StatusFail, err.Error())
		report.Suggestions = append(report.Suggestions, "move the corrupt history file aside; the next scan starts a new one")
	case stats.Discarded > 0:
		report.Add("history", domain.StatusWarn, fmt.Sprintf("%d of %d entries failed integrity checks", stats.Discarded, stats.Total))
		report.Suggestions = append(report.Suggestions, "discarded entries are dropped on the next append")
	default:
		report.Add("history", domain.StatusPass, fmt.Sprintf("%d entries valid", stats.Valid))
	}

	// 4. Baselines
	if _, err := s.baselines.Load(projectPath); err != nil {
		report.Add("baselines", domain.StatusWarn, err.Error())
		report.Suggestions = append(report.Suggestions, "run `tappscheck baseline --update` to rebuild baselines")
	} else {
		report.Add("baselines", domain.StatusPass, "")
	}

	// 5. Git metadata is optional; entries are recorded without a hash.
	const noCommit = "no commit found; history entries will not record a commit hash"
	if s.git == nil {
		report.Add("git", domain.StatusPass, noCommit)
	} else if hash, err := s.git.CommitHash(projectPath); err != nil {
		report.Add("git", domain.StatusPass, noCommit)
	} else {
		report.Add("git", domain.StatusPass, "HEAD "+hash)
	}

	return report
}
