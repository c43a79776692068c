package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/wtthornton/tappscheck/internal/domain"
	"github.com/wtthornton/tappscheck/internal/domain/scoring"
)

// CheckService evaluates a single file with the project's rules. It never
// writes history.
type CheckService struct {
	configLoader domain.ConfigLoader
	standards    domain.StandardsLoader
	sources      domain.FileSourceFactory
	logger       *slog.Logger
}

func NewCheckService(
	configLoader domain.ConfigLoader,
	standards domain.StandardsLoader,
	sources domain.FileSourceFactory,
	logger *slog.Logger,
) *CheckService {
	return &CheckService{
		configLoader: configLoader,
		standards:    standards,
		sources:      sources,
		logger:       orDiscard(logger),
	}
}

// CheckFile evaluates file, given relative to projectPath or as an absolute
// path inside it, and scores its violations in isolation.
func (s *CheckService) CheckFile(ctx context.Context, projectPath, file string) (*domain.CheckReport, error) {
	rel, err := projectRelative(projectPath, file)
	if err != nil {
		return nil, err
	}

	cfg, evaluator, disabled, err := loadRules(s.configLoader, s.standards, projectPath)
	if err != nil {
		return nil, err
	}

	source, err := s.sources.Open(projectPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening project: %w", err)
	}

	proc := NewFileProcessor(source, evaluator, 1, cfg.EffectiveFileTimeout(), s.logger)
	fr := proc.Process(ctx, []string{rel})[0]

	return &domain.CheckReport{
		Path:     rel,
		Result:   fr,
		Score:    scoring.Score(fr.Violations, cfg.EffectivePenalties()),
		Disabled: disabled,
	}, nil
}

// projectRelative converts file into a slash-separated path relative to the
// project root and rejects paths that escape it.
func projectRelative(projectPath, file string) (string, error) {
	if file == "" {
		return "", fmt.Errorf("file path is required")
	}
	rel := file
	if filepath.IsAbs(file) {
		root, err := filepath.Abs(projectPath)
		if err != nil {
			return "", fmt.Errorf("resolving project path: %w", err)
		}
		rel, err = filepath.Rel(root, file)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", file, err)
		}
	}
	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is outside the project", file)
	}
	return rel, nil
}
