package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wtthornton/tappscheck/internal/domain"
	"github.com/wtthornton/tappscheck/internal/domain/analytics"
)

// BaselineService maintains the performance baselines of a project.
type BaselineService struct {
	compliance *ComplianceService
	baselines  domain.BaselineStore
	now        func() time.Time
}

func NewBaselineService(compliance *ComplianceService, baselines domain.BaselineStore) *BaselineService {
	return &BaselineService{compliance: compliance, baselines: baselines, now: time.Now}
}

// Show returns the current baselines, or the defaults when none are stored.
func (s *BaselineService) Show(projectPath string) (*domain.PerformanceBaselines, error) {
	b, err := s.baselines.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading baselines: %w", err)
	}
	return b, nil
}

// Update scans the project without recording history and folds the
// observed timings into the stored baselines.
func (s *BaselineService) Update(ctx context.Context, projectPath string) (*domain.PerformanceBaselines, error) {
	out, err := s.compliance.scan(ctx, projectPath, 0)
	if err != nil {
		return nil, err
	}
	old, err := s.baselines.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading baselines: %w", err)
	}
	next := analytics.UpdateBaselines(old, out.run.Timings, s.now())
	if err := s.baselines.Save(projectPath, next); err != nil {
		return nil, fmt.Errorf("saving baselines: %w", err)
	}
	return next, nil
}

// Reset discards stored baselines.
func (s *BaselineService) Reset(projectPath string) error {
	if err := s.baselines.Reset(projectPath); err != nil {
		return fmt.Errorf("resetting baselines: %w", err)
	}
	return nil
}
