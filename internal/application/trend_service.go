package application

import (
	"fmt"

	"github.com/wtthornton/tappscheck/internal/domain"
	"github.com/wtthornton/tappscheck/internal/domain/analytics"
)

// TrendService reads history and analyzes it. It never writes.
type TrendService struct {
	configLoader domain.ConfigLoader
	histories    domain.HistoryStoreFactory
}

func NewTrendService(configLoader domain.ConfigLoader, histories domain.HistoryStoreFactory) *TrendService {
	return &TrendService{configLoader: configLoader, histories: histories}
}

// History returns the stored entries with load diagnostics.
func (s *TrendService) History(projectPath string) (*domain.HistoryReport, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	entries, stats, err := s.histories.Open(projectPath, cfg).Load()
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return &domain.HistoryReport{Entries: entries, Stats: stats}, nil
}

// Trends analyzes the stored history with a forecast daysAhead runs out.
func (s *TrendService) Trends(projectPath string, daysAhead int) (*domain.TrendReport, error) {
	h, err := s.History(projectPath)
	if err != nil {
		return nil, err
	}
	tr := analytics.Analyze(h.Entries, analytics.Horizon(daysAhead))
	return &tr, nil
}
