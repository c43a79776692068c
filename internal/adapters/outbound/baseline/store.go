package baseline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/fsutil"
	"github.com/wtthornton/tappscheck/internal/domain"
)

// Store is a file-based implementation of domain.BaselineStore.
type Store struct{}

// New creates a new file-based baseline store.
func New() *Store {
	return &Store{}
}

// Load reads the project's baselines. A missing file yields the defaults.
// Buckets absent from the file keep their default values.
func (s *Store) Load(projectPath string) (*domain.PerformanceBaselines, error) {
	data, err := os.ReadFile(baselinePath(projectPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultBaselines(), nil
		}
		return nil, err
	}

	b := domain.DefaultBaselines()
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", baselinePath(projectPath), err)
	}
	if b.Sizes == nil {
		b.Sizes = map[string]domain.Baseline{}
	}
	if b.Categories == nil {
		b.Categories = map[string]domain.Baseline{}
	}
	return b, nil
}

// Save writes the baselines atomically, creating directories as needed.
func (s *Store) Save(projectPath string, b *domain.PerformanceBaselines) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(baselinePath(projectPath), append(data, '\n'), 0o644)
}

// Reset removes the baselines file so the defaults apply again.
func (s *Store) Reset(projectPath string) error {
	if err := os.Remove(baselinePath(projectPath)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func baselinePath(projectPath string) string {
	return filepath.Join(projectPath, ".tappscheck", "baselines", "performance-baselines.json")
}
