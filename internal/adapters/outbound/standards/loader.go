// Package standards loads standards documents from a project directory.
package standards

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// DirLoader implements domain.StandardsLoader. Every *.md or *.mdc file in
// the standards directory is one standard, identified by its file name
// without extension. Content is returned as-is.
type DirLoader struct{}

func New() *DirLoader { return &DirLoader{} }

// Load reads the configured standards directory. A missing directory
// yields an empty map, which leaves every rule enabled.
func (l *DirLoader) Load(projectPath string, cfg domain.ProjectConfig) (map[string]string, error) {
	dir := cfg.EffectiveStandardsDir()
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectPath, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, &domain.ConfigurationError{Source: dir, Err: err}
	}

	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".md" && ext != ".mdc" {
			continue
		}
		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if _, dup := out[id]; dup {
			return nil, &domain.ConfigurationError{Source: dir, Err: fmt.Errorf("standard %q defined twice", id)}
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, &domain.ConfigurationError{Source: e.Name(), Err: err}
		}
		out[id] = string(data)
	}
	return out, nil
}
