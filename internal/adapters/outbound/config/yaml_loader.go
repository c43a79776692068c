package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// FileName is the project config file looked up in the project root.
const FileName = ".tappscheck.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .tappscheck.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .tappscheck.yaml from projectPath.
// Returns DefaultConfig if the file does not exist. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, &domain.ConfigurationError{Source: FileName, Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		return domain.ProjectConfig{}, &domain.ConfigurationError{Source: FileName, Err: err}
	}
	return cfg, nil
}

// Parse decodes and validates config YAML. An empty document is the default
// config.
func Parse(data []byte) (domain.ProjectConfig, error) {
	var cfg domain.ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.ProjectConfig{}, fmt.Errorf("parsing: %w", err)
	}

	// Validate raw input before any defaults are applied.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid: %w", err)
	}
	return cfg, nil
}
