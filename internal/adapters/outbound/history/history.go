// Package history persists compliance history as a bounded JSON array.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/fsutil"
	"github.com/wtthornton/tappscheck/internal/domain"
)

// DefaultFile is the history location relative to the project root.
const DefaultFile = ".tappscheck/history/compliance-history.json"

// InvariantFormat is reported when the history file is not a JSON array.
const InvariantFormat = "file_format"

// FileStore implements domain.HistoryStore on a single JSON file. It assumes
// one writer per process; concurrent writers in other processes are not
// arbitrated.
type FileStore struct {
	path   string
	limit  int
	logger *slog.Logger
}

// New creates a store at path keeping at most limit entries (the default
// when limit is not positive).
func New(path string, limit int, logger *slog.Logger) *FileStore {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileStore{path: path, limit: limit, logger: logger}
}

// Path returns the file backing the store.
func (s *FileStore) Path() string { return s.path }

// Append validates entry and adds it to the log, dropping the oldest entries
// beyond the limit. An entry that fails validation is rejected and the file
// is left untouched. Entries already on disk that no longer validate are
// dropped by the rewrite.
func (s *FileStore) Append(entry domain.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		invariant, cause := unwrapInvariant(err)
		return &domain.AnalyticsError{Op: "append", Invariant: invariant, Err: cause}
	}

	entries, _, err := s.Load()
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if len(entries) > s.limit {
		dropped := len(entries) - s.limit
		entries = entries[dropped:]
		s.logger.Debug("history truncated", "dropped", dropped, "limit", s.limit)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return &domain.AnalyticsError{Op: "append", Err: err}
	}
	if err := fsutil.WriteFileAtomic(s.path, append(data, '\n'), 0o644); err != nil {
		return &domain.AnalyticsError{Op: "append", Err: err}
	}
	return nil
}

// Load returns the valid entries in stored order. A missing file is an
// empty history. Each element is decoded and validated on its own; elements
// that fail are discarded and counted rather than failing the load. Only a
// file that is not a JSON array is an error.
func (s *FileStore) Load() ([]domain.HistoryEntry, domain.LoadStats, error) {
	var stats domain.LoadStats

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, stats, nil
		}
		return nil, stats, &domain.AnalyticsError{Op: "load", Err: err}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, stats, &domain.AnalyticsError{
			Op:        "load",
			Invariant: InvariantFormat,
			Err:       fmt.Errorf("%s is not a JSON array: %w", s.path, err),
		}
	}

	stats.Total = len(raw)
	entries := make([]domain.HistoryEntry, 0, len(raw))
	for i, msg := range raw {
		e, err := decodeEntry(msg)
		if err != nil {
			stats.Discarded++
			s.logger.Warn("discarding history entry", "index", i, "path", s.path, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	stats.Valid = len(entries)
	return entries, stats, nil
}

func decodeEntry(msg json.RawMessage) (domain.HistoryEntry, error) {
	var e domain.HistoryEntry
	if err := json.Unmarshal(msg, &e); err != nil {
		return e, err
	}
	return validateStored(e)
}

// validateStored validates an entry as it was written. An entry without a
// schema version is checked against its stored checksum first, then upgraded
// to version 1 and resealed.
func validateStored(e domain.HistoryEntry) (domain.HistoryEntry, error) {
	if e.SchemaVersion != 0 {
		return e, e.Validate()
	}
	if e.Checksum != "" {
		if got := e.ComputeChecksum(); got != e.Checksum {
			return e, &domain.AnalyticsError{
				Op:        "validate entry",
				Invariant: domain.InvariantChecksum,
				Err:       fmt.Errorf("stored %s, computed %s", e.Checksum, got),
			}
		}
		e.SchemaVersion = 1
		e.Checksum = e.ComputeChecksum()
	} else {
		e.SchemaVersion = 1
	}
	return e, e.Validate()
}

func unwrapInvariant(err error) (string, error) {
	var ae *domain.AnalyticsError
	if errors.As(err, &ae) {
		return ae.Invariant, ae.Err
	}
	return "", err
}

// Factory opens the history store of a project at its default location.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	return &Factory{logger: logger}
}

// Open implements domain.HistoryStoreFactory.
func (f *Factory) Open(projectPath string, cfg domain.ProjectConfig) domain.HistoryStore {
	return New(filepath.Join(projectPath, DefaultFile), cfg.EffectiveHistoryLimit(), f.logger)
}
