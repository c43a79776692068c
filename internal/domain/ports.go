package domain

import "context"

// FileSource discovers the files of a project and reads them on demand.
type FileSource interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, path string) ([]byte, error)
}

// FileSourceFactory opens a FileSource rooted at a project path.
type FileSourceFactory interface {
	Open(projectPath string, cfg ProjectConfig) (FileSource, error)
}

// StandardsLoader returns the project's standards keyed by identifier. The
// text is opaque to the evaluator.
type StandardsLoader interface {
	Load(projectPath string, cfg ProjectConfig) (map[string]string, error)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// HistoryStore persists compliance history as a bounded append-only log.
type HistoryStore interface {
	Append(entry HistoryEntry) error
	Load() ([]HistoryEntry, LoadStats, error)
}

// HistoryStoreFactory opens the history store of a project.
type HistoryStoreFactory interface {
	Open(projectPath string, cfg ProjectConfig) HistoryStore
}

// LoadStats reports how defensive deserialization went.
type LoadStats struct {
	Total     int `json:"total"`
	Valid     int `json:"valid"`
	Discarded int `json:"discarded"`
}

// BaselineStore persists performance baselines.
type BaselineStore interface {
	Load(projectPath string) (*PerformanceBaselines, error)
	Save(projectPath string, b *PerformanceBaselines) error
	// Reset removes stored baselines so the defaults apply again.
	Reset(projectPath string) error
}

// GitInfo provides version-control metadata for history entries.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
}
