package domain

// RunMetrics counts what happened during one pipeline invocation. It is
// created by the caller, passed by pointer to each stage, and only mutated
// from a single goroutine after worker results are joined.
type RunMetrics struct {
	FilesDiscovered  int   `json:"files_discovered"`
	FilesProcessed   int   `json:"files_processed"`
	FilesFailed      int   `json:"files_failed"`
	BytesRead        int64 `json:"bytes_read"`
	ChecksRun        int   `json:"checks_run"`
	Violations       int   `json:"violations"`
	RulesDisabled    int   `json:"rules_disabled"`
	HistoryDiscarded int   `json:"history_discarded"`
}
