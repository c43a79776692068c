package domain

import "fmt"

// ValidationError reports content or rule input that cannot be evaluated.
type ValidationError struct {
	File   string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.File == "" {
		return "validation: " + msg
	}
	return fmt.Sprintf("validation %s: %s", e.File, msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// FileProcessingError reports an I/O failure on a single file.
type FileProcessingError struct {
	File string
	Op   string
	Err  error
}

func (e *FileProcessingError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.File, e.Err)
}

func (e *FileProcessingError) Unwrap() error { return e.Err }

// AnalyticsError reports a failure computing metrics or an integrity
// violation in persisted analytics state. Invariant names the check that
// failed, when there is one.
type AnalyticsError struct {
	Op        string
	Invariant string
	Err       error
}

func (e *AnalyticsError) Error() string {
	if e.Invariant != "" {
		return fmt.Sprintf("analytics %s: invariant %q failed: %v", e.Op, e.Invariant, e.Err)
	}
	return fmt.Sprintf("analytics %s: %v", e.Op, e.Err)
}

func (e *AnalyticsError) Unwrap() error { return e.Err }

// ConfigurationError reports malformed project, rule, or standards config.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}
	return fmt.Sprintf("configuration %s: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
