package domain

// Validation statuses, ordered pass < warn < fail.
const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// ValidationReport is the outcome of checking a project's configuration and
// persisted state without running a scan.
type ValidationReport struct {
	Status       string            `json:"status"`
	Checks       []ValidationCheck `json:"checks"`
	Rules        int               `json:"rules"`
	Disabled     []string          `json:"disabled_rules,omitempty"`
	HistoryStats LoadStats         `json:"history_stats"`
	Suggestions  []string          `json:"suggestions,omitempty"`
}

// ValidationCheck is one named check within a ValidationReport.
type ValidationCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Add records a check and escalates the overall status; it never lowers it.
func (r *ValidationReport) Add(name, status, message string) {
	r.Checks = append(r.Checks, ValidationCheck{Name: name, Status: status, Message: message})
	if statusRank(status) > statusRank(r.Status) {
		r.Status = status
	}
}

func statusRank(s string) int {
	switch s {
	case StatusFail:
		return 2
	case StatusWarn:
		return 1
	default:
		return 0
	}
}
