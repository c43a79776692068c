package config

// Template is the commented starter config written by `tappscheck init`.
// Every value shown is the built-in default.
const Template = `# tappscheck configuration
# Missing keys fall back to the defaults shown here.

# File extensions to scan.
include: [".md", ".mdc", ".go", ".ts", ".tsx", ".js", ".py", ".yaml", ".yml"]

# Directory names, relative paths, or globs to skip.
exclude_paths: []

# Parallel file workers and per-file processing timeout.
workers: 4
file_timeout: 10s

# Files larger than this are reported as processing errors.
max_file_bytes: 1048576

# Number of runs kept in .tappscheck/history.
history_limit: 30

# Score deductions per violation kind. The block replaces all three values.
penalties:
  critical: 10
  error: 5
  warning: 2

# Minimum score for "tappscheck scan --ci" when --min is not given.
min_score: 0

# Directory of standards documents (*.md). Rules bound to a standard that is
# missing from this directory are disabled.
standards_dir: .tappscheck/standards

# Custom rules replace the built-in set. Example:
# rules:
#   - id: no-todo
#     type: forbid_pattern
#     standard: code-quality
#     category: maintainability
#     kind: warning
#     severity: low
#     pattern: '\bTODO\b'
#     paths: ["*.go"]
rules: []
`
