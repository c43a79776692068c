package scanner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wtthornton/tappscheck/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	".tappscheck":  true,
	"dist":         true,
	"bin":          true,
}

// FileScanner implements domain.FileSourceFactory over the local filesystem.
type FileScanner struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *FileScanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileScanner{logger: logger}
}

// Open returns a Tree rooted at projectPath using the config's include,
// exclude, and size settings.
func (s *FileScanner) Open(projectPath string, cfg domain.ProjectConfig) (domain.FileSource, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", projectPath)
	}

	include := make(map[string]bool)
	for _, ext := range cfg.EffectiveInclude() {
		include[strings.ToLower(ext)] = true
	}
	exclude := make([]string, 0, len(cfg.ExcludePaths))
	for _, p := range cfg.ExcludePaths {
		if p = strings.TrimSuffix(filepath.ToSlash(p), "/"); p != "" {
			exclude = append(exclude, p)
		}
	}

	return &Tree{
		root:     absPath,
		include:  include,
		exclude:  exclude,
		maxBytes: cfg.EffectiveMaxFileBytes(),
		logger:   s.logger,
	}, nil
}

// Tree is a domain.FileSource over one directory tree. Paths it returns and
// accepts are slash-separated and relative to the root.
type Tree struct {
	root     string
	include  map[string]bool
	exclude  []string
	maxBytes int
	logger   *slog.Logger
}

// Root returns the absolute root directory.
func (t *Tree) Root() string { return t.root }

// List walks the tree and returns matching files sorted by path.
func (t *Tree) List(ctx context.Context) ([]string, error) {
	var files []string
	err := filepath.WalkDir(t.root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			// An unreadable subdirectory is skipped; the root must be readable.
			if p != t.root && d != nil && d.IsDir() {
				t.logger.Warn("skipping unreadable directory", "path", p, "error", err)
				return filepath.SkipDir
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, _ := filepath.Rel(t.root, p)
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if skipDirs[d.Name()] || t.excluded(rel, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !t.include[strings.ToLower(path.Ext(d.Name()))] || t.excluded(rel, d.Name()) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (t *Tree) excluded(rel, name string) bool {
	for _, pattern := range t.exclude {
		if pattern == rel || pattern == name || strings.HasPrefix(rel, pattern+"/") {
			return true
		}
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Read returns the content of a file under the root. Files larger than the
// configured cap are rejected rather than truncated.
func (t *Tree) Read(ctx context.Context, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean(filepath.ToSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return nil, &domain.FileProcessingError{File: rel, Op: "read", Err: fmt.Errorf("path escapes project root")}
	}

	f, err := os.Open(filepath.Join(t.root, filepath.FromSlash(clean)))
	if err != nil {
		return nil, &domain.FileProcessingError{File: rel, Op: "read", Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(t.maxBytes)+1))
	if err != nil {
		return nil, &domain.FileProcessingError{File: rel, Op: "read", Err: err}
	}
	if len(data) > t.maxBytes {
		return nil, &domain.FileProcessingError{
			File: rel, Op: "read",
			Err: fmt.Errorf("file exceeds %d bytes", t.maxBytes),
		}
	}
	return data, nil
}
