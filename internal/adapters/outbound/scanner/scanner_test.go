package scanner_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/scanner"
	"github.com/wtthornton/tappscheck/internal/domain"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func open(t *testing.T, root string, cfg domain.ProjectConfig) domain.FileSource {
	t.Helper()
	src, err := scanner.New(nil).Open(root, cfg)
	require.NoError(t, err)
	return src
}

func TestTree_ListFiltersAndSorts(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":                  "# hi",
		"docs/guide.md":              "# guide",
		"cmd/main.go":                "package main",
		"image.png":                  "png",
		"vendor/x/x.go":              "package x",
		"node_modules/y/index.js":    "",
		".git/HEAD":                  "ref",
		".tappscheck/history/h.json": "[]",
	})

	files, err := open(t, root, domain.DefaultConfig()).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "cmd/main.go", "docs/guide.md"}, files)
}

func TestTree_ExcludePathsAndInclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"docs/a.md":           "a",
		"docs/generated/b.md": "b",
		"api/c.gen.go":        "c",
		"api/d.go":            "d",
		"notes.txt":           "e",
	})
	cfg := domain.ProjectConfig{
		Include:      []string{".md", ".go", ".txt"},
		ExcludePaths: []string{"docs/generated/", "*.gen.go"},
	}

	files, err := open(t, root, cfg).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"api/d.go", "docs/a.md", "notes.txt"}, files)
}

func TestTree_Read(t *testing.T) {
	root := writeTree(t, map[string]string{"docs/a.md": "hello"})
	src := open(t, root, domain.DefaultConfig())

	data, err := src.Read(context.Background(), "docs/a.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = src.Read(context.Background(), "missing.md")
	var fpe *domain.FileProcessingError
	assert.True(t, errors.As(err, &fpe))

	_, err = src.Read(context.Background(), "../outside.md")
	assert.True(t, errors.As(err, &fpe))
}

func TestTree_ReadRejectsOversizedFile(t *testing.T) {
	root := writeTree(t, map[string]string{"big.md": strings.Repeat("x", 2048)})
	src := open(t, root, domain.ProjectConfig{MaxFileBytes: 1024})

	_, err := src.Read(context.Background(), "big.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 1024 bytes")
}

func TestTree_HonorsCanceledContext(t *testing.T) {
	root := writeTree(t, map[string]string{"a.md": "a"})
	src := open(t, root, domain.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = src.Read(ctx, "a.md")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTree_ListSkipsUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	root := writeTree(t, map[string]string{
		"a.md":        "a",
		"locked/b.md": "b",
		"open/c.md":   "c",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	logs := new(bytes.Buffer)
	src, err := scanner.New(slog.New(slog.NewTextHandler(logs, nil))).Open(root, domain.DefaultConfig())
	require.NoError(t, err)

	files, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "open/c.md"}, files)
	assert.Contains(t, logs.String(), "skipping unreadable directory")
}

func TestFileScanner_OpenRejectsMissingOrFile(t *testing.T) {
	_, err := scanner.New(nil).Open(filepath.Join(t.TempDir(), "nope"), domain.DefaultConfig())
	assert.Error(t, err)

	root := writeTree(t, map[string]string{"a.md": "a"})
	_, err = scanner.New(nil).Open(filepath.Join(root, "a.md"), domain.DefaultConfig())
	assert.Error(t, err)
}
