package standards_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/standards"
	"github.com/wtthornton/tappscheck/internal/domain"
)

func TestDirLoader_MissingDirIsEmpty(t *testing.T) {
	std, err := standards.New().Load(t.TempDir(), domain.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, std)
}

func TestDirLoader_LoadsMarkdown(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, domain.DefaultStandardsDir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "security.md"), []byte("# Security"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "documentation.mdc"), []byte("# Docs"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	std, err := standards.New().Load(root, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"security": "# Security", "documentation": "# Docs"}, std)
}

func TestDirLoader_CustomDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "standards"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "standards", "api.md"), []byte("x"), 0o644))

	std, err := standards.New().Load(root, domain.ProjectConfig{StandardsDir: "docs/standards"})
	require.NoError(t, err)
	assert.Contains(t, std, "api")
}

func TestDirLoader_DuplicateIDIsError(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, domain.DefaultStandardsDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api.md"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api.mdc"), []byte("b"), 0o644))

	_, err := standards.New().Load(root, domain.DefaultConfig())
	assert.Error(t, err)
}
