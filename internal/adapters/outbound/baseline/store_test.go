package baseline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/baseline"
	"github.com/wtthornton/tappscheck/internal/domain"
)

func TestStore_LoadMissingReturnsDefaults(t *testing.T) {
	b, err := baseline.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBaselines(), b)
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := baseline.New()
	projectPath := t.TempDir()

	original := domain.DefaultBaselines()
	original.UpdatedAt = "2026-06-01T10:00:00.000Z"
	original.Sizes[domain.BucketSmall] = domain.Baseline{Avg: 3, Min: 1, Max: 9, Samples: 12}
	original.Categories["security"] = domain.Baseline{Avg: 0.4, Min: 0.1, Max: 2, Samples: 12}

	require.NoError(t, store.Save(projectPath, original))
	_, err := os.Stat(filepath.Join(projectPath, ".tappscheck", "baselines", "performance-baselines.json"))
	require.NoError(t, err)

	loaded, err := store.Load(projectPath)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestStore_PartialFileKeepsDefaults(t *testing.T) {
	projectPath := t.TempDir()
	dir := filepath.Join(projectPath, ".tappscheck", "baselines")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "performance-baselines.json"),
		[]byte(`{"version":1,"sizes":{"small":{"avg":2,"min":1,"max":4,"samples":3}}}`), 0o644))

	b, err := baseline.New().Load(projectPath)
	require.NoError(t, err)
	assert.Equal(t, 2.0, b.SizeBaseline(domain.BucketSmall).Avg)
	assert.Equal(t, domain.DefaultBaselines().Sizes[domain.BucketLarge], b.SizeBaseline(domain.BucketLarge))
	assert.NotNil(t, b.Categories)
}

func TestStore_CorruptFileIsError(t *testing.T) {
	projectPath := t.TempDir()
	dir := filepath.Join(projectPath, ".tappscheck", "baselines")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "performance-baselines.json"), []byte("{"), 0o644))

	_, err := baseline.New().Load(projectPath)
	assert.Error(t, err)
}

func TestStore_Reset(t *testing.T) {
	store := baseline.New()
	projectPath := t.TempDir()

	require.NoError(t, store.Reset(projectPath), "missing file is fine")
	require.NoError(t, store.Save(projectPath, domain.DefaultBaselines()))
	require.NoError(t, store.Reset(projectPath))

	b, err := store.Load(projectPath)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBaselines(), b)
}
