package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtthornton/tappscheck/internal/application"
	"github.com/wtthornton/tappscheck/internal/domain"
)

func TestBaselineService_Update(t *testing.T) {
	f := newComplianceFixture()
	svc := application.NewBaselineService(f.service(), f.baselines)

	b, err := svc.Update(context.Background(), "/project")
	require.NoError(t, err)
	assert.Equal(t, 1, f.baselines.saved)
	assert.Equal(t, 2, b.Sizes[domain.BucketSmall].Samples)
	assert.NotEmpty(t, b.UpdatedAt)
	assert.Contains(t, b.Categories, "documentation")
	assert.Empty(t, f.history.entries, "baseline runs do not record history")

	shown, err := svc.Show("/project")
	require.NoError(t, err)
	assert.Equal(t, b, shown)
}

func TestBaselineService_ShowDefaults(t *testing.T) {
	f := newComplianceFixture()
	svc := application.NewBaselineService(f.service(), f.baselines)

	b, err := svc.Show("/project")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBaselines(), b)
}

func TestBaselineService_Reset(t *testing.T) {
	f := newComplianceFixture()
	svc := application.NewBaselineService(f.service(), f.baselines)

	_, err := svc.Update(context.Background(), "/project")
	require.NoError(t, err)
	require.NoError(t, svc.Reset("/project"))

	b, err := svc.Show("/project")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBaselines(), b)
}
