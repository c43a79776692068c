package application_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtthornton/tappscheck/internal/application"
	"github.com/wtthornton/tappscheck/internal/domain"
	"github.com/wtthornton/tappscheck/internal/domain/rules"
	"github.com/wtthornton/tappscheck/internal/domain/scoring"
)

func defaultEvaluator(t *testing.T) *rules.Evaluator {
	t.Helper()
	ev, _, err := rules.Build(nil, nil)
	require.NoError(t, err)
	return ev
}

func TestFileProcessor_ShortDocScenario(t *testing.T) {
	src := newMemSource(map[string]string{
		"a.md": "# Notes\n\nToo short.\n",
		"b.md": longDoc("Guide", 60),
	})
	proc := application.NewFileProcessor(src, defaultEvaluator(t), 4, time.Second, nil)

	results := proc.Process(context.Background(), []string{"a.md", "b.md"})
	require.Len(t, results, 2)
	assert.Equal(t, "a.md", results[0].Path)
	assert.Equal(t, "b.md", results[1].Path)

	require.Len(t, results[0].Violations, 1)
	v := results[0].Violations[0]
	assert.Equal(t, domain.KindWarning, v.Kind)
	assert.Equal(t, "doc-min-words", v.Rule)
	assert.Contains(t, v.Message, "too short")
	assert.Empty(t, results[1].Violations)

	run := scoring.Aggregate(results, domain.DefaultPenalties(), nil)
	assert.Equal(t, 98.0, run.Score)
	assert.Len(t, run.Violations, 1)
}

func TestFileProcessor_WorkerCountDoesNotChangeResult(t *testing.T) {
	files := make(map[string]string)
	var paths []string
	for i := 0; i < 40; i++ {
		p := fmt.Sprintf("docs/%02d.md", i)
		if i%3 == 0 {
			files[p] = "short\n"
		} else {
			files[p] = longDoc("Doc", 55)
		}
		paths = append(paths, p)
	}
	files["main.go"] = "package main // FIXME\n"
	paths = append(paths, "main.go")
	src := newMemSource(files)
	ev := defaultEvaluator(t)

	serial := application.NewFileProcessor(src, ev, 1, time.Second, nil).Process(context.Background(), paths)
	want := scoring.Aggregate(serial, domain.DefaultPenalties(), nil)

	for _, workers := range []int{2, 4, 8, 16} {
		got := scoring.Aggregate(
			application.NewFileProcessor(src, ev, workers, time.Second, nil).Process(context.Background(), paths),
			domain.DefaultPenalties(), nil,
		)
		assert.Equal(t, want.Score, got.Score, "workers=%d", workers)
		assert.Equal(t, want.TotalChecks, got.TotalChecks, "workers=%d", workers)
		assert.Equal(t, want.PassedChecks, got.PassedChecks, "workers=%d", workers)
		assert.Equal(t, want.Breakdown, got.Breakdown, "workers=%d", workers)
		assert.Equal(t, want.Violations, got.Violations, "results keep input order")
	}
}

func TestFileProcessor_ReadFailureBecomesErrorViolation(t *testing.T) {
	src := newMemSource(map[string]string{"ok.md": longDoc("Fine", 60)})
	src.readErr["gone.md"] = errors.New("permission denied")
	proc := application.NewFileProcessor(src, defaultEvaluator(t), 2, time.Second, nil)

	results := proc.Process(context.Background(), []string{"gone.md", "ok.md"})
	require.Len(t, results, 2)

	failed := results[0]
	assert.True(t, failed.Failed)
	require.Len(t, failed.Violations, 1)
	assert.Equal(t, domain.KindError, failed.Violations[0].Kind)
	assert.Equal(t, domain.SeverityHigh, failed.Violations[0].Severity)
	assert.Equal(t, domain.CategoryProcessing, failed.Violations[0].Category)
	assert.Contains(t, failed.Error, "permission denied")

	assert.False(t, results[1].Failed)
	assert.Empty(t, results[1].Violations)
}

func TestFileProcessor_TimeoutIsolatesSlowFile(t *testing.T) {
	src := newMemSource(map[string]string{
		"slow.md": longDoc("Slow", 60),
		"fast.md": longDoc("Fast", 60),
	})
	src.delay["slow.md"] = 5 * time.Second
	proc := application.NewFileProcessor(src, defaultEvaluator(t), 2, 50*time.Millisecond, nil)

	start := time.Now()
	results := proc.Process(context.Background(), []string{"fast.md", "slow.md"})
	assert.Less(t, time.Since(start), 2*time.Second)

	assert.False(t, results[0].Failed)
	assert.True(t, results[1].Failed)
	require.Len(t, results[1].Violations, 1)
	assert.Equal(t, domain.KindError, results[1].Violations[0].Kind)
}

func TestFileProcessor_InvalidContentIsValidationError(t *testing.T) {
	src := newMemSource(map[string]string{"bin.md": "\xff\xfe\x00"})
	proc := application.NewFileProcessor(src, defaultEvaluator(t), 1, time.Second, nil)

	fr := proc.Process(context.Background(), []string{"bin.md"})[0]
	assert.True(t, fr.Failed)
	require.Len(t, fr.Violations, 1)
	assert.Equal(t, domain.KindError, fr.Violations[0].Kind)
	assert.Contains(t, fr.Error, "validation")
	assert.Equal(t, 3, fr.Timing.Bytes)
}

func TestFileProcessor_RecordsTiming(t *testing.T) {
	src := newMemSource(map[string]string{"a.md": longDoc("Timed", 60)})
	proc := application.NewFileProcessor(src, defaultEvaluator(t), 0, 0, nil)

	fr := proc.Process(context.Background(), []string{"a.md"})[0]
	assert.Equal(t, "a.md", fr.Timing.Path)
	assert.Equal(t, len(longDoc("Timed", 60)), fr.Timing.Bytes)
	assert.Greater(t, fr.Timing.Lines, 0)
	assert.Contains(t, fr.Timing.Categories, "documentation")
	assert.Greater(t, fr.Timing.Duration, time.Duration(0))
}
