package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtthornton/tappscheck/internal/adapters/inbound/cli"
	"github.com/wtthornton/tappscheck/internal/domain"
)

// fixtureProject writes a two-document project: one too short, one complete.
func fixtureProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.md": "# Notes\n\nToo short.\n",
		"b.md": "# Guide\n\n" + strings.Repeat("word ", 60) + "\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestScanCommand_JSON(t *testing.T) {
	dir := fixtureProject(t)
	out, err := run(t, "scan", dir, "--json")
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 98.0, report.Run.Score)
	assert.NotEmpty(t, report.Run.RunID)
	require.NotNil(t, report.Entry)

	_, err = os.Stat(filepath.Join(dir, ".tappscheck", "history", "compliance-history.json"))
	assert.NoError(t, err)
}

func TestScanCommand_NoHistory(t *testing.T) {
	dir := fixtureProject(t)
	_, err := run(t, "scan", dir, "--no-history", "--json")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".tappscheck", "history", "compliance-history.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestScanCommand_CIFails(t *testing.T) {
	_, err := run(t, "scan", fixtureProject(t), "--ci", "--min", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below minimum")
}

func TestScanCommand_CIPasses(t *testing.T) {
	_, err := run(t, "scan", fixtureProject(t), "--ci", "--min", "90")
	assert.NoError(t, err)
}

func TestScanCommand_CIUsesConfiguredMinimum(t *testing.T) {
	dir := fixtureProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tappscheck.yaml"), []byte("min_score: 99\n"), 0o644))

	_, err := run(t, "scan", dir, "--ci")
	assert.Error(t, err)
}

func TestScanCommand_Badge(t *testing.T) {
	out, err := run(t, "scan", fixtureProject(t), "--badge", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "img.shields.io/badge/tappscheck-98%2F100-brightgreen")
}

func TestScanCommand_DefaultTUI(t *testing.T) {
	out, err := run(t, "scan", fixtureProject(t))
	require.NoError(t, err)
	assert.Contains(t, out, "tappscheck")
	assert.Contains(t, out, "98.0 / 100")
	assert.Contains(t, out, "doc-min-words")
}

func TestScanCommand_BadConfig(t *testing.T) {
	dir := fixtureProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tappscheck.yaml"), []byte("workers: 999\n"), 0o644))

	_, err := run(t, "scan", dir)
	require.Error(t, err)
	var ce *domain.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestCheckCommand(t *testing.T) {
	dir := fixtureProject(t)
	out, err := run(t, "check", filepath.Join(dir, "a.md"), "--path", dir, "--json")
	require.NoError(t, err)

	var report domain.CheckReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "a.md", report.Path)
	assert.Equal(t, 98.0, report.Score)

	_, err = os.Stat(filepath.Join(dir, ".tappscheck"))
	assert.True(t, os.IsNotExist(err), "check never writes history")
}

func TestCheckCommand_RequiresFile(t *testing.T) {
	_, err := run(t, "check")
	assert.Error(t, err)
}

func TestHistoryAndTrendsCommands(t *testing.T) {
	dir := fixtureProject(t)
	for i := 0; i < 3; i++ {
		_, err := run(t, "scan", dir, "--json")
		require.NoError(t, err)
	}

	out, err := run(t, "history", dir, "--json")
	require.NoError(t, err)
	var h domain.HistoryReport
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.Len(t, h.Entries, 3)

	out, err = run(t, "trends", dir, "--json", "--days", "14")
	require.NoError(t, err)
	var tr domain.TrendReport
	require.NoError(t, json.Unmarshal([]byte(out), &tr))
	assert.Equal(t, 3, tr.Entries)
	assert.Equal(t, 14, tr.Prediction.DaysAhead)

	out, err = run(t, "trends", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Compliance Trends")
	assert.Contains(t, out, "stable")
}

func TestTrendsCommand_NegativeDays(t *testing.T) {
	_, err := run(t, "trends", fixtureProject(t), "--days", "-1")
	assert.Error(t, err)
}

func TestTrendsCommand_ZeroDaysForecastsCurrentScore(t *testing.T) {
	dir := fixtureProject(t)
	_, err := run(t, "scan", dir, "--json")
	require.NoError(t, err)

	out, err := run(t, "trends", dir, "--json", "--days", "0")
	require.NoError(t, err)
	var tr domain.TrendReport
	require.NoError(t, json.Unmarshal([]byte(out), &tr))
	assert.Equal(t, 0, tr.Prediction.DaysAhead)
	assert.Equal(t, tr.Scores.Current, tr.Prediction.Score)
}

func TestScanCommand_ZeroAndNegativeDays(t *testing.T) {
	dir := fixtureProject(t)
	out, err := run(t, "scan", dir, "--json", "--no-history", "--days", "0")
	require.NoError(t, err)
	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.Trends)
	assert.Equal(t, 0, report.Trends.Prediction.DaysAhead)

	_, err = run(t, "scan", dir, "--days", "-1")
	assert.Error(t, err)
}

func TestHistoryCommand_Empty(t *testing.T) {
	out, err := run(t, "history", fixtureProject(t))
	require.NoError(t, err)
	assert.Contains(t, out, "No history yet")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", fixtureProject(t))
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")
}

func TestValidateCommand_FailsOnBadConfig(t *testing.T) {
	dir := fixtureProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tappscheck.yaml"), []byte("unknown_key: 1\n"), 0o644))

	out, err := run(t, "validate", dir, "--json")
	require.Error(t, err)
	var report domain.ValidationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, domain.StatusFail, report.Status)
}

func TestBaselineCommand(t *testing.T) {
	dir := fixtureProject(t)

	out, err := run(t, "baseline", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "defaults")

	out, err = run(t, "baseline", dir, "--update", "--json")
	require.NoError(t, err)
	var b domain.PerformanceBaselines
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.NotEmpty(t, b.UpdatedAt)
	_, err = os.Stat(filepath.Join(dir, ".tappscheck", "history"))
	assert.True(t, os.IsNotExist(err), "baseline updates do not record history")

	_, err = run(t, "baseline", dir, "--reset")
	require.NoError(t, err)
	out, err = run(t, "baseline", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "defaults")

	_, err = run(t, "baseline", dir, "--update", "--reset")
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created .tappscheck.yaml")

	data, err := os.ReadFile(filepath.Join(dir, ".tappscheck.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# tappscheck configuration")

	_, err = run(t, "init", dir)
	assert.Error(t, err, "existing config is not overwritten")

	_, err = run(t, "init", dir, "--force")
	assert.NoError(t, err)
}

func TestLogFlags(t *testing.T) {
	_, err := run(t, "version", "--log-level", "loud")
	assert.Error(t, err)

	out, err := run(t, "version", "--log-level", "debug", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "tappscheck")
}

func TestMCPCommandExists(t *testing.T) {
	_, err := run(t, "mcp", "serve", "--help")
	assert.NoError(t, err)
}
