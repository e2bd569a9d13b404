package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathgen/internal/progress"
)

// resetFlags restores every flag to its default so commands can run
// repeatedly against the shared root.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MATHGEN_CONFIG", "")
	t.Setenv("MATHGEN_DB", filepath.Join(dir, "mathgen.db"))
	t.Setenv("MATHGEN_OUTPUT_DIR", dir)
	t.Setenv("MATHGEN_PROGRESS_BACKEND", "file")
	t.Setenv("MATHGEN_PROGRESS_DIR", "")
	t.Setenv("MATHGEN_LLM_PROVIDER", "mock")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("MATHGEN_TRACING_ENABLED", "false")
	return dir
}

func TestDaily_FlagErrors(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "daily")
	require.Error(t, err)
	assert.Equal(t, "Either --grade or --all-grades must be specified", err.Error())

	_, err = execute(t, "daily", "--all-grades", "--status")
	require.Error(t, err)
	assert.Equal(t, "Status operations cannot be used with --all-grades", err.Error())

	_, err = execute(t, "daily", "--grade", "grade_9", "--status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid grade: grade_9")
}

func TestDaily_StatusOperations(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "daily", "--grade", "grade_2", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "CURRICULUM PROGRESS: GRADE_2")
	assert.Contains(t, out, "Days Completed: 0")

	out, err = execute(t, "daily", "--grade", "grade_2", "--next-topic")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Advanced to next topic for grade_2")
	assert.Contains(t, out, "Progress: ")

	out, err = execute(t, "daily", "--grade", "grade_2", "--week-plan")
	require.NoError(t, err)
	assert.Contains(t, out, "WEEKLY PLAN: GRADE_2")
	assert.Contains(t, out, "Topic 2 of sequence")
	assert.Contains(t, out, "Focus: "+progress.FocusIntroduction)
	assert.NotContains(t, out, "CURRICULUM PROGRESS")

	out, err = execute(t, "daily", "--grade", "grade_2", "--reset")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Progress reset for grade_2")
	assert.Contains(t, out, "Topic: 1 of")
}

func TestDaily_GeneratesAndRecords(t *testing.T) {
	dir := setupEnv(t)

	out, err := execute(t, "daily", "--grade", "grade_1", "--num-problems", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "DAILY CONTENT GENERATED: GRADE_1")
	assert.Contains(t, out, "Problems: 4")

	concepts, _ := filepath.Glob(filepath.Join(dir, "grade_1_*_concepts_daily_*.pdf"))
	worksheets, _ := filepath.Glob(filepath.Join(dir, "grade_1_*_worksheet_daily_*.pdf"))
	assert.Len(t, concepts, 1)
	assert.Len(t, worksheets, 1)
	assert.FileExists(t, filepath.Join(dir, "curriculum_progress_grade_1.json"))

	out, err = execute(t, "daily", "--grade", "grade_1", "--status", "--format", "json")
	require.NoError(t, err)
	var view struct {
		Summary progress.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 1, view.Summary.DaysCompleted)
	require.Len(t, view.Summary.RecentHistory, 1)
	assert.NotNil(t, view.Summary.RecentHistory[0].ConceptGuidePath)
}

func TestDaily_InvalidCountIsRejected(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "daily", "--grade", "grade_1", "--num-problems", "0")
	require.Error(t, err)
	assert.Equal(t, "Number of problems must be between 1 and 20", err.Error())
}

func TestGenerate_Actions(t *testing.T) {
	dir := setupEnv(t)

	_, err := execute(t, "generate", "--action", "quiz")
	require.Error(t, err)
	assert.Equal(t, "Invalid action: quiz. Valid actions: generate, explain, worksheet", err.Error())

	out, err := execute(t, "generate", "--grade", "grade_3", "--topic", "fractions", "--num-problems", "2", "--no-pdf", "--format", "json")
	require.NoError(t, err)
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "grade_3", res["grade"])
	assert.Equal(t, float64(2), res["num_problems"])
	assert.NotContains(t, res, "pdf_path")

	saved := filepath.Join(dir, "explain.txt")
	out, err = execute(t, "generate", "--action", "explain", "--output", saved, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.FileExists(t, saved)
}

func TestCatalogCommands(t *testing.T) {
	out, err := execute(t, "grades")
	require.NoError(t, err)
	assert.Contains(t, out, "kindergarten")
	assert.Contains(t, out, "grade_5")

	out, err = execute(t, "topics", "--grade", "grade_1")
	require.NoError(t, err)
	assert.Contains(t, out, "addition: ")

	_, err = execute(t, "topics", "--grade", "grade_7")
	require.Error(t, err)
}

func TestReport_WritesWorkbook(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "progress.xlsx")

	_, err := execute(t, "report")
	require.Error(t, err)

	out, err := execute(t, "report", "--all-grades", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 6 grade(s)")
	assert.FileExists(t, path)
}

func TestLLM_EventsAreRecorded(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")

	_, err = execute(t, "generate", "--grade", "grade_2", "--topic", "subtraction", "--num-problems", "2", "--no-pdf", "--no-hints", "--no-review")
	require.NoError(t, err)

	out, err = execute(t, "llm", "list", "--purpose", "problems", "--format", "json")
	require.NoError(t, err)
	var events []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.NotEmpty(t, events)
	assert.Equal(t, "problems", events[0]["purpose"])
	assert.Equal(t, true, events[0]["success"])

	out, err = execute(t, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage by Purpose")
	assert.Contains(t, out, "problems")

	_, err = execute(t, "llm", "view", "abc")
	assert.Error(t, err)
}
