package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/api"
	"github.com/abhisek/mathgen/internal/curriculum"
	"github.com/abhisek/mathgen/internal/generator"
	"github.com/abhisek/mathgen/internal/ui/theme"
)

// sweepPerTopic is the problem count per topic for --all-topics unless
// --num-problems is given.
const sweepPerTopic = 3

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a problem set, concept explanation or worksheet",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("grade", api.DefaultGrade, "Grade level")
	f.String("topic", api.DefaultTopic, "Math topic")
	f.Int("num-problems", api.DefaultNumProblems, "Number of problems (1-20)")
	f.Int("difficulty", api.DefaultDifficulty, "Difficulty (1-5)")
	f.String("action", api.ActionGenerate, "Action: generate, explain or worksheet")
	f.Bool("no-hints", false, "Skip hints")
	f.Bool("no-review", false, "Skip the answer review")
	f.Bool("no-pdf", false, "Do not write a PDF")
	f.String("output-dir", "", "Directory for generated PDFs (default from config)")
	f.String("format", formatText, "Output format: text or json")
	f.StringP("output", "o", "", "Also write the output to FILE")
	f.BoolP("quiet", "q", false, "Do not print the output")
	f.Bool("all-topics", false, "Generate problem sets for every topic of the grade")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	gradeFlag, _ := f.GetString("grade")
	topicFlag, _ := f.GetString("topic")
	numProblems, _ := f.GetInt("num-problems")
	difficulty, _ := f.GetInt("difficulty")
	action, _ := f.GetString("action")
	noHints, _ := f.GetBool("no-hints")
	noReview, _ := f.GetBool("no-review")
	noPDF, _ := f.GetBool("no-pdf")
	format, _ := f.GetString("format")
	outFile, _ := f.GetString("output")
	quiet, _ := f.GetBool("quiet")
	allTopics, _ := f.GetBool("all-topics")

	if err := validFormat(format); err != nil {
		return err
	}
	grade, err := curriculum.ParseGrade(gradeFlag)
	if err != nil {
		return err
	}
	if !allTopics {
		if err := api.ValidateAction(action); err != nil {
			return err
		}
	}

	env, err := newEnv(cmd, false)
	if err != nil {
		return err
	}
	defer env.close()

	ctx := cmd.Context()
	outputDir, _ := f.GetString("output-dir")
	if outputDir == "" {
		outputDir = env.cfg.OutputDir
	}
	svc, err := env.service(ctx, outputDir)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if allTopics {
		perTopic := sweepPerTopic
		if f.Changed("num-problems") {
			perTopic = numProblems
		}
		results, err := svc.SweepGrade(ctx, grade, perTopic)
		if err != nil {
			return err
		}
		if err := renderSweep(&buf, format, results); err != nil {
			return err
		}
		return emit(cmd, &buf, outFile, quiet)
	}

	topic, err := curriculum.ParseTopic(topicFlag)
	if err != nil {
		return err
	}

	var result any
	switch action {
	case api.ActionGenerate:
		req := generator.NewProblemsRequest(grade, topic)
		req.NumProblems = numProblems
		req.Difficulty = difficulty
		req.IncludeHints = !noHints
		req.IncludeReview = !noReview
		req.Render = !noPDF
		res, err := svc.GenerateProblems(ctx, req)
		if err != nil {
			return err
		}
		result = res
	case api.ActionExplain:
		req := generator.NewExplainRequest(grade, topic)
		req.Render = !noPDF
		res, err := svc.ExplainConcept(ctx, req)
		if err != nil {
			return err
		}
		result = res
	case api.ActionWorksheet:
		req := generator.NewWorksheetRequest(grade, topic)
		req.NumProblems = numProblems
		req.Difficulty = difficulty
		req.Render = !noPDF
		res, err := svc.GenerateWorksheet(ctx, req)
		if err != nil {
			return err
		}
		result = res
	}

	if format == formatJSON {
		if err := writeJSON(&buf, result); err != nil {
			return err
		}
	} else {
		switch r := result.(type) {
		case *generator.ProblemsResult:
			printProblems(&buf, r)
		case *generator.ExplainResult:
			printExplanation(&buf, r)
		case *generator.WorksheetResult:
			printWorksheet(&buf, r)
		}
	}
	return emit(cmd, &buf, outFile, quiet)
}

func renderSweep(w io.Writer, format string, results []*generator.ProblemsResult) error {
	if format == formatJSON {
		return writeJSON(w, results)
	}
	for _, r := range results {
		printProblems(w, r)
	}
	return nil
}

// emit prints buf unless quiet and copies it to outFile when set.
func emit(cmd *cobra.Command, buf *bytes.Buffer, outFile string, quiet bool) error {
	if outFile != "" {
		if err := os.WriteFile(outFile, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if !quiet {
		if _, err := io.Copy(cmd.OutOrStdout(), buf); err != nil {
			return err
		}
	}
	if outFile != "" {
		lipgloss.Fprintln(cmd.ErrOrStderr(), theme.OK.Render("✓ Output saved to "+outFile))
	}
	return nil
}
