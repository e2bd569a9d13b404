package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/curriculum"
	"github.com/abhisek/mathgen/internal/generator"
	"github.com/abhisek/mathgen/internal/progress"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Generate today's concept guide and worksheet for a grade",
	Long: "Generate the daily concept guide and worksheet for the current topic of a grade's curriculum " +
		"and record the day. Status operations (--status, --week-plan, --reset, --next-topic) inspect or " +
		"change the recorded progress without generating anything.",
	RunE: runDaily,
}

func init() {
	f := dailyCmd.Flags()
	f.String("grade", "", "Grade level (e.g. grade_3)")
	f.Bool("all-grades", false, "Generate content for every grade")
	f.Int("num-problems", 10, "Number of worksheet problems")
	f.String("output-dir", "", "Directory for generated PDFs (default from config)")
	f.Bool("status", false, "Show curriculum progress")
	f.Bool("week-plan", false, "Show the plan for the next five school days")
	f.Bool("reset", false, "Reset progress to the first topic")
	f.Bool("next-topic", false, "Skip to the next topic")
	f.Bool("no-concept-guide", false, "Skip the concept guide")
	f.Bool("no-worksheet", false, "Skip the worksheet")
	f.Bool("parallel", false, "Run grades concurrently with --all-grades")
	f.String("store", "", "Progress backend: file, sqlite or redis (default from config)")
	f.String("format", formatText, "Output format: text or json")
}

func runDaily(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	gradeFlag, _ := f.GetString("grade")
	allGrades, _ := f.GetBool("all-grades")
	status, _ := f.GetBool("status")
	weekPlan, _ := f.GetBool("week-plan")
	reset, _ := f.GetBool("reset")
	nextTopic, _ := f.GetBool("next-topic")
	format, _ := f.GetString("format")

	statusOp := status || weekPlan || reset || nextTopic
	if gradeFlag == "" && !allGrades {
		return errors.New("Either --grade or --all-grades must be specified")
	}
	if allGrades && statusOp {
		return errors.New("Status operations cannot be used with --all-grades")
	}
	if err := validFormat(format); err != nil {
		return err
	}

	var grade curriculum.GradeLevel
	if !allGrades {
		g, err := curriculum.ParseGrade(gradeFlag)
		if err != nil {
			return err
		}
		grade = g
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
	fileDir := env.cfg.Progress.Dir
	if fileDir == "" {
		fileDir = outputDir
	}
	backend, _ := f.GetString("store")
	records, err := env.progressStore(ctx, backend, fileDir)
	if err != nil {
		return err
	}
	tracker := progress.NewTracker(records)

	if statusOp {
		return runStatusOps(cmd, tracker, grade, format)
	}

	numProblems, _ := f.GetInt("num-problems")
	noConcept, _ := f.GetBool("no-concept-guide")
	noWorksheet, _ := f.GetBool("no-worksheet")
	opts := generator.DailyOptions{
		NumProblems:  numProblems,
		ConceptGuide: !noConcept,
		Worksheet:    !noWorksheet,
	}

	svc, err := env.service(ctx, outputDir)
	if err != nil {
		return err
	}
	daily := generator.NewDaily(svc, tracker, env.log)
	out := cmd.OutOrStdout()

	if !allGrades {
		res, err := daily.Run(ctx, grade, opts)
		if err != nil {
			return err
		}
		if format == formatJSON {
			return writeJSON(out, res)
		}
		printDailyResult(out, res)
		return nil
	}

	parallel, _ := f.GetBool("parallel")
	if !parallel {
		parallel = env.cfg.Generation.ParallelGrades
	}
	grades := curriculum.AllGrades()
	results, err := daily.RunAll(ctx, grades, opts, parallel)
	if err != nil {
		return err
	}
	if format == formatJSON {
		return writeJSON(out, results)
	}
	printAllGrades(out, grades, results)
	return nil
}

// runStatusOps applies the status operations in a fixed order: reset,
// next topic, then the read-only views. With only mutations requested the
// summary is printed afterwards.
func runStatusOps(cmd *cobra.Command, tracker *progress.Tracker, grade curriculum.GradeLevel, format string) error {
	f := cmd.Flags()
	status, _ := f.GetBool("status")
	weekPlan, _ := f.GetBool("week-plan")
	reset, _ := f.GetBool("reset")
	nextTopic, _ := f.GetBool("next-topic")

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	text := format == formatText

	p, err := tracker.Load(ctx, grade)
	if err != nil {
		return err
	}

	if reset {
		if err := tracker.Reset(ctx, p); err != nil {
			return err
		}
		if text {
			fmt.Fprintf(out, "✓ Progress reset for %s\n", grade)
		}
		status = status || !weekPlan
	}
	if nextTopic {
		advanced, err := tracker.Advance(ctx, p)
		if err != nil {
			return err
		}
		if text {
			if advanced {
				fmt.Fprintf(out, "✓ Advanced to next topic for %s\n", grade)
			} else {
				fmt.Fprintf(out, "⚠ Already at the last topic for %s\n", grade)
			}
		}
		status = status || !weekPlan
	}

	if !text {
		view := struct {
			Summary  *progress.Summary    `json:"summary,omitempty"`
			WeekPlan []progress.PlanEntry `json:"week_plan,omitempty"`
		}{}
		if status {
			s := progress.Summarize(p)
			view.Summary = &s
		}
		if weekPlan {
			view.WeekPlan = progress.WeekPlan(p, progress.DefaultDaysPerTopic)
		}
		return writeJSON(out, view)
	}

	if status {
		printSummary(out, progress.Summarize(p))
	}
	if weekPlan {
		printWeekPlan(out, grade, progress.WeekPlan(p, progress.DefaultDaysPerTopic))
	}
	return nil
}
