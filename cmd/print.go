package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathgen/internal/curriculum"
	"github.com/abhisek/mathgen/internal/generator"
	"github.com/abhisek/mathgen/internal/progress"
	"github.com/abhisek/mathgen/internal/ui/components"
	"github.com/abhisek/mathgen/internal/ui/theme"
)

const (
	formatText = "text"
	formatJSON = "json"

	ruleWidth = 60
)

func validFormat(f string) error {
	if f != formatText && f != formatJSON {
		return fmt.Errorf("invalid format %q (valid: text, json)", f)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func rule(w io.Writer, ch string) {
	lipgloss.Fprintln(w, theme.Rule.Render(strings.Repeat(ch, ruleWidth)))
}

func banner(w io.Writer, title string) {
	lipgloss.Fprintln(w)
	rule(w, "=")
	lipgloss.Fprintln(w, theme.Title.Render(title))
	rule(w, "=")
}

func field(w io.Writer, label string, value any) {
	lipgloss.Fprintf(w, "%s %v\n", theme.Label.Render(label+":"), value)
}

func printSummary(w io.Writer, s progress.Summary) {
	banner(w, "CURRICULUM PROGRESS: "+strings.ToUpper(s.Grade.String()))

	field(w, "Current Topic", s.CurrentTopic)
	field(w, "Topic", fmt.Sprintf("%d of %d", min(s.CurrentTopicIndex+1, s.TotalTopics), s.TotalTopics))
	field(w, "Days Completed", s.DaysCompleted)
	field(w, "Progress", fmt.Sprintf("%.1f%%", s.ProgressPercentage))
	lipgloss.Fprintln(w, components.NewProgressBar("", s.ProgressPercentage/100, ruleWidth).View())
	field(w, "Topics Remaining", s.TopicsRemaining)

	if len(s.RecentHistory) > 0 {
		lipgloss.Fprintln(w)
		lipgloss.Fprintln(w, theme.Heading.Render("Recent History:"))
		for _, d := range s.RecentHistory {
			lipgloss.Fprintf(w, "  Day %d (%s): %s\n", d.Day, d.Date, d.Topic)
		}
	}
	rule(w, "=")
}

func printWeekPlan(w io.Writer, grade curriculum.GradeLevel, plan []progress.PlanEntry) {
	banner(w, "WEEKLY PLAN: "+strings.ToUpper(grade.String()))

	if len(plan) == 0 {
		lipgloss.Fprintln(w, theme.Label.Render("All topics completed. Nothing left to plan."))
	}
	for _, e := range plan {
		lipgloss.Fprintln(w)
		lipgloss.Fprintln(w, theme.Heading.Render(fmt.Sprintf("Day %d: %s", e.Day, e.Topic.DisplayName())))
		lipgloss.Fprintf(w, "  Topic %d of sequence\n", e.TopicPosition)
		lipgloss.Fprintf(w, "  Day %d of %d\n", e.DayInTopic, e.TotalDaysForTopic)
		lipgloss.Fprintf(w, "  Focus: %s\n", e.Focus)
	}
	rule(w, "=")
}

func printDailyResult(w io.Writer, r *generator.DailyResult) {
	if r.Status == generator.StatusCompleted {
		lipgloss.Fprintln(w)
		lipgloss.Fprintln(w, theme.OK.Render("✓ "+r.Message))
		field(w, "Total Days", r.TotalDays)
		return
	}

	banner(w, "DAILY CONTENT GENERATED: "+strings.ToUpper(r.Grade.String()))
	field(w, "Date", r.Date)
	field(w, "Day", r.Day)
	field(w, "Topic", r.Topic.DisplayName())
	field(w, "Topic Progress", fmt.Sprintf("%d of %d", r.TopicSequence, r.TotalTopics))

	if r.ConceptGuide != nil {
		lipgloss.Fprintln(w)
		lipgloss.Fprintln(w, theme.Heading.Render("Concept Guide:"))
		lipgloss.Fprintf(w, "  %s\n", r.ConceptGuide.Description)
		lipgloss.Fprintf(w, "  PDF: %s\n", r.ConceptGuide.PDFPath)
	}
	if r.Worksheet != nil {
		lipgloss.Fprintln(w)
		lipgloss.Fprintln(w, theme.Heading.Render("Worksheet:"))
		lipgloss.Fprintf(w, "  Problems: %d\n", r.Worksheet.NumProblems)
		lipgloss.Fprintf(w, "  PDF: %s\n", r.Worksheet.PDFPath)
	}
	rule(w, "=")
}

func printAllGrades(w io.Writer, grades []curriculum.GradeLevel, results map[curriculum.GradeLevel]*generator.DailyResult) {
	banner(w, "DAILY CONTENT GENERATED FOR ALL GRADES")
	for _, g := range grades {
		r, ok := results[g]
		if !ok {
			continue
		}
		lipgloss.Fprintln(w)
		lipgloss.Fprintln(w, theme.Heading.Render(g.DisplayName()+":"))
		if r.Status == generator.StatusCompleted {
			lipgloss.Fprintf(w, "  %s\n", r.Message)
			continue
		}
		lipgloss.Fprintf(w, "  Day %d: %s\n", r.Day, r.Topic.DisplayName())
		if r.ConceptGuide != nil {
			lipgloss.Fprintf(w, "  Concept Guide: %s\n", r.ConceptGuide.PDFPath)
		}
		if r.Worksheet != nil {
			lipgloss.Fprintf(w, "  Worksheet: %s\n", r.Worksheet.PDFPath)
		}
	}
	rule(w, "=")
}

func printProblems(w io.Writer, r *generator.ProblemsResult) {
	banner(w, fmt.Sprintf("MATH PROBLEMS: %s - %s", r.Grade.DisplayName(), r.Topic.DisplayName()))
	field(w, "Run", r.RunID)
	field(w, "Problems", r.NumProblems)
	field(w, "Difficulty", r.Difficulty)

	section(w, "Problems", r.Problems)
	if r.Review != "" {
		section(w, "Review", r.Review)
	}
	if r.Hints != "" {
		section(w, "Hints", r.Hints)
	}
	if r.PDFPath != "" {
		lipgloss.Fprintln(w)
		field(w, "PDF", r.PDFPath)
	}
	rule(w, "=")
}

func printExplanation(w io.Writer, r *generator.ExplainResult) {
	banner(w, fmt.Sprintf("CONCEPT: %s - %s", r.Grade.DisplayName(), r.Topic.DisplayName()))
	field(w, "Run", r.RunID)
	lipgloss.Fprintln(w, theme.Hint.Render(r.Description))
	section(w, "Explanation", r.Explanation)
	if r.PDFPath != "" {
		lipgloss.Fprintln(w)
		field(w, "PDF", r.PDFPath)
	}
	rule(w, "=")
}

func printWorksheet(w io.Writer, r *generator.WorksheetResult) {
	banner(w, fmt.Sprintf("WORKSHEET: %s - %s", r.Grade.DisplayName(), r.Topic.DisplayName()))
	field(w, "Run", r.RunID)
	field(w, "Problems", r.NumProblems)
	field(w, "Difficulty", r.Difficulty)
	section(w, "Worksheet", r.Worksheet)
	if r.PDFPath != "" {
		lipgloss.Fprintln(w)
		field(w, "PDF", r.PDFPath)
	}
	rule(w, "=")
}

func section(w io.Writer, heading, body string) {
	lipgloss.Fprintln(w)
	lipgloss.Fprintln(w, theme.Heading.Render(heading))
	rule(w, "-")
	lipgloss.Fprintln(w, strings.TrimSpace(body))
}
