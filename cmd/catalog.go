package cmd

import (
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/curriculum"
	"github.com/abhisek/mathgen/internal/ui/theme"
)

var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "List grade levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, g := range curriculum.AllGrades() {
			lipgloss.Fprintf(out, "%-14s %s\n", g, theme.Label.Render(g.DisplayName()))
		}
		return nil
	},
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the curriculum topics of a grade",
	RunE: func(cmd *cobra.Command, args []string) error {
		gradeFlag, _ := cmd.Flags().GetString("grade")
		grade, err := curriculum.ParseGrade(gradeFlag)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		lipgloss.Fprintln(out, theme.Title.Render("Topics for "+grade.DisplayName()))
		for i, t := range curriculum.TopicsForGrade(grade) {
			lipgloss.Fprintf(out, "%2d. %s: %s\n",
				i+1, theme.Heading.Render(t.String()), curriculum.DescriptionFor(t, grade))
		}
		return nil
	},
}

func init() {
	topicsCmd.Flags().String("grade", "", "Grade level (e.g. grade_2)")
	_ = topicsCmd.MarkFlagRequired("grade")
}
