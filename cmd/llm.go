package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/llm"
	"github.com/abhisek/mathgen/internal/store"
	"github.com/abhisek/mathgen/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		format, _ := cmd.Flags().GetString("format")
		if err := validFormat(format); err != nil {
			return err
		}

		env, err := newEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.close()

		events, err := env.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if format == formatJSON {
			return writeJSON(out, events)
		}
		if len(events) == 0 {
			lipgloss.Fprintln(out, theme.Label.Render("No LLM events found."))
			return nil
		}

		lipgloss.Fprintln(out, theme.Heading.Render(fmt.Sprintf("%-5s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")))
		hr(out, 96)

		for _, e := range events {
			ok := theme.OK.Render("✓")
			if !e.Success {
				ok = theme.Failed.Render("✗")
			}
			lipgloss.Fprintf(out, "%-5d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		env, err := newEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.close()

		e, err := env.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		field(out, "ID       ", e.ID)
		field(out, "Time     ", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		field(out, "Provider ", e.Provider)
		field(out, "Model    ", e.Model)
		field(out, "Purpose  ", e.Purpose)
		field(out, "Tokens   ", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
		field(out, "Latency  ", fmt.Sprintf("%dms", e.LatencyMs))
		field(out, "Success  ", e.Success)
		if e.ErrorMessage != "" {
			lipgloss.Fprintln(out, theme.Failed.Render("Error:     "+e.ErrorMessage))
		}

		body := func(title, text string) {
			lipgloss.Fprintln(out)
			hr(out, 60)
			lipgloss.Fprintln(out, theme.Heading.Render(title))
			hr(out, 60)
			if text == "" {
				text = "(not captured)"
			}
			lipgloss.Fprintln(out, text)
		}
		body("REQUEST", e.RequestBody)
		body("RESPONSE", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.close()

		ctx := cmd.Context()
		repo := env.store.EventRepo()
		stats, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			lipgloss.Fprintln(out, theme.Label.Render("No LLM usage recorded yet."))
			return nil
		}

		lipgloss.Fprintln(out, theme.Title.Render("Usage by Purpose"))
		hr(out, 72)
		lipgloss.Fprintf(out, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		hr(out, 72)

		var totalCalls, totalIn, totalOut int
		for _, st := range stats {
			lipgloss.Fprintf(out, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
				st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
			totalCalls += st.Calls
			totalIn += st.InputTokens
			totalOut += st.OutputTokens
		}
		hr(out, 72)
		lipgloss.Fprintf(out, "%-16s  %6d  %10d  %10d  %10d\n",
			"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)

		modelUsage, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(modelUsage) == 0 {
			return nil
		}

		lipgloss.Fprintln(out)
		lipgloss.Fprintln(out, theme.Title.Render("Estimated Cost (USD)"))
		hr(out, 72)
		lipgloss.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n",
			"Model", "Calls", "Input", "Output", "Cost")
		hr(out, 72)

		var totalCost float64
		var unpriced []string
		for _, mu := range modelUsage {
			cost, ok := llm.EstimateCost(mu.Model, mu.InputTokens, mu.OutputTokens)
			costText := "?"
			if ok {
				totalCost += cost
				costText = formatCost(cost)
			} else {
				unpriced = append(unpriced, mu.Model)
			}
			lipgloss.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, costText)
		}

		hr(out, 72)
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		lipgloss.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))
		if len(unpriced) > 0 {
			lipgloss.Fprintln(out, theme.Label.Render("\nPricing unavailable for: "+strings.Join(unpriced, ", ")))
		}
		return nil
	},
}

func hr(w io.Writer, n int) {
	lipgloss.Fprintln(w, theme.Rule.Render(strings.Repeat("─", n)))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (concept, problems, review, hints, worksheet)")
	llmListCmd.Flags().String("format", formatText, "Output format: text or json")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
