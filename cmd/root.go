package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathgen",
	Short: "Elementary math content generator",
	Long: "mathgen generates grade-appropriate math concept guides, problem sets and worksheets " +
		"with a language model, tracks daily progress through each grade's curriculum, and renders PDFs.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHGEN_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides MATHGEN_CONFIG env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug logs on stderr")

	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(gradesCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then MATHGEN_DB or the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
