package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/convtrace/convtrace/internal/analyzer"
	"github.com/convtrace/convtrace/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <analysis.json>",
	Short: "Browse an analysis result in an interactive terminal viewer",
	Long: `Open the interactive viewer over an aggregates file produced by
'analyze' or 'replay'. Tab between agent counts, tool counts, and the
individual tool calls with their parameters.

Example:
  convtrace browse analysis_20250522_103000.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	analysisPath := args[0]

	data, err := os.ReadFile(analysisPath)
	if err != nil {
		return fmt.Errorf("failed to read analysis file: %w", err)
	}

	agg := analyzer.NewAggregates()
	if err := json.Unmarshal(data, agg); err != nil {
		return fmt.Errorf("failed to parse analysis file: %w", err)
	}

	model := tui.NewViewer(filepath.Base(analysisPath), agg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer error: %w", err)
	}
	return nil
}
