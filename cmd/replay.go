package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/convtrace/convtrace/internal/analyzer"
)

var replayCmd = &cobra.Command{
	Use:   "replay <traces.jsonl>",
	Short: "Re-run the analysis over a saved trace capture",
	Long: `Replay a JSONL trace capture produced by 'analyze --save-traces' and
regenerate the full set of reports without touching the platform APIs.

Examples:
  convtrace replay traces_20250522_103000.jsonl
  convtrace replay traces_20250522_103000.jsonl -o ./reports --diagram`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var (
	replayOutputDir string
	replayNoCSV     bool
	replayDiagram   bool
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayOutputDir, "output-dir", "o", ".", "Output directory for generated files")
	replayCmd.Flags().BoolVar(&replayNoCSV, "no-csv", false, "Skip CSV exports")
	replayCmd.Flags().BoolVar(&replayDiagram, "diagram", false, "Generate a Mermaid flow diagram")
}

func runReplay(cmd *cobra.Command, args []string) error {
	capturePath := args[0]
	log := GetLogger()

	f, err := os.Open(capturePath)
	if err != nil {
		return fmt.Errorf("failed to open trace capture: %w", err)
	}
	defer f.Close()

	agg := analyzer.NewAggregates()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var trace map[string]any
		if err := json.Unmarshal(raw, &trace); err != nil {
			log.Warn().Int("line", line).Err(err).Msg("skipping malformed trace record")
			continue
		}
		agg.Observe(trace)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read trace capture: %w", err)
	}

	log.Info().Int("traces", line).Str("capture", capturePath).Msg("replay complete")

	timestamp := time.Now().Format("20060102_150405")
	if err := writeReports(replayOutputDir, timestamp, agg, replayNoCSV, replayDiagram); err != nil {
		return err
	}

	printStatistics(agg, nil)
	return nil
}
