package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"

	"github.com/convtrace/convtrace/internal/analyzer"
	"github.com/convtrace/convtrace/internal/report"
	"github.com/convtrace/convtrace/internal/utils"
	"github.com/convtrace/convtrace/internal/weni"
)

const dateLayout = "02-01-2006" // DD-MM-YYYY, as the platform expects

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Fetch conversations and aggregate agent-trace statistics",
	Long: `Fetch every conversation in a date range, walk the agent messages of
each one, and aggregate which collaborator agents and which tools were
invoked in their execution traces.

Examples:
  # Analyze one week of conversations
  convtrace analyze -s 15-05-2025 -e 22-05-2025 -t YOUR_TOKEN -p PROJECT_UUID

  # Credentials from the environment (WENI_BEARER_TOKEN, WENI_PROJECT_UUID)
  convtrace analyze -s 01-01-2025 -e 31-01-2025

  # Batch over several projects, saving raw traces for offline replay
  convtrace analyze -s 01-01-2025 -e 31-01-2025 --projects projects.yaml --save-traces`,
	RunE: runAnalyze,
}

var (
	analyzeStartDate  string
	analyzeEndDate    string
	analyzeToken      string
	analyzeProject    string
	analyzeOutputDir  string
	analyzeProjects   string
	analyzeSaveTraces bool
	analyzeNoCSV      bool
	analyzeDiagram    bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeStartDate, "start-date", "s", "", "Start date in DD-MM-YYYY format (required)")
	analyzeCmd.Flags().StringVarP(&analyzeEndDate, "end-date", "e", "", "End date in DD-MM-YYYY format (required)")
	analyzeCmd.Flags().StringVarP(&analyzeToken, "token", "t", "", "Bearer token (or WENI_BEARER_TOKEN)")
	analyzeCmd.Flags().StringVarP(&analyzeProject, "project-uuid", "p", "", "Project UUID (or WENI_PROJECT_UUID)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputDir, "output-dir", "o", ".", "Output directory for generated files")
	analyzeCmd.Flags().StringVar(&analyzeProjects, "projects", "", "YAML manifest listing projects for a batch run")
	analyzeCmd.Flags().BoolVar(&analyzeSaveTraces, "save-traces", false, "Save raw traces to a JSONL capture for replay")
	analyzeCmd.Flags().BoolVar(&analyzeNoCSV, "no-csv", false, "Skip CSV exports")
	analyzeCmd.Flags().BoolVar(&analyzeDiagram, "diagram", false, "Generate a Mermaid flow diagram")

	_ = analyzeCmd.MarkFlagRequired("start-date")
	_ = analyzeCmd.MarkFlagRequired("end-date")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := validateDates(analyzeStartDate, analyzeEndDate); err != nil {
		return err
	}

	token := analyzeToken
	if token == "" {
		token = viper.GetString("bearer_token")
	}
	if token == "" {
		return utils.NewUserError(
			"Bearer token is required",
			"Pass --token, set WENI_BEARER_TOKEN, or add it to your environment",
			nil,
		)
	}

	projects, err := resolveProjects()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	log := GetLogger()
	tracer := otel.Tracer("convtrace")

	for _, project := range projects {
		outputDir := analyzeOutputDir
		if len(projects) > 1 {
			outputDir = filepath.Join(outputDir, project.Name)
		}
		if err := utils.EnsureDir(outputDir); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		color.Cyan("\n📊 Analyzing project %s (%s to %s)\n", project.Name, analyzeStartDate, analyzeEndDate)

		client := weni.NewClient(token, project.UUID,
			weni.WithBaseURLs(viper.GetString("billing_base_url"), viper.GetString("nexus_base_url")),
			weni.WithRateLimit(viper.GetFloat64("requests_per_second"), 1),
			weni.WithTimeout(time.Duration(viper.GetInt("timeout_seconds"))*time.Second),
			weni.WithLogger(*log),
		)

		runner := weni.NewRunner(client, &weni.RunnerConfig{
			StartDate: analyzeStartDate,
			EndDate:   analyzeEndDate,
			Verbose:   verbose,
		}, *log)

		agg := analyzer.NewAggregates()
		timestamp := time.Now().Format("20060102_150405")

		sink, closeSink, err := traceSink(outputDir, timestamp)
		if err != nil {
			return err
		}

		fetchCtx, span := tracer.Start(ctx, "analyze.fetch")
		stats, runErr := runner.Run(fetchCtx, agg, sink)
		span.End()

		if closeSink != nil {
			if err := closeSink(); err != nil {
				log.Warn().Err(err).Msg("failed to close trace capture")
			}
		}
		if runErr != nil {
			color.Red("✗ Analysis failed for project %s: %v", project.Name, runErr)
			if len(projects) == 1 {
				return runErr
			}
			continue
		}

		if stats.Conversations == 0 {
			color.Yellow("No conversations found for the specified date range.")
		}

		_, span = tracer.Start(ctx, "analyze.report")
		err = writeReports(outputDir, timestamp, agg, analyzeNoCSV, analyzeDiagram)
		span.End()
		if err != nil {
			return err
		}

		printStatistics(agg, stats)
	}

	return nil
}

// resolveProjects builds the project list from the batch manifest or the
// single configured project.
func resolveProjects() ([]weni.Project, error) {
	if analyzeProjects != "" {
		manifest, err := weni.ParseProjectManifest(analyzeProjects)
		if err != nil {
			return nil, fmt.Errorf("failed to parse projects manifest: %w", err)
		}
		return manifest.Projects, nil
	}

	uuid := analyzeProject
	if uuid == "" {
		uuid = viper.GetString("project_uuid")
	}
	if uuid == "" {
		return nil, utils.NewUserError(
			"Project UUID is required",
			"Pass --project-uuid, set WENI_PROJECT_UUID, or use --projects for a batch run",
			nil,
		)
	}
	return []weni.Project{{Name: "project", UUID: uuid}}, nil
}

func validateDates(start, end string) error {
	startTime, err := time.Parse(dateLayout, start)
	if err != nil {
		return utils.NewValidationError("start-date", "must be in DD-MM-YYYY format")
	}
	endTime, err := time.Parse(dateLayout, end)
	if err != nil {
		return utils.NewValidationError("end-date", "must be in DD-MM-YYYY format")
	}
	if endTime.Before(startTime) {
		return utils.NewValidationError("end-date", "must not be before start-date")
	}
	return nil
}

// traceSink opens the JSONL capture file when --save-traces is set.
func traceSink(outputDir, timestamp string) (weni.TraceSink, func() error, error) {
	if !analyzeSaveTraces {
		return nil, nil, nil
	}

	path := filepath.Join(outputDir, fmt.Sprintf("traces_%s.jsonl", timestamp))
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace capture: %w", err)
	}

	enc := json.NewEncoder(f)
	sink := func(raw map[string]any) error {
		return enc.Encode(raw)
	}
	return sink, f.Close, nil
}

// writeReports renders every configured artifact for one finished run.
func writeReports(outputDir, timestamp string, agg *analyzer.Aggregates, noCSV, diagram bool) error {
	log := GetLogger()

	if !noCSV {
		written, err := report.ExportCSVFiles(outputDir, timestamp, agg)
		if err != nil {
			return fmt.Errorf("failed to export CSV files: %w", err)
		}
		for _, path := range written {
			fmt.Printf("Generated CSV: %s\n", path)
		}
		if len(written) == 0 {
			fmt.Println("No tool call data to export.")
		}
	}

	statsPath := filepath.Join(outputDir, fmt.Sprintf("conversation_statistics_%s.txt", timestamp))
	statsFile, err := os.Create(statsPath)
	if err != nil {
		return fmt.Errorf("failed to create statistics file: %w", err)
	}
	if err := report.WriteStatistics(statsFile, agg); err != nil {
		statsFile.Close()
		return err
	}
	if err := statsFile.Close(); err != nil {
		return err
	}
	fmt.Printf("Statistics saved to: %s\n", statsPath)

	analysisPath := filepath.Join(outputDir, fmt.Sprintf("analysis_%s.json", timestamp))
	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode aggregates: %w", err)
	}
	if err := utils.WriteFile(analysisPath, data); err != nil {
		return fmt.Errorf("failed to write aggregates: %w", err)
	}
	if verbose {
		fmt.Printf("Aggregates saved to: %s (browse with 'convtrace browse %s')\n", analysisPath, analysisPath)
	}

	if diagram {
		diagramPath := filepath.Join(outputDir, fmt.Sprintf("invocation_flow_%s.md", timestamp))
		if err := utils.WriteFile(diagramPath, []byte(report.GenerateMermaid(agg))); err != nil {
			return fmt.Errorf("failed to write diagram: %w", err)
		}
		fmt.Printf("Diagram saved to: %s\n", diagramPath)
	}

	log.Debug().Str("dir", outputDir).Msg("reports written")
	return nil
}

// printStatistics renders the run summary to the console.
func printStatistics(agg *analyzer.Aggregates, stats *weni.RunStats) {
	summary := report.BuildSummary(agg)

	color.Cyan("\n%s", "CONVERSATION ANALYSIS STATISTICS")
	fmt.Println("============================================================")

	writeCounts := report.WriteListing
	if verbose {
		writeCounts = report.WriteCountTable
	}

	color.Cyan("\nAGENT INVOCATIONS:")
	_ = writeCounts(os.Stdout, summary.Agents)

	color.Cyan("\nTOOL INVOCATIONS:")
	_ = writeCounts(os.Stdout, summary.Tools)

	if len(agg.ToolCalls) > 0 {
		color.Cyan("\nTOOL CALLS:")
		_ = report.WriteToolCallTable(os.Stdout, agg.ToolCalls)
	}

	if stats != nil {
		fmt.Println()
		fmt.Printf("Conversations processed: %d\n", stats.Conversations)
		fmt.Printf("Agent messages processed: %d\n", stats.AgentMessages)
		fmt.Printf("Traces analyzed: %d\n", stats.Traces)
		if stats.FetchErrors > 0 {
			color.Yellow("Fetch errors (skipped): %d", stats.FetchErrors)
		}
	}
}
