package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/convtrace/convtrace/internal/config"
	"github.com/convtrace/convtrace/internal/utils"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the convtrace configuration file",
}

var configInitPath string

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a default .convtrace.toml with the platform endpoints and
rate-limit settings. The bearer token is never written to the file; set
WENI_BEARER_TOKEN in your environment instead.`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "Destination path (default is $HOME/.convtrace.toml)")
	configShowCmd.Flags().StringVar(&configInitPath, "path", "", "Config file path (default is $HOME/.convtrace.toml)")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configInitPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".convtrace.toml")
	}

	if utils.FileExists(path) {
		return utils.NewUserError(
			fmt.Sprintf("Config file already exists at %s", path),
			"Remove it first, or use --path to write elsewhere",
			nil,
		)
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}

	color.Green("✓ Configuration written to %s", path)
	fmt.Println("Set WENI_BEARER_TOKEN and WENI_PROJECT_UUID to complete setup.")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path := configInitPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".convtrace.toml")
	}

	cfg := config.Default()
	if utils.FileExists(path) {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		fmt.Printf("Config file: %s\n\n", path)
	} else {
		color.Yellow("No config file at %s, showing defaults. Run 'convtrace config init' to create one.\n", path)
	}

	fmt.Printf("Project UUID:        %s\n", cfg.Project.UUID)
	fmt.Printf("Billing base URL:    %s\n", cfg.Platform.BillingBaseURL)
	fmt.Printf("Nexus base URL:      %s\n", cfg.Platform.NexusBaseURL)
	fmt.Printf("Requests per second: %g\n", cfg.Platform.RequestsPerSecond)
	fmt.Printf("Timeout (seconds):   %d\n", cfg.Platform.TimeoutSeconds)
	fmt.Printf("Output directory:    %s\n", cfg.Output.Dir)
	fmt.Printf("Save traces:         %t\n", cfg.Output.SaveTraces)
	return nil
}
