// Package cmd implements the command-line interface for convtrace.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/convtrace/convtrace/internal/observability"
	"github.com/convtrace/convtrace/internal/utils"
)

var (
	cfgFile        string
	verbose        bool
	debug          bool
	logger         *zerolog.Logger
	tracerShutdown func(context.Context) error
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "convtrace",
	Short: "Conversation and agent-trace analyzer for the Weni platform",
	Long: `convtrace collects customer-support conversations from the Weni AI
platform, analyzes the execution traces of their agents, and exports
invocation statistics.

Features:
  • Agent-collaborator and tool invocation counts per date range
  • CSV export of every tool call with its parameters
  • Statistics text reports and Mermaid flow diagrams
  • Offline replay of saved trace captures
  • Interactive terminal viewer for analysis results

Get started with: convtrace analyze -s 15-05-2025 -e 22-05-2025`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		logger, err = utils.NewLogger(debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		zerolog.TimeFieldFormat = time.RFC3339

		if debug {
			shutdown, err := observability.SetupTracer(commandContext(cmd), os.Stderr, Version)
			if err != nil {
				logger.Warn().Err(err).Msg("failed to set up tracer")
			} else {
				tracerShutdown = shutdown
			}
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if tracerShutdown != nil {
			_ = tracerShutdown(commandContext(cmd))
		}
	},
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.convtrace.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug mode")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".convtrace")
	}

	// WENI_BEARER_TOKEN and WENI_PROJECT_UUID resolve through here.
	viper.SetEnvPrefix("WENI")
	viper.AutomaticEnv()

	viper.SetDefault("billing_base_url", "https://billing.weni.ai")
	viper.SetDefault("nexus_base_url", "https://nexus.weni.ai")
	viper.SetDefault("requests_per_second", 4.0)
	viper.SetDefault("timeout_seconds", 60)

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetLogger returns the configured logger
func GetLogger() *zerolog.Logger {
	if logger == nil {
		if l, err := utils.NewLogger(false); err == nil {
			logger = l
		} else {
			l := zerolog.New(os.Stderr).With().Timestamp().Logger()
			logger = &l
		}
	}
	return logger
}
