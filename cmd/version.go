package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the convtrace version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("convtrace version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
