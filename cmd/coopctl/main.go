package main

import (
	"os"

	"github.com/spf13/cobra"

	"ell/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "coopctl",
	Short: "Drive and inspect ell cooperative coroutine loops",
	Long:  `coopctl runs demo scenarios against an ell.EventLoop and can monitor or inspect one while it drains.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
