// Package main is the entry point for the hp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/hp/internal/cli"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hp",
	Short: "hp - keep track of the people you met",
	Long: `hp (Hot Prospects) keeps a list of people you met, with a flag for
whether you have contacted them yet.

Add people by hand or by scanning their two-line card (name, then email).
List everyone, only the contacted, or only the uncontacted, sorted by name
or most recent first, and ask hp to remind you to get in touch.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.SetVersionTemplate("hp version {{.Version}}\n")
}
