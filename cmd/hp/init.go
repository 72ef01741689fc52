package main

import (
	"fmt"

	"github.com/jacksmith/hp/internal/cli"
	"github.com/jacksmith/hp/internal/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new hp workspace",
	Long: `Create a .hp/ directory in the current directory.

Prospects are kept in .hp/prospects.json by default. Use --backend=sqlite
to keep them in a SQLite database (.hp/prospects.db) instead.

Fails if .hp/ already exists in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initBackend string

func init() {
	initCmd.Flags().StringVar(&initBackend, "backend", string(storage.BackendFile), "storage backend (file or sqlite)")
	initCmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions(
		[]string{string(storage.BackendFile), string(storage.BackendSQLite)}, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	backend, err := cli.MatchChoice("backend", initBackend,
		[]string{string(storage.BackendFile), string(storage.BackendSQLite)})
	if err != nil {
		return err
	}

	s, err := storage.Init(".", storage.Backend(backend))
	if err != nil {
		return err
	}
	fmt.Printf("Initialized hp in .hp/ (%s backend)\n", s.Backend())
	return nil
}
