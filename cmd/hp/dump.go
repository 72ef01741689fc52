package main

import (
	"fmt"

	"github.com/jacksmith/hp/internal/model"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print all prospects as plain text",
	Long: `Print every prospect as human-readable plain text, in the order they
were added. This is a one-way export for viewing or sharing.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	people := w.store.Snapshot()
	contacted := len(model.Project(people, model.FilterContacted, model.SortByRecency))

	fmt.Printf("# Prospects: %d (%d contacted)\n", len(people), contacted)
	for _, p := range people {
		fmt.Println()
		mark := " "
		if p.Contacted {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, p.Name)
		if p.EmailAddress != "" {
			fmt.Printf("    %s\n", p.EmailAddress)
		}
		fmt.Printf("    id: %s\n", p.ID)
	}
	return nil
}
