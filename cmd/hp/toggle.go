package main

import (
	"fmt"

	"github.com/jacksmith/hp/internal/cli"
	"github.com/jacksmith/hp/internal/model"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a prospect contacted or uncontacted",
	Long: `Flip a prospect's contacted flag.

Toggling twice leaves the prospect as it was.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runToggle,
	ValidArgsFunction: completeProspectIDs,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	p, err := w.resolve(args[0])
	if err != nil {
		return err
	}
	p, err = w.store.ToggleContacted(p.ID)
	if err := unsaved(err); err != nil {
		return cli.LookupError(args[0], err)
	}

	verb := "Marked uncontacted"
	if p.Contacted {
		verb = "Marked contacted"
	}
	fmt.Printf("%s: %s %s\n", verb, model.ShortID(p.ID), p.Name)
	return nil
}
