package main

import (
	"fmt"

	"github.com/jacksmith/hp/internal/cli"
	"github.com/jacksmith/hp/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:               "show <id>",
	Short:             "Show a prospect",
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeProspectIDs,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	p, err := w.resolve(args[0])
	if err != nil {
		return err
	}

	status := "not contacted"
	if p.Contacted {
		status = cli.Green("contacted")
	}
	fmt.Printf("%s %s\n", cli.Bold(cli.DisplayName(p.Name)), cli.Gray(model.ShortID(p.ID)))
	fmt.Printf("ID:      %s\n", p.ID)
	fmt.Printf("Email:   %s\n", p.EmailAddress)
	fmt.Printf("Status:  %s\n", status)
	return nil
}
