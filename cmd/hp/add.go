package main

import (
	"fmt"

	"github.com/jacksmith/hp/internal/cli"
	"github.com/jacksmith/hp/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a prospect",
	Long: `Add a new, uncontacted prospect.

With -i, opens $EDITOR on a two-line card (name, then email), prefilled
from --name and --email. A prospect without a name is called "Anonymous".

Examples:
  hp add --name "Paul Hudson" --email paul@hackingwithswift.com
  hp add -i`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var (
	addName        string
	addEmail       string
	addInteractive bool
)

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "prospect name")
	addCmd.Flags().StringVar(&addEmail, "email", "", "prospect email address")
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "edit the card in $EDITOR")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	var p model.Prospect
	if addInteractive {
		card, err := cli.EditCard(addName, addEmail)
		if err != nil {
			return err
		}
		parsed, ok := model.ParseScan(card)
		if !ok {
			return &cli.ValidationError{Field: "card", Message: "want exactly two lines: name, then email"}
		}
		p = model.NewProspect(parsed.Name, parsed.EmailAddress)
	} else {
		if addName == "" && addEmail == "" {
			return &cli.ValidationError{Message: "nothing to add (use --name/--email, or -i)"}
		}
		p = model.NewProspect(addName, addEmail)
	}

	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := unsaved(w.store.Add(p)); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", model.ShortID(p.ID), p.Name)
	return nil
}
