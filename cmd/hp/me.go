package main

import (
	"fmt"

	"github.com/jacksmith/hp/internal/model"
	"github.com/jacksmith/hp/internal/storage"
	"github.com/spf13/cobra"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Print your own card",
	Long: `Print your own two-line card (name, then email address), the payload
other people scan with "hp scan". Pipe it to a QR encoder to share it:

  hp me | qrencode -t ansiutf8

Defaults come from my_name and my_email in .hpconfig.yaml.`,
	Args: cobra.NoArgs,
	RunE: runMe,
}

var (
	meName  string
	meEmail string
)

func init() {
	meCmd.Flags().StringVar(&meName, "name", "", "name on the card")
	meCmd.Flags().StringVar(&meEmail, "email", "", "email address on the card")
	rootCmd.AddCommand(meCmd)
}

func runMe(cmd *cobra.Command, args []string) error {
	name, email := meName, meEmail

	// Outside a workspace the flags alone are enough.
	if s, err := storage.Open("."); err == nil {
		cfg, err := s.LoadConfig()
		if err != nil {
			return err
		}
		if name == "" {
			name = cfg.MyName
		}
		if email == "" {
			email = cfg.MyEmail
		}
	}
	if name == "" {
		name = model.DefaultName
	}

	fmt.Println(model.Card(name, email))
	return nil
}
