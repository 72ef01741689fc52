package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jacksmith/hp/internal/model"
	"github.com/jacksmith/hp/internal/ops"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [payload]",
	Short: "Add a prospect from a scanned card",
	Long: `Add a prospect from a scanned code payload.

The payload is exactly two lines: the name, then the email address. It is
read from the argument, from --file, or from stdin. Payloads with any other
number of lines are ignored and nothing is added.

Examples:
  hp scan "$(printf 'Paul Hudson\npaul@hackingwithswift.com')"
  zbarimg --raw -q card.png | hp scan`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

var scanFile string

func init() {
	scanCmd.Flags().StringVarP(&scanFile, "file", "f", "", "read the payload from a file")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	payload, err := readPayload(args)
	if err != nil {
		return err
	}

	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	p, added, err := ops.AddScanned(w.store, payload)
	if err := unsaved(err); err != nil {
		return err
	}
	if !added {
		w.logger.Info("ignored scan payload", "bytes", len(payload))
		fmt.Println("Nothing added: payload is not a name and email on two lines")
		return nil
	}
	fmt.Printf("%s %s\n", model.ShortID(p.ID), p.Name)
	return nil
}

// readPayload takes the payload from args, --file, or stdin, in that order.
// A single trailing newline from a file or pipe is dropped.
func readPayload(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	var (
		data []byte
		err  error
	)
	if scanFile != "" {
		data, err = os.ReadFile(scanFile)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read payload: %w", err)
	}

	s := string(data)
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	return s, nil
}
