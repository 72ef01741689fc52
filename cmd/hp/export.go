package main

import (
	"os"

	"github.com/jacksmith/hp/internal/model"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export prospects as YAML",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	data, err := model.EncodeYAML(w.store.Snapshot())
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
