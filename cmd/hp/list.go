package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/hp/internal/cli"
	"github.com/jacksmith/hp/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List prospects",
	Long: `List prospects, most recently added first.

Filters (mutually exclusive):
  --contacted     Only people you have contacted
  --uncontacted   Only people you have not contacted yet

Sorting:
  --sort=recent   Most recently added first (default)
  --sort=name     By name, A to Z (case-sensitive)

Examples:
  hp list
  hp list --uncontacted --sort=name`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listContacted   bool
	listUncontacted bool
	listSort        string
)

func init() {
	listCmd.Flags().BoolVar(&listContacted, "contacted", false, "show contacted prospects")
	listCmd.Flags().BoolVar(&listUncontacted, "uncontacted", false, "show uncontacted prospects")
	listCmd.Flags().StringVar(&listSort, "sort", string(model.SortByRecency), "sort order (name or recent)")
	listCmd.MarkFlagsMutuallyExclusive("contacted", "uncontacted")
	listCmd.RegisterFlagCompletionFunc("sort", cobra.FixedCompletions(
		[]string{string(model.SortByName), string(model.SortByRecency)}, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	filter := model.FilterAll
	switch {
	case listContacted && listUncontacted:
		return &cli.ValidationError{Message: "--contacted and --uncontacted are mutually exclusive"}
	case listContacted:
		filter = model.FilterContacted
	case listUncontacted:
		filter = model.FilterUncontacted
	}

	choice, err := cli.MatchChoice("sort", listSort, []string{string(model.SortByName), string(model.SortByRecency)})
	if err != nil {
		return err
	}
	sortBy, err := model.ParseSort(choice)
	if err != nil {
		return err
	}

	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	people := w.store.View(filter, sortBy)
	fmt.Println(cli.Bold(filter.Title()))
	if len(people) == 0 {
		fmt.Println(cli.Gray("No prospects."))
		return nil
	}
	cli.ProspectTable(people).Render(os.Stdout)
	return nil
}
