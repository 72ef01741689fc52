package main

import (
	"os"
	"strings"

	"github.com/jacksmith/hp/internal/cli"
	"github.com/jacksmith/hp/internal/model"
	"github.com/jacksmith/hp/internal/storage"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for hp.

To load completions:

Bash:
  $ source <(hp completion bash)

Zsh:
  $ hp completion zsh > "${fpath[1]}/_hp"

Fish:
  $ hp completion fish | source
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeProspectIDs completes short prospect IDs, described by name.
func completeProspectIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	s, err := storage.Open(".")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	adapter, closer, err := s.OpenAdapter()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer closer.Close()

	people, err := adapter.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	toCompleteLower := strings.ToLower(toComplete)
	for _, p := range people {
		short := model.ShortID(p.ID)
		if strings.HasPrefix(short, toCompleteLower) {
			completions = append(completions, short+"\t"+cli.Truncate(p.Name, 40))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
