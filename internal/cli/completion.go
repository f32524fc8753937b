package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uxl/pkg/parser"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for uxl.

Besides commands and flags, the scripts complete .uxl file arguments and the
page ids of --page from the document named on the command line.

Bash:
  $ source <(uxl completion bash)

Zsh:
  $ uxl completion zsh > "${fpath[1]}/_uxl"

Fish:
  $ uxl completion fish > ~/.config/fish/completions/uxl.fish

PowerShell:
  PS> uxl completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// registerCompletions wires document-aware completion into every command that
// takes a UXL file argument.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		if !strings.Contains(cmd.Use, "file.uxl") {
			continue
		}
		cmd.ValidArgsFunction = completeSourceFile
		if cmd.Flags().Lookup("page") != nil {
			cmd.RegisterFlagCompletionFunc("page", completePages)
		}
	}
}

// completeSourceFile offers .uxl files for the single source argument.
func completeSourceFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"uxl"}, cobra.ShellCompDirectiveFilterFileExt
}

// completePages offers the page keys of the document in args[0], each
// described by the page title. Documents that fail to parse offer nothing.
func completePages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 || args[0] == "-" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	doc, err := parser.ParseFile(args[0], parser.Options{Mode: parser.Permissive})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var out []string
	for _, p := range doc.Pages {
		key := p.Key()
		if strings.HasPrefix(strings.ToLower(key), strings.ToLower(toComplete)) {
			out = append(out, key+"\t"+p.Title())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
