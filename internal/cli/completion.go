package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlearn/pkg/layout"
	"github.com/matzehuels/graphlearn/pkg/pipeline"
	"github.com/matzehuels/graphlearn/pkg/render"
	"github.com/matzehuels/graphlearn/pkg/render/canvas"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for graphlearn.

Besides subcommands and flags, the scripts complete content documents
(.json, .yaml, .yml, .toml, .hcl) for the source argument and the values of
--row-mode, --align, --theme, --type and --format.

Bash:
  $ source <(graphlearn completion bash)
  $ graphlearn completion bash > /etc/bash_completion.d/graphlearn

Zsh:
  $ graphlearn completion zsh > "${fpath[1]}/_graphlearn"

Fish:
  $ graphlearn completion fish > ~/.config/fish/completions/graphlearn.fish

PowerShell:
  PS> graphlearn completion powershell | Out-String | Invoke-Expression

Open a new shell afterwards, then try:
  $ graphlearn render examples/<TAB> --theme <TAB>`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// documentExtensions are the file types offered for a source argument.
var documentExtensions = []string{"json", "yaml", "yml", "toml", "hcl"}

// completeDocument completes the single source argument with content files.
func completeDocument(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return documentExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// fixedValues completes a flag from a closed set.
func fixedValues(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerLayoutCompletions attaches value completion to the shared layout
// flags.
func registerLayoutCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("row-mode", fixedValues(string(layout.RowParent), string(layout.RowFixed)))
	_ = cmd.RegisterFlagCompletionFunc("align", fixedValues(string(layout.AlignExtent), string(layout.AlignCenters)))
}

// registerRenderCompletions attaches value completion to the render flags.
func registerRenderCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("theme", fixedValues(canvas.Light.Name, canvas.Dark.Name))
	_ = cmd.RegisterFlagCompletionFunc("type", fixedValues(pipeline.VizCanvas, pipeline.VizNodelink))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedValues(
		string(render.FormatSVG), string(render.FormatJSON), string(render.FormatPDF), string(render.FormatPNG)))
}
