package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlearn/pkg/layout"
	"github.com/matzehuels/graphlearn/pkg/pipeline"
)

// inspectCommand creates the inspect command, an interactive browser over
// the computed layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain   bool
		noCache bool
		lf      layoutFlags
	)

	cmd := &cobra.Command{
		Use:               "inspect [source]",
		Short:             "Browse node positions, sizes and subtree widths",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), c.baseOptions(cmd, args[0], &lf), plain, noCache)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table instead of starting the interactive view")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, plain, noCache bool) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	// The scene drops subtree widths, so lay out directly.
	res, err := layout.Compute(doc, opts.LayoutConfig())
	if err != nil {
		return err
	}

	if plain {
		fmt.Println(nodeTable(res, 0, len(res.Nodes), -1).Render())
		return nil
	}

	_, err = tea.NewProgram(NewNodeListModel(res), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
