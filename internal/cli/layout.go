package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlearn/pkg/pipeline"
	"github.com/matzehuels/graphlearn/pkg/scene"
)

// layoutCommand creates the layout command for computing canvas scenes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		lf      layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [source]",
		Short: "Compute the canvas scene for a content document",
		Long: `Compute the canvas scene for a content document.

The source is a local file (json, yaml, toml or hcl), an http(s) URL or a
mongodb:// URL. The output is a scene JSON file with node positions and
sizes, edges, the title box and the canvas translate extent, ready for a
canvas front end or 'graphlearn render'.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions(cmd, args[0], &lf)
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload remote documents instead of using the cache")
	lf.register(cmd)

	return cmd
}

// runLayout loads the document, computes the scene and writes it out.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d nodes from %s", len(doc.Nodes), opts.Source))

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	sc, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase("", opts.Source) + ".scene.json"
	}
	if err := scene.WriteFile(sc, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printSceneStats(sc, cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+opts.Source)

	return nil
}
