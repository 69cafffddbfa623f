package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlearn/pkg/pipeline"
)

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		lf         layoutFlags
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render a content document to SVG, PDF, PNG or scene JSON",
		Long: `Render a content document.

The canvas view (-t canvas, the default) draws every node at its layout
position. The node-link view (-t nodelink) draws a compact Graphviz diagram
of the tree. PDF and PNG output need rsvg-convert on PATH.

With one format the output goes to -o as given; with several, -o is a base
path and each file gets the format's extension.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			base := c.baseOptions(cmd, args[0], &lf)
			opts.Source = base.Source
			opts.Layout = base.Layout
			opts.Logger = base.Logger
			if !cmd.Flags().Changed("theme") {
				opts.Theme = base.Theme
			}
			if !cmd.Flags().Changed("scale") {
				opts.Scale = base.Scale
			}
			opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", pipeline.DefaultVizType, "visualization type: canvas, nodelink")
	cmd.Flags().StringVar(&opts.Theme, "theme", pipeline.DefaultTheme, "colour theme: light, dark")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.NoEdges, "no-edges", false, "omit edges (canvas)")
	cmd.Flags().BoolVar(&opts.NoTitle, "no-title", false, "omit the document title (canvas)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show category and url in node labels (nodelink)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "reload remote documents instead of using the cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd)
	registerRenderCompletions(cmd)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Source))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output, opts.Source)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printSceneStats(result.Scene, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	c.Logger.Debug("Timings",
		"load", result.Stats.LoadTime,
		"layout", result.Stats.LayoutTime,
		"render", result.Stats.RenderTime)

	return nil
}

// writeArtifacts writes artifacts in the order of formats and returns the
// paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, source string) ([]string, error) {
	base := outputBase(output, source)
	var paths []string
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := base + "." + f
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
