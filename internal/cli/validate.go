package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
	"github.com/matzehuels/graphlearn/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:               "validate [source]",
		Short:             "Check that a content document describes a single tree",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), pipeline.Options{Source: args[0], Logger: c.Logger}, noCache)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	tree, err := content.BuildTree(doc)
	if err != nil {
		printError("%s is not a valid tree", opts.Source)
		if code := errors.GetCode(err); code != "" {
			printDetail("%s: %s", code, errors.UserMessage(err))
		}
		return err
	}

	printSuccess("%s is valid", opts.Source)
	printTreeSummary(tree)
	return nil
}

// printTreeSummary prints the root, depth and per-category node counts.
func printTreeSummary(t *content.Tree) {
	counts := make(map[content.Category]int)
	for _, n := range t.Nodes() {
		counts[n.Category]++
	}

	if t.Title() != "" {
		printKeyValue("Title", t.Title())
	}
	printKeyValue("Root", t.Node(t.Root()).ID)
	printKeyValue("Nodes", strconv.Itoa(t.Len()))
	printKeyValue("Edges", strconv.Itoa(len(t.Edges())))
	printKeyValue("Depth", strconv.Itoa(treeDepth(t)))
	for _, cat := range content.Categories {
		if n := counts[cat]; n > 0 {
			printCategoryCount(cat, n)
		}
	}
	other := 0
	for cat, n := range counts {
		if !cat.Known() {
			other += n
		}
	}
	if other > 0 {
		printWarning("%d nodes with an unknown category use the default size", other)
	}
}

// treeDepth returns the number of edges on the longest root-to-leaf path.
func treeDepth(t *content.Tree) int {
	type item struct{ node, depth int }
	best := 0
	stack := []item{{t.Root(), 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		best = max(best, it.depth)
		for _, k := range t.Children(it.node) {
			stack = append(stack, item{k, it.depth + 1})
		}
	}
	return best
}
