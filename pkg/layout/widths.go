package layout

import "github.com/matzehuels/graphlearn/pkg/content"

// SubtreeWidths returns the horizontal footprint of every node's subtree,
// keyed by node index.
//
// A leaf needs its own width. An internal node needs the sum of its
// children's subtree widths with one HorizontalSpacing between neighbours,
// plus one more HorizontalSpacing when the wide bonus applies. The own width
// of an internal node does not enter the sum unless cfg.ReserveOwnWidth is
// set, in which case the result is never narrower than the node itself.
//
// The traversal is post-order with an explicit stack and computes each node
// exactly once.
func SubtreeWidths(t *content.Tree, cfg Config) map[int]float64 {
	widths := make(map[int]float64, t.Len())

	type frame struct {
		node     int
		expanded bool
	}
	var stack []frame

	for start := range t.Len() {
		if _, done := widths[start]; done {
			continue
		}
		stack = append(stack[:0], frame{node: start})
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if _, done := widths[f.node]; done {
				continue
			}

			kids := t.Children(f.node)
			if len(kids) == 0 {
				widths[f.node] = cfg.Sizes.Dimensions(t.Node(f.node).Category).Width
				continue
			}
			if !f.expanded {
				stack = append(stack, frame{node: f.node, expanded: true})
				for i := len(kids) - 1; i >= 0; i-- {
					if _, done := widths[kids[i]]; !done {
						stack = append(stack, frame{node: kids[i]})
					}
				}
				continue
			}

			w := footprint(t, kids, widths, cfg)
			for _, k := range kids {
				if cfg.isWide(t.Node(k).Category) {
					w += cfg.HorizontalSpacing
					break
				}
			}
			if own := cfg.Sizes.Dimensions(t.Node(f.node).Category).Width; cfg.ReserveOwnWidth && own > w {
				w = own
			}
			widths[f.node] = w
		}
	}
	return widths
}

// footprint is the width of a row of children: each child's slot, minus the
// trailing spacing.
func footprint(t *content.Tree, kids []int, widths map[int]float64, cfg Config) float64 {
	var sum float64
	for _, k := range kids {
		sum += slot(t, k, widths, cfg)
	}
	return sum - cfg.HorizontalSpacing
}

// slot is the horizontal advance for child k: its subtree width plus one
// spacing, or its own width plus one spacing when no subtree width is known.
func slot(t *content.Tree, k int, widths map[int]float64, cfg Config) float64 {
	return subtreeWidth(t, k, widths, cfg) + cfg.HorizontalSpacing
}

func subtreeWidth(t *content.Tree, k int, widths map[int]float64, cfg Config) float64 {
	if w, ok := widths[k]; ok {
		return w
	}
	return cfg.Sizes.Dimensions(t.Node(k).Category).Width
}
