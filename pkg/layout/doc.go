// Package layout positions a content tree on a two-dimensional canvas.
//
// # Overview
//
// Every node is a fixed-size rectangle whose size depends only on its
// category. The layout runs four passes over a validated content.Tree:
//
//  1. Dimensions: [Sizes.Dimensions] maps a category to a rectangle.
//  2. Subtree widths: [SubtreeWidths] computes, bottom-up, the horizontal
//     footprint each node needs for itself and all of its descendants.
//  3. Placement: [Place] puts the root at [Config.Start] and walks the tree
//     depth-first. Each parent's children are laid out left to right in one
//     row, their combined footprint centred under the parent. When a
//     parent's subtree is done the parent is re-centred over its children.
//  4. Bounds: [Bounds] returns the rectangle enclosing every node, padded by
//     [Margins]. The canvas uses it as its pan limit.
//
// [Compute] runs all four and, when the document has a title, places a
// heading rectangle above the root.
//
// # Spacing
//
// Siblings are separated by [Config.HorizontalSpacing]. A child row starts
// [Config.VerticalPadding] below the bottom edge of its parent
// ([RowParent]), or on a fixed per-depth grid ([RowFixed]). Parents with at
// least one wide child (webpages by default) reserve one extra spacing unit.
//
// A parent's subtree width counts only its children, so a parent wider than
// its child row can reach into a neighbour's slot. [Config.ReserveOwnWidth]
// widens such subtrees and keeps every subtree inside its slot.
//
// # Determinism
//
// Layout is a pure function of the tree and the configuration: the same
// input always yields the same positions, and nothing is mutated.
//
// # Example
//
//	tree, err := content.BuildTree(doc)
//	if err != nil {
//	    return err
//	}
//	res := layout.ComputeTree(tree, layout.DefaultConfig())
//	for _, n := range res.Nodes {
//	    fmt.Println(n.Content.ID, n.Position.X, n.Position.Y)
//	}
package layout
