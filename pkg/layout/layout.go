package layout

import "github.com/matzehuels/graphlearn/pkg/content"

// Compute validates doc and cfg, then lays the document out.
func Compute(doc *content.Document, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t, err := content.BuildTree(doc)
	if err != nil {
		return nil, err
	}
	return ComputeTree(t, cfg), nil
}

// ComputeTree lays out an already validated tree. cfg is assumed valid.
func ComputeTree(t *content.Tree, cfg Config) *Result {
	nodes := Place(t, cfg)
	res := &Result{
		Nodes:  nodes,
		Root:   t.Root(),
		Edges:  t.Edges(),
		Bounds: Bounds(nodes, cfg.Margins),
	}
	if title := t.Title(); title != "" {
		res.Title = PlaceTitle(title, nodes[t.Root()], cfg.Title)
	}
	return res
}

// PlaceTitle positions the heading relative to the final root position.
func PlaceTitle(text string, root Node, tc TitleConfig) *TitleBox {
	return &TitleBox{
		Text: text,
		Position: Position{
			X: root.Position.X - tc.Offset(root.Content.Category),
			Y: root.Position.Y - tc.OffsetY,
		},
		Size: Dimensions{Width: tc.Width, Height: tc.Height},
	}
}
