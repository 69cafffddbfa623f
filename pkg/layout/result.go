package layout

import "github.com/matzehuels/graphlearn/pkg/content"

// Position is the top-left corner of a rectangle.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one placed rectangle.
type Node struct {
	Index        int
	Content      content.Node
	Position     Position
	Size         Dimensions
	Depth        int
	SubtreeWidth float64
}

// Left returns the x coordinate of the left edge.
func (n Node) Left() float64 { return n.Position.X }

// Right returns the x coordinate of the right edge.
func (n Node) Right() float64 { return n.Position.X + n.Size.Width }

// Top returns the y coordinate of the top edge.
func (n Node) Top() float64 { return n.Position.Y }

// Bottom returns the y coordinate of the bottom edge.
func (n Node) Bottom() float64 { return n.Position.Y + n.Size.Height }

// CenterX returns the horizontal centre.
func (n Node) CenterX() float64 { return n.Position.X + n.Size.Width/2 }

// CenterY returns the vertical centre.
func (n Node) CenterY() float64 { return n.Position.Y + n.Size.Height/2 }

// Rect returns the node's rectangle.
func (n Node) Rect() Rect {
	return Rect{MinX: n.Left(), MinY: n.Top(), MaxX: n.Right(), MaxY: n.Bottom()}
}

// TitleBox is the placed document heading.
type TitleBox struct {
	Text     string
	Position Position
	Size     Dimensions
}

// Result is a complete layout.
type Result struct {
	// Nodes holds one entry per node, in document order.
	Nodes []Node
	// Root indexes Nodes.
	Root int
	// Edges are parent → child links by node index.
	Edges []content.Edge
	// Bounds encloses every node, padded by the configured margins.
	Bounds Rect
	// Title is nil when the document has no title.
	Title *TitleBox
}

// Node returns the placed node with the given ID.
func (r *Result) Node(id string) (Node, bool) {
	for _, n := range r.Nodes {
		if n.Content.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Positions returns the node positions keyed by ID.
func (r *Result) Positions() map[string]Position {
	m := make(map[string]Position, len(r.Nodes))
	for _, n := range r.Nodes {
		m[n.Content.ID] = n.Position
	}
	return m
}

// MaxDepth returns the depth of the deepest node.
func (r *Result) MaxDepth() int {
	d := 0
	for _, n := range r.Nodes {
		d = max(d, n.Depth)
	}
	return d
}
