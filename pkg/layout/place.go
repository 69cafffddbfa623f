package layout

import "github.com/matzehuels/graphlearn/pkg/content"

// Place computes subtree widths and positions every node of t.
func Place(t *content.Tree, cfg Config) []Node {
	return PlaceWithWidths(t, SubtreeWidths(t, cfg), cfg)
}

// PlaceWithWidths positions every node of t using precomputed subtree
// widths. The result is in document order.
//
// The root goes to cfg.Start. For each parent, depth-first:
//
//   - the children's combined footprint is centred under the parent: the
//     first child starts at parent.X + (parent.Width - footprint)/2;
//   - each following child starts one subtree width plus one spacing unit
//     to the right of the previous one;
//   - a child's subtree is finished before its next sibling is placed;
//   - once all children are done, the parent is re-centred over them.
//
// A node reachable through several parents is placed by the first one, and
// only the children a parent placed itself take part in its re-centring.
//
// With cfg.ReserveOwnWidth each child is centred in its slot instead of
// starting at the slot's left edge, and re-centring never moves a parent
// outside its slot.
//
// A child missing from widths advances by its own width plus one spacing
// unit and reports a SubtreeWidth of zero.
func PlaceWithWidths(t *content.Tree, widths map[int]float64, cfg Config) []Node {
	p := &placer{
		tree:   t,
		cfg:    cfg,
		widths: widths,
		nodes:  make([]Node, t.Len()),
		placed: make([]bool, t.Len()),
		slots:  make(map[int]span),
	}
	if cfg.RowMode == RowFixed {
		p.levelHeight = cfg.LevelHeight
		if p.levelHeight == 0 {
			p.levelHeight = cfg.Sizes.MaxHeight(t)
		}
	}
	for i, n := range t.Nodes() {
		p.nodes[i] = Node{
			Index:        i,
			Content:      n,
			Size:         cfg.Sizes.Dimensions(n.Category),
			SubtreeWidth: widths[i],
		}
	}

	root := t.Root()
	p.nodes[root].Position = cfg.Start
	p.placed[root] = true
	p.placeChildren(root)

	if cfg.PinRoot {
		dx := cfg.Start.X - p.nodes[root].Position.X
		dy := cfg.Start.Y - p.nodes[root].Position.Y
		if dx != 0 || dy != 0 {
			for i := range p.nodes {
				p.nodes[i].Position.X += dx
				p.nodes[i].Position.Y += dy
			}
		}
	}
	return p.nodes
}

type placer struct {
	tree        *content.Tree
	cfg         Config
	widths      map[int]float64
	nodes       []Node
	placed      []bool
	slots       map[int]span
	levelHeight float64
}

// span is the horizontal range reserved for a subtree.
type span struct{ left, right float64 }

func (p *placer) placeChildren(parent int) {
	kids := p.tree.Children(parent)
	if len(kids) == 0 {
		return
	}

	par := &p.nodes[parent]
	x := par.Position.X + (par.Size.Width-footprint(p.tree, kids, p.widths, p.cfg))/2
	depth := par.Depth + 1
	y := p.rowY(par, depth)

	own := make([]int, 0, len(kids))
	for _, k := range kids {
		if p.placed[k] {
			continue
		}
		p.placed[k] = true
		nx := x
		if p.cfg.ReserveOwnWidth {
			w := subtreeWidth(p.tree, k, p.widths, p.cfg)
			nx = x + (w-p.nodes[k].Size.Width)/2
			p.slots[k] = span{left: x, right: x + w}
		}
		p.nodes[k].Position = Position{X: nx, Y: y}
		p.nodes[k].Depth = depth
		x += slot(p.tree, k, p.widths, p.cfg)
		p.placeChildren(k)
		own = append(own, k)
	}

	if len(own) > 0 {
		p.align(parent, own)
	}
}

func (p *placer) rowY(parent *Node, depth int) float64 {
	if p.cfg.RowMode == RowFixed {
		return p.cfg.Start.Y + float64(depth)*(p.levelHeight+p.cfg.VerticalPadding)
	}
	return parent.Bottom() + p.cfg.VerticalPadding
}

// align re-centres parent over the first and last of the children it placed.
func (p *placer) align(parent int, kids []int) {
	first, last := p.nodes[kids[0]], p.nodes[kids[len(kids)-1]]
	par := &p.nodes[parent]

	var mid float64
	if p.cfg.ParentAlign == AlignCenters {
		mid = (first.CenterX() + last.CenterX()) / 2
	} else {
		mid = (first.Left() + last.Right()) / 2
	}
	par.Position.X = mid - par.Size.Width/2

	if s, ok := p.slots[parent]; ok {
		par.Position.X = max(s.left, min(par.Position.X, s.right-par.Size.Width))
	}
}
