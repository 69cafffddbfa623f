package layout

// Rect is an axis-aligned rectangle given by its two corners.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal span.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical span.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Empty reports whether r is the zero rectangle.
func (r Rect) Empty() bool { return r == Rect{} }

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.MinX >= r.MinX && o.MinY >= r.MinY && o.MaxX <= r.MaxX && o.MaxY <= r.MaxY
}

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX && r.MinY < o.MaxY && o.MinY < r.MaxY
}

// Extent returns r as [[minX, minY], [maxX, maxY]].
func (r Rect) Extent() [2][2]float64 {
	return [2][2]float64{{r.MinX, r.MinY}, {r.MaxX, r.MaxY}}
}

// Bounds returns the smallest rectangle enclosing every node, grown by m.
// With no nodes it returns the zero Rect.
func Bounds(nodes []Node, m Margins) Rect {
	if len(nodes) == 0 {
		return Rect{}
	}
	r := nodes[0].Rect()
	for _, n := range nodes[1:] {
		r.MinX = min(r.MinX, n.Left())
		r.MinY = min(r.MinY, n.Top())
		r.MaxX = max(r.MaxX, n.Right())
		r.MaxY = max(r.MaxY, n.Bottom())
	}
	r.MinX -= m.Left
	r.MinY -= m.Top
	r.MaxX += m.Right
	r.MaxY += m.Bottom
	return r
}
