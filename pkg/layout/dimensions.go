package layout

import "github.com/matzehuels/graphlearn/pkg/content"

// Dimensions is the size of a node rectangle.
type Dimensions struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Sizes maps categories to rectangle sizes. Any category without an entry
// gets Default, so the mapping is total.
type Sizes struct {
	ByCategory map[content.Category]Dimensions `json:"by_category"`
	Default    Dimensions                      `json:"default"`
}

// DefaultSizes returns the sizes used by the site.
func DefaultSizes() Sizes {
	return Sizes{
		ByCategory: map[content.Category]Dimensions{
			content.CategoryVideo:   {Width: 800, Height: 500},
			content.CategoryWebpage: {Width: 900, Height: 1000},
			content.CategoryText:    {Width: 500, Height: 300},
		},
		Default: Dimensions{Width: 300, Height: 200},
	}
}

// Dimensions returns the rectangle for category c.
func (s Sizes) Dimensions(c content.Category) Dimensions {
	if d, ok := s.ByCategory[c]; ok {
		return d
	}
	return s.Default
}

// With returns a copy of s with c mapped to d.
func (s Sizes) With(c content.Category, d Dimensions) Sizes {
	m := make(map[content.Category]Dimensions, len(s.ByCategory)+1)
	for k, v := range s.ByCategory {
		m[k] = v
	}
	m[c] = d
	return Sizes{ByCategory: m, Default: s.Default}
}

// MaxHeight returns the tallest rectangle used by any node of t.
func (s Sizes) MaxHeight(t *content.Tree) float64 {
	var h float64
	for _, n := range t.Nodes() {
		h = max(h, s.Dimensions(n.Category).Height)
	}
	return h
}
