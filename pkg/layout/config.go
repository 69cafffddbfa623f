package layout

import (
	"slices"

	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
)

// RowMode decides the y coordinate of a child row.
type RowMode string

const (
	// RowParent starts each child row VerticalPadding below its parent's
	// bottom edge.
	RowParent RowMode = "parent"
	// RowFixed puts depth d at Start.Y + d*(LevelHeight+VerticalPadding).
	RowFixed RowMode = "fixed"
)

// ParentAlign decides how a parent is re-centred over its children.
type ParentAlign string

const (
	// AlignExtent centres the parent over the span from the first child's
	// left edge to the last child's right edge.
	AlignExtent ParentAlign = "extent"
	// AlignCenters centres the parent between the first and last child
	// centres. Equal to AlignExtent when the end children have equal widths.
	AlignCenters ParentAlign = "centers"
)

// Margins pad the bounding box on each side.
type Margins struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// TitleConfig sizes and offsets the document heading. The heading's
// top-left corner is (root.X - OffsetX, root.Y - OffsetY), where OffsetX
// depends on the root's category.
type TitleConfig struct {
	Width          float64                      `json:"width"`
	Height         float64                      `json:"height"`
	OffsetY        float64                      `json:"offset_y"`
	OffsetX        map[content.Category]float64 `json:"offset_x"`
	DefaultOffsetX float64                      `json:"default_offset_x"`
}

// Offset returns the horizontal offset for a root of category c.
func (t TitleConfig) Offset(c content.Category) float64 {
	if x, ok := t.OffsetX[c]; ok {
		return x
	}
	return t.DefaultOffsetX
}

// Config holds every layout parameter.
type Config struct {
	// Start is the root's initial top-left corner.
	Start Position `json:"start"`
	// HorizontalSpacing separates siblings and neighbouring subtrees.
	HorizontalSpacing float64 `json:"horizontal_spacing"`
	// VerticalPadding separates a parent row from its child row.
	VerticalPadding float64 `json:"vertical_padding"`
	// WideBonus adds one HorizontalSpacing to a parent's subtree width when
	// any direct child is in WideCategories.
	WideBonus      bool               `json:"wide_bonus"`
	WideCategories []content.Category `json:"wide_categories"`
	// ReserveOwnWidth makes a subtree at least as wide as its own root and
	// keeps every subtree inside the slot its parent gave it, so siblings
	// never overlap. Off, a parent wider than its children's row spills into
	// its neighbours' slots.
	ReserveOwnWidth bool `json:"reserve_own_width"`
	RowMode        RowMode            `json:"row_mode"`
	// LevelHeight is the row height for RowFixed. Zero means the tallest
	// rectangle in the document.
	LevelHeight float64     `json:"level_height"`
	ParentAlign ParentAlign `json:"parent_align"`
	// PinRoot translates the finished layout so that the root ends at
	// Start even after it has been re-centred over its children.
	PinRoot bool        `json:"pin_root"`
	Margins Margins     `json:"margins"`
	Sizes   Sizes       `json:"sizes"`
	Title   TitleConfig `json:"title"`
}

// DefaultConfig returns the configuration the site uses.
func DefaultConfig() Config {
	return Config{
		Start:             Position{X: 100, Y: 100},
		HorizontalSpacing: 300,
		VerticalPadding:   100,
		WideBonus:         true,
		WideCategories:    []content.Category{content.CategoryWebpage},
		RowMode:           RowParent,
		ParentAlign:       AlignExtent,
		PinRoot:           true,
		Margins:           Margins{Left: 500, Top: 500, Right: 500, Bottom: 200},
		Sizes:             DefaultSizes(),
		Title: TitleConfig{
			Width:   1000,
			Height:  100,
			OffsetY: 200,
			OffsetX: map[content.Category]float64{
				content.CategoryText:  250,
				content.CategoryVideo: 100,
			},
			DefaultOffsetX: 50,
		},
	}
}

// Validate rejects negative spacing and unknown modes.
func (c Config) Validate() error {
	switch {
	case c.HorizontalSpacing < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "horizontal spacing must be >= 0, got %v", c.HorizontalSpacing)
	case c.VerticalPadding < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "vertical padding must be >= 0, got %v", c.VerticalPadding)
	case c.LevelHeight < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "level height must be >= 0, got %v", c.LevelHeight)
	}
	switch c.RowMode {
	case RowParent, RowFixed, "":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown row mode %q (want parent or fixed)", c.RowMode)
	}
	switch c.ParentAlign {
	case AlignExtent, AlignCenters, "":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown parent alignment %q (want extent or centers)", c.ParentAlign)
	}
	for cat, d := range c.Sizes.ByCategory {
		if d.Width <= 0 || d.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "size for %q must be positive, got %vx%v", cat, d.Width, d.Height)
		}
	}
	if c.Sizes.Default.Width <= 0 || c.Sizes.Default.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "default size must be positive")
	}
	return nil
}

func (c Config) isWide(cat content.Category) bool {
	return c.WideBonus && slices.Contains(c.WideCategories, cat)
}
