package canvas

// Theme is the colour palette of the canvas.
type Theme struct {
	Name       string
	Background string
	NodeFill   string
	NodeStroke string
	Text       string
	Muted      string
	Edge       string
	// Accent colours the top bar of a node by category.
	Accent map[string]string
}

var (
	// Light is the default theme.
	Light = Theme{
		Name:       "light",
		Background: "#fafafa",
		NodeFill:   "#ffffff",
		NodeStroke: "#d4d4d8",
		Text:       "#18181b",
		Muted:      "#71717a",
		Edge:       "#a1a1aa",
		Accent: map[string]string{
			"video":   "#ef4444",
			"webpage": "#3b82f6",
			"text":    "#10b981",
		},
	}

	// Dark mirrors Light on a dark background.
	Dark = Theme{
		Name:       "dark",
		Background: "#09090b",
		NodeFill:   "#18181b",
		NodeStroke: "#3f3f46",
		Text:       "#fafafa",
		Muted:      "#a1a1aa",
		Edge:       "#52525b",
		Accent: map[string]string{
			"video":   "#f87171",
			"webpage": "#60a5fa",
			"text":    "#34d399",
		},
	}
)

// ThemeByName returns Light or Dark.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", Light.Name:
		return Light, true
	case Dark.Name:
		return Dark, true
	}
	return Theme{}, false
}

func (t Theme) accent(category string) string {
	if c, ok := t.Accent[category]; ok {
		return c
	}
	return t.Muted
}
