package canvas

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/matzehuels/graphlearn/pkg/scene"
)

func testScene() scene.Scene {
	return scene.Scene{
		Title: &scene.Heading{Text: "Tips & Tricks", X: 0, Y: -100, Width: 1000, Height: 100},
		Nodes: []scene.Node{
			{ID: "1", Category: "video", X: 100, Y: 0, Width: 800, Height: 500,
				Label: scene.Label{Kind: scene.LabelVideo, URL: "https://example.com/watch?v=1&t=2", OpenLink: "Open Intro"}},
			{ID: "2", Category: "text", X: 0, Y: 600, Width: 500, Height: 300,
				Label: scene.Label{Kind: scene.LabelText, Text: "Routing basics"}},
		},
		Edges: []scene.Edge{
			{ID: "e1-2", Source: "1", Target: "2", Type: scene.EdgeTypeSmoothStep, Animated: true},
		},
		Width:           1000,
		Height:          700,
		TranslateExtent: [2][2]float64{{-100, -50}, {900, 650}},
	}
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(testScene()))

	for _, want := range []string{
		`viewBox="-100 -50 1000 700"`,
		`id="node-1"`,
		`id="node-2"`,
		`id="e1-2"`,
		`class="edge animated"`,
		`Routing basics`,
		`Open Intro`,
		`Tips &amp; Tricks`,
		`https://example.com/watch?v=1&amp;t=2`,
		Light.Background,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if err := xml.Unmarshal([]byte(out), new(struct{})); err != nil {
		t.Errorf("output is not well-formed XML: %v", err)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	out := string(RenderSVG(testScene(), WithTheme(Dark), WithoutEdges(), WithoutTitle()))
	if !strings.Contains(out, Dark.Background) {
		t.Error("dark background missing")
	}
	if strings.Contains(out, `id="e1-2"`) {
		t.Error("edges should be hidden")
	}
	if strings.Contains(out, `class="heading"`) {
		t.Error("heading should be hidden")
	}
}

func TestEdgePath(t *testing.T) {
	s := testScene()
	from, to := s.Nodes[0], s.Nodes[1]

	if got := EdgePath(s.Edges[0], from, to); got != "M500 500 V550 H250 V600" {
		t.Errorf("smoothstep path = %q", got)
	}
	straight := scene.Edge{Type: scene.EdgeTypeStraight}
	if got := EdgePath(straight, from, to); got != "M500 500 L250 600" {
		t.Errorf("straight path = %q", got)
	}
}

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		maxLines int
		want     []string
	}{
		{"empty", "  ", 10, 3, nil},
		{"fits", "short text", 20, 3, []string{"short text"}},
		{"wraps", "one two three four", 9, 3, []string{"one two", "three", "four"}},
		{"cut", "one two three four", 9, 2, []string{"one two", "three…"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapLines(tt.text, tt.width, tt.maxLines)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("WrapLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestThemeByName(t *testing.T) {
	if th, ok := ThemeByName("dark"); !ok || th.Name != "dark" {
		t.Error("dark theme not found")
	}
	if th, ok := ThemeByName(""); !ok || th.Name != "light" {
		t.Error("empty name should yield light")
	}
	if _, ok := ThemeByName("neon"); ok {
		t.Error("unknown theme should not be found")
	}
}
