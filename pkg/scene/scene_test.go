package scene

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
	"github.com/matzehuels/graphlearn/pkg/layout"
)

func sampleScene(t *testing.T) Scene {
	t.Helper()
	doc := &content.Document{
		Title: "Learn Next.js",
		Nodes: []content.Node{
			{ID: "1", Category: content.CategoryVideo, Title: "Intro", URL: "https://www.youtube.com/embed/abc"},
			{ID: "2", Category: content.CategoryWebpage, URL: "https://nextjs.org/", ParentID: content.ParentRef("1")},
			{ID: "3", Category: content.CategoryText, Text: "Routing basics", ParentID: content.ParentRef("1")},
		},
	}
	res, err := layout.Compute(doc, layout.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return FromLayout(res)
}

func TestFromLayout(t *testing.T) {
	s := sampleScene(t)

	if len(s.Nodes) != 3 || len(s.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges", len(s.Nodes), len(s.Edges))
	}
	want := Edge{ID: "e1-2", Source: "1", Target: "2", Type: EdgeTypeSmoothStep, Animated: true}
	if s.Edges[0] != want {
		t.Errorf("edge = %+v, want %+v", s.Edges[0], want)
	}
	if s.Title == nil || s.Title.Text != "Learn Next.js" {
		t.Errorf("title = %+v", s.Title)
	}
	b := s.Bounds()
	if b.Width() != s.Width || b.Height() != s.Height {
		t.Errorf("extent %v does not match size %vx%v", s.TranslateExtent, s.Width, s.Height)
	}
	for _, n := range s.Nodes {
		r := layout.Rect{MinX: n.X, MinY: n.Y, MaxX: n.X + n.Width, MaxY: n.Y + n.Height}
		if !b.Contains(r) {
			t.Errorf("node %s outside translate extent", n.ID)
		}
	}
}

func TestLabelFor(t *testing.T) {
	tests := []struct {
		name string
		node content.Node
		want Label
	}{
		{
			name: "video with title",
			node: content.Node{ID: "1", Category: content.CategoryVideo, Title: "Intro", URL: "https://v"},
			want: Label{Kind: LabelVideo, URL: "https://v", OpenLink: "Open Intro"},
		},
		{
			name: "webpage falls back to id",
			node: content.Node{ID: "docs", Category: content.CategoryWebpage, URL: "https://w"},
			want: Label{Kind: LabelWebpage, URL: "https://w", OpenLink: "Open docs"},
		},
		{
			name: "webpage without url",
			node: content.Node{ID: "docs", Category: content.CategoryWebpage},
			want: Label{Kind: LabelWebpage},
		},
		{
			name: "text",
			node: content.Node{ID: "t", Category: content.CategoryText, Text: "hello"},
			want: Label{Kind: LabelText, Text: "hello"},
		},
		{
			name: "unknown category",
			node: content.Node{ID: "p", Category: "podcast", Text: "listen"},
			want: Label{Kind: LabelText, Text: "listen"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LabelFor(tt.node); got != tt.want {
				t.Errorf("LabelFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	s := sampleScene(t)
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := WriteFile(s, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := got.Node("3")
	if !ok || n.Label.Text != "Routing basics" {
		t.Errorf("node 3 = %+v, %v", n, ok)
	}
	if got.TranslateExtent != s.TranslateExtent {
		t.Errorf("extent = %v, want %v", got.TranslateExtent, s.TranslateExtent)
	}
}

func TestUnmarshalValidates(t *testing.T) {
	tests := []struct {
		name string
		data string
		want errors.Code
	}{
		{"no nodes", `{"nodes": []}`, errors.ErrCodeInvalidInput},
		{"duplicate", `{"nodes": [{"id": "a"}, {"id": "a"}]}`, errors.ErrCodeDuplicateNode},
		{"unknown edge end", `{"nodes": [{"id": "a"}], "edges": [{"id": "ea-b", "source": "a", "target": "b"}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %s", err, tt.want)
			}
		})
	}
	if _, err := Unmarshal([]byte("{")); err == nil {
		t.Error("malformed JSON should fail")
	}
}
