// Package scene defines the serialized layout handed to the canvas.
//
// A [Scene] carries, per node, its position, size and an opaque content
// label, plus the parent → child edges and the translate extent that clamps
// panning. The canvas needs nothing else: it does not recompute layout.
//
//	res, _ := layout.Compute(doc, layout.DefaultConfig())
//	s := scene.FromLayout(res)
//	data, _ := scene.Marshal(s)
package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
	"github.com/matzehuels/graphlearn/pkg/layout"
)

// Edge styling understood by the canvas.
const (
	EdgeTypeSmoothStep = "smoothstep"
	EdgeTypeStraight   = "straight"
)

// Label kinds.
const (
	LabelVideo   = "video"
	LabelWebpage = "webpage"
	LabelText    = "text"
)

// =============================================================================
// Scene
// =============================================================================

// Scene is the complete canvas payload.
type Scene struct {
	Title   *Heading `json:"title,omitempty" bson:"title,omitempty"`
	Nodes   []Node   `json:"nodes" bson:"nodes"`
	Edges   []Edge   `json:"edges" bson:"edges"`
	Width   float64  `json:"width" bson:"width"`
	Height  float64  `json:"height" bson:"height"`

	// TranslateExtent is [[minX, minY], [maxX, maxY]].
	TranslateExtent [2][2]float64 `json:"translate_extent" bson:"translate_extent"`
}

// Node is one positioned content rectangle.
type Node struct {
	ID       string  `json:"id" bson:"id"`
	Category string  `json:"category" bson:"category"`
	Title    string  `json:"title,omitempty" bson:"title,omitempty"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height" bson:"height"`
	Depth    int     `json:"depth" bson:"depth"`
	Label    Label   `json:"label" bson:"label"`
}

// Label is the content shown inside a node. The canvas renders it verbatim.
type Label struct {
	Kind string `json:"kind" bson:"kind"`
	URL  string `json:"url,omitempty" bson:"url,omitempty"`
	Text string `json:"text,omitempty" bson:"text,omitempty"`
	// OpenLink is the caption of the "open in new tab" link of embedded
	// content.
	OpenLink string `json:"open_link,omitempty" bson:"open_link,omitempty"`
}

// Edge connects two nodes by ID.
type Edge struct {
	ID       string `json:"id" bson:"id"`
	Source   string `json:"source" bson:"source"`
	Target   string `json:"target" bson:"target"`
	Type     string `json:"type" bson:"type"`
	Animated bool   `json:"animated" bson:"animated"`
}

// Heading is the positioned document title.
type Heading struct {
	Text   string  `json:"text" bson:"text"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Bounds returns the translate extent as a rectangle.
func (s *Scene) Bounds() layout.Rect {
	e := s.TranslateExtent
	return layout.Rect{MinX: e[0][0], MinY: e[0][1], MaxX: e[1][0], MaxY: e[1][1]}
}

// Node returns the node with the given ID.
func (s *Scene) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Validate checks that the scene has nodes, unique IDs, and edges between
// known nodes.
func (s *Scene) Validate() error {
	if len(s.Nodes) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scene must contain nodes")
	}
	ids := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if ids[n.ID] {
			return errors.New(errors.ErrCodeDuplicateNode, "scene node %q appears twice", n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range s.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			return errors.New(errors.ErrCodeInvalidInput, "edge %s references unknown node", e.ID)
		}
	}
	return nil
}

// =============================================================================
// Conversion
// =============================================================================

// EdgeID returns the canvas edge identifier for parent → child.
func EdgeID(parent, child string) string {
	return fmt.Sprintf("e%s-%s", parent, child)
}

// FromLayout converts a layout result into a scene.
func FromLayout(res *layout.Result) Scene {
	s := Scene{
		Nodes:           make([]Node, len(res.Nodes)),
		Edges:           make([]Edge, len(res.Edges)),
		Width:           res.Bounds.Width(),
		Height:          res.Bounds.Height(),
		TranslateExtent: res.Bounds.Extent(),
	}
	for i, n := range res.Nodes {
		s.Nodes[i] = Node{
			ID:       n.Content.ID,
			Category: string(n.Content.Category),
			Title:    n.Content.Title,
			X:        n.Position.X,
			Y:        n.Position.Y,
			Width:    n.Size.Width,
			Height:   n.Size.Height,
			Depth:    n.Depth,
			Label:    LabelFor(n.Content),
		}
	}
	for i, e := range res.Edges {
		parent, child := res.Nodes[e.Parent].Content.ID, res.Nodes[e.Child].Content.ID
		s.Edges[i] = Edge{
			ID:       EdgeID(parent, child),
			Source:   parent,
			Target:   child,
			Type:     EdgeTypeSmoothStep,
			Animated: true,
		}
	}
	if t := res.Title; t != nil {
		s.Title = &Heading{
			Text:   t.Text,
			X:      t.Position.X,
			Y:      t.Position.Y,
			Width:  t.Size.Width,
			Height: t.Size.Height,
		}
	}
	return s
}

// LabelFor builds the content label of a node. Video and webpage nodes
// embed their URL; everything else shows its text.
func LabelFor(n content.Node) Label {
	switch n.Category {
	case content.CategoryVideo, content.CategoryWebpage:
		l := Label{Kind: string(n.Category), URL: n.URL, Text: n.Text}
		if n.URL != "" {
			l.OpenLink = "Open " + n.DisplayTitle()
		}
		return l
	default:
		return Label{Kind: LabelText, Text: n.Text}
	}
}

// =============================================================================
// Serialization
// =============================================================================

// Marshal serializes a scene to pretty-printed JSON.
func Marshal(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal parses and validates a scene.
func Unmarshal(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("unmarshal scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// WriteFile writes a scene as JSON.
func WriteFile(s Scene, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads a scene from a JSON file.
func ReadFile(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
