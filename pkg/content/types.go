package content

import "slices"

// Category is the kind of content a node carries. It decides the node's
// rectangle size and how the canvas renders its label.
type Category string

// Declared categories. Any other value is accepted and rendered with the
// default size.
const (
	CategoryVideo   Category = "video"
	CategoryWebpage Category = "webpage"
	CategoryText    Category = "text"
)

// Categories lists the declared categories in display order.
var Categories = []Category{CategoryVideo, CategoryWebpage, CategoryText}

// Known reports whether c is one of the declared categories.
func (c Category) Known() bool {
	return slices.Contains(Categories, c)
}

// Embedded reports whether nodes of this category show a framed external
// page (video or webpage) rather than a text block.
func (c Category) Embedded() bool {
	return c == CategoryVideo || c == CategoryWebpage
}

// Node is a single piece of content on the canvas.
type Node struct {
	ID       string   `json:"id" yaml:"id" toml:"id" bson:"id"`
	Category Category `json:"type" yaml:"type" toml:"type" bson:"type"`
	Title    string   `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty" bson:"title,omitempty"`
	URL      string   `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty" bson:"url,omitempty"`
	Text     string   `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty" bson:"text,omitempty"`
	ParentID *string  `json:"parent_id" yaml:"parent_id" toml:"parent_id,omitempty" bson:"parent_id"`
}

// IsRoot reports whether the node has no parent reference.
func (n Node) IsRoot() bool { return n.ParentID == nil }

// Parent returns the parent ID, or "" for the root.
func (n Node) Parent() string {
	if n.ParentID == nil {
		return ""
	}
	return *n.ParentID
}

// DisplayTitle returns the title if set, otherwise the ID.
func (n Node) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// Relationship is a directed parent → child link between two node indices.
type Relationship struct {
	Source int `json:"source" yaml:"source" toml:"source" bson:"source"`
	Target int `json:"target" yaml:"target" toml:"target" bson:"target"`
}

// Document is the unit of input: a titled, ordered set of nodes.
type Document struct {
	Title         string         `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty" bson:"title,omitempty"`
	Nodes         []Node         `json:"nodes" yaml:"nodes" toml:"nodes" bson:"nodes"`
	Relationships []Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty" toml:"relationships,omitempty" bson:"relationships,omitempty"`
}

// UsesRelationships reports whether the document is in relationship mode.
func (d *Document) UsesRelationships() bool {
	return len(d.Relationships) > 0
}

// Validate checks that the document describes a well-formed tree.
// It is equivalent to calling [BuildTree] and discarding the tree.
func (d *Document) Validate() error {
	_, err := BuildTree(d)
	return err
}

// ParentRef returns a pointer to id, for building documents in code.
func ParentRef(id string) *string { return &id }

// Edge is a parent → child link between two node indices of a [Tree].
type Edge struct {
	Parent int
	Child  int
}
