package cache

import "fmt"

// Keyer derives cache keys. Implementations must be deterministic: equal
// inputs always produce equal keys.
type Keyer interface {
	// HTTPKey names a cached HTTP response.
	HTTPKey(namespace, key string) string
	// DocumentKey names a document loaded from source.
	DocumentKey(source string) string
	// LayoutKey names the layout of the document with the given content hash.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// ArtifactKey names a rendered artifact of the layout with the given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every layout input besides the document itself.
type LayoutKeyOpts struct {
	// Config is any JSON-serializable layout configuration.
	Config any
}

// ArtifactKeyOpts holds every render input besides the layout itself.
type ArtifactKeyOpts struct {
	VizType  string
	Format   string
	Theme    string
	Scale    float64
	NoEdges  bool
	NoTitle  bool
	Detailed bool
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey implements [Keyer].
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// DocumentKey implements [Keyer].
func (DefaultKeyer) DocumentKey(source string) string {
	return hashKey("document", source)
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts.Config)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
