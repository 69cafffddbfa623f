package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphlearn/pkg/errors"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// Formats lists every supported document format.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatHCL}

// FormatFromPath infers the format from a file extension. Unknown extensions
// yield FormatJSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".hcl":
		return FormatHCL
	default:
		return FormatJSON
	}
}

// FormatFromContentType maps an HTTP Content-Type to a format.
// It returns false when the media type is not recognized.
func FormatFromContentType(ct string) (Format, bool) {
	mt, _, _ := strings.Cut(strings.ToLower(ct), ";")
	switch strings.TrimSpace(mt) {
	case "application/json", "text/json":
		return FormatJSON, true
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, true
	case "application/toml", "text/toml":
		return FormatTOML, true
	case "application/hcl", "text/hcl":
		return FormatHCL, true
	}
	return "", false
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTOML, FormatHCL:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q (want json, yaml, toml or hcl)", s)
}

// Decode reads a document in the given format from r.
//
// Decode only parses; tree-shape checks happen in [BuildTree]. Decode does
// not close r.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
	case FormatHCL:
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read hcl: %w", err)
		}
		d, err := decodeHCL("document.hcl", src)
		if err != nil {
			return nil, err
		}
		doc = *d
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "format %q", format)
	}
	return &doc, nil
}

// DecodeBytes is [Decode] over an in-memory buffer.
func DecodeBytes(data []byte, format Format) (*Document, error) {
	return Decode(bytes.NewReader(data), format)
}

// ReadFile reads and decodes the document at path, choosing the format from
// the extension.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode writes doc to w in the given format. HCL output is not supported.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		return errors.New(errors.ErrCodeUnsupported, "cannot encode documents as %q", format)
	}
}

// =============================================================================
// HCL
// =============================================================================

// hclDocument mirrors Document for gohcl. Nodes are labelled blocks:
//
//	title = "Learn Next.js"
//
//	node "1" {
//	  type = "video"
//	  url  = "https://www.youtube.com/embed/dQw4w9WgXcQ"
//	}
//
//	node "2" {
//	  type   = "text"
//	  text   = "Routing basics"
//	  parent = "1"
//	}
type hclDocument struct {
	Title         string            `hcl:"title,optional"`
	Nodes         []hclNode         `hcl:"node,block"`
	Relationships []hclRelationship `hcl:"relationship,block"`
}

type hclNode struct {
	ID     string  `hcl:"id,label"`
	Type   string  `hcl:"type"`
	Title  string  `hcl:"title,optional"`
	URL    string  `hcl:"url,optional"`
	Text   string  `hcl:"text,optional"`
	Parent *string `hcl:"parent,optional"`
}

type hclRelationship struct {
	Source int `hcl:"source"`
	Target int `hcl:"target"`
}

func decodeHCL(filename string, src []byte) (*Document, error) {
	var raw hclDocument
	if err := hclsimple.Decode(filename, src, nil, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode hcl")
	}
	doc := &Document{
		Title: raw.Title,
		Nodes: make([]Node, len(raw.Nodes)),
	}
	for i, n := range raw.Nodes {
		doc.Nodes[i] = Node{
			ID:       n.ID,
			Category: Category(n.Type),
			Title:    n.Title,
			URL:      n.URL,
			Text:     n.Text,
			ParentID: n.Parent,
		}
	}
	for _, r := range raw.Relationships {
		doc.Relationships = append(doc.Relationships, Relationship(r))
	}
	return doc, nil
}
