package content

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/graphlearn/pkg/errors"
)

const jsonDoc = `{
  "title": "Learn Next.js",
  "nodes": [
    {"id": "1", "type": "video", "url": "https://www.youtube.com/embed/abc", "parent_id": null},
    {"id": "2", "type": "webpage", "url": "https://nextjs.org/", "parent_id": "1"},
    {"id": "3", "type": "text", "text": "Routing basics", "parent_id": "1"}
  ]
}`

const yamlDoc = `title: Learn Next.js
nodes:
  - id: "1"
    type: video
    url: https://www.youtube.com/embed/abc
  - id: "2"
    type: webpage
    url: https://nextjs.org/
    parent_id: "1"
  - id: "3"
    type: text
    text: Routing basics
    parent_id: "1"
`

const tomlDoc = `title = "Learn Next.js"

[[nodes]]
id = "1"
type = "video"
url = "https://www.youtube.com/embed/abc"

[[nodes]]
id = "2"
type = "webpage"
url = "https://nextjs.org/"
parent_id = "1"

[[nodes]]
id = "3"
type = "text"
text = "Routing basics"
parent_id = "1"
`

const hclDoc = `title = "Learn Next.js"

node "1" {
  type = "video"
  url  = "https://www.youtube.com/embed/abc"
}

node "2" {
  type   = "webpage"
  url    = "https://nextjs.org/"
  parent = "1"
}

node "3" {
  type   = "text"
  text   = "Routing basics"
  parent = "1"
}
`

func TestDecode(t *testing.T) {
	tests := []struct {
		format Format
		src    string
	}{
		{FormatJSON, jsonDoc},
		{FormatYAML, yamlDoc},
		{FormatTOML, tomlDoc},
		{FormatHCL, hclDoc},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			doc, err := Decode(strings.NewReader(tt.src), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if doc.Title != "Learn Next.js" {
				t.Errorf("title = %q", doc.Title)
			}
			if len(doc.Nodes) != 3 {
				t.Fatalf("got %d nodes, want 3", len(doc.Nodes))
			}
			if !doc.Nodes[0].IsRoot() {
				t.Error("first node should be the root")
			}
			if doc.Nodes[1].Category != CategoryWebpage || doc.Nodes[1].Parent() != "1" {
				t.Errorf("node 2 = %+v", doc.Nodes[1])
			}
			if doc.Nodes[2].Text != "Routing basics" {
				t.Errorf("node 3 text = %q", doc.Nodes[2].Text)
			}
			if err := doc.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		format Format
		src    string
		want   errors.Code
	}{
		{FormatJSON, `{"nodes": [`, errors.ErrCodeInvalidFormat},
		{FormatYAML, "nodes: [", errors.ErrCodeInvalidFormat},
		{FormatTOML, "nodes = ", errors.ErrCodeInvalidFormat},
		{FormatHCL, `node "1" {`, errors.ErrCodeInvalidFormat},
		{Format("xml"), "<doc/>", errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %s", err, tt.want)
			}
		})
	}
}

func TestDecodeRelationships(t *testing.T) {
	src := `{"nodes":[{"id":"a","type":"video"},{"id":"b","type":"text"}],"relationships":[{"source":0,"target":1}]}`
	doc, err := DecodeBytes([]byte(src), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !doc.UsesRelationships() {
		t.Fatal("expected relationship mode")
	}
	tree, err := BuildTree(doc)
	if err != nil {
		t.Fatal(err)
	}
	if got := tree.Children(0); len(got) != 1 || got[0] != 1 {
		t.Errorf("children = %v", got)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"site.json":     FormatJSON,
		"site.YAML":     FormatYAML,
		"site.yml":      FormatYAML,
		"site.toml":     FormatTOML,
		"site.hcl":      FormatHCL,
		"site":          FormatJSON,
		"dir.v2/a.yaml": FormatYAML,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFormatFromContentType(t *testing.T) {
	if f, ok := FormatFromContentType("application/json; charset=utf-8"); !ok || f != FormatJSON {
		t.Errorf("json: %q %v", f, ok)
	}
	if f, ok := FormatFromContentType("text/yaml"); !ok || f != FormatYAML {
		t.Errorf("yaml: %q %v", f, ok)
	}
	if _, ok := FormatFromContentType("text/plain"); ok {
		t.Error("text/plain should not be recognized")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YML) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(xml) err = %v", err)
	}
}

func TestEncodeDecode(t *testing.T) {
	doc, err := DecodeBytes([]byte(jsonDoc), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		var buf bytes.Buffer
		if err := Encode(&buf, doc, f); err != nil {
			t.Fatalf("Encode(%s): %v", f, err)
		}
		back, err := Decode(&buf, f)
		if err != nil {
			t.Fatalf("Decode(%s): %v", f, err)
		}
		if len(back.Nodes) != 3 || !back.Nodes[0].IsRoot() || back.Nodes[2].Parent() != "1" {
			t.Errorf("%s: nodes = %+v", f, back.Nodes)
		}
	}
	if err := Encode(&bytes.Buffer{}, doc, FormatHCL); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Encode(hcl) err = %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(doc.Nodes) != 3 {
		t.Errorf("got %d nodes", len(doc.Nodes))
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestExampleDocuments(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "nextjs.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != len(Formats) {
		t.Fatalf("found %d example documents, want one per format (%d)", len(paths), len(Formats))
	}
	for _, p := range paths {
		t.Run(filepath.Base(p), func(t *testing.T) {
			doc, err := ReadFile(p)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			tree, err := BuildTree(doc)
			if err != nil {
				t.Fatalf("BuildTree: %v", err)
			}
			if tree.Title() != "Learn Next.js" {
				t.Errorf("Title() = %q", tree.Title())
			}
			if got := tree.Node(tree.Root()).Category; got != CategoryVideo {
				t.Errorf("root category = %q, want video", got)
			}
		})
	}
}
