// Package pkg provides the core libraries for graphlearn content layouts.
//
// # Overview
//
// graphlearn places a tree of learning content (embedded videos, embedded web
// pages and text notes) on a pannable canvas. Each node gets a fixed-size
// rectangle by category; children are centred in a row below their parent and
// every parent is re-centred over its children once they are placed.
//
// # Architecture
//
// The data flow through graphlearn:
//
//	JSON / YAML / TOML / HCL file, http(s) URL, mongodb:// collection
//	         ↓
//	    [content] package (decode, validate, build the tree)
//	         ↓
//	    [layout] package (subtree widths → placement → bounds → title)
//	         ↓
//	    [scene] package (positions, sizes, labels, edges, translate extent)
//	         ↓
//	    [render] packages (canvas SVG, Graphviz node-link, PDF/PNG)
//
// # Quick Start
//
//	doc, _ := content.ReadFile("examples/nextjs.json")
//	res, _ := layout.Compute(doc, layout.DefaultConfig())
//	s := scene.FromLayout(res)
//	svg := canvas.RenderSVG(s)
//
// # Main Packages
//
// [content] - Documents, the validated [content.Tree] and document sources.
//
// [layout] - The hierarchical layout: [layout.SubtreeWidths], [layout.Place],
// [layout.Bounds] and [layout.Compute].
//
// [scene] - The serialized layout handed to the canvas.
//
// [render] - Canvas SVG, node-link diagrams and PDF/PNG conversion.
//
// [pipeline] - Load → layout → render with caching, shared by the CLI and the
// server.
//
// [cache] - Null, file, SQLite and Redis cache backends plus key derivation.
//
// [server] - HTTP API and canvas page with hot reload.
//
// [errors] - Structured errors with machine-readable codes.
//
// [httputil] - Retrying, caching HTTP fetcher for remote documents.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [content]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/content
// [content.Tree]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/content#Tree
// [layout]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/layout
// [layout.SubtreeWidths]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/layout#SubtreeWidths
// [layout.Place]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/layout#Place
// [layout.Bounds]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/layout#Bounds
// [layout.Compute]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/layout#Compute
// [scene]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphlearn/pkg/observability
package pkg
