// Package nodelink renders content trees as node-link diagrams.
//
// # Overview
//
// The canvas renderer shows content at its real size. This package shows
// only structure: each node is a small box labelled with its title, filled
// by category, and connected to its children by arrows. Graphviz computes
// the diagram's own layout, independently of pkg/layout.
//
// # Usage
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
