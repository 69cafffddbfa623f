// Package render turns laid-out content into images.
//
// # Overview
//
//   - Canvas ([canvas] subpackage): the scene drawn as SVG, one rounded
//     rectangle per node with smoothstep edges, the way the site shows it
//   - Node-link ([nodelink] subpackage): the bare tree structure as a
//     Graphviz diagram
//   - Format conversion: [ToPDF] and [ToPNG] turn any SVG into PDF or PNG
//     with the external rsvg-convert tool (librsvg)
//
//	svg := canvas.RenderSVG(s, canvas.WithTheme(canvas.Dark))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [canvas]: github.com/matzehuels/graphlearn/pkg/render/canvas
// [nodelink]: github.com/matzehuels/graphlearn/pkg/render/nodelink
package render
