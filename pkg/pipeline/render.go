package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/render"
	"github.com/matzehuels/graphlearn/pkg/render/canvas"
	"github.com/matzehuels/graphlearn/pkg/render/nodelink"
	"github.com/matzehuels/graphlearn/pkg/scene"
)

// RenderFromScene renders every requested format without caching. doc is
// only read for node-link output, which draws the tree rather than the scene.
func RenderFromScene(ctx context.Context, doc *content.Document, sc scene.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = renderSVG(ctx, doc, sc, opts)
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, name := range opts.Formats {
		f, _ := render.ParseFormat(name)
		var (
			data []byte
			err  error
		)
		switch f {
		case render.FormatJSON:
			data, err = scene.Marshal(sc)
		case render.FormatSVG:
			data, err = svgOnce()
		default:
			if data, err = svgOnce(); err == nil {
				data, err = render.Convert(ctx, data, f, opts.Scale)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		artifacts[name] = data
	}
	return artifacts, nil
}

func renderSVG(ctx context.Context, doc *content.Document, sc scene.Scene, opts Options) ([]byte, error) {
	if opts.IsNodelink() {
		tree, err := content.BuildTree(doc)
		if err != nil {
			return nil, err
		}
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(tree, nodelink.Options{Detailed: opts.Detailed}))
	}
	return canvas.RenderSVG(sc, canvasOptions(opts)...), nil
}

func canvasOptions(opts Options) []canvas.SVGOption {
	var out []canvas.SVGOption
	if t, ok := canvas.ThemeByName(opts.Theme); ok {
		out = append(out, canvas.WithTheme(t))
	}
	if opts.NoEdges {
		out = append(out, canvas.WithoutEdges())
	}
	if opts.NoTitle {
		out = append(out, canvas.WithoutTitle())
	}
	return out
}
