// Package canvas draws a scene as a standalone SVG document.
//
// The output mirrors the site's canvas: one rounded card per node with a
// category-coloured bar, smoothstep edges from each parent's bottom centre
// to its children's top centres, and the document title above the root.
// Video and webpage cards link to their URL; text cards show their text
// wrapped to the card width.
//
//	svg := canvas.RenderSVG(s, canvas.WithTheme(canvas.Dark))
package canvas

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"net/url"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/mitchellh/go-wordwrap"

	"github.com/matzehuels/graphlearn/pkg/render"
	"github.com/matzehuels/graphlearn/pkg/scene"
)

const (
	cornerRadius = 16
	barHeight    = 24
	padding      = 32
	fontSize     = 28
	lineHeight   = 38
	titleSize    = 64
	// charWidth approximates the advance of one character at fontSize.
	charWidth = fontSize * 0.55
)

const canvasCSS = `
    text { font-family: ui-sans-serif, system-ui, sans-serif; }
    .node { fill: %[1]s; stroke: %[2]s; stroke-width: 2; }
    .kind { font-size: 18px; letter-spacing: 2px; fill: %[4]s; }
    .label { font-size: %[6]dpx; fill: %[3]s; }
    .muted { font-size: 22px; fill: %[4]s; }
    .link { font-size: %[6]dpx; fill: %[3]s; text-decoration: underline; }
    .heading { font-size: %[7]dpx; font-weight: 700; fill: %[3]s; }
    .edge { fill: none; stroke: %[5]s; stroke-width: 3; }
    .edge.animated { stroke-dasharray: 12 8; animation: dash 1s linear infinite; }
    @keyframes dash { to { stroke-dashoffset: -20; } }`

// SVGOption configures [RenderSVG].
type SVGOption func(*renderer)

type renderer struct {
	theme     Theme
	hideEdges bool
	hideTitle bool
}

func WithTheme(t Theme) SVGOption { return func(r *renderer) { r.theme = t } }
func WithoutEdges() SVGOption     { return func(r *renderer) { r.hideEdges = true } }
func WithoutTitle() SVGOption     { return func(r *renderer) { r.hideTitle = true } }

func newRenderer(opts ...SVGOption) renderer {
	r := renderer{theme: Light}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws s. The viewBox is the scene's translate extent.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	c := svg.New(&buf)

	b := s.Bounds()
	minX, minY, w, h := px(b.MinX), px(b.MinY), px(b.Width()), px(b.Height())
	c.Startview(w, h, minX, minY, w, h)
	c.Style("text/css", fmt.Sprintf(canvasCSS,
		r.theme.NodeFill, r.theme.NodeStroke, r.theme.Text, r.theme.Muted, r.theme.Edge, fontSize, titleSize))
	c.Rect(minX, minY, w, h, "fill:"+r.theme.Background)

	if !r.hideEdges && len(s.Edges) > 0 {
		byID := make(map[string]scene.Node, len(s.Nodes))
		for _, n := range s.Nodes {
			byID[n.ID] = n
		}
		c.Gid("edges")
		for _, e := range s.Edges {
			from, ok1 := byID[e.Source]
			to, ok2 := byID[e.Target]
			if ok1 && ok2 {
				drawEdge(c, e, from, to)
			}
		}
		c.Gend()
	}

	c.Gid("nodes")
	for _, n := range s.Nodes {
		r.drawNode(c, n)
	}
	c.Gend()

	if s.Title != nil && !r.hideTitle {
		t := s.Title
		c.Text(px(t.X), px(t.Y+t.Height*0.75), t.Text, `class="heading"`)
	}

	c.End()
	return buf.Bytes()
}

// RenderPDF renders the scene as PDF via SVG conversion.
// Requires librsvg (rsvg-convert).
func RenderPDF(ctx context.Context, s scene.Scene, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(s, opts...))
}

// RenderPNG renders the scene as PNG via SVG conversion.
// Requires librsvg (rsvg-convert).
func RenderPNG(ctx context.Context, s scene.Scene, scale float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(ctx, RenderSVG(s, opts...), scale)
}

// =============================================================================
// Edges
// =============================================================================

// EdgePath returns the SVG path from the bottom centre of from to the top
// centre of to. Smoothstep edges run vertically to the midpoint row, across,
// then down; other types are straight lines.
func EdgePath(e scene.Edge, from, to scene.Node) string {
	x1, y1 := px(from.X+from.Width/2), px(from.Y+from.Height)
	x2, y2 := px(to.X+to.Width/2), px(to.Y)
	if e.Type != scene.EdgeTypeSmoothStep {
		return fmt.Sprintf("M%d %d L%d %d", x1, y1, x2, y2)
	}
	mid := (y1 + y2) / 2
	return fmt.Sprintf("M%d %d V%d H%d V%d", x1, y1, mid, x2, y2)
}

func drawEdge(c *svg.SVG, e scene.Edge, from, to scene.Node) {
	class := `class="edge"`
	if e.Animated {
		class = `class="edge animated"`
	}
	c.Path(EdgePath(e, from, to), `id="`+e.ID+`"`, class)
}

// =============================================================================
// Nodes
// =============================================================================

func (r *renderer) drawNode(c *svg.SVG, n scene.Node) {
	x, y, w, h := px(n.X), px(n.Y), px(n.Width), px(n.Height)

	c.Gid("node-" + n.ID)
	c.Roundrect(x, y, w, h, cornerRadius, cornerRadius, `class="node"`)
	c.Roundrect(x, y, w, barHeight, cornerRadius, cornerRadius, "fill:"+r.theme.accent(n.Label.Kind))
	c.Text(x+padding, y+barHeight+padding, strings.ToUpper(n.Label.Kind), `class="kind"`)

	top := y + barHeight + padding + lineHeight
	if n.Title != "" {
		c.Text(x+padding, top, truncate(n.Title, charsPerLine(w)), `class="label"`)
		top += lineHeight
	}

	switch n.Label.Kind {
	case scene.LabelVideo, scene.LabelWebpage:
		r.drawEmbed(c, n, x, top, w, y+h-top)
	default:
		drawText(c, n.Label.Text, x, top, w, y+h-top)
	}
	c.Gend()
}

func (r *renderer) drawEmbed(c *svg.SVG, n scene.Node, x, top, w, avail int) {
	cx := x + w/2
	cy := top + avail/2 - lineHeight
	if n.Label.Kind == scene.LabelVideo {
		const s = 40
		c.Polygon([]int{cx - s/2, cx - s/2, cx + s}, []int{cy - s, cy + s, cy}, "fill:"+r.theme.accent(n.Label.Kind))
	} else {
		c.Rect(cx-80, cy-50, 160, 100, "fill:none;stroke:"+r.theme.accent(n.Label.Kind)+";stroke-width:4")
	}

	if n.Label.URL == "" {
		return
	}
	if u, err := url.Parse(n.Label.URL); err == nil && u.Host != "" {
		c.Text(cx, cy+120, u.Host, `class="muted"`, "text-anchor:middle")
	}
	c.Link(escapeAttr(n.Label.URL), n.Label.OpenLink)
	c.Text(cx, top+avail-padding, truncate(n.Label.OpenLink, charsPerLine(w)), `class="link"`, "text-anchor:middle")
	c.LinkEnd()
}

func drawText(c *svg.SVG, text string, x, top, w, avail int) {
	lines := WrapLines(text, charsPerLine(w), max(avail/lineHeight, 1))
	for i, line := range lines {
		c.Text(x+padding, top+i*lineHeight, line, `class="label"`)
	}
}

// WrapLines wraps text at width characters and keeps at most maxLines
// lines, marking a cut with an ellipsis.
func WrapLines(text string, width, maxLines int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(wordwrap.WrapString(text, uint(width)), "\n")
	cut := len(lines) > maxLines
	if cut {
		lines = lines[:maxLines]
	}
	for i, l := range lines {
		lines[i] = truncate(l, width)
	}
	if cut {
		last := []rune(lines[maxLines-1])
		if len(last) >= width {
			last = last[:width-1]
		}
		lines[maxLines-1] = strings.TrimRight(string(last), " …") + "…"
	}
	return lines
}

func charsPerLine(w int) int {
	return max(int(float64(w-2*padding)/charWidth), 1)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func escapeAttr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func px(f float64) int { return int(math.Round(f)) }
