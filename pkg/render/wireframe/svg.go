package wireframe

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/uxl/pkg/render/wireframe/styles"
	"github.com/matzehuels/uxl/pkg/wire"
)

const interactionCSS = `
    .button, .map-node { transition: stroke-width 0.2s ease; }
    a:hover .button, a:hover .map-node { stroke-width: 3; }
    a { cursor: pointer; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style styles.Style
	links bool
}

// WithStyle selects the visual style. The default is [styles.Simple].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithLinks wraps nodes with a GOTO action in links to "#page-<target>".
func WithLinks() SVGOption { return func(r *svgRenderer) { r.links = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	return r
}

// RenderSVG draws a page layout as SVG.
func RenderSVG(l wire.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	t := newBoxTree(l.Boxes)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(l.Title))
	r.style.RenderDefs(&buf)
	renderClipPaths(&buf, l.Boxes)

	fmt.Fprintf(&buf, `  <g id="page-%s">`+"\n", styles.EscapeXML(l.Page))
	for _, i := range t.roots {
		r.renderBox(&buf, t, i)
	}
	buf.WriteString("  </g>\n")
	if r.links {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderBox draws a box, then its children, clipped to the box when its
// content was cropped or scrolled.
func (r *svgRenderer) renderBox(buf *bytes.Buffer, t *boxTree, i int) {
	b := t.boxes[i]
	s := shapeFor(b)
	draw := func() {
		r.style.RenderShape(buf, s)
		r.style.RenderText(buf, s)
	}
	if r.links {
		styles.WrapLink(buf, b.Target, draw)
	} else {
		draw()
	}

	kids := t.children[b.ID]
	if len(kids) == 0 {
		return
	}
	if b.Clip {
		fmt.Fprintf(buf, `  <g clip-path="url(#clip-%d)">`+"\n", b.ID)
	}
	for _, k := range kids {
		r.renderBox(buf, t, k)
	}
	if b.Clip {
		buf.WriteString("  </g>\n")
	}
}

func renderClipPaths(buf *bytes.Buffer, boxes []wire.Box) {
	for _, b := range boxes {
		if !b.Clip {
			continue
		}
		fmt.Fprintf(buf, `  <clipPath id="clip-%d"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath>`+"\n",
			b.ID, b.X, b.Y, b.W, b.H)
	}
}

// boxTree indexes boxes by parent. Boxes whose parent is missing are roots.
type boxTree struct {
	boxes    []wire.Box
	children map[int][]int
	roots    []int
}

func newBoxTree(boxes []wire.Box) *boxTree {
	t := &boxTree{boxes: boxes, children: make(map[int][]int)}
	present := make(map[int]bool, len(boxes))
	for _, b := range boxes {
		present[b.ID] = true
	}
	for i, b := range boxes {
		if b.Parent == 0 || !present[b.Parent] {
			t.roots = append(t.roots, i)
			continue
		}
		t.children[b.Parent] = append(t.children[b.Parent], i)
	}
	return t
}

// shapeFor converts a wire box to a drawable shape.
func shapeFor(b wire.Box) styles.Shape {
	s := styles.Shape{
		ID:       fmt.Sprintf("n%d", b.ID),
		Kind:     b.Kind,
		Label:    b.Label,
		X:        b.X,
		Y:        b.Y,
		W:        b.W,
		H:        b.H,
		Radius:   float64(b.Radius),
		Icon:     b.Icon,
		IconSize: float64(b.IconSize),
		Src:      b.Src,
		Target:   b.Target,
		Header:   b.Header,
	}
	if b.Background != "" {
		s.Src = b.Background
	}
	if len(b.Cells) > 0 {
		s.Cells = cellsFor(b)
	}
	return s
}

// cellsFor splits a row box by its column weights. The last column absorbs
// rounding.
func cellsFor(b wire.Box) []styles.Cell {
	cells := make([]styles.Cell, 0, len(b.Columns))
	x := b.X
	for i, col := range b.Columns {
		w := b.W * float64(col.Weight) / 100
		if i == len(b.Columns)-1 {
			w = b.X + b.W - x
		}
		var text string
		if i < len(b.Cells) {
			text = b.Cells[i]
		}
		align := col.Align
		if align == "" {
			align = "C"
		}
		cells = append(cells, styles.Cell{X: x, W: w, Text: text, Align: align})
		x += w
	}
	return cells
}
