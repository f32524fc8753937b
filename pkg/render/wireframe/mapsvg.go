package wireframe

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/uxl/pkg/render/wireframe/styles"
	"github.com/matzehuels/uxl/pkg/wire"
)

// mapMargin surrounds the map drawing.
const mapMargin = 20.0

// RenderMapSVG draws a navigation map as SVG. Each bidirectional connection
// is one line with arrow heads at both ends.
func RenderMapSVG(m wire.Map, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := m.Width+2*mapMargin, m.Height+2*mapMargin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	r.style.RenderDefs(&buf)

	for _, e := range mapEdges(m) {
		r.style.RenderEdge(&buf, e)
	}
	for _, n := range m.Nodes {
		s := mapShape(n)
		fmt.Fprintf(&buf, `  <g id="map-%s"%s>`+"\n", styles.EscapeXML(n.ID), startClass(n))
		r.style.RenderShape(&buf, s)
		r.style.RenderText(&buf, s)
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func startClass(n wire.MapNode) string {
	if n.Start {
		return ` class="start"`
	}
	return ""
}

func mapShape(n wire.MapNode) styles.Shape {
	return styles.Shape{
		ID:    "page-" + n.ID,
		Kind:  styles.KindMapNode,
		Label: n.Label,
		X:     n.X + mapMargin,
		Y:     n.Y + mapMargin,
		W:     n.W,
		H:     n.H,
	}
}

// mapEdges computes connection end points on the facing sides of the two
// nodes. Self loops are not drawn.
func mapEdges(m wire.Map) []styles.Edge {
	edges := make([]styles.Edge, 0, len(m.Connections))
	for _, c := range m.Connections {
		from, okF := m.Node(c.From)
		to, okT := m.Node(c.To)
		if !okF || !okT || c.From == c.To {
			continue
		}
		x1, y1, x2, y2 := anchors(from, to)
		edges = append(edges, styles.Edge{
			FromID:        c.From,
			ToID:          c.To,
			X1:            x1 + mapMargin,
			Y1:            y1 + mapMargin,
			X2:            x2 + mapMargin,
			Y2:            y2 + mapMargin,
			Bidirectional: c.Bidirectional,
		})
	}
	return edges
}

// anchors picks the side midpoints that face each other.
func anchors(a, b wire.MapNode) (x1, y1, x2, y2 float64) {
	switch {
	case b.Column > a.Column:
		return a.X + a.W, a.Y + a.H/2, b.X, b.Y + b.H/2
	case b.Column < a.Column:
		return a.X, a.Y + a.H/2, b.X + b.W, b.Y + b.H/2
	case b.Row > a.Row:
		return a.X + a.W/2, a.Y + a.H, b.X + b.W/2, b.Y
	default:
		return a.X + a.W/2, a.Y, b.X + b.W/2, b.Y + b.H
	}
}
