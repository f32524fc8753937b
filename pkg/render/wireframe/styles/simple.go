package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/uxl/pkg/fonts"
)

// Simple draws flat grey wireframes.
type Simple struct{}

// Name implements [Style].
func (Simple) Name() string { return "simple" }

// RenderDefs implements [Style].
func (Simple) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <style>text { font-family: %s; fill: #222; }</style>
    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse">
      <path d="M0,0 L10,5 L0,10 z" fill="#555"/>
    </marker>
  </defs>
`, EscapeXML(fonts.FontFamily))
}

// RenderShape implements [Style].
func (Simple) RenderShape(buf *bytes.Buffer, s Shape) {
	switch s.Kind {
	case KindPage:
		fmt.Fprintf(buf, `  <rect id="%s" class="page" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#fff" stroke="#999"/>`+"\n",
			s.ID, s.X, s.Y, s.W, s.H)
	case KindFrame:
		if s.Src != "" {
			fmt.Fprintf(buf, `  <image x="%.2f" y="%.2f" width="%.2f" height="%.2f" href="%s" preserveAspectRatio="xMidYMid slice"/>`+"\n",
				s.X, s.Y, s.W, s.H, EscapeXML(s.Src))
		}
		fmt.Fprintf(buf, `  <rect id="%s" class="frame" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#bbb" stroke-dasharray="4 3"/>`+"\n",
			s.ID, s.X, s.Y, s.W, s.H)
	case KindButton:
		fmt.Fprintf(buf, `  <rect id="%s" class="button" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" fill="#e6e6e6" stroke="#444"/>`+"\n",
			s.ID, s.X, s.Y, s.W, s.H, s.Radius)
	case KindImage:
		fmt.Fprintf(buf, `  <g id="%s" class="image">`, s.ID)
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" fill="#f2f2f2" stroke="#888"/>`,
			s.X, s.Y, s.W, s.H, s.Radius)
		fmt.Fprintf(buf, `<path d="M%.2f,%.2f L%.2f,%.2f M%.2f,%.2f L%.2f,%.2f" stroke="#bbb"/>`,
			s.X, s.Y, s.X+s.W, s.Y+s.H, s.X+s.W, s.Y, s.X, s.Y+s.H)
		buf.WriteString("</g>\n")
	case KindTable:
		fmt.Fprintf(buf, `  <rect id="%s" class="table" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#fff" stroke="#666"/>`+"\n",
			s.ID, s.X, s.Y, s.W, s.H)
	case KindHeader, KindRow:
		fill := "none"
		if s.Header {
			fill = "#eee"
		}
		fmt.Fprintf(buf, `  <rect id="%s" class="row" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#ccc"/>`+"\n",
			s.ID, s.X, s.Y, s.W, s.H, fill)
		for _, c := range s.Cells[min(1, len(s.Cells)):] {
			fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#ccc"/>`+"\n", c.X, s.Y, c.X, s.Y+s.H)
		}
	case KindMapNode:
		fmt.Fprintf(buf, `  <rect id="%s" class="map-node" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="#fafafa" stroke="#333" stroke-width="1.5"/>`+"\n",
			s.ID, s.X, s.Y, s.W, s.H)
	}
}

// RenderText implements [Style].
func (Simple) RenderText(buf *bytes.Buffer, s Shape) {
	renderText(buf, s, "")
}

// RenderEdge implements [Style].
func (Simple) RenderEdge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `  <path class="connection" d="M%.2f,%.2f L%.2f,%.2f" fill="none" stroke="#555" stroke-width="1.5" marker-end="url(#arrow)"%s/>`+"\n",
		e.X1, e.Y1, e.X2, e.Y2, markerStart(e))
}

func markerStart(e Edge) string {
	if e.Bidirectional {
		return ` marker-start="url(#arrow)"`
	}
	return ""
}

// renderText draws labels, icons and table cells. Styles share it and only
// vary the extra attributes.
func renderText(buf *bytes.Buffer, s Shape, attrs string) {
	switch s.Kind {
	case KindHeader, KindRow:
		for _, c := range s.Cells {
			size := FontSize(c.W, s.H, len([]rune(c.Text)))
			anchor, x := TextAnchor(c.Align, c.X, c.W)
			weight := ""
			if s.Header {
				weight = ` font-weight="bold"`
			}
			fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="%s" dominant-baseline="central"%s%s>%s</text>`+"\n",
				x, s.CenterY(), size, anchor, weight, attrs, EscapeXML(TruncateLabel(c.Text, c.W, size)))
		}
		return
	case KindPage, KindFrame, KindTable, KindImage:
		return
	}

	x, w := s.X, s.W
	if s.Icon != "" {
		size := s.IconSize
		if size <= 0 {
			size = 16
		}
		cx := s.CenterX()
		if s.Label != "" {
			cx = s.X + textInset + size/2
			x, w = s.X+size+textInset, s.W-size-textInset
		}
		fmt.Fprintf(buf, `  <circle class="icon" cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="#444"%s><title>%s</title></circle>`+"\n",
			cx, s.CenterY(), size/2-1, attrs, EscapeXML(s.Icon))
	}
	if s.Label == "" {
		return
	}
	size := FontSize(w, s.H, len([]rune(s.Label)))
	if s.Kind == KindMapNode {
		size = min(size, 12)
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" dominant-baseline="central"%s>%s</text>`+"\n",
		x+w/2, s.CenterY(), size, attrs, EscapeXML(TruncateLabel(s.Label, w, size)))
}
