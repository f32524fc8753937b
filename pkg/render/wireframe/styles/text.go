package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/mattn/go-runewidth"
)

const (
	fontHeightRatio = 0.6
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 14.0
	textInset       = 4.0
)

// FontSize returns the font size that fits text of n cells in a w x h box.
func FontSize(w, h float64, n int) float64 {
	n = max(1, n)
	byHeight := h * fontHeightRatio
	byWidth := (w - textInset) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TruncateLabel shortens label with ".." so it fits in width w at the given
// font size. Wide characters count as two cells.
func TruncateLabel(label string, w, fontSize float64) string {
	maxCells := int((w - textInset) / (fontSize * fontCharWidth))
	if maxCells < 3 {
		maxCells = 3
	}
	if runewidth.StringWidth(label) <= maxCells {
		return label
	}
	return runewidth.Truncate(label, maxCells, "..")
}

// EscapeXML escapes text for use in SVG content and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// WrapLink wraps the output of fn in a link to an in-document page anchor.
func WrapLink(buf *bytes.Buffer, target string, fn func()) {
	if target != "" {
		fmt.Fprintf(buf, `<a href="#page-%s">`, EscapeXML(target))
	}
	fn()
	if target != "" {
		buf.WriteString("</a>")
	}
}

// TextAnchor maps an alignment letter to an SVG text-anchor and x position
// inside [x, x+w].
func TextAnchor(align string, x, w float64) (string, float64) {
	switch align {
	case "L":
		return "start", x + textInset
	case "R":
		return "end", x + w - textInset
	default:
		return "middle", x + w/2
	}
}
