package wireframe

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/uxl/pkg/wire"
)

// RenderPDF draws a page layout as a single-page PDF.
func RenderPDF(l wire.Layout) ([]byte, error) {
	c, err := newCanvas(l.Width, l.Height, func(p *painter) { p.drawLayout(l) })
	if err != nil {
		return nil, err
	}
	return writePDF(c, l.Title)
}

// RenderMapPDF draws a navigation map as a single-page PDF.
func RenderMapPDF(m wire.Map) ([]byte, error) {
	c, err := newCanvas(m.Width+2*mapMargin, m.Height+2*mapMargin, func(p *painter) { p.drawMap(m) })
	if err != nil {
		return nil, err
	}
	return writePDF(c, "Navigation map")
}

// RenderBookPDF draws several page layouts as one PDF with a page each.
func RenderBookPDF(layouts []wire.Layout) ([]byte, error) {
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts to render")
	}
	var buf bytes.Buffer
	first := layouts[0]
	writer := pdf.New(&buf, first.Width*pxToMM, first.Height*pxToMM, nil)
	writer.SetInfo(first.Title, "", "", "", "uxl")
	for i, l := range layouts {
		c, err := newCanvas(l.Width, l.Height, func(p *painter) { p.drawLayout(l) })
		if err != nil {
			return nil, err
		}
		if i > 0 {
			writer.NewPage(l.Width*pxToMM, l.Height*pxToMM)
		}
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDF(c *canvas.Canvas, title string) ([]byte, error) {
	var buf bytes.Buffer
	writer := pdf.New(&buf, c.W, c.H, nil)
	writer.SetInfo(title, "", "", "", "uxl")
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
