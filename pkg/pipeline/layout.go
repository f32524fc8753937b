package pipeline

import (
	"context"

	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/layout"
	"github.com/matzehuels/uxl/pkg/nav"
	"github.com/matzehuels/uxl/pkg/navmap"
	"github.com/matzehuels/uxl/pkg/wire"
)

// =============================================================================
// Page Layout
// =============================================================================

// CanvasFor returns the document canvas with the size overrides of opts
// applied. Overflow suffixes are kept.
func CanvasFor(doc *document.Document, opts Options) document.Canvas {
	c := doc.Canvas
	if opts.Width > 0 {
		c.W = opts.Width
	}
	if opts.Height > 0 {
		c.H = opts.Height
	}
	return c
}

// NewMeasurer returns the text measurer for opts. Image sizes come from
// opts.Images, or are probed from opts.ImageDir and opts.Remote.
func NewMeasurer(ctx context.Context, doc *document.Document, opts Options) *layout.TextMeasurer {
	m := layout.NewTextMeasurer()
	if opts.CharWidth > 0 {
		m.CharWidth = opts.CharWidth
	}
	if opts.LineHeight > 0 {
		m.LineHeight = opts.LineHeight
	}
	switch {
	case opts.Images != nil:
		m.Images = opts.Images
	case opts.ImageDir != "" || opts.Remote != nil:
		m.Images = ProbeImages(ctx, doc, opts.ImageDir, opts.Remote, opts.Logger)
	}
	return m
}

// LayoutPage lays out one page and converts it to wire form.
func LayoutPage(doc *document.Document, page *document.Page, m layout.Measurer, opts Options) (wire.Layout, error) {
	res, err := layout.Layout(page, CanvasFor(doc, opts), layout.Options{
		Measurer:  m,
		Scrollbar: opts.Scrollbar,
	})
	if err != nil {
		return wire.Layout{}, err
	}
	l := wire.FromLayout(doc, page, res)
	l.Style = opts.Style
	return l, nil
}

// =============================================================================
// Navigation Map
// =============================================================================

// BuildMap places the pages of doc on the navigation map.
func BuildMap(doc *document.Document, opts Options) wire.Map {
	canvas := CanvasFor(doc, opts)
	scale := opts.MapScale
	if scale <= 0 {
		scale = navmap.DefaultScale
	}
	m := navmap.Build(doc.Pages, nav.FromEdges(doc.Edges), navmap.Options{
		Canvas:    canvas,
		ColumnGap: opts.ColumnGap,
		RowGap:    opts.RowGap,
		Measure: func(*document.Page) (float64, float64) {
			return float64(canvas.W) * scale, float64(canvas.H) * scale
		},
	})
	out := wire.FromMap(doc.Pages, m)
	out.Style = opts.Style
	return out
}
