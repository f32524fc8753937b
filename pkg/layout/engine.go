package layout

import (
	"math"

	"github.com/matzehuels/uxl/pkg/document"
	uxlerrors "github.com/matzehuels/uxl/pkg/errors"
)

// maxRelayouts caps the scrollbar relayout passes after the first layout: one
// per axis, so a page is laid out at most three times (Result.Passes <= 3).
const maxRelayouts = 2

// Options configures a layout call.
type Options struct {
	Measurer  Measurer // Nil uses NewTextMeasurer()
	Scrollbar float64  // Thickness reserved for a scrolling page axis; 0 disables relayout
}

// Layout computes the boxes of page on canvas.
func Layout(page *document.Page, canvas document.Canvas, opts Options) (*Result, error) {
	if page == nil {
		return nil, uxlerrors.New(uxlerrors.ErrCodeLayout, "page is nil")
	}
	if canvas.W <= 0 || canvas.H <= 0 {
		return nil, uxlerrors.New(uxlerrors.ErrCodeLayout, "invalid canvas size %dx%d", canvas.W, canvas.H)
	}
	if opts.Scrollbar < 0 || math.IsNaN(opts.Scrollbar) {
		return nil, uxlerrors.New(uxlerrors.ErrCodeLayout, "scrollbar thickness must not be negative")
	}
	m := opts.Measurer
	if m == nil {
		m = NewTextMeasurer()
	}

	var (
		res                *Result
		reserveV, reserveH bool
	)
	for pass := 1; ; pass++ {
		e := newEngine(m, page, canvas)
		res = e.layoutPage(page, thickness(reserveV, opts.Scrollbar), thickness(reserveH, opts.Scrollbar))
		res.Passes = pass
		if opts.Scrollbar == 0 || pass > maxRelayouts {
			return res, nil
		}

		ov := res.Overflow[page.ID]
		needV := reserveV || ov.Y == Scroll
		needH := reserveH || ov.X == Scroll
		if needV == reserveV && needH == reserveH {
			return res, nil
		}
		reserveV, reserveH = needV, needH
	}
}

func thickness(reserve bool, t float64) float64 {
	if reserve {
		return t
	}
	return 0
}

// engine holds the transient state of one layout pass.
type engine struct {
	m     Measurer
	sizes map[document.NodeID]Size
	areas map[document.NodeID]area
	rows  map[document.NodeID][]float64
	res   *Result
}

// area is the content region a container lays its children out in.
type area struct {
	pad  float64
	w, h float64
}

func newEngine(m Measurer, page *document.Page, canvas document.Canvas) *engine {
	return &engine{
		m:     m,
		sizes: make(map[document.NodeID]Size),
		areas: make(map[document.NodeID]area),
		rows:  make(map[document.NodeID][]float64),
		res: &Result{
			Page:     page.ID,
			Canvas:   canvas,
			Boxes:    make(map[document.NodeID]Box),
			Overflow: make(map[document.NodeID]AxisOverflow),
		},
	}
}

// layoutPage sizes the page to the canvas, minus reserved scrollbar space for
// its children, and places everything.
func (e *engine) layoutPage(page *document.Page, barV, barH float64) *Result {
	c := e.res.Canvas
	pad := float64(page.Padding)
	viewW := math.Max(0, float64(c.W)-barV)
	viewH := math.Max(0, float64(c.H)-barH)
	innerW := math.Max(0, viewW-2*pad)
	innerH := math.Max(0, viewH-2*pad)

	for _, child := range page.Nodes {
		e.measure(child, innerW, innerH)
	}
	slots := e.slots(page.Nodes)
	reqW := requiredWidth(slots)
	areaW := math.Max(innerW, reqW)
	reqH := bandHeight(slots, areaW)
	areaH := math.Max(innerH, reqH)

	contentW, contentH := reqW+2*pad, reqH+2*pad
	e.res.Overflow[page.ID] = AxisOverflow{
		X: decide(rootPolicy(c.OverflowX), false, viewW, contentW),
		Y: decide(rootPolicy(c.OverflowY), false, viewH, contentH),
	}
	e.res.Content = Size{W: contentW, H: contentH}
	e.res.Viewport = Size{W: viewW, H: viewH}

	e.res.Boxes[page.ID] = Box{W: float64(c.W), H: float64(c.H)}
	e.arrange(slots, pad, pad, areaW, areaH)
	return e.res
}

// rootPolicy applies the page default of scrolling when the canvas line set
// no overflow.
func rootPolicy(o document.Overflow) document.Overflow {
	if o == document.OverflowNone {
		return document.OverflowScroll
	}
	return o
}

// =============================================================================
// Measuring
// =============================================================================

// measure returns the box size of n given its parent's inner size.
func (e *engine) measure(n document.Node, availW, availH float64) Size {
	var s Size
	switch v := n.(type) {
	case *document.Frame:
		s = e.measureFrame(v, availW, availH)
	case *document.Button:
		content := e.buttonContent(v)
		s = resolve(v.Size, float64(v.Margin), availW, availH, content)
	case *document.Caption:
		text := e.m.MeasureText(v.Text)
		p := float64(v.Padding)
		s = resolve(v.Size, float64(v.Margin), availW, availH, Size{W: text.W + 2*p, H: text.H + 2*p})
	case *document.Image:
		s = e.measureImage(v, availW, availH)
	case *document.Table:
		s = e.measureTable(v, availW, availH)
	}
	e.sizes[n.Info().ID] = s
	return s
}

func (e *engine) buttonContent(b *document.Button) Size {
	text := e.m.MeasureText(b.Caption)
	var icon float64
	if b.Icon != "" {
		icon = DefaultIconSize
		if b.IconSize > 0 {
			icon = float64(b.IconSize)
		}
	}
	w := text.W + icon
	if text.W > 0 && icon > 0 {
		w += iconGap
	}
	h := math.Max(text.H, icon)
	p := float64(b.Padding)
	return Size{W: w + 2*p, H: h + 2*p}
}

func (e *engine) measureImage(img *document.Image, availW, availH float64) Size {
	intrinsic, ok := e.m.ImageSize(img.Src)
	margin := float64(img.Margin)
	wSet, hSet := img.Size.W.IsSet(), img.Size.H.IsSet()

	switch {
	case wSet && hSet:
		return Size{
			W: resolveAxis(img.Size.W, availW, margin, 0),
			H: resolveAxis(img.Size.H, availH, margin, 0),
		}
	case wSet:
		w := resolveAxis(img.Size.W, availW, margin, 0)
		var h float64
		if ok && intrinsic.W > 0 {
			h = w * intrinsic.H / intrinsic.W
		}
		return Size{W: w, H: h}
	case hSet:
		h := resolveAxis(img.Size.H, availH, margin, 0)
		var w float64
		if ok && intrinsic.H > 0 {
			w = h * intrinsic.W / intrinsic.H
		}
		return Size{W: w, H: h}
	case ok:
		return intrinsic
	default:
		return Size{}
	}
}

func (e *engine) measureFrame(f *document.Frame, availW, availH float64) Size {
	pad := float64(f.Padding)
	areaW, areaH := availW, availH
	if f.Size.W.IsSet() {
		areaW = resolveAxis(f.Size.W, availW, 0, 0)
	}
	if f.Size.H.IsSet() {
		areaH = resolveAxis(f.Size.H, availH, 0, 0)
	}
	innerW := math.Max(0, areaW-2*pad)
	innerH := math.Max(0, areaH-2*pad)

	for _, child := range f.Nodes {
		e.measure(child, innerW, innerH)
	}
	slots := e.slots(f.Nodes)
	reqW := requiredWidth(slots)
	if len(f.Nodes) == 0 && f.Background != "" {
		if bg, ok := e.m.ImageSize(f.Background); ok {
			reqW = bg.W
		}
	}
	w := resolveAxis(f.Size.W, availW, 0, reqW+2*pad)
	layoutW := math.Max(w-2*pad, reqW)

	reqH := bandHeight(slots, layoutW)
	if len(f.Nodes) == 0 && f.Background != "" {
		if bg, ok := e.m.ImageSize(f.Background); ok {
			reqH = bg.H
		}
	}
	h := resolveAxis(f.Size.H, availH, 0, reqH+2*pad)

	e.res.Overflow[f.ID] = AxisOverflow{
		X: decide(f.Size.W.Overflow, f.Size.W.Unit == document.UnitPercent, w, reqW+2*pad),
		Y: decide(f.Size.H.Overflow, f.Size.H.Unit == document.UnitPercent, h, reqH+2*pad),
	}
	e.areas[f.ID] = area{pad: pad, w: layoutW, h: math.Max(h-2*pad, reqH)}
	return Size{W: w, H: h}
}

// resolve sizes both axes of a leaf from its declared size and content.
func resolve(s document.Size, margin, availW, availH float64, content Size) Size {
	return Size{
		W: resolveAxis(s.W, availW, margin, content.W),
		H: resolveAxis(s.H, availH, margin, content.H),
	}
}

// resolveAxis resolves one declared axis. Percent sizes fill the margin box
// exactly; pixel sizes grow to fit content unless cropped or scrolled; unset
// axes take the content size.
func resolveAxis(d document.Dimension, avail, margin, content float64) float64 {
	switch d.Unit {
	case document.UnitPercent:
		return math.Max(0, float64(d.Value)/100*avail-2*margin)
	case document.UnitPx:
		v := float64(d.Value)
		if d.Overflow == document.OverflowNone {
			return math.Max(v, content)
		}
		return v
	default:
		return content
	}
}

// =============================================================================
// Bands
// =============================================================================

// slot is a child's margin box awaiting placement.
type slot struct {
	node   document.Node
	margin float64
	w, h   float64
	align  document.Alignment
}

func (e *engine) slots(children []document.Node) []slot {
	out := make([]slot, len(children))
	for i, c := range children {
		m := float64(document.MarginOf(c))
		s := e.sizes[c.Info().ID]
		out[i] = slot{node: c, margin: m, w: s.W + 2*m, h: s.H + 2*m, align: document.AlignOf(c)}
	}
	return out
}

// partition splits slots into top, middle and bottom bands.
func partition(slots []slot) (top, middle, bottom []slot) {
	for _, s := range slots {
		switch s.align.V {
		case document.VTop:
			top = append(top, s)
		case document.VBottom:
			bottom = append(bottom, s)
		default:
			middle = append(middle, s)
		}
	}
	return top, middle, bottom
}

// requiredWidth is the larger of the middle band's total width and the widest
// child of the top and bottom bands.
func requiredWidth(slots []slot) float64 {
	var row, other float64
	for _, s := range slots {
		if s.align.V == document.VCenter {
			row += s.w
		} else {
			other = math.Max(other, s.w)
		}
	}
	return math.Max(row, other)
}

// bandHeight is the stacked height of the three bands at width areaW.
func bandHeight(slots []slot, areaW float64) float64 {
	top, middle, bottom := partition(slots)
	_, topH := packBand(top, areaW)
	_, botH := packBand(bottom, areaW)
	_, midH := packRow(middle, areaW)
	return topH + midH + botH
}

// packBand places a top or bottom band. Offsets are measured from the band's
// own edge; a box that overlaps an earlier one is pushed past its far edge.
func packBand(slots []slot, areaW float64) ([]Box, float64) {
	placed := make([]Box, 0, len(slots))
	var extent float64
	for _, s := range slots {
		b := Box{X: alignX(s.align.H, areaW, s.w), W: s.w, H: s.h}
		for moved := true; moved; {
			moved = false
			for _, p := range placed {
				if b.Overlaps(p) {
					b.Y = p.Bottom()
					moved = true
				}
			}
		}
		placed = append(placed, b)
		extent = math.Max(extent, b.Bottom())
	}
	return placed, extent
}

// packRow places the middle band as a single row: left-aligned children from
// the left edge, right-aligned from the right edge, centered children in the
// gap between them. Y offsets center each child in the row height.
func packRow(slots []slot, areaW float64) ([]Box, float64) {
	boxes := make([]Box, len(slots))
	var rowH, leftEnd, centerW float64
	rightStart := areaW

	for i, s := range slots {
		rowH = math.Max(rowH, s.h)
		switch s.align.H {
		case document.HLeft:
			boxes[i] = Box{X: leftEnd, W: s.w, H: s.h}
			leftEnd += s.w
		case document.HRight:
			rightStart -= s.w
			boxes[i] = Box{X: rightStart, W: s.w, H: s.h}
		default:
			centerW += s.w
		}
	}

	x := leftEnd + (rightStart-leftEnd-centerW)/2
	for i, s := range slots {
		if s.align.H == document.HCenter {
			boxes[i] = Box{X: x, W: s.w, H: s.h}
			x += s.w
		}
		boxes[i].Y = (rowH - s.h) / 2
	}
	return boxes, rowH
}

func alignX(h document.HAlign, areaW, w float64) float64 {
	switch h {
	case document.HLeft:
		return 0
	case document.HRight:
		return areaW - w
	default:
		return (areaW - w) / 2
	}
}

// =============================================================================
// Placement
// =============================================================================

// arrange places slots inside a content area whose top-left corner is (x0, y0).
func (e *engine) arrange(slots []slot, x0, y0, areaW, areaH float64) {
	top, middle, bottom := partition(slots)
	topBoxes, topH := packBand(top, areaW)
	botBoxes, botH := packBand(bottom, areaW)
	rowBoxes, rowH := packRow(middle, areaW)
	rowY := topH + math.Max(0, (areaH-topH-botH-rowH)/2)

	for i, s := range top {
		b := topBoxes[i]
		e.place(s, x0+b.X, y0+b.Y)
	}
	for i, s := range bottom {
		b := botBoxes[i]
		e.place(s, x0+b.X, y0+areaH-b.Y-b.H)
	}
	for i, s := range middle {
		b := rowBoxes[i]
		e.place(s, x0+b.X, y0+rowY+b.Y)
	}
}

// place records the box of a slot whose margin box starts at (x, y) and
// recurses into containers.
func (e *engine) place(s slot, x, y float64) {
	id := s.node.Info().ID
	size := e.sizes[id]
	box := Box{X: x + s.margin, Y: y + s.margin, W: size.W, H: size.H}
	e.res.Boxes[id] = box

	switch v := s.node.(type) {
	case *document.Frame:
		a := e.areas[id]
		e.arrange(e.slots(v.Nodes), box.X+a.pad, box.Y+a.pad, a.w, a.h)
	case *document.Table:
		e.placeRows(v, box)
	}
}
