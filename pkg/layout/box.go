package layout

import "github.com/matzehuels/uxl/pkg/document"

// eps absorbs floating point noise in size comparisons.
const eps = 1e-9

// Size is a width and height in pixels.
type Size struct {
	W, H float64
}

// Box is a placed rectangle in canvas coordinates. Margins are outside the box.
type Box struct {
	X, Y float64
	W, H float64
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center point of the box.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center point of the box.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// Size returns the box dimensions.
func (b Box) Size() Size { return Size{W: b.W, H: b.H} }

// Overlaps reports whether two boxes share interior area. Touching edges do
// not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.Right()-eps && o.X < b.Right()-eps &&
		b.Y < o.Bottom()-eps && o.Y < b.Bottom()-eps
}

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	return o.X >= b.X-eps && o.Y >= b.Y-eps &&
		o.Right() <= b.Right()+eps && o.Bottom() <= b.Bottom()+eps
}

// Overflow is the outcome of fitting content into a container axis.
type Overflow int

const (
	// Fit means the content fits.
	Fit Overflow = iota
	// Clip means excess content is cropped.
	Clip
	// Scroll means excess content is scrollable.
	Scroll
	// Spill means a fixed percent size is exceeded without a crop or scroll
	// policy; the content draws past the box.
	Spill
)

// String returns the overflow decision name.
func (o Overflow) String() string {
	switch o {
	case Clip:
		return "clip"
	case Scroll:
		return "scroll"
	case Spill:
		return "spill"
	default:
		return "fit"
	}
}

// AxisOverflow holds the overflow decision per axis.
type AxisOverflow struct {
	X, Y Overflow
}

// Result is the layout of one page. It is derived data; recompute it when
// the canvas or the document changes.
type Result struct {
	Page     document.NodeID
	Canvas   document.Canvas
	Boxes    map[document.NodeID]Box
	Overflow map[document.NodeID]AxisOverflow
	Content  Size // Page content size including padding
	Viewport Size // Page area left for content after scrollbars
	Passes   int  // Layout passes run, including scrollbar relayouts
}

// Box returns the box of a node.
func (r *Result) Box(id document.NodeID) (Box, bool) {
	b, ok := r.Boxes[id]
	return b, ok
}

// decide classifies an axis whose box is size and whose content needs need.
func decide(policy document.Overflow, fixedPercent bool, size, need float64) Overflow {
	if need <= size+eps {
		return Fit
	}
	switch policy {
	case document.OverflowCrop:
		return Clip
	case document.OverflowScroll:
		return Scroll
	}
	if fixedPercent {
		return Spill
	}
	return Fit
}
