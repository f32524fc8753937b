package document

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// Dimensions
// =============================================================================

// Unit is the unit of a [Dimension].
type Unit int

const (
	// UnitAuto means the axis is unset and sized from content.
	UnitAuto Unit = iota
	// UnitPx is an absolute size in pixels.
	UnitPx
	// UnitPercent is relative to the parent's inner (padding-excluded) size.
	UnitPercent
)

// Overflow describes what happens to content that exceeds a resolved size.
type Overflow int

const (
	// OverflowNone lets the box grow to fit its content.
	OverflowNone Overflow = iota
	// OverflowCrop clips content at the declared size.
	OverflowCrop
	// OverflowScroll makes excess content scrollable.
	OverflowScroll
)

// String returns the lower-case overflow name.
func (o Overflow) String() string {
	switch o {
	case OverflowCrop:
		return "crop"
	case OverflowScroll:
		return "scroll"
	default:
		return "none"
	}
}

// Suffix returns the grammar suffix for the overflow ("C", "S" or "").
func (o Overflow) Suffix() string {
	switch o {
	case OverflowCrop:
		return "C"
	case OverflowScroll:
		return "S"
	default:
		return ""
	}
}

// Dimension is one axis of a declared size.
type Dimension struct {
	Unit     Unit
	Value    int
	Overflow Overflow
}

// Px returns a pixel dimension.
func Px(v int) Dimension { return Dimension{Unit: UnitPx, Value: v} }

// Percent returns a percentage dimension.
func Percent(v int) Dimension { return Dimension{Unit: UnitPercent, Value: v} }

// IsSet reports whether the dimension was declared.
func (d Dimension) IsSet() bool { return d.Unit != UnitAuto }

// Constrained reports whether the resolved size is exact rather than a minimum.
// Percent sizes always fill; pixel sizes are exact only with crop or scroll.
func (d Dimension) Constrained() bool {
	return d.Unit == UnitPercent || d.Overflow != OverflowNone
}

// String formats the dimension in grammar form, e.g. "50%", "120C" or "".
func (d Dimension) String() string {
	switch d.Unit {
	case UnitPx:
		return strconv.Itoa(d.Value) + d.Overflow.Suffix()
	case UnitPercent:
		return strconv.Itoa(d.Value) + "%" + d.Overflow.Suffix()
	default:
		return ""
	}
}

// Size is a declared two-axis size. Either axis may be unset.
type Size struct {
	W, H Dimension
}

// IsSet reports whether either axis was declared.
func (s Size) IsSet() bool { return s.W.IsSet() || s.H.IsSet() }

// String formats the size in grammar form, e.g. "100%x50C".
func (s Size) String() string {
	if !s.IsSet() {
		return ""
	}
	return s.W.String() + "x" + s.H.String()
}

// =============================================================================
// Alignment
// =============================================================================

// HAlign is a horizontal alignment.
type HAlign int

const (
	HCenter HAlign = iota
	HLeft
	HRight
)

// String returns the alignment letter ("L", "R" or "C").
func (a HAlign) String() string {
	switch a {
	case HLeft:
		return "L"
	case HRight:
		return "R"
	default:
		return "C"
	}
}

// VAlign is a vertical alignment.
type VAlign int

const (
	VCenter VAlign = iota
	VTop
	VBottom
)

// Alignment combines independent horizontal and vertical alignment.
// The zero value centers on both axes.
type Alignment struct {
	H HAlign
	V VAlign
}

// String formats the alignment in grammar form, e.g. "LT", or "" when centered.
func (a Alignment) String() string {
	var b strings.Builder
	switch a.H {
	case HLeft:
		b.WriteByte('L')
	case HRight:
		b.WriteByte('R')
	}
	switch a.V {
	case VTop:
		b.WriteByte('T')
	case VBottom:
		b.WriteByte('B')
	}
	return b.String()
}

// =============================================================================
// Actions, Columns, Canvas
// =============================================================================

// Action is a transition attached to a node. Goto is the only variant.
type Action interface {
	action()
}

// Goto navigates to the page whose id matches Target (lower-cased, trimmed).
type Goto struct {
	Target string
}

func (Goto) action() {}

// GotoTarget returns the target of a Goto action, or "" for nil.
func GotoTarget(a Action) string {
	if g, ok := a.(Goto); ok {
		return g.Target
	}
	return ""
}

// FitMode controls how an image fills its box.
type FitMode int

const (
	FitNone FitMode = iota
	FitContain
	FitCover
)

// String returns the fit mode name.
func (f FitMode) String() string {
	switch f {
	case FitContain:
		return "contain"
	case FitCover:
		return "cover"
	default:
		return "none"
	}
}

// Column is one table column. After normalization Weight is a percentage and
// the weights of a table sum to 100.
type Column struct {
	Weight int
	Align  HAlign
}

// Canvas is the target drawing surface declared by a document.
type Canvas struct {
	W, H      int
	OverflowX Overflow
	OverflowY Overflow
}

// DefaultCanvas is used when a document has no canvas line.
var DefaultCanvas = Canvas{W: 500, H: 500}

// String formats the canvas in grammar form, e.g. "300x200S".
func (c Canvas) String() string {
	return fmt.Sprintf("%d%sx%d%s", c.W, c.OverflowX.Suffix(), c.H, c.OverflowY.Suffix())
}

// Edge is a directed navigation transition between two page keys.
type Edge struct {
	From string
	To   string
}
