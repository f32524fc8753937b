// Package layout computes pixel boxes for every node of a UXL page.
//
// # Overview
//
// [Layout] takes a page and a canvas and returns a [Result]: a map from node id
// to a [Box] in canvas coordinates, plus an overflow decision for the page and
// every frame. The engine is stateless; each call allocates its own maps, so
// concurrent calls on the same document are safe.
//
// # Sizing
//
// Each axis of a node's declared size resolves as follows:
//
//   - unset: the node's measured content (text, icon, image, children)
//   - pixels: the declared value, grown to fit content unless the axis is
//     cropped (C) or scrolled (S), in which case it is exact
//   - percent: a share of the parent's inner size that fills the margin box
//     exactly and never grows
//
// Images with one unset axis derive it from their intrinsic aspect ratio.
// Intrinsic sizes come from a [Measurer]; unknown images measure as zero, and
// callers relayout once real dimensions are known.
//
// # Bands
//
// Children of a page or frame are split by vertical alignment. Top-aligned
// children pack downward from the top padding edge and bottom-aligned children
// pack upward from the bottom edge; a child that would overlap an earlier one
// in the same band is pushed past it. The remaining children form the middle
// band, a single row with left-aligned children against the left edge,
// right-aligned children against the right edge and centered children in the
// gap, vertically centered between the other two bands.
//
// # Page Root
//
// The page always has the canvas size. Its overflow defaults to scrolling on
// both axes unless the canvas line says otherwise. With [Options.Scrollbar]
// set, an axis that scrolls reserves the scrollbar's thickness on the other
// axis and the page is laid out again, at most twice.
package layout
