package layout

import (
	"math"

	"github.com/matzehuels/uxl/pkg/document"
)

func cellsOf(n document.Node) []string {
	switch v := n.(type) {
	case *document.TableHeader:
		return v.Cells
	case *document.TableRow:
		return v.Cells
	}
	return nil
}

// measureTable sizes a table so that every column, at its percentage of the
// table width, holds its widest cell. Rows are one text line tall.
func (e *engine) measureTable(t *document.Table, availW, availH float64) Size {
	cp := float64(t.CellPadding)
	rows := t.Children()
	heights := make([]float64, len(rows))
	widest := make([]float64, len(t.Columns))
	minLine := e.m.MeasureText(" ").H

	var contentH float64
	for i, r := range rows {
		line := minLine
		for j, cell := range cellsOf(r) {
			s := e.m.MeasureText(cell)
			line = math.Max(line, s.H)
			if j < len(widest) {
				widest[j] = math.Max(widest[j], s.W)
			}
		}
		heights[i] = line + 2*cp
		contentH += heights[i]
	}

	var contentW float64
	for j, col := range t.Columns {
		if col.Weight <= 0 {
			continue
		}
		contentW = math.Max(contentW, (widest[j]+2*cp)*100/float64(col.Weight))
	}

	e.rows[t.ID] = heights
	size := resolve(t.Size, float64(t.Margin), availW, availH, Size{W: contentW, H: contentH})
	e.res.Overflow[t.ID] = AxisOverflow{
		X: decide(t.Size.W.Overflow, t.Size.W.Unit == document.UnitPercent, size.W, contentW),
		Y: decide(t.Size.H.Overflow, t.Size.H.Unit == document.UnitPercent, size.H, contentH),
	}
	return size
}

// placeRows stacks the rows of a table from its top edge, each spanning the
// table width.
func (e *engine) placeRows(t *document.Table, box Box) {
	heights := e.rows[t.ID]
	y := box.Y
	for i, r := range t.Children() {
		b := Box{X: box.X, Y: y, W: box.W, H: heights[i]}
		e.sizes[r.Info().ID] = b.Size()
		e.res.Boxes[r.Info().ID] = b
		y += heights[i]
	}
}

// ColumnBoxes splits a row or table box into its column cells by the
// normalized column weights. The last column absorbs rounding so the cells
// tile the box exactly.
func ColumnBoxes(columns []document.Column, box Box) []Box {
	out := make([]Box, len(columns))
	x := box.X
	for i, col := range columns {
		w := box.W * float64(col.Weight) / 100
		if i == len(columns)-1 {
			w = box.Right() - x
		}
		out[i] = Box{X: x, Y: box.Y, W: w, H: box.H}
		x += w
	}
	return out
}
