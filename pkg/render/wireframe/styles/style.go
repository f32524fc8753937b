package styles

import "bytes"

// Style defines the visual appearance of wireframes and maps.
// Implementations control how shapes, labels and connections are drawn.
type Style interface {
	// Name returns the style name used on the command line.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, patterns, markers).
	RenderDefs(buf *bytes.Buffer)
	// RenderShape writes the SVG for the outline and fill of a shape.
	RenderShape(buf *bytes.Buffer, s Shape)
	// RenderText writes the SVG for a shape's label, icon or cells.
	RenderText(buf *bytes.Buffer, s Shape)
	// RenderEdge writes the SVG for a navigation connection.
	RenderEdge(buf *bytes.Buffer, e Edge)
}

// Shape contains all data needed to draw one positioned node.
type Shape struct {
	ID         string  // SVG element id, unique in the drawing
	Kind       string  // Node kind name ("button", "frame", ...)
	Label      string  // Display text
	X, Y, W, H float64 // Position and dimensions
	Radius     float64
	Icon       string
	IconSize   float64
	Src        string // Image source or frame background
	Target     string // GOTO target page key
	Header     bool   // Table header row
	Cells      []Cell
}

// Cell is one positioned table cell.
type Cell struct {
	X, W  float64
	Text  string
	Align string // "L", "R" or "C"
}

// CenterX returns the horizontal center of the shape.
func (s Shape) CenterX() float64 { return s.X + s.W/2 }

// CenterY returns the vertical center of the shape.
func (s Shape) CenterY() float64 { return s.Y + s.H/2 }

// Edge contains positioning data for a connection between two map nodes.
type Edge struct {
	FromID, ToID   string  // Connected page keys
	X1, Y1, X2, Y2 float64 // End points
	Bidirectional  bool
}

// Kind names used by styles.
const (
	KindPage    = "page"
	KindFrame   = "frame"
	KindButton  = "button"
	KindCaption = "caption"
	KindImage   = "image"
	KindTable   = "table"
	KindHeader  = "table-header"
	KindRow     = "table-row"
	KindMapNode = "map-node"
)
