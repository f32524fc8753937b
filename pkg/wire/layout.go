package wire

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/layout"
)

// =============================================================================
// Constants
// =============================================================================

// Visualization types.
const (
	VizTypeWireframe = "wireframe"
	VizTypeMap       = "map"
)

// Visual styles for rendering.
const (
	StyleSimple = "simple"
	StyleSketch = "sketch"
)

// Styles lists the supported visual styles.
var Styles = []string{StyleSimple, StyleSketch}

// =============================================================================
// Layout - Positioned Page
// =============================================================================

// Layout is the serialization format of one laid-out page.
type Layout struct {
	VizType  string  `json:"viz_type" bson:"viz_type"`
	Page     string  `json:"page" bson:"page"` // Page key
	Title    string  `json:"title" bson:"title"`
	Canvas   string  `json:"canvas" bson:"canvas"`
	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height" bson:"height"`
	ContentW float64 `json:"content_w" bson:"content_w"`
	ContentH float64 `json:"content_h" bson:"content_h"`
	Overflow string  `json:"overflow" bson:"overflow"` // Page overflow, e.g. "fit/scroll"
	Passes   int     `json:"passes" bson:"passes"`
	Style    string  `json:"style,omitempty" bson:"style,omitempty"`
	Boxes    []Box   `json:"boxes" bson:"boxes"`
}

// Box is a positioned node with everything a renderer needs to draw it.
type Box struct {
	ID         int      `json:"id" bson:"id"`
	Parent     int      `json:"parent,omitempty" bson:"parent,omitempty"`
	Kind       string   `json:"kind" bson:"kind"`
	X          float64  `json:"x" bson:"x"`
	Y          float64  `json:"y" bson:"y"`
	W          float64  `json:"w" bson:"w"`
	H          float64  `json:"h" bson:"h"`
	Label      string   `json:"label,omitempty" bson:"label,omitempty"`
	Icon       string   `json:"icon,omitempty" bson:"icon,omitempty"`
	IconSize   int      `json:"icon_size,omitempty" bson:"icon_size,omitempty"`
	Src        string   `json:"src,omitempty" bson:"src,omitempty"`
	Background string   `json:"background,omitempty" bson:"background,omitempty"`
	Fit        string   `json:"fit,omitempty" bson:"fit,omitempty"`
	Radius     int      `json:"radius,omitempty" bson:"radius,omitempty"`
	Padding    int      `json:"padding,omitempty" bson:"padding,omitempty"`
	Target     string   `json:"target,omitempty" bson:"target,omitempty"`
	Header     bool     `json:"header,omitempty" bson:"header,omitempty"`
	Cells      []string `json:"cells,omitempty" bson:"cells,omitempty"`
	Columns    []Column `json:"columns,omitempty" bson:"columns,omitempty"`
	Overflow   string   `json:"overflow,omitempty" bson:"overflow,omitempty"` // Set when an axis does not fit
	Clip       bool     `json:"clip,omitempty" bson:"clip,omitempty"`
}

// IsContainer reports whether the box holds child boxes.
func (b *Box) IsContainer() bool {
	return b.Kind == document.KindPage.String() || b.Kind == document.KindFrame.String() ||
		b.Kind == document.KindTable.String()
}

// FromLayout converts a layout result of a page of doc to its serialization
// format. Boxes follow document pre-order.
func FromLayout(doc *document.Document, page *document.Page, res *layout.Result) Layout {
	out := Layout{
		VizType:  VizTypeWireframe,
		Page:     page.Key(),
		Title:    page.Title(),
		Canvas:   res.Canvas.String(),
		Width:    float64(res.Canvas.W),
		Height:   float64(res.Canvas.H),
		ContentW: res.Content.W,
		ContentH: res.Content.H,
		Overflow: overflowString(res.Overflow[page.ID]),
		Passes:   res.Passes,
	}

	var columns []Column
	var walk func(n document.Node)
	walk = func(n document.Node) {
		info := n.Info()
		b, ok := res.Box(info.ID)
		if !ok {
			return
		}
		box := Box{
			ID:     int(info.ID),
			Parent: int(info.Parent),
			Kind:   n.Kind().String(),
			X:      b.X,
			Y:      b.Y,
			W:      b.W,
			H:      b.H,
			Target: document.GotoTarget(document.ActionOf(n)),
		}
		if ov, ok := res.Overflow[info.ID]; ok && ov != (layout.AxisOverflow{}) {
			box.Overflow = overflowString(ov)
			box.Clip = ov.X == layout.Clip || ov.X == layout.Scroll || ov.Y == layout.Clip || ov.Y == layout.Scroll
		}

		switch v := n.(type) {
		case *document.Page:
			box.Label = v.Caption
			box.Padding = v.Padding
		case *document.Frame:
			box.Background = v.Background
			box.Padding = v.Padding
		case *document.Button:
			box.Label = v.Caption
			box.Icon = v.Icon
			box.IconSize = v.IconSize
			box.Radius = v.Radius
			box.Padding = v.Padding
		case *document.Caption:
			box.Label = v.Text
			box.Padding = v.Padding
		case *document.Image:
			box.Src = v.Src
			box.Radius = v.Radius
			box.Fit = v.Fit.String()
		case *document.Table:
			columns = columnsFrom(v.Columns)
			box.Columns = columns
			box.Padding = v.CellPadding
		case *document.TableHeader:
			box.Header = true
			box.Cells = v.Cells
			box.Columns = columns
		case *document.TableRow:
			box.Cells = v.Cells
			box.Columns = columns
		}
		out.Boxes = append(out.Boxes, box)

		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(page)
	return out
}

func overflowString(o layout.AxisOverflow) string {
	return o.X.String() + "/" + o.Y.String()
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks that it
// can be drawn.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.VizType == "" {
		l.VizType = VizTypeWireframe
	}
	if l.VizType != VizTypeWireframe {
		return Layout{}, fmt.Errorf("unexpected viz type %q", l.VizType)
	}
	if len(l.Boxes) == 0 {
		return Layout{}, fmt.Errorf("wireframe layout must contain boxes")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("wireframe layout must have a positive size")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
