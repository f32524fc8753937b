package wire

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/uxl/pkg/document"
)

// =============================================================================
// Document - Parsed Node Tree
// =============================================================================

// Document is the serialization format of a parsed document.
type Document struct {
	Version string `json:"version" bson:"version"`
	Source  string `json:"source,omitempty" bson:"source,omitempty"`
	Canvas  string `json:"canvas" bson:"canvas"`
	Pages   []Node `json:"pages" bson:"pages"`
	Edges   []Edge `json:"edges" bson:"edges"`
}

// Node is one element of the document tree.
type Node struct {
	ID         int      `json:"id" bson:"id"`
	Kind       string   `json:"kind" bson:"kind"`
	Line       int      `json:"line" bson:"line"`
	PageID     string   `json:"page_id,omitempty" bson:"page_id,omitempty"` // Page key
	Text       string   `json:"text,omitempty" bson:"text,omitempty"`       // Caption or label
	Hint       string   `json:"hint,omitempty" bson:"hint,omitempty"`
	Icon       string   `json:"icon,omitempty" bson:"icon,omitempty"`
	IconSize   int      `json:"icon_size,omitempty" bson:"icon_size,omitempty"`
	Src        string   `json:"src,omitempty" bson:"src,omitempty"`
	Background string   `json:"background,omitempty" bson:"background,omitempty"`
	Fit        string   `json:"fit,omitempty" bson:"fit,omitempty"`
	Size       string   `json:"size,omitempty" bson:"size,omitempty"`
	Align      string   `json:"align,omitempty" bson:"align,omitempty"`
	Target     string   `json:"target,omitempty" bson:"target,omitempty"`
	Margin     int      `json:"margin,omitempty" bson:"margin,omitempty"`
	Padding    int      `json:"padding,omitempty" bson:"padding,omitempty"`
	Radius     int      `json:"radius,omitempty" bson:"radius,omitempty"`
	Columns    []Column `json:"columns,omitempty" bson:"columns,omitempty"`
	Cells      []string `json:"cells,omitempty" bson:"cells,omitempty"`
	Children   []Node   `json:"children,omitempty" bson:"children,omitempty"`
}

// Column is a normalized table column.
type Column struct {
	Weight int    `json:"weight" bson:"weight"`
	Align  string `json:"align,omitempty" bson:"align,omitempty"`
}

// Edge is a navigation transition between two page keys.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// FromDocument converts a parsed document to its serialization format.
func FromDocument(doc *document.Document) Document {
	out := Document{
		Version: doc.Version,
		Source:  doc.Source,
		Canvas:  doc.Canvas.String(),
		Pages:   make([]Node, len(doc.Pages)),
		Edges:   make([]Edge, len(doc.Edges)),
	}
	for i, p := range doc.Pages {
		out.Pages[i] = nodeFrom(p)
	}
	for i, e := range doc.Edges {
		out.Edges[i] = Edge{From: e.From, To: e.To}
	}
	return out
}

// nodeFrom is the single point of conversion from document nodes.
func nodeFrom(n document.Node) Node {
	info := n.Info()
	out := Node{
		ID:     int(info.ID),
		Kind:   n.Kind().String(),
		Line:   info.Line,
		Hint:   info.Hint,
		Target: document.GotoTarget(document.ActionOf(n)),
		Margin: document.MarginOf(n),
	}
	if s := document.SizeOf(n); s.IsSet() {
		out.Size = s.String()
	}
	if a := document.AlignOf(n); a != (document.Alignment{}) {
		out.Align = a.String()
	}

	switch v := n.(type) {
	case *document.Page:
		out.PageID = v.Key()
		out.Text = v.Caption
		out.Padding = v.Padding
	case *document.Frame:
		out.Padding = v.Padding
		out.Background = v.Background
	case *document.Button:
		out.Text = v.Caption
		out.Icon = v.Icon
		out.IconSize = v.IconSize
		out.Padding = v.Padding
		out.Radius = v.Radius
	case *document.Caption:
		out.Text = v.Text
		out.Padding = v.Padding
	case *document.Image:
		out.Src = v.Src
		out.Radius = v.Radius
		if v.Fit != document.FitNone {
			out.Fit = v.Fit.String()
		}
	case *document.Table:
		out.Padding = v.CellPadding
		out.Columns = columnsFrom(v.Columns)
	case *document.TableHeader:
		out.Cells = v.Cells
	case *document.TableRow:
		out.Cells = v.Cells
	}

	for _, c := range n.Children() {
		out.Children = append(out.Children, nodeFrom(c))
	}
	return out
}

func columnsFrom(cols []document.Column) []Column {
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = Column{Weight: c.Weight}
		if c.Align != document.HCenter {
			out[i].Align = c.Align.String()
		}
	}
	return out
}

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument converts a document to indented JSON bytes.
func MarshalDocument(doc *document.Document) ([]byte, error) {
	return json.MarshalIndent(FromDocument(doc), "", "  ")
}

// WriteDocument writes a document as JSON to w.
func WriteDocument(doc *document.Document, w io.Writer) error {
	return encode(w, FromDocument(doc))
}

// UnmarshalDocument deserializes JSON bytes into a Document.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	return d, nil
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
