package document

// NodeID identifies a node within one document. Zero means "no node".
type NodeID int

// Kind enumerates the closed set of node kinds.
type Kind int

const (
	KindPage Kind = iota + 1
	KindFrame
	KindButton
	KindCaption
	KindImage
	KindTable
	KindTableHeader
	KindTableRow
)

var kindTags = map[Kind]string{
	KindPage:        "P",
	KindFrame:       "F",
	KindButton:      "B",
	KindCaption:     "C",
	KindImage:       "I",
	KindTable:       "T",
	KindTableHeader: "TH",
	KindTableRow:    "TD",
}

var kindNames = map[Kind]string{
	KindPage:        "page",
	KindFrame:       "frame",
	KindButton:      "button",
	KindCaption:     "caption",
	KindImage:       "image",
	KindTable:       "table",
	KindTableHeader: "table-header",
	KindTableRow:    "table-row",
}

// Tag returns the grammar tag for the kind ("P", "F", ...).
func (k Kind) Tag() string { return kindTags[k] }

// String returns the lower-case kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// KindFromTag maps an upper-case tag to its kind.
func KindFromTag(tag string) (Kind, bool) {
	for k, t := range kindTags {
		if t == tag {
			return k, true
		}
	}
	return 0, false
}

// Tags returns all grammar tags in canonical order.
func Tags() []string {
	return []string{"P", "F", "B", "C", "I", "T", "TH", "TD"}
}

// NodeInfo holds the attributes shared by every node kind.
type NodeInfo struct {
	ID     NodeID // Assigned by Build, depth-first from 1
	Parent NodeID // Zero for pages
	Page   NodeID // Nearest enclosing page; a page's own id for pages
	Line   int    // 1-based source line
	Hint   string // Free-form hint text
}

// Info returns the shared attributes. It makes every embedding type satisfy
// part of [Node].
func (i *NodeInfo) Info() *NodeInfo { return i }

// Node is implemented by exactly the eight node kinds of this package.
type Node interface {
	Info() *NodeInfo
	Kind() Kind
	Children() []Node
}

// Page is a root screen of the prototype.
type Page struct {
	NodeInfo
	PageID  string // Optional user id, original spelling
	Caption string
	Padding int
	Nodes   []Node // Frame, Button, Caption, Table or Image
	ordinal int
}

// Frame is a sized container.
type Frame struct {
	NodeInfo
	Margin     int
	Padding    int
	Background string
	Size       Size
	Align      Alignment
	Nodes      []Node
}

// Button is a clickable leaf with a caption and/or icon.
type Button struct {
	NodeInfo
	Caption  string
	Icon     string
	IconSize int // Zero means the default icon size
	Size     Size
	Align    Alignment
	Action   Action
	Margin   int
	Padding  int
	Radius   int
}

// Caption is a text leaf.
type Caption struct {
	NodeInfo
	Text    string
	Size    Size
	Align   Alignment
	Margin  int
	Padding int
}

// Image is an image leaf.
type Image struct {
	NodeInfo
	Src    string
	Fit    FitMode
	Size   Size
	Align  Alignment
	Margin int
	Radius int
}

// Table is a grid of text cells.
type Table struct {
	NodeInfo
	Columns     []Column // Normalized, weights sum to 100
	Size        Size
	Align       Alignment
	Margin      int
	CellPadding int
	Action      Action
	Header      *TableHeader
	Rows        []*TableRow
}

// TableHeader is the optional heading row of a table.
type TableHeader struct {
	NodeInfo
	Cells []string
}

// TableRow is one body row of a table.
type TableRow struct {
	NodeInfo
	Cells []string
}

func (*Page) Kind() Kind        { return KindPage }
func (*Frame) Kind() Kind       { return KindFrame }
func (*Button) Kind() Kind      { return KindButton }
func (*Caption) Kind() Kind     { return KindCaption }
func (*Image) Kind() Kind       { return KindImage }
func (*Table) Kind() Kind       { return KindTable }
func (*TableHeader) Kind() Kind { return KindTableHeader }
func (*TableRow) Kind() Kind    { return KindTableRow }

func (p *Page) Children() []Node  { return p.Nodes }
func (f *Frame) Children() []Node { return f.Nodes }
func (*Button) Children() []Node  { return nil }
func (*Caption) Children() []Node { return nil }
func (*Image) Children() []Node   { return nil }

func (t *Table) Children() []Node {
	out := make([]Node, 0, len(t.Rows)+1)
	if t.Header != nil {
		out = append(out, t.Header)
	}
	for _, r := range t.Rows {
		out = append(out, r)
	}
	return out
}

func (*TableHeader) Children() []Node { return nil }
func (*TableRow) Children() []Node    { return nil }

// Key returns the normalized page key used by the navigation graph: the
// lower-cased id, or "#n" (1-based page ordinal) for pages without an id.
func (p *Page) Key() string {
	if p.PageID != "" {
		return normalizeID(p.PageID)
	}
	return "#" + itoa(p.ordinal)
}

// Ordinal returns the 1-based position of the page in its document.
func (p *Page) Ordinal() int { return p.ordinal }

// Title returns the caption, falling back to the id and then the key.
func (p *Page) Title() string {
	switch {
	case p.Caption != "":
		return p.Caption
	case p.PageID != "":
		return p.PageID
	default:
		return p.Key()
	}
}

// ActionOf returns the action carried by n, if any.
func ActionOf(n Node) Action {
	switch v := n.(type) {
	case *Button:
		return v.Action
	case *Table:
		return v.Action
	default:
		return nil
	}
}

// MarginOf returns the margin of n (zero for kinds without margins).
func MarginOf(n Node) int {
	switch v := n.(type) {
	case *Frame:
		return v.Margin
	case *Button:
		return v.Margin
	case *Caption:
		return v.Margin
	case *Image:
		return v.Margin
	case *Table:
		return v.Margin
	default:
		return 0
	}
}

// SizeOf returns the declared size of n (unset for kinds without sizes).
func SizeOf(n Node) Size {
	switch v := n.(type) {
	case *Frame:
		return v.Size
	case *Button:
		return v.Size
	case *Caption:
		return v.Size
	case *Image:
		return v.Size
	case *Table:
		return v.Size
	default:
		return Size{}
	}
}

// AlignOf returns the alignment of n (centered for kinds without alignment).
func AlignOf(n Node) Alignment {
	switch v := n.(type) {
	case *Frame:
		return v.Align
	case *Button:
		return v.Align
	case *Caption:
		return v.Align
	case *Image:
		return v.Align
	case *Table:
		return v.Align
	default:
		return Alignment{}
	}
}
