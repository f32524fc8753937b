package wire

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/layout"
	"github.com/matzehuels/uxl/pkg/nav"
	"github.com/matzehuels/uxl/pkg/navmap"
	"github.com/matzehuels/uxl/pkg/parser"
)

const sample = `UXL:1.0
300x200
P\home\Home
  F\100%x\T\P4
    C\Welcome\L
  T\COLS:2L,1R\B
    TH\Name\Age
    TD\Alice\42
  B\Go\GOTO:next\R4
P\next\Next
  B\Back\GOTO:home`

func parseSample(t *testing.T) *document.Document {
	t.Helper()
	doc, err := parser.Parse(sample, parser.Options{SourceName: "sample.uxl"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestFromDocument(t *testing.T) {
	d := FromDocument(parseSample(t))

	if d.Version != "1.0" || d.Canvas != "300x200" || d.Source != "sample.uxl" {
		t.Errorf("header = %q %q %q", d.Version, d.Canvas, d.Source)
	}
	if len(d.Pages) != 2 || len(d.Edges) != 2 {
		t.Fatalf("pages = %d, edges = %d", len(d.Pages), len(d.Edges))
	}

	home := d.Pages[0]
	if home.Kind != "page" || home.PageID != "home" || home.Text != "Home" || home.ID != 1 {
		t.Errorf("home = %+v", home)
	}
	if len(home.Children) != 3 {
		t.Fatalf("home children = %d, want 3", len(home.Children))
	}
	frame := home.Children[0]
	if frame.Size != "100%x" || frame.Align != "T" || frame.Padding != 4 {
		t.Errorf("frame = %+v", frame)
	}
	table := home.Children[1]
	if len(table.Columns) != 2 || table.Columns[0].Weight != 67 || table.Columns[0].Align != "L" {
		t.Errorf("table columns = %+v", table.Columns)
	}
	if len(table.Children) != 2 || table.Children[0].Kind != "table-header" {
		t.Errorf("table children = %+v", table.Children)
	}
	if btn := home.Children[2]; btn.Target != "next" || btn.Radius != 4 {
		t.Errorf("button = %+v", btn)
	}
}

func TestWriteDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDocument(parseSample(t), &buf); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}
	d, err := UnmarshalDocument(buf.Bytes())
	if err != nil {
		t.Fatalf("UnmarshalDocument() error = %v", err)
	}
	if len(d.Pages) != 2 || d.Edges[0] != (Edge{From: "home", To: "next"}) {
		t.Errorf("decoded = %+v", d)
	}
	if strings.Contains(buf.String(), `"icon"`) {
		t.Error("empty fields should be omitted")
	}
}

func TestFromLayout(t *testing.T) {
	doc := parseSample(t)
	page := doc.Pages[0]
	res, err := layout.Layout(page, doc.Canvas, layout.Options{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	l := FromLayout(doc, page, res)

	if l.VizType != VizTypeWireframe || l.Page != "home" || l.Width != 300 || l.Height != 200 {
		t.Errorf("layout header = %+v", l)
	}
	if len(l.Boxes) != doc.NodeCount()-2 {
		t.Errorf("boxes = %d, want %d", len(l.Boxes), doc.NodeCount()-2)
	}
	if l.Boxes[0].Kind != "page" || l.Boxes[0].Label != "Home" {
		t.Errorf("first box = %+v, want the page", l.Boxes[0])
	}

	seen := map[int]bool{}
	for _, b := range l.Boxes {
		if b.Parent != 0 && !seen[b.Parent] {
			t.Errorf("box %d precedes its parent %d", b.ID, b.Parent)
		}
		seen[b.ID] = true
		if b.Kind == "table-row" || b.Kind == "table-header" {
			if len(b.Columns) != 2 || len(b.Cells) != 2 {
				t.Errorf("row box %+v lacks columns or cells", b)
			}
		}
	}
}

func TestUnmarshalLayout(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"valid", `{"viz_type":"wireframe","width":10,"height":10,"boxes":[{"id":1,"kind":"page"}]}`, false},
		{"default type", `{"width":10,"height":10,"boxes":[{"id":1,"kind":"page"}]}`, false},
		{"no boxes", `{"viz_type":"wireframe","width":10,"height":10}`, true},
		{"wrong type", `{"viz_type":"map","width":10,"height":10,"boxes":[{"id":1}]}`, true},
		{"zero size", `{"boxes":[{"id":1}]}`, true},
		{"malformed", `{`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.json))
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalLayout() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLayoutFile(t *testing.T) {
	doc := parseSample(t)
	res, err := layout.Layout(doc.Pages[1], doc.Canvas, layout.Options{})
	if err != nil {
		t.Fatal(err)
	}
	l := FromLayout(doc, doc.Pages[1], res)

	path := filepath.Join(t.TempDir(), "next.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error = %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}
	if got.Page != "next" || len(got.Boxes) != len(l.Boxes) {
		t.Errorf("read back %+v", got)
	}
	if _, err := ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadLayoutFile(missing) error = nil")
	}
}

func TestFromMap(t *testing.T) {
	doc := parseSample(t)
	m := navmap.Build(doc.Pages, nav.FromEdges(doc.Edges), navmap.Options{Canvas: doc.Canvas})
	wm := FromMap(doc.Pages, m)

	if len(wm.Nodes) != 2 || !wm.Nodes[0].Start || wm.Nodes[1].Start {
		t.Errorf("nodes = %+v", wm.Nodes)
	}
	if len(wm.Connections) != 1 || !wm.Connections[0].Bidirectional {
		t.Errorf("connections = %+v, want one bidirectional", wm.Connections)
	}
	if n, ok := wm.Node("next"); !ok || n.Column != 1 {
		t.Errorf("Node(next) = %+v, %v", n, ok)
	}

	data, err := MarshalMap(wm)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["viz_type"] != VizTypeMap {
		t.Errorf("viz_type = %v", raw["viz_type"])
	}
	if _, err := UnmarshalMap([]byte(`{"viz_type":"wireframe"}`)); err == nil {
		t.Error("UnmarshalMap(wireframe) error = nil")
	}
}
