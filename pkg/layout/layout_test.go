package layout_test

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/layout"
	"github.com/matzehuels/uxl/pkg/parser"
)

func parse(t *testing.T, lines ...string) *document.Document {
	t.Helper()
	doc, err := parser.Parse(strings.Join(lines, "\n"), parser.Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func run(t *testing.T, doc *document.Document, opts layout.Options) *layout.Result {
	t.Helper()
	res, err := layout.Layout(doc.Pages[0], doc.Canvas, opts)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	return res
}

// boxOf returns the box of the n-th node (document order) of the given kind.
func boxOf(t *testing.T, doc *document.Document, res *layout.Result, kind document.Kind, n int) layout.Box {
	t.Helper()
	var found document.Node
	doc.Walk(func(node document.Node) bool {
		if node.Kind() == kind {
			if n == 0 {
				found = node
				return false
			}
			n--
		}
		return true
	})
	if found == nil {
		t.Fatalf("no %v node", kind)
	}
	b, ok := res.Box(found.Info().ID)
	if !ok {
		t.Fatalf("no box for node %d", found.Info().ID)
	}
	return b
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func sameBox(a, b layout.Box) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.W, b.W) && near(a.H, b.H)
}

func TestLayoutCenteredButton(t *testing.T) {
	doc := parse(t,
		`UXL:1.0`,
		`300x200`,
		`P\home\Home`,
		`  B\Go\GOTO:next`,
		`P\next\Next`,
	)
	res := run(t, doc, layout.Options{})

	if got := boxOf(t, doc, res, document.KindPage, 0); !sameBox(got, layout.Box{W: 300, H: 200}) {
		t.Errorf("page box = %+v", got)
	}
	want := layout.Box{X: 143, Y: 92, W: 14, H: 16}
	if got := boxOf(t, doc, res, document.KindButton, 0); !sameBox(got, want) {
		t.Errorf("button box = %+v, want %+v", got, want)
	}
	if ov := res.Overflow[res.Page]; ov.X != layout.Fit || ov.Y != layout.Fit {
		t.Errorf("page overflow = %+v, want fit", ov)
	}
	if res.Passes != 1 {
		t.Errorf("Passes = %d, want 1", res.Passes)
	}
}

func TestLayoutSizing(t *testing.T) {
	long := strings.Repeat("a", 30) // 210px
	tests := []struct {
		name   string
		frame  string
		wantW  float64
		wantH  float64
		wantOX layout.Overflow
	}{
		{"percent fills parent", `F\100%x`, 500, 16, layout.Fit},
		{"percent with zero margin", `F\100%x\M0`, 500, 16, layout.Fit},
		{"percent minus margin", `F\100%x\M10`, 480, 16, layout.Fit},
		{"crop is exact", `F\100Cx50C`, 100, 50, layout.Clip},
		{"scroll is exact", `F\100Sx50S`, 100, 50, layout.Scroll},
		{"px grows to content", `F\100x50`, 210, 50, layout.Fit},
		{"px larger than content", `F\300x50`, 300, 50, layout.Fit},
		{"auto takes content", `F`, 210, 16, layout.Fit},
		{"percent spills", `F\20%x`, 100, 16, layout.Spill},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t,
				`500x500`,
				`P\a\A`,
				`  `+tt.frame,
				`    C\`+long,
			)
			res := run(t, doc, layout.Options{})
			got := boxOf(t, doc, res, document.KindFrame, 0)
			if !near(got.W, tt.wantW) || !near(got.H, tt.wantH) {
				t.Errorf("frame size = %vx%v, want %vx%v", got.W, got.H, tt.wantW, tt.wantH)
			}
			frame := doc.Pages[0].Nodes[0]
			if ov := res.Overflow[frame.Info().ID]; ov.X != tt.wantOX {
				t.Errorf("overflow X = %v, want %v", ov.X, tt.wantOX)
			}
		})
	}
}

func TestLayoutPercentRespectsPadding(t *testing.T) {
	doc := parse(t,
		`400x400`,
		`P\a\A\P20`,
		`  F\50%x50%`,
	)
	res := run(t, doc, layout.Options{})
	got := boxOf(t, doc, res, document.KindFrame, 0)
	if !near(got.W, 180) || !near(got.H, 180) {
		t.Errorf("frame size = %vx%v, want 180x180", got.W, got.H)
	}
}

func TestLayoutMarginOutsideBox(t *testing.T) {
	doc := parse(t,
		`200x200`,
		`P\a\A`,
		`  B\Go\TL\M10`,
	)
	res := run(t, doc, layout.Options{})
	want := layout.Box{X: 10, Y: 10, W: 14, H: 16}
	if got := boxOf(t, doc, res, document.KindButton, 0); !sameBox(got, want) {
		t.Errorf("button box = %+v, want %+v", got, want)
	}
}

func TestLayoutBands(t *testing.T) {
	doc := parse(t,
		`400x300`,
		`P\a\A`,
		`  C\Top\T`,
		`  C\Bottom\B`,
		`  B\Left\L`,
		`  B\Right\R`,
		`  B\Mid`,
	)
	res := run(t, doc, layout.Options{})

	tests := []struct {
		name string
		kind document.Kind
		n    int
		want layout.Box
	}{
		{"top", document.KindCaption, 0, layout.Box{X: 189.5, Y: 0, W: 21, H: 16}},
		{"bottom", document.KindCaption, 1, layout.Box{X: 179, Y: 284, W: 42, H: 16}},
		{"left", document.KindButton, 0, layout.Box{X: 0, Y: 142, W: 28, H: 16}},
		{"right", document.KindButton, 1, layout.Box{X: 365, Y: 142, W: 35, H: 16}},
		// Centered in the gap between left (ends at 28) and right (starts at 365).
		{"center", document.KindButton, 2, layout.Box{X: 186, Y: 142, W: 21, H: 16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := boxOf(t, doc, res, tt.kind, tt.n); !sameBox(got, tt.want) {
				t.Errorf("box = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLayoutTopBandPushesOverlaps(t *testing.T) {
	doc := parse(t,
		`400x300`,
		`P\a\A`,
		`  C\Alpha\TL`,
		`  C\Omega\TR`,
		`  C\Title\T`,
		`  C\Sub\T`,
	)
	res := run(t, doc, layout.Options{})

	wantY := []float64{0, 0, 0, 16}
	for i, y := range wantY {
		if got := boxOf(t, doc, res, document.KindCaption, i); !near(got.Y, y) {
			t.Errorf("caption %d Y = %v, want %v", i, got.Y, y)
		}
	}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			a := boxOf(t, doc, res, document.KindCaption, i)
			b := boxOf(t, doc, res, document.KindCaption, j)
			if a.Overlaps(b) {
				t.Errorf("captions %d and %d overlap: %+v %+v", i, j, a, b)
			}
		}
	}
}

func TestLayoutBottomBandStacksUpwards(t *testing.T) {
	doc := parse(t,
		`400x300`,
		`P\a\A`,
		`  C\First\B`,
		`  C\Second\B`,
	)
	res := run(t, doc, layout.Options{})
	if got := boxOf(t, doc, res, document.KindCaption, 0); !near(got.Y, 284) {
		t.Errorf("first Y = %v, want 284", got.Y)
	}
	if got := boxOf(t, doc, res, document.KindCaption, 1); !near(got.Y, 268) {
		t.Errorf("second Y = %v, want 268", got.Y)
	}
}

func TestLayoutNestedFrameContainsChildren(t *testing.T) {
	doc := parse(t,
		`400x400`,
		`P\a\A`,
		`  F\300x200\P10`,
		`    C\Header\T`,
		`    B\Ok\BR\M2`,
		`    F\50%x50%`,
		`      C\Inner`,
	)
	res := run(t, doc, layout.Options{})
	outer := boxOf(t, doc, res, document.KindFrame, 0)
	if !near(outer.W, 300) || !near(outer.H, 200) {
		t.Fatalf("outer = %+v", outer)
	}
	for _, kind := range []document.Kind{document.KindCaption, document.KindButton} {
		b := boxOf(t, doc, res, kind, 0)
		if !outer.Contains(b) {
			t.Errorf("%v %+v escapes frame %+v", kind, b, outer)
		}
	}
	inner := boxOf(t, doc, res, document.KindFrame, 1)
	if !near(inner.W, 140) || !near(inner.H, 90) {
		t.Errorf("inner = %vx%v, want 140x90", inner.W, inner.H)
	}
	if !inner.Contains(boxOf(t, doc, res, document.KindCaption, 1)) {
		t.Errorf("inner caption escapes inner frame")
	}
}

func TestLayoutImageAspectRatio(t *testing.T) {
	m := layout.NewTextMeasurer()
	m.Images.Set("a.png", layout.Size{W: 200, H: 100})

	tests := []struct {
		name  string
		field string
		want  layout.Size
	}{
		{"width only", `I\SRC:a.png\50x`, layout.Size{W: 50, H: 25}},
		{"height only", `I\SRC:a.png\x40`, layout.Size{W: 80, H: 40}},
		{"both", `I\SRC:a.png\30x30`, layout.Size{W: 30, H: 30}},
		{"intrinsic", `I\SRC:a.png`, layout.Size{W: 200, H: 100}},
		{"unknown", `I\SRC:b.png`, layout.Size{}},
		{"unknown width only", `I\SRC:b.png\50x`, layout.Size{W: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, `P\a\A`, `  `+tt.field)
			res := run(t, doc, layout.Options{Measurer: m})
			got := boxOf(t, doc, res, document.KindImage, 0).Size()
			if !near(got.W, tt.want.W) || !near(got.H, tt.want.H) {
				t.Errorf("size = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLayoutButtonIcon(t *testing.T) {
	doc := parse(t,
		`P\a\A`,
		`  B\ICON:home`,
		`  B\Go\ICON:home:24\P2`,
	)
	res := run(t, doc, layout.Options{})
	if got := boxOf(t, doc, res, document.KindButton, 0).Size(); !near(got.W, 16) || !near(got.H, 16) {
		t.Errorf("icon button = %+v, want 16x16", got)
	}
	// 14 text + 4 gap + 24 icon + 2*2 padding; height is the icon plus padding.
	if got := boxOf(t, doc, res, document.KindButton, 1).Size(); !near(got.W, 46) || !near(got.H, 28) {
		t.Errorf("captioned icon button = %+v, want 46x28", got)
	}
}

func TestLayoutTable(t *testing.T) {
	doc := parse(t,
		`P\a\A`,
		`  T\COLS:1,1\TL`,
		`    TH\Name\Age`,
		`    TD\Bob\42`,
	)
	res := run(t, doc, layout.Options{})
	table := boxOf(t, doc, res, document.KindTable, 0)
	if !sameBox(table, layout.Box{W: 56, H: 32}) {
		t.Fatalf("table = %+v, want 56x32 at origin", table)
	}
	header := boxOf(t, doc, res, document.KindTableHeader, 0)
	row := boxOf(t, doc, res, document.KindTableRow, 0)
	if !sameBox(header, layout.Box{W: 56, H: 16}) || !sameBox(row, layout.Box{Y: 16, W: 56, H: 16}) {
		t.Errorf("header = %+v, row = %+v", header, row)
	}

	tbl := doc.Pages[0].Nodes[0].(*document.Table)
	cells := layout.ColumnBoxes(tbl.Columns, row)
	if len(cells) != 2 || !sameBox(cells[0], layout.Box{Y: 16, W: 28, H: 16}) || !sameBox(cells[1], layout.Box{X: 28, Y: 16, W: 28, H: 16}) {
		t.Errorf("cells = %+v", cells)
	}
}

func TestColumnBoxesTile(t *testing.T) {
	cols := []document.Column{{Weight: 34}, {Weight: 33}, {Weight: 33}}
	box := layout.Box{X: 5, Y: 1, W: 101, H: 10}
	cells := layout.ColumnBoxes(cols, box)
	var total float64
	for i, c := range cells {
		total += c.W
		if i > 0 && !near(c.X, cells[i-1].Right()) {
			t.Errorf("cell %d starts at %v, want %v", i, c.X, cells[i-1].Right())
		}
	}
	if !near(total, box.W) || !near(cells[2].Right(), box.Right()) {
		t.Errorf("cells do not tile the box: %+v", cells)
	}
}

func TestLayoutEveryNodeHasBox(t *testing.T) {
	doc := parse(t,
		`P\a\A`,
		`  F\T`,
		`    C\Hi`,
		`    I\SRC:x.png`,
		`  T\COLS:1`,
		`    TD\x`,
		`    TD\y`,
		`  B\Go\B`,
	)
	res := run(t, doc, layout.Options{})
	count := 0
	doc.Walk(func(n document.Node) bool {
		count++
		if _, ok := res.Box(n.Info().ID); !ok {
			t.Errorf("%v node %d has no box", n.Kind(), n.Info().ID)
		}
		return true
	})
	if len(res.Boxes) != count {
		t.Errorf("len(Boxes) = %d, want %d", len(res.Boxes), count)
	}
}

func TestLayoutScrollbarRelayout(t *testing.T) {
	tall := []string{`200x100`, `P\a\A`}
	for i := 0; i < 10; i++ {
		tall = append(tall, `  C\a\T`)
	}

	t.Run("disabled", func(t *testing.T) {
		res := run(t, parse(t, tall...), layout.Options{})
		if res.Passes != 1 || res.Overflow[res.Page].Y != layout.Scroll {
			t.Errorf("Passes = %d, overflow = %+v", res.Passes, res.Overflow[res.Page])
		}
		if !near(res.Viewport.W, 200) {
			t.Errorf("Viewport = %+v", res.Viewport)
		}
	})

	t.Run("vertical", func(t *testing.T) {
		res := run(t, parse(t, tall...), layout.Options{Scrollbar: 10})
		if res.Passes != 2 {
			t.Errorf("Passes = %d, want 2", res.Passes)
		}
		if !near(res.Viewport.W, 190) || !near(res.Viewport.H, 100) {
			t.Errorf("Viewport = %+v, want 190x100", res.Viewport)
		}
	})

	t.Run("cascade is capped", func(t *testing.T) {
		lines := append(append([]string{}, tall...), `  C\abcdefghijklmnopqrstuvwxyzab\T`)
		res := run(t, parse(t, lines...), layout.Options{Scrollbar: 10})
		if res.Passes != 3 {
			t.Errorf("Passes = %d, want 3", res.Passes)
		}
		if !near(res.Viewport.W, 190) || !near(res.Viewport.H, 90) {
			t.Errorf("Viewport = %+v, want 190x90", res.Viewport)
		}
		if ov := res.Overflow[res.Page]; ov.X != layout.Scroll || ov.Y != layout.Scroll {
			t.Errorf("overflow = %+v, want scroll both", ov)
		}
	})

	t.Run("fits", func(t *testing.T) {
		res := run(t, parse(t, `200x100`, `P\a\A`, `  C\a`), layout.Options{Scrollbar: 10})
		if res.Passes != 1 {
			t.Errorf("Passes = %d, want 1", res.Passes)
		}
	})
}

func TestLayoutCanvasCrop(t *testing.T) {
	lines := []string{`200x100C`, `P\a\A`}
	for i := 0; i < 10; i++ {
		lines = append(lines, `  C\a\T`)
	}
	res := run(t, parse(t, lines...), layout.Options{Scrollbar: 10})
	if ov := res.Overflow[res.Page]; ov.Y != layout.Clip {
		t.Errorf("overflow Y = %v, want clip", ov.Y)
	}
	if res.Passes != 1 {
		t.Errorf("Passes = %d, want 1", res.Passes)
	}
}

func TestLayoutErrors(t *testing.T) {
	doc := parse(t, `P\a\A`)
	tests := []struct {
		name   string
		page   *document.Page
		canvas document.Canvas
		opts   layout.Options
	}{
		{"nil page", nil, document.DefaultCanvas, layout.Options{}},
		{"zero canvas", doc.Pages[0], document.Canvas{}, layout.Options{}},
		{"negative scrollbar", doc.Pages[0], document.DefaultCanvas, layout.Options{Scrollbar: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := layout.Layout(tt.page, tt.canvas, tt.opts); err == nil {
				t.Error("Layout() error = nil, want error")
			}
		})
	}
}

func TestBoxOverlapsAndContains(t *testing.T) {
	a := layout.Box{W: 10, H: 10}
	tests := []struct {
		name     string
		b        layout.Box
		overlaps bool
		contains bool
	}{
		{"touching", layout.Box{X: 10, W: 5, H: 5}, false, false},
		{"inside", layout.Box{X: 2, Y: 2, W: 5, H: 5}, true, true},
		{"crossing", layout.Box{X: 8, Y: 8, W: 5, H: 5}, true, false},
		{"same", a, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.overlaps {
				t.Errorf("Overlaps = %v, want %v", got, tt.overlaps)
			}
			if got := a.Contains(tt.b); got != tt.contains {
				t.Errorf("Contains = %v, want %v", got, tt.contains)
			}
		})
	}
}

func TestTextMeasurer(t *testing.T) {
	m := layout.NewTextMeasurer()
	tests := []struct {
		text string
		want layout.Size
	}{
		{"", layout.Size{}},
		{"abc", layout.Size{W: 21, H: 16}},
		{"日本", layout.Size{W: 28, H: 16}},
	}
	for _, tt := range tests {
		if got := m.MeasureText(tt.text); got != tt.want {
			t.Errorf("MeasureText(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}
