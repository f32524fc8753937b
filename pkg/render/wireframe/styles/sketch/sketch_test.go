package sketch

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/uxl/pkg/render/wireframe/styles"
)

func TestWobbledRect(t *testing.T) {
	path := wobbledRect(10, 20, 100, 50, 42, "n1")

	if !strings.HasPrefix(path, "M") || !strings.HasSuffix(path, "Z") {
		t.Errorf("wobbledRect() should be a closed path, got: %s", path)
	}
	if strings.Count(path, "Q") != 4 {
		t.Errorf("wobbledRect() should have one curve per side, got: %s", path)
	}
	if path != wobbledRect(10, 20, 100, 50, 42, "n1") {
		t.Error("wobbledRect() should be deterministic")
	}
	if path == wobbledRect(10, 20, 100, 50, 42, "n2") {
		t.Error("wobbledRect() should differ between ids")
	}
	if path == wobbledRect(10, 20, 100, 50, 43, "n1") {
		t.Error("wobbledRect() should differ between seeds")
	}
}

func TestWobbledRectTiny(t *testing.T) {
	path := wobbledRect(0, 0, 2, 2, 1, "tiny")
	if !strings.HasPrefix(path, "M") || !strings.HasSuffix(path, "Z") {
		t.Errorf("tiny rect should still be a closed path, got: %s", path)
	}
}

func TestCurvedEdge(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           string
	}{
		{"short edge", 0, 0, 20, 20, "L"},
		{"long edge", 0, 0, 100, 100, "C"},
		{"horizontal", 0, 50, 200, 50, "C"},
		{"vertical", 50, 0, 50, 200, "C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := curvedEdge(tt.x1, tt.y1, tt.x2, tt.y2)
			if !strings.HasPrefix(path, "M") || !strings.Contains(path, tt.want) {
				t.Errorf("curvedEdge() = %s, want a path with %q", path, tt.want)
			}
		})
	}
}

func TestRotationFor(t *testing.T) {
	if rotationFor("n1", 100, 50) != rotationFor("n1", 100, 50) {
		t.Error("rotationFor() should be deterministic")
	}
	if rotationFor("n1", 100, 50) == rotationFor("n2", 100, 50) {
		t.Error("rotationFor() should differ between ids")
	}
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("n%d", i)
		if rot := rotationFor(id, 100, 50); rot < -maxRotation || rot > maxRotation {
			t.Errorf("rotationFor(%q) = %f, out of range", id, rot)
		}
	}
}

func TestGreyForID(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("n%d", i)
		grey := greyForID(id)
		if grey != greyForID(id) {
			t.Fatalf("greyForID(%q) is not deterministic", id)
		}
		var r, g, b int
		if _, err := fmt.Sscanf(grey, "#%02x%02x%02x", &r, &g, &b); err != nil {
			t.Fatalf("greyForID(%q) = %q: %v", id, grey, err)
		}
		if r != g || g != b || r < greyMin || r > greyMax {
			t.Errorf("greyForID(%q) = %q, want a grey in [%#x, %#x]", id, grey, greyMin, greyMax)
		}
	}
}

func TestRNG(t *testing.T) {
	r := newRNG(42)
	for i := 0; i < 1000; i++ {
		if v := r.next(); v < 0 || v >= 1 {
			t.Fatalf("next() = %f, want [0, 1)", v)
		}
	}

	a, b := newRNG(42), newRNG(42)
	for i := 0; i < 10; i++ {
		if a.next() != b.next() {
			t.Fatal("equal seeds should produce equal sequences")
		}
	}

	zero := newRNG(0)
	if zero.next() == 0 && zero.next() == 0 {
		t.Error("zero seed should not stall")
	}
}

func TestHash(t *testing.T) {
	if hash("a", 1) != hash("a", 1) {
		t.Error("hash() should be deterministic")
	}
	if hash("a", 1) == hash("a", 2) {
		t.Error("hash() should depend on the seed")
	}
	if hash("a", 1) == hash("b", 1) {
		t.Error("hash() should depend on the input")
	}
}

func TestRenderShapeKinds(t *testing.T) {
	s := New(1)
	kinds := []string{
		styles.KindPage, styles.KindFrame, styles.KindButton, styles.KindImage,
		styles.KindTable, styles.KindRow, styles.KindMapNode,
	}
	for _, kind := range kinds {
		t.Run(kind, func(t *testing.T) {
			var buf bytes.Buffer
			s.RenderShape(&buf, styles.Shape{ID: "n1", Kind: kind, W: 40, H: 20})
			if !strings.Contains(buf.String(), `id="n1"`) {
				t.Errorf("RenderShape(%s) = %s", kind, buf.String())
			}
		})
	}
}

func TestRenderTextRotates(t *testing.T) {
	var buf bytes.Buffer
	New(0).RenderText(&buf, styles.Shape{ID: "n1", Kind: styles.KindButton, Label: "Go", W: 40, H: 20})
	out := buf.String()
	if !strings.Contains(out, "rotate(") || !strings.Contains(out, ">Go</text>") {
		t.Errorf("RenderText() = %s", out)
	}

	buf.Reset()
	New(0).RenderText(&buf, styles.Shape{ID: "n2", Kind: styles.KindFrame, W: 40, H: 20})
	if buf.Len() != 0 {
		t.Errorf("frames have no text, got %s", buf.String())
	}
}
