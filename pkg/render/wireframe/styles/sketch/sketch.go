// Package sketch provides a hand-drawn wireframe style.
//
// Outlines wobble, fills vary in grey and connections curve, as if the
// wireframe were drawn on paper. All randomness derives from the shape id and
// a seed, so the same input always renders the same picture.
package sketch

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/matzehuels/uxl/pkg/fonts"
	"github.com/matzehuels/uxl/pkg/render/wireframe/styles"
)

const (
	greyMin = 0xd8
	greyMax = 0xf4

	wobble        = 1.6 // Maximum corner and midpoint offset in pixels
	maxRotation   = 1.5 // Degrees
	straightBelow = 60.0
)

// Sketch is the hand-drawn style.
type Sketch struct {
	Seed uint64
}

// New returns a sketch style with the given seed.
func New(seed uint64) Sketch { return Sketch{Seed: seed} }

// Name implements [styles.Style].
func (Sketch) Name() string { return "sketch" }

// RenderDefs implements [styles.Style].
func (Sketch) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <style>text { font-family: %s; fill: #1a1a1a; }</style>
    <filter id="pencil"><feTurbulence type="fractalNoise" baseFrequency="0.03" numOctaves="2" result="noise"/><feDisplacementMap in="SourceGraphic" in2="noise" scale="1.5"/></filter>
    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">
      <path d="M0,1 Q5,5 0,9 M0,1 L10,5 L0,9" fill="none" stroke="#222" stroke-width="1.2"/>
    </marker>
  </defs>
`, styles.EscapeXML(fonts.SketchFontFamily))
}

// RenderShape implements [styles.Style].
func (s Sketch) RenderShape(buf *bytes.Buffer, sh styles.Shape) {
	path := wobbledRect(sh.X, sh.Y, sh.W, sh.H, s.Seed, sh.ID)
	switch sh.Kind {
	case styles.KindPage:
		fmt.Fprintf(buf, `  <path id="%s" d="%s" fill="#fffdf7" stroke="#333" stroke-width="1.5"/>`+"\n", sh.ID, path)
	case styles.KindFrame:
		fmt.Fprintf(buf, `  <path id="%s" d="%s" fill="none" stroke="#777" stroke-dasharray="6 4"/>`+"\n", sh.ID, path)
	case styles.KindButton, styles.KindMapNode:
		fmt.Fprintf(buf, `  <path id="%s" d="%s" fill="%s" stroke="#222" stroke-width="1.6" filter="url(#pencil)"/>`+"\n",
			sh.ID, path, greyForID(sh.ID))
	case styles.KindImage:
		fmt.Fprintf(buf, `  <g id="%s"><path d="%s" fill="#f5f5f0" stroke="#444"/>`, sh.ID, path)
		fmt.Fprintf(buf, `<path d="%s %s" fill="none" stroke="#999"/></g>`+"\n",
			curvedEdge(sh.X, sh.Y, sh.X+sh.W, sh.Y+sh.H), curvedEdge(sh.X+sh.W, sh.Y, sh.X, sh.Y+sh.H))
	case styles.KindTable:
		fmt.Fprintf(buf, `  <path id="%s" d="%s" fill="#fff" stroke="#333"/>`+"\n", sh.ID, path)
	case styles.KindHeader, styles.KindRow:
		fill := "none"
		if sh.Header {
			fill = greyForID(sh.ID)
		}
		fmt.Fprintf(buf, `  <path id="%s" d="%s" fill="%s" stroke="#888"/>`+"\n", sh.ID, path, fill)
		for _, c := range sh.Cells[min(1, len(sh.Cells)):] {
			fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="#888"/>`+"\n", curvedEdge(c.X, sh.Y, c.X, sh.Y+sh.H))
		}
	}
}

// RenderText implements [styles.Style].
func (s Sketch) RenderText(buf *bytes.Buffer, sh styles.Shape) {
	var inner bytes.Buffer
	simple := styles.Simple{}
	simple.RenderText(&inner, sh)
	if inner.Len() == 0 {
		return
	}
	rot := rotationFor(sh.ID, sh.W, sh.H)
	fmt.Fprintf(buf, `  <g transform="rotate(%.2f %.2f %.2f)">`+"\n", rot, sh.CenterX(), sh.CenterY())
	buf.Write(inner.Bytes())
	buf.WriteString("  </g>\n")
}

// RenderEdge implements [styles.Style].
func (Sketch) RenderEdge(buf *bytes.Buffer, e styles.Edge) {
	start := ""
	if e.Bidirectional {
		start = ` marker-start="url(#arrow)"`
	}
	fmt.Fprintf(buf, `  <path class="connection" d="%s" fill="none" stroke="#222" stroke-width="1.4" stroke-linecap="round" marker-end="url(#arrow)"%s/>`+"\n",
		curvedEdge(e.X1, e.Y1, e.X2, e.Y2), start)
}

// =============================================================================
// Paths
// =============================================================================

// wobbledRect returns a closed path around the rectangle whose corners and
// edge midpoints are jittered by up to wobble pixels.
func wobbledRect(x, y, w, h float64, seed uint64, id string) string {
	r := newRNG(hash(id, seed))
	j := func() float64 { return (r.next()*2 - 1) * math.Min(wobble, math.Min(w, h)/4) }

	corners := [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	var b strings.Builder
	fmt.Fprintf(&b, "M%.2f,%.2f", corners[0][0]+j(), corners[0][1]+j())
	for i := 1; i <= 4; i++ {
		from, to := corners[i-1], corners[i%4]
		mx, my := (from[0]+to[0])/2+j(), (from[1]+to[1])/2+j()
		fmt.Fprintf(&b, " Q%.2f,%.2f %.2f,%.2f", mx, my, to[0]+j(), to[1]+j())
	}
	b.WriteString(" Z")
	return b.String()
}

// curvedEdge returns a straight line for short distances and a gentle cubic
// curve otherwise.
func curvedEdge(x1, y1, x2, y2 float64) string {
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist < straightBelow {
		return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f", x1, y1, x2, y2)
	}
	bend := dist * 0.08
	nx, ny := -dy/dist*bend, dx/dist*bend
	return fmt.Sprintf("M%.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f",
		x1, y1, x1+dx/3+nx, y1+dy/3+ny, x1+2*dx/3+nx, y1+2*dy/3+ny, x2, y2)
}

// rotationFor returns a small deterministic label rotation in degrees. Wide
// boxes tilt less.
func rotationFor(id string, w, h float64) float64 {
	r := newRNG(hash(id, 7))
	damp := 1.0
	if w > 0 && h > 0 && w > 4*h {
		damp = 0.5
	}
	return (r.next()*2 - 1) * maxRotation * damp
}

// greyForID returns a light grey hex color derived from id.
func greyForID(id string) string {
	v := greyMin + int(hash(id, 0)%uint64(greyMax-greyMin+1))
	return fmt.Sprintf("#%02x%02x%02x", v, v, v)
}

// =============================================================================
// Randomness
// =============================================================================

func hash(s string, seed uint64) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64() ^ (seed * 0x9e3779b97f4a7c15)
}

// rng is a xorshift64* generator; it never reaches the zero state.
type rng struct{ state uint64 }

func newRNG(seed uint64) *rng {
	if seed == 0 {
		seed = 0x2545f4914f6cdd1d
	}
	return &rng{state: seed}
}

// next returns a value in [0, 1).
func (r *rng) next() float64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return float64((r.state*0x2545f4914f6cdd1d)>>11) / (1 << 53)
}
