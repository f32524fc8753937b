package wireframe

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/uxl/pkg/fonts"
	"github.com/matzehuels/uxl/pkg/render/wireframe/styles"
	"github.com/matzehuels/uxl/pkg/wire"
)

// pxToMM converts CSS pixels (96 per inch) to canvas millimetres.
const pxToMM = 25.4 / 96

// ptPerPx converts CSS pixels to font points.
const ptPerPx = 0.75

var (
	fontOnce   sync.Once
	fontFamily *canvas.FontFamily
	fontErr    error
)

// family loads the embedded font once.
func family() (*canvas.FontFamily, error) {
	fontOnce.Do(func() {
		f := canvas.NewFontFamily("uxl")
		if err := f.LoadFont(fonts.Regular(), 0, canvas.FontRegular); err != nil {
			fontErr = fmt.Errorf("load font: %w", err)
			return
		}
		if err := f.LoadFont(fonts.Bold(), 0, canvas.FontBold); err != nil {
			fontErr = fmt.Errorf("load font: %w", err)
			return
		}
		fontFamily = f
	})
	return fontFamily, fontErr
}

// painter draws wire types onto a canvas in pixel coordinates with the
// origin at the top left.
type painter struct {
	ctx    *canvas.Context
	family *canvas.FontFamily
}

// newCanvas creates a canvas of w x h pixels and runs draw on it.
func newCanvas(w, h float64, draw func(p *painter)) (*canvas.Canvas, error) {
	f, err := family()
	if err != nil {
		return nil, err
	}
	c := canvas.New(w*pxToMM, h*pxToMM)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	draw(&painter{ctx: ctx, family: f})
	return c, nil
}

var (
	colorInk    = canvas.Hex("#222222")
	colorLine   = canvas.Hex("#888888")
	colorFaint  = canvas.Hex("#bbbbbb")
	colorButton = canvas.Hex("#e6e6e6")
	colorHeader = canvas.Hex("#eeeeee")
	colorImage  = canvas.Hex("#f2f2f2")
	colorNone   = color.RGBA{}
)

func (p *painter) rect(x, y, w, h, r float64, fill, stroke color.Color, width float64) {
	p.ctx.SetFillColor(fill)
	p.ctx.SetStrokeColor(stroke)
	p.ctx.SetStrokeWidth(width * pxToMM)
	path := canvas.Rectangle(w*pxToMM, h*pxToMM)
	if r > 0 {
		path = canvas.RoundedRectangle(w*pxToMM, h*pxToMM, math.Min(r, math.Min(w, h)/2)*pxToMM)
	}
	p.ctx.DrawPath(x*pxToMM, y*pxToMM, path)
}

func (p *painter) line(x1, y1, x2, y2 float64, stroke color.Color, width float64) {
	p.ctx.SetFillColor(colorNone)
	p.ctx.SetStrokeColor(stroke)
	p.ctx.SetStrokeWidth(width * pxToMM)
	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo((x2-x1)*pxToMM, (y2-y1)*pxToMM)
	p.ctx.DrawPath(x1*pxToMM, y1*pxToMM, path)
}

// arrow draws a filled arrow head at (x2, y2) pointing away from (x1, y1).
func (p *painter) arrow(x1, y1, x2, y2 float64) {
	const size = 8.0
	angle := math.Atan2(y2-y1, x2-x1)
	lx := x2 - size*math.Cos(angle-math.Pi/7)
	ly := y2 - size*math.Sin(angle-math.Pi/7)
	rx := x2 - size*math.Cos(angle+math.Pi/7)
	ry := y2 - size*math.Sin(angle+math.Pi/7)

	p.ctx.SetFillColor(colorInk)
	p.ctx.SetStrokeColor(colorNone)
	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo((lx-x2)*pxToMM, (ly-y2)*pxToMM)
	path.LineTo((rx-x2)*pxToMM, (ry-y2)*pxToMM)
	path.Close()
	p.ctx.DrawPath(x2*pxToMM, y2*pxToMM, path)
}

// text draws a single line vertically centered on cy. Align is "L", "R" or
// "C" within [x, x+w].
func (p *painter) text(s string, x, w, cy, sizePx float64, align string, bold bool) {
	if s == "" {
		return
	}
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}
	face := p.family.Face(sizePx*ptPerPx, colorInk, style, canvas.FontNormal)

	var ax float64
	var ta canvas.TextAlign
	switch align {
	case "L":
		ta, ax = canvas.Left, x+4
	case "R":
		ta, ax = canvas.Right, x+w-4
	default:
		ta, ax = canvas.Center, x+w/2
	}
	m := face.Metrics()
	baseline := cy*pxToMM + (m.Ascent-m.Descent)/2
	p.ctx.DrawText(ax*pxToMM, baseline, canvas.NewTextLine(face, s, ta))
}

// =============================================================================
// Layout and map drawing
// =============================================================================

func (p *painter) drawLayout(l wire.Layout) {
	for _, b := range l.Boxes {
		p.drawBox(b)
	}
}

func (p *painter) drawBox(b wire.Box) {
	switch b.Kind {
	case styles.KindPage:
		p.rect(b.X, b.Y, b.W, b.H, 0, canvas.White, colorLine, 1)
	case styles.KindFrame:
		p.rect(b.X, b.Y, b.W, b.H, 0, colorNone, colorFaint, 1)
	case styles.KindButton:
		p.rect(b.X, b.Y, b.W, b.H, float64(b.Radius), colorButton, colorInk, 1)
		x, w := b.X, b.W
		if b.Icon != "" {
			size := float64(b.IconSize)
			if size <= 0 {
				size = 16
			}
			cx := b.X + b.W/2
			if b.Label != "" {
				cx = b.X + 4 + size/2
				x, w = b.X+size+4, b.W-size-4
			}
			p.ctx.SetFillColor(colorNone)
			p.ctx.SetStrokeColor(colorInk)
			p.ctx.SetStrokeWidth(pxToMM)
			r := size/2 - 1
			p.ctx.DrawPath(cx*pxToMM, (b.Y+b.H/2)*pxToMM, canvas.Circle(r*pxToMM))
		}
		p.text(b.Label, x, w, b.Y+b.H/2, fontPx(w, b.H, b.Label), "C", false)
	case styles.KindCaption:
		p.text(b.Label, b.X, b.W, b.Y+b.H/2, fontPx(b.W, b.H, b.Label), "C", false)
	case styles.KindImage:
		p.rect(b.X, b.Y, b.W, b.H, float64(b.Radius), colorImage, colorLine, 1)
		p.line(b.X, b.Y, b.X+b.W, b.Y+b.H, colorFaint, 1)
		p.line(b.X+b.W, b.Y, b.X, b.Y+b.H, colorFaint, 1)
	case styles.KindTable:
		p.rect(b.X, b.Y, b.W, b.H, 0, canvas.White, colorLine, 1)
	case styles.KindHeader, styles.KindRow:
		fill := color.Color(colorNone)
		if b.Header {
			fill = colorHeader
		}
		p.rect(b.X, b.Y, b.W, b.H, 0, fill, colorFaint, 1)
		for i, c := range cellsFor(b) {
			if i > 0 {
				p.line(c.X, b.Y, c.X, b.Y+b.H, colorFaint, 1)
			}
			p.text(c.Text, c.X, c.W, b.Y+b.H/2, fontPx(c.W, b.H, c.Text), c.Align, b.Header)
		}
	}
}

func (p *painter) drawMap(m wire.Map) {
	for _, e := range mapEdges(m) {
		p.line(e.X1, e.Y1, e.X2, e.Y2, colorInk, 1.5)
		p.arrow(e.X1, e.Y1, e.X2, e.Y2)
		if e.Bidirectional {
			p.arrow(e.X2, e.Y2, e.X1, e.Y1)
		}
	}
	for _, n := range m.Nodes {
		s := mapShape(n)
		width := 1.5
		if n.Start {
			width = 3
		}
		p.rect(s.X, s.Y, s.W, s.H, 6, canvas.Hex("#fafafa"), colorInk, width)
		p.text(s.Label, s.X, s.W, s.CenterY(), math.Min(12, fontPx(s.W, s.H, s.Label)), "C", n.Start)
	}
}

// fontPx matches the SVG font sizing so all outputs agree.
func fontPx(w, h float64, text string) float64 {
	return styles.FontSize(w, h, len([]rune(text)))
}
