package wireframe

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/matzehuels/uxl/pkg/wire"
)

// DefaultPNGScale renders one layout pixel as two image pixels.
const DefaultPNGScale = 2.0

type pngConfig struct {
	scale float64
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngConfig)

// WithScale sets the pixel density multiplier. Non-positive values are
// ignored.
func WithScale(scale float64) PNGOption {
	return func(c *pngConfig) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// RenderPNG rasterizes a page layout.
func RenderPNG(l wire.Layout, opts ...PNGOption) ([]byte, error) {
	c, err := newCanvas(l.Width, l.Height, func(p *painter) {
		p.rect(0, 0, l.Width, l.Height, 0, canvas.White, colorNone, 0)
		p.drawLayout(l)
	})
	if err != nil {
		return nil, err
	}
	return encodePNG(c, opts)
}

// RenderMapPNG rasterizes a navigation map.
func RenderMapPNG(m wire.Map, opts ...PNGOption) ([]byte, error) {
	w, h := m.Width+2*mapMargin, m.Height+2*mapMargin
	c, err := newCanvas(w, h, func(p *painter) {
		p.rect(0, 0, w, h, 0, canvas.White, colorNone, 0)
		p.drawMap(m)
	})
	if err != nil {
		return nil, err
	}
	return encodePNG(c, opts)
}

func encodePNG(c *canvas.Canvas, opts []PNGOption) ([]byte, error) {
	cfg := pngConfig{scale: DefaultPNGScale}
	for _, opt := range opts {
		opt(&cfg)
	}
	img := rasterizer.Draw(c, canvas.DPMM(cfg.scale/pxToMM), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
