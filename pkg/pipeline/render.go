package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/nav"
	"github.com/matzehuels/uxl/pkg/render/nodelink"
	"github.com/matzehuels/uxl/pkg/render/wireframe"
	"github.com/matzehuels/uxl/pkg/wire"
)

// RenderLayouts draws page layouts in each requested format. SVG and PNG show
// the first layout, PDF gets one page per layout, and JSON is a single layout
// or an array when several pages were laid out.
func RenderLayouts(layouts []wire.Layout, opts Options) (map[string][]byte, error) {
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts to render")
	}
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = wireframe.RenderSVG(layouts[0], svgOpts...)
		case FormatPNG:
			data, err = wireframe.RenderPNG(layouts[0], wireframe.WithScale(opts.PNGScale))
		case FormatPDF:
			data, err = wireframe.RenderBookPDF(layouts)
		case FormatJSON:
			if len(layouts) == 1 {
				data, err = wire.MarshalLayout(layouts[0])
			} else {
				data, err = json.MarshalIndent(layouts, "", "  ")
			}
		default:
			return nil, fmt.Errorf("unsupported wireframe format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderMap draws the navigation map in each requested format.
func RenderMap(m wire.Map, opts Options) (map[string][]byte, error) {
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = wireframe.RenderMapSVG(m, svgOpts...)
		case FormatPNG:
			data, err = wireframe.RenderMapPNG(m, wireframe.WithScale(opts.PNGScale))
		case FormatPDF:
			data, err = wireframe.RenderMapPDF(m)
		case FormatJSON:
			data, err = wire.MarshalMap(m)
		default:
			return nil, fmt.Errorf("unsupported map format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderNodelink draws the navigation graph of doc with Graphviz.
func RenderNodelink(doc *document.Document, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(doc.Pages, nav.FromEdges(doc.Edges), nodelink.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot)
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) ([]wireframe.SVGOption, error) {
	style, err := wireframe.StyleByName(opts.Style, opts.Seed)
	if err != nil {
		return nil, err
	}
	svgOpts := []wireframe.SVGOption{wireframe.WithStyle(style)}
	if opts.Links {
		svgOpts = append(svgOpts, wireframe.WithLinks())
	}
	return svgOpts, nil
}
