// Package nodelink renders the navigation graph as a node-link diagram.
//
// # Overview
//
// Pages appear as boxes and GOTO links as arrows, laid out left to right by
// Graphviz. It is an alternative to the wireframe map, which places page
// thumbnails in columns by navigation depth.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc.Pages, g, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//	png, err := nodelink.RenderPNG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG] or [RenderPNG]
//   - Saved and processed with external Graphviz tools
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
