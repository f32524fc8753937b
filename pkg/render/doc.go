// Package render groups the output renderers.
//
// # Wireframes
//
// The [wireframe] subpackage draws laid-out pages and the navigation map as
// SVG, PDF or PNG. SVG output supports the "simple" and "sketch" styles.
//
//	svg := wireframe.RenderSVG(l, wireframe.WithLinks())
//	pdf, err := wireframe.RenderPDF(l)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the navigation graph with Graphviz.
//
//	dot := nodelink.ToDOT(doc.Pages, g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [wireframe]: github.com/matzehuels/uxl/pkg/render/wireframe
// [nodelink]: github.com/matzehuels/uxl/pkg/render/nodelink
package render
