// Package wireframe draws laid-out pages and navigation maps.
//
// # Overview
//
// Renderers work from the wire types alone ([wire.Layout] for one page,
// [wire.Map] for the navigation map), so cached layouts can be drawn without
// the source document.
//
//	svg := wireframe.RenderSVG(l, wireframe.WithStyle(sketch.New(0)))
//	pdf, err := wireframe.RenderPDF(l)
//	png, err := wireframe.RenderPNG(l, wireframe.WithScale(2))
//
// # Styles
//
// SVG output delegates shapes and text to a [styles.Style]: "simple" draws
// flat grey boxes and "sketch" a hand-drawn look. PDF and PNG output are
// drawn with github.com/tdewolff/canvas in a flat style and do not need any
// external converter.
//
// # Clipping
//
// Containers whose content was cropped or scrolled clip their children to
// their own box in SVG output.
package wireframe
