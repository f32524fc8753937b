// Package wire provides the serialization types for parsed documents,
// page layouts and navigation maps.
//
// This package defines the canonical wire format for UXL data, used for JSON
// files, API responses, caching and renderers:
//
//   - [Document]: the parsed node tree with its navigation edges
//   - [Layout]: the boxes of one page on its canvas, ready to draw
//   - [Map]: the navigation map of all pages
//
// Renderers work from [Layout] and [Map] alone, so a cached layout can be
// drawn again without reparsing the source.
//
// # Layout Serialization
//
// Layouts are discriminated by VizType:
//
//	l, _ := wire.UnmarshalLayout(data)
//	for _, b := range l.Boxes {
//	    fmt.Println(b.Kind, b.X, b.Y, b.W, b.H)
//	}
//
// Boxes are listed in document pre-order, which is also paint order: a
// container precedes everything drawn inside it.
//
// # Concurrency
//
// All functions are safe for concurrent use.
package wire
