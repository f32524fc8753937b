// Package navmap arranges the pages of a document as a navigation map.
//
// # Columns
//
// The first page sits in column 0. Every page reachable through GOTO edges
// takes the column of its shortest path from the first page; pages that
// cannot be reached fall back to column 0. Inside a column pages keep their
// document order and stack top to bottom.
//
//	m := navmap.Build(doc.Pages, g, navmap.Options{})
//	for _, key := range m.Order {
//	    p := m.Nodes[key]
//	    fmt.Println(key, p.Column, p.Row, p.X, p.Y)
//	}
//
// # Connections
//
// [Map.Connections] lists one entry per linked page pair. An edge and its
// reverse merge into a single bidirectional connection.
//
// Edge routing is left to renderers.
package navmap
