// Package document defines the typed tree produced by parsing UXL text.
//
// # Overview
//
// A UXL [Document] is an ordered list of [Page] roots. Each page owns a tree of
// nodes drawn from a closed set of kinds:
//
//   - [Page]: a screen of the prototype, optionally identified by an id
//   - [Frame]: a sized, aligned container with optional background image
//   - [Button]: a caption and/or icon with an optional [Goto] action
//   - [Caption]: a line of text
//   - [Image]: an image reference with a fit mode
//   - [Table]: a column specification with an optional [TableHeader] and [TableRow]s
//
// Node is a closed sum type. Code that needs to handle every kind switches on
// the concrete type:
//
//	switch n := node.(type) {
//	case *document.Frame:
//	    ...
//	case *document.Button:
//	    ...
//	}
//
// # Identifiers and Back References
//
// Every node carries a [NodeInfo] with a [NodeID] assigned once, depth-first, by
// [Build]. Ids start at 1 and are deterministic for a given input. Parents own
// their children; the parent and nearest enclosing page are stored as ids and
// resolved in O(1) through [Document.Node], [Document.Parent] and
// [Document.EnclosingPage].
//
// # Immutability
//
// A Document is built once by the parser and never mutated afterwards. Layout
// results are derived, disposable structures keyed by [NodeID] and live in the
// layout package. Concurrent readers of one Document are safe.
package document
