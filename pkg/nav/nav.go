// Package nav builds the navigation graph of a UXL document.
//
// # Overview
//
// Every node carrying a [document.Goto] action contributes a directed edge from
// its nearest enclosing page to the action's target page. Edges are keyed by the
// ordered (from, to) pair, so repeated identical transitions collapse into one
// edge. Edge order is the order of first discovery in a depth-first walk of the
// document.
//
// Tables never contribute edges; their actions are rejected or dropped by the
// parser depending on the parse mode.
//
// # Target Resolution
//
// Targets are compared case-insensitively against page ids. For compatibility
// with the older "GOTO:P<id>" spelling, a target that does not match any page
// but whose remainder after a leading "p" does is resolved to that remainder.
//
// # Connections
//
// [Graph.Connections] merges an edge and its reverse into a single
// bidirectional [Connection], which is what map renderers draw.
package nav

import (
	"fmt"
	"strings"

	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/suggest"
)

// UnresolvedTargetError reports a GOTO target that matches no page.
type UnresolvedTargetError struct {
	Target     string        // Normalized target id
	Node       document.Node // Node carrying the action
	Suggestion string        // Closest existing page id, if any
}

// Error implements the error interface.
func (e *UnresolvedTargetError) Error() string {
	msg := fmt.Sprintf("GOTO target %q does not match any page", e.Target)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Connection is an undirected view of one or two edges between pages.
// A is the source of the first discovered edge.
type Connection struct {
	A, B          string
	Bidirectional bool
}

// Graph is the deduplicated navigation edge set of a document.
// The zero value is an empty graph; use [Build] or [FromEdges].
type Graph struct {
	edges []document.Edge
	set   map[document.Edge]struct{}
	out   map[string][]string
	in    map[string][]string
}

// FromEdges builds a graph from an edge list, dropping duplicates.
func FromEdges(edges []document.Edge) *Graph {
	g := &Graph{}
	for _, e := range edges {
		g.add(e)
	}
	return g
}

func (g *Graph) add(e document.Edge) bool {
	if g.set == nil {
		g.set = make(map[document.Edge]struct{})
		g.out = make(map[string][]string)
		g.in = make(map[string][]string)
	}
	if _, dup := g.set[e]; dup {
		return false
	}
	g.set[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.out[e.From] = append(g.out[e.From], e.To)
	g.in[e.To] = append(g.in[e.To], e.From)
	return true
}

// Build walks doc and collects its navigation edges. It fails with an
// *UnresolvedTargetError for the first target (in discovery order) that matches
// no page.
func Build(doc *document.Document) (*Graph, error) {
	g := &Graph{}
	var unresolved *UnresolvedTargetError

	doc.Walk(func(n document.Node) bool {
		if _, isTable := n.(*document.Table); isTable {
			return true
		}
		target := document.GotoTarget(document.ActionOf(n))
		if target == "" {
			return true
		}
		page, ok := Resolve(doc, target)
		if !ok {
			unresolved = &UnresolvedTargetError{
				Target:     target,
				Node:       n,
				Suggestion: suggest.Closest(target, doc.PageIDs()),
			}
			return false
		}
		from := doc.EnclosingPage(n)
		g.add(document.Edge{From: from.Key(), To: page.Key()})
		return true
	})

	if unresolved != nil {
		return nil, unresolved
	}
	return g, nil
}

// Resolve finds the page a GOTO target refers to, accepting the legacy
// "P<id>" spelling when the plain target matches nothing.
func Resolve(doc *document.Document, target string) (*document.Page, bool) {
	key := document.NormalizeID(target)
	if key == "" || strings.HasPrefix(key, "#") {
		return nil, false
	}
	if p, ok := doc.Page(key); ok {
		return p, true
	}
	if len(key) > 1 && key[0] == 'p' {
		return doc.Page(key[1:])
	}
	return nil, false
}

// Edges returns the edges in discovery order.
func (g *Graph) Edges() []document.Edge {
	out := make([]document.Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Len returns the number of edges.
func (g *Graph) Len() int { return len(g.edges) }

// Has reports whether the edge from -> to exists.
func (g *Graph) Has(from, to string) bool {
	_, ok := g.set[document.Edge{From: from, To: to}]
	return ok
}

// Successors returns the pages reachable in one step from key.
func (g *Graph) Successors(key string) []string { return g.out[key] }

// Predecessors returns the pages with an edge into key.
func (g *Graph) Predecessors(key string) []string { return g.in[key] }

// Connections merges each edge with its reverse, if present, into a single
// bidirectional connection. Order follows the first edge of each pair.
func (g *Graph) Connections() []Connection {
	seen := make(map[document.Edge]bool, len(g.edges))
	var out []Connection
	for _, e := range g.edges {
		if seen[e] {
			continue
		}
		seen[e] = true
		rev := document.Edge{From: e.To, To: e.From}
		bidi := e.From != e.To && g.Has(rev.From, rev.To)
		if bidi {
			seen[rev] = true
		}
		out = append(out, Connection{A: e.From, B: e.To, Bidirectional: bidi})
	}
	return out
}
