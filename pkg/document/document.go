package document

import (
	"strconv"
	"strings"
)

// DefaultVersion is the format version assumed when a document has no
// version line.
const DefaultVersion = "1.0"

// Document is the validated result of parsing UXL text.
//
// The zero value is an empty document; use [Build] to create one from pages.
type Document struct {
	Version string  // Format version, e.g. "1.0"
	Source  string  // Diagnostic source label
	Canvas  Canvas  // Target canvas
	Pages   []*Page // Roots in document order
	Edges   []Edge  // Deduplicated navigation edges in discovery order

	nodes []Node           // arena, index = id-1
	index map[string]*Page // normalized id -> page
}

// Build assigns node ids depth-first, records parent and page back references
// and indexes pages by normalized id. The pages must already be structurally
// valid; Build does not check tag legality or id uniqueness (a later duplicate
// id shadows nothing, the first page wins).
func Build(version, source string, canvas Canvas, pages []*Page) *Document {
	d := &Document{
		Version: version,
		Source:  source,
		Canvas:  canvas,
		Pages:   pages,
		index:   make(map[string]*Page, len(pages)),
	}
	for i, p := range pages {
		p.ordinal = i + 1
		d.assign(p, 0, 0)
		if p.PageID != "" {
			key := normalizeID(p.PageID)
			if _, dup := d.index[key]; !dup {
				d.index[key] = p
			}
		}
	}
	return d
}

func (d *Document) assign(n Node, parent, page NodeID) {
	info := n.Info()
	d.nodes = append(d.nodes, n)
	info.ID = NodeID(len(d.nodes))
	info.Parent = parent
	if _, ok := n.(*Page); ok {
		page = info.ID
	}
	info.Page = page
	for _, c := range n.Children() {
		d.assign(c, info.ID, page)
	}
}

// Node returns the node with the given id.
func (d *Document) Node(id NodeID) (Node, bool) {
	if id <= 0 || int(id) > len(d.nodes) {
		return nil, false
	}
	return d.nodes[id-1], true
}

// Parent returns the parent of n, or nil for pages.
func (d *Document) Parent(n Node) Node {
	p, _ := d.Node(n.Info().Parent)
	return p
}

// EnclosingPage returns the nearest page containing n (n itself for pages).
func (d *Document) EnclosingPage(n Node) *Page {
	p, ok := d.Node(n.Info().Page)
	if !ok {
		return nil
	}
	page, _ := p.(*Page)
	return page
}

// Page looks up a page by id, case-insensitively. Keys of id-less pages
// ("#n") are accepted too.
func (d *Document) Page(id string) (*Page, bool) {
	key := normalizeID(id)
	if p, ok := d.index[key]; ok {
		return p, true
	}
	if strings.HasPrefix(key, "#") {
		if n, err := strconv.Atoi(key[1:]); err == nil && n >= 1 && n <= len(d.Pages) {
			return d.Pages[n-1], true
		}
	}
	return nil, false
}

// PageIDs returns the normalized ids of all identified pages in document order.
func (d *Document) PageIDs() []string {
	ids := make([]string, 0, len(d.index))
	for _, p := range d.Pages {
		if p.PageID != "" {
			ids = append(ids, normalizeID(p.PageID))
		}
	}
	return ids
}

// NodeCount returns the number of nodes in the document.
func (d *Document) NodeCount() int { return len(d.nodes) }

// Walk visits every node in id order (depth-first pre-order). Returning false
// from fn stops the walk.
func (d *Document) Walk(fn func(Node) bool) {
	for _, n := range d.nodes {
		if !fn(n) {
			return
		}
	}
}

// NormalizeID trims and lower-cases a page id or GOTO target.
func NormalizeID(id string) string { return normalizeID(id) }

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func itoa(n int) string { return strconv.Itoa(n) }
