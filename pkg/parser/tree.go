package parser

import (
	"strings"

	"github.com/matzehuels/uxl/pkg/columns"
	"github.com/matzehuels/uxl/pkg/document"
	uxlerrors "github.com/matzehuels/uxl/pkg/errors"
)

// item is a record with the children nested under it by indentation.
type item struct {
	rec      *record
	children []*item
}

// containerTags lists the tags allowed inside pages and frames.
var containerTags = map[string]bool{"F": true, "B": true, "C": true, "T": true, "I": true}

// buildTree nests records by indentation and validates the resulting forest.
func (p *parser) buildTree(recs []*record) ([]*document.Page, error) {
	type entry struct {
		indent int
		it     *item
	}
	var (
		roots []*item
		stack []entry
	)
	for _, r := range recs {
		it := &item{rec: r}
		for len(stack) > 0 && stack[len(stack)-1].indent >= r.indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, it)
		} else {
			parent := stack[len(stack)-1].it
			parent.children = append(parent.children, it)
		}
		stack = append(stack, entry{indent: r.indent, it: it})
	}

	for _, root := range roots {
		if root.rec.tag != "P" {
			return nil, p.errorf(root.rec.line, root.rec.indent+1, "top-level element must be a page (P), found %s", root.rec.tag)
		}
	}

	ids := make(map[string]int)
	pages := make([]*document.Page, 0, len(roots))
	for _, root := range roots {
		if err := p.validate(root, ids); err != nil {
			return nil, err
		}
		pages = append(pages, root.rec.node.(*document.Page))
	}
	return pages, nil
}

// validate checks one node's children and kind-specific rules, then attaches
// the children to the node.
func (p *parser) validate(it *item, ids map[string]int) error {
	r := it.rec
	switch n := r.node.(type) {
	case *document.Page:
		if n.PageID != "" {
			if err := uxlerrors.ValidatePageID(n.PageID); err != nil {
				return p.errorf(r.line, r.idCol, "invalid page id %q: only letters, digits, '_' and '-' are allowed", n.PageID)
			}
			key := document.NormalizeID(n.PageID)
			if first, dup := ids[key]; dup {
				return p.errorf(r.line, r.idCol, "duplicate page id %q (first defined on line %d)", n.PageID, first)
			}
			ids[key] = r.line
		}
		children, err := p.containerChildren(it, ids)
		if err != nil {
			return err
		}
		n.Nodes = children

	case *document.Frame:
		children, err := p.containerChildren(it, ids)
		if err != nil {
			return err
		}
		n.Nodes = children

	case *document.Table:
		return p.validateTable(it, n)

	case *document.Button, *document.Caption, *document.Image, *document.TableHeader, *document.TableRow:
		if len(it.children) > 0 {
			c := it.children[0].rec
			return p.errorf(c.line, c.indent+1, "tag %s cannot have children (found %s)", r.tag, c.tag)
		}
	}
	return nil
}

func (p *parser) containerChildren(it *item, ids map[string]int) ([]document.Node, error) {
	nodes := make([]document.Node, 0, len(it.children))
	for _, c := range it.children {
		if !containerTags[c.rec.tag] {
			return nil, p.errorf(c.rec.line, c.rec.indent+1, "tag %s cannot be a child of %s (allowed: F, B, C, T, I)", c.rec.tag, it.rec.tag)
		}
		if err := p.validate(c, ids); err != nil {
			return nil, err
		}
		nodes = append(nodes, c.rec.node)
	}
	return nodes, nil
}

func (p *parser) validateTable(it *item, t *document.Table) error {
	r := it.rec
	cols, err := columns.ParseAndNormalize(r.columns)
	if err != nil {
		return p.errorf(r.line, r.columnsCol, "invalid columns field %q on tag T: %v; expected format: %s (example: %s)",
			"COLS:"+r.columns, err, tagSpecs["T"].format, tagSpecs["T"].example)
	}
	t.Columns = cols

	for _, c := range it.children {
		cr := c.rec
		if len(c.children) > 0 {
			gc := c.children[0].rec
			return p.errorf(gc.line, gc.indent+1, "tag %s cannot have children (found %s)", cr.tag, gc.tag)
		}
		var cells []string
		switch row := cr.node.(type) {
		case *document.TableHeader:
			if t.Header != nil {
				return p.errorf(cr.line, cr.indent+1, "table already has a header row (TH) on line %d", t.Header.Line)
			}
			if len(t.Rows) > 0 {
				return p.errorf(cr.line, cr.indent+1, "table header (TH) must precede all rows (TD)")
			}
			t.Header, cells = row, row.Cells
		case *document.TableRow:
			t.Rows, cells = append(t.Rows, row), row.Cells
		default:
			return p.errorf(cr.line, cr.indent+1, "tag %s cannot be a child of T (allowed: TH, TD)", cr.tag)
		}
		if len(cells) != len(cols) {
			return p.errorf(cr.line, cr.indent+1, "%s row has %d %s but the table has %d %s",
				cr.tag, len(cells), plural(len(cells), "cell"), len(cols), plural(len(cols), "column"))
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// gotoColumn locates the GOTO field of a line for diagnostics.
func gotoColumn(line string) int {
	idx := strings.Index(strings.ToUpper(line), "GOTO:")
	if idx < 0 {
		return 0
	}
	return runeCol(line, idx)
}
