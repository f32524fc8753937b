package pipeline

import (
	"github.com/matzehuels/uxl/pkg/document"
	uxlerrors "github.com/matzehuels/uxl/pkg/errors"
	"github.com/matzehuels/uxl/pkg/parser"
	"github.com/matzehuels/uxl/pkg/suggest"
)

// Parse parses the source with the parser settings of opts. Failures are
// *errors.ParseError values.
func Parse(opts Options) (*document.Document, error) {
	return parser.Parse(opts.Source, opts.ParserOptions())
}

// SelectPages returns the page named by page, or every page when page is
// empty. Unknown names fail with a suggestion for the closest page id.
func SelectPages(doc *document.Document, page string) ([]*document.Page, error) {
	if page == "" {
		return doc.Pages, nil
	}
	p, ok := doc.Page(page)
	if !ok {
		return nil, uxlerrors.New(uxlerrors.ErrCodePageNotFound,
			"page %q not found%s", page, suggest.Hint(document.NormalizeID(page), doc.PageIDs()))
	}
	return []*document.Page{p}, nil
}
