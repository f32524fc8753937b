package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/uxl/pkg/document"
	uxlerrors "github.com/matzehuels/uxl/pkg/errors"
	"github.com/matzehuels/uxl/pkg/nav"
	"github.com/matzehuels/uxl/pkg/suggest"
)

// parser holds the state of one Parse call.
type parser struct {
	opts  Options
	lines []string
}

// Parse turns UXL text into a validated document with its navigation edges.
// Any failure returns a *errors.ParseError and no document.
func Parse(text string, opts Options) (*document.Document, error) {
	p := &parser{opts: opts, lines: splitLines(text)}
	return p.parse()
}

// ParseFile reads and parses a UXL file. The path is used as the source name
// when opts.SourceName is empty.
func ParseFile(path string, opts Options) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, uxlerrors.Wrap(uxlerrors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, uxlerrors.Wrap(uxlerrors.ErrCodeInvalidInput, err, "read %s", path)
	}
	if opts.SourceName == "" {
		opts.SourceName = path
	}
	return Parse(string(data), opts)
}

func (p *parser) parse() (*document.Document, error) {
	version, canvas := document.DefaultVersion, document.DefaultCanvas

	i := p.skip(0)
	if i < len(p.lines) && isVersionLine(p.lines[i]) {
		if err := p.checkTabs(i+1, p.lines[i]); err != nil {
			return nil, err
		}
		v, err := p.parseVersion(i+1, p.lines[i])
		if err != nil {
			return nil, err
		}
		version = v
		i = p.skip(i + 1)
	}
	if i < len(p.lines) && isCanvasLine(p.lines[i]) {
		if err := p.checkTabs(i+1, p.lines[i]); err != nil {
			return nil, err
		}
		c, err := p.parseCanvas(i+1, p.lines[i])
		if err != nil {
			return nil, err
		}
		canvas = c
		i++
	}

	recs, err := p.parseBody(i)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, p.errorf(0, 0, "document must contain at least one page (P)")
	}

	pages, err := p.buildTree(recs)
	if err != nil {
		return nil, err
	}

	doc := document.Build(version, p.opts.SourceName, canvas, pages)
	g, err := nav.Build(doc)
	if err != nil {
		var ute *nav.UnresolvedTargetError
		if errors.As(err, &ute) {
			line := ute.Node.Info().Line
			return nil, p.errorf(line, gotoColumn(p.lineText(line)), "%s", ute.Error())
		}
		return nil, err
	}
	doc.Edges = g.Edges()
	return doc, nil
}

// parseBody parses every tag line from index start on.
func (p *parser) parseBody(start int) ([]*record, error) {
	var recs []*record
	prevIndent := -2
	for i := start; i < len(p.lines); i++ {
		line, num := p.lines[i], i+1
		if isBlank(line) || isComment(line) {
			continue
		}
		if err := p.checkTabs(num, line); err != nil {
			return nil, err
		}

		indent := indentation(line)
		if indent%2 != 0 {
			return nil, p.errorf(num, indent+1, "indentation must be a multiple of 2 spaces (found %d)", indent)
		}
		if indent > prevIndent+2 {
			if prevIndent < 0 {
				return nil, p.errorf(num, indent+1, "first element must not be indented")
			}
			return nil, p.errorf(num, indent+1, "indentation jumps more than one level (from %d to %d spaces)", prevIndent, indent)
		}

		fields, serr := splitFields(line, indent)
		if serr != nil {
			return nil, p.errorf(num, runeCol(line, serr.offset), "%s", serr.msg)
		}
		rec, err := p.parseTagLine(num, indent, fields)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
		prevIndent = indent
	}
	return recs, nil
}

// skip returns the index of the first significant line at or after i.
func (p *parser) skip(i int) int {
	for i < len(p.lines) && (isBlank(p.lines[i]) || isComment(p.lines[i])) {
		i++
	}
	return i
}

func (p *parser) checkTabs(num int, line string) error {
	if idx := strings.IndexByte(line, '\t'); idx >= 0 {
		return p.errorf(num, runeCol(line, idx), "tab characters are not allowed (indent with 2 spaces)")
	}
	return nil
}

func (p *parser) lineText(num int) string {
	if num < 1 || num > len(p.lines) {
		return ""
	}
	return p.lines[num-1]
}

// errorf builds a positioned parse error for a 1-based line and column.
func (p *parser) errorf(line, col int, format string, args ...any) error {
	return &uxlerrors.ParseError{
		Message:  fmt.Sprintf(format, args...),
		Source:   p.opts.SourceName,
		Line:     line,
		Col:      col,
		LineText: p.lineText(line),
	}
}

// tagHint suggests a known tag for a misspelled one.
func tagHint(name string) string {
	return suggest.Hint(name, document.Tags())
}
