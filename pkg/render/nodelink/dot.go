package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/nav"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the page key and node count to node labels.
	// When false, only the page title is shown.
	Detailed bool
}

// ToDOT converts the navigation graph of pages to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// The first page is the start page and is drawn with a bold outline.
// Mutual links are merged into one edge with arrow heads at both ends.
func ToDOT(pages []*document.Page, g *nav.Graph, opts Options) string {
	if g == nil {
		g = nav.FromEdges(nil)
	}
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for i, p := range pages {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(p, opts.Detailed))}
		if i == 0 {
			attrs = append(attrs, "penwidth=2.5")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.Key(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range g.Connections() {
		if c.Bidirectional {
			fmt.Fprintf(&buf, "  %q -> %q [dir=both];\n", c.A, c.B)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", c.A, c.B)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p *document.Page, detailed bool) string {
	if !detailed {
		return p.Title()
	}
	n := 0
	var count func(document.Node)
	count = func(node document.Node) {
		n++
		for _, c := range node.Children() {
			count(c)
		}
	}
	count(p)
	return fmt.Sprintf("%s\nkey: %s\nnodes: %d", p.Title(), p.Key(), n)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	data, err := renderFormat(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
