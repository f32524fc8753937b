package navmap

import (
	"math"

	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/nav"
)

// Defaults for [Options].
const (
	DefaultColumnGap = 80.0
	DefaultRowGap    = 40.0
	DefaultScale     = 0.25
)

// Options configures [Build].
type Options struct {
	Canvas    document.Canvas // Thumbnail source for the default Measure
	ColumnGap float64         // Horizontal gap between columns; zero uses DefaultColumnGap
	RowGap    float64         // Vertical gap between pages in a column; zero uses DefaultRowGap

	// Measure returns the map size of a page. Nil scales Canvas by
	// DefaultScale.
	Measure func(p *document.Page) (w, h float64)
}

// Placement is the position of one page on the map.
type Placement struct {
	Column int     `json:"column"`
	Row    int     `json:"row"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
}

// Map is a laid-out navigation map keyed by page key.
type Map struct {
	Nodes       map[string]Placement
	Order       []string // Page keys in document order
	Columns     [][]string
	Connections []nav.Connection
	Width       float64
	Height      float64
}

// Depths returns the BFS depth of every page from the first page. Pages the
// first page cannot reach get depth 0.
func Depths(pages []*document.Page, g *nav.Graph) map[string]int {
	depth := make(map[string]int, len(pages))
	if len(pages) == 0 {
		return depth
	}
	known := make(map[string]bool, len(pages))
	for _, p := range pages {
		known[p.Key()] = true
	}

	root := pages[0].Key()
	depth[root] = 0
	queue := []string{root}
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		for _, next := range g.Successors(key) {
			if _, seen := depth[next]; seen || !known[next] {
				continue
			}
			depth[next] = depth[key] + 1
			queue = append(queue, next)
		}
	}
	for _, p := range pages {
		if _, ok := depth[p.Key()]; !ok {
			depth[p.Key()] = 0
		}
	}
	return depth
}

// Build lays out pages in depth columns.
func Build(pages []*document.Page, g *nav.Graph, opts Options) *Map {
	opts = withDefaults(opts)
	if g == nil {
		g = nav.FromEdges(nil)
	}
	depth := Depths(pages, g)

	m := &Map{
		Nodes:       make(map[string]Placement, len(pages)),
		Order:       make([]string, 0, len(pages)),
		Connections: g.Connections(),
	}

	sizes := make(map[string][2]float64, len(pages))
	for _, p := range pages {
		key := p.Key()
		d := depth[key]
		for len(m.Columns) <= d {
			m.Columns = append(m.Columns, nil)
		}
		m.Columns[d] = append(m.Columns[d], key)
		m.Order = append(m.Order, key)
		w, h := opts.Measure(p)
		sizes[key] = [2]float64{w, h}
	}

	var x float64
	for col, keys := range m.Columns {
		if col > 0 {
			x += opts.ColumnGap
		}
		var colW, y float64
		for _, key := range keys {
			colW = math.Max(colW, sizes[key][0])
		}
		for row, key := range keys {
			if row > 0 {
				y += opts.RowGap
			}
			s := sizes[key]
			m.Nodes[key] = Placement{
				Column: col,
				Row:    row,
				X:      x + (colW-s[0])/2,
				Y:      y,
				W:      s[0],
				H:      s[1],
			}
			y += s[1]
		}
		m.Height = math.Max(m.Height, y)
		x += colW
	}
	m.Width = x
	return m
}

func withDefaults(opts Options) Options {
	if opts.ColumnGap == 0 {
		opts.ColumnGap = DefaultColumnGap
	}
	if opts.RowGap == 0 {
		opts.RowGap = DefaultRowGap
	}
	if opts.Measure == nil {
		c := opts.Canvas
		if c.W <= 0 || c.H <= 0 {
			c = document.DefaultCanvas
		}
		w, h := float64(c.W)*DefaultScale, float64(c.H)*DefaultScale
		opts.Measure = func(*document.Page) (float64, float64) { return w, h }
	}
	return opts
}
