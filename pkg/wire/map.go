package wire

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/navmap"
)

// Map is the serialization format of a navigation map.
type Map struct {
	VizType     string       `json:"viz_type" bson:"viz_type"`
	Width       float64      `json:"width" bson:"width"`
	Height      float64      `json:"height" bson:"height"`
	Style       string       `json:"style,omitempty" bson:"style,omitempty"`
	Nodes       []MapNode    `json:"nodes" bson:"nodes"`
	Connections []Connection `json:"connections" bson:"connections"`
	Columns     [][]string   `json:"columns" bson:"columns"`
}

// MapNode is a page placed on the map.
type MapNode struct {
	ID     string  `json:"id" bson:"id"` // Page key
	Label  string  `json:"label" bson:"label"`
	Column int     `json:"column" bson:"column"`
	Row    int     `json:"row" bson:"row"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	W      float64 `json:"w" bson:"w"`
	H      float64 `json:"h" bson:"h"`
	Start  bool    `json:"start,omitempty" bson:"start,omitempty"`
}

// Connection links two pages; Bidirectional merges an edge with its reverse.
type Connection struct {
	From          string `json:"from" bson:"from"`
	To            string `json:"to" bson:"to"`
	Bidirectional bool   `json:"bidirectional,omitempty" bson:"bidirectional,omitempty"`
}

// FromMap converts a navigation map of pages to its serialization format.
// Nodes follow document order.
func FromMap(pages []*document.Page, m *navmap.Map) Map {
	out := Map{
		VizType:     VizTypeMap,
		Width:       m.Width,
		Height:      m.Height,
		Nodes:       make([]MapNode, 0, len(pages)),
		Connections: make([]Connection, len(m.Connections)),
		Columns:     m.Columns,
	}
	for i, p := range pages {
		pl, ok := m.Nodes[p.Key()]
		if !ok {
			continue
		}
		out.Nodes = append(out.Nodes, MapNode{
			ID:     p.Key(),
			Label:  p.Title(),
			Column: pl.Column,
			Row:    pl.Row,
			X:      pl.X,
			Y:      pl.Y,
			W:      pl.W,
			H:      pl.H,
			Start:  i == 0,
		})
	}
	for i, c := range m.Connections {
		out.Connections[i] = Connection{From: c.A, To: c.B, Bidirectional: c.Bidirectional}
	}
	return out
}

// Node returns the map node with the given page key.
func (m *Map) Node(id string) (MapNode, bool) {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return MapNode{}, false
}

// MarshalMap serializes a Map to pretty-printed JSON bytes.
func MarshalMap(m Map) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// UnmarshalMap deserializes JSON bytes into a Map.
func UnmarshalMap(data []byte) (Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return Map{}, fmt.Errorf("unmarshal map: %w", err)
	}
	if m.VizType == "" {
		m.VizType = VizTypeMap
	}
	if m.VizType != VizTypeMap {
		return Map{}, fmt.Errorf("unexpected viz type %q", m.VizType)
	}
	return m, nil
}
