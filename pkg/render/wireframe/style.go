package wireframe

import (
	"fmt"

	"github.com/matzehuels/uxl/pkg/render/wireframe/styles"
	"github.com/matzehuels/uxl/pkg/render/wireframe/styles/sketch"
	"github.com/matzehuels/uxl/pkg/wire"
)

// StyleByName returns the style registered under name. An empty name selects
// the simple style.
func StyleByName(name string, seed uint64) (styles.Style, error) {
	switch name {
	case "", wire.StyleSimple:
		return styles.Simple{}, nil
	case wire.StyleSketch:
		return sketch.New(seed), nil
	default:
		return nil, fmt.Errorf("unknown style %q (want %s or %s)", name, wire.StyleSimple, wire.StyleSketch)
	}
}
