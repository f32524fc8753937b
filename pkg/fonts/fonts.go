// Package fonts provides the fonts used to draw wireframes.
//
// Text in vector output (PDF) is shaped with the Go font family, which ships
// with golang.org/x/image and needs no system fonts. SVG output references
// the font stacks below and leaves font selection to the viewer.
package fonts

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Regular returns the TTF data of the Go Regular font.
func Regular() []byte { return goregular.TTF }

// Bold returns the TTF data of the Go Bold font.
func Bold() []byte { return gobold.TTF }

// FontFamily is the CSS font stack for the simple style.
const FontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// SketchFontFamily is the CSS font stack for the sketch style.
const SketchFontFamily = `'xkcd Script', 'Comic Sans MS', 'Bradley Hand', 'Segoe Script', sans-serif`
