package layout

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

// Default metrics used by [TextMeasurer].
const (
	DefaultCharWidth  = 7.0
	DefaultLineHeight = 16.0
	DefaultIconSize   = 16.0
	iconGap           = 4.0
)

// Measurer supplies intrinsic sizes. Text is a single opaque line; there is
// no wrapping.
type Measurer interface {
	// MeasureText returns the size of a single line of text.
	MeasureText(text string) Size
	// ImageSize returns the intrinsic pixel size of an image, or false when
	// it is not known yet.
	ImageSize(src string) (Size, bool)
}

// TextMeasurer measures text as terminal-style cells: each cell is CharWidth
// pixels wide, so East Asian wide characters count double. Image sizes come
// from Images.
type TextMeasurer struct {
	CharWidth  float64
	LineHeight float64
	Images     *ImageSizes
}

// NewTextMeasurer returns a measurer with default metrics and an empty image
// size table.
func NewTextMeasurer() *TextMeasurer {
	return &TextMeasurer{
		CharWidth:  DefaultCharWidth,
		LineHeight: DefaultLineHeight,
		Images:     NewImageSizes(),
	}
}

// MeasureText implements [Measurer].
func (m *TextMeasurer) MeasureText(text string) Size {
	if text == "" {
		return Size{}
	}
	cw, lh := m.CharWidth, m.LineHeight
	if cw <= 0 {
		cw = DefaultCharWidth
	}
	if lh <= 0 {
		lh = DefaultLineHeight
	}
	text = strings.ReplaceAll(text, "\n", " ")
	return Size{W: float64(runewidth.StringWidth(text)) * cw, H: lh}
}

// ImageSize implements [Measurer].
func (m *TextMeasurer) ImageSize(src string) (Size, bool) {
	if m.Images == nil {
		return Size{}, false
	}
	return m.Images.Get(src)
}

// ImageSizes is a concurrency-safe table of known image dimensions. Hosts fill
// it as images load and then relayout.
type ImageSizes struct {
	mu    sync.RWMutex
	sizes map[string]Size
}

// NewImageSizes creates an empty table.
func NewImageSizes() *ImageSizes {
	return &ImageSizes{sizes: make(map[string]Size)}
}

// Set records the intrinsic size of src.
func (s *ImageSizes) Set(src string, size Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sizes[src] = size
}

// Get returns the recorded size of src.
func (s *ImageSizes) Get(src string) (Size, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	size, ok := s.sizes[src]
	return size, ok
}

// Len returns the number of recorded images.
func (s *ImageSizes) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sizes)
}
