// Package pipeline runs UXL text through parse, layout and render.
//
// This package implements the complete parse → layout → render pipeline used
// by the CLI and the preview service. By centralizing this logic, both entry
// points share defaults, validation, caching and logging.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Turn UXL text into a validated document and its navigation edges
//  2. Layout: Place the boxes of each page, or build the navigation map
//  3. Render: Draw SVG, PDF, PNG, JSON or DOT output
//
// Each stage can be run independently or as part of the complete pipeline.
// Parsing always runs; layouts and rendered artifacts are cached under keys
// derived from the source hash.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  text,
//	    VizType: "wireframe",
//	    Page:    "home",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	doc, err := runner.Parse(ctx, opts)
//	layouts, err := runner.Layouts(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, layouts, opts)
package pipeline

import (
	"encoding/json"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uxl/pkg/cache"
	uxlerrors "github.com/matzehuels/uxl/pkg/errors"
	"github.com/matzehuels/uxl/pkg/layout"
	"github.com/matzehuels/uxl/pkg/navmap"
	"github.com/matzehuels/uxl/pkg/parser"
	"github.com/matzehuels/uxl/pkg/wire"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for the sketch style.
	DefaultSeed = uint64(42)

	// DefaultPNGScale renders one layout pixel as two image pixels.
	DefaultPNGScale = 2.0

	// MaxSourceSize bounds the UXL text accepted by the pipeline.
	MaxSourceSize = 1 << 20
)

// Visualization types.
const (
	VizTypeWireframe = wire.VizTypeWireframe // One page, boxes drawn as wireframes
	VizTypeMap       = wire.VizTypeMap       // Page thumbnails in columns by depth
	VizTypeNodelink  = "nodelink"            // Navigation graph drawn by Graphviz
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeWireframe

// DefaultStyle is the default visual style.
const DefaultStyle = wire.StyleSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats lists the formats each visualization type supports.
var ValidFormats = map[string][]string{
	VizTypeWireframe: {FormatSVG, FormatPNG, FormatPDF, FormatJSON},
	VizTypeMap:       {FormatSVG, FormatPNG, FormatPDF, FormatJSON},
	VizTypeNodelink:  {FormatSVG, FormatPNG, FormatDOT},
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	wire.StyleSimple: true,
	wire.StyleSketch: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Source     string   `json:"source"`
	SourceName string   `json:"source_name,omitempty"`
	Mode       string   `json:"mode,omitempty"` // "strict" (default) or "permissive"
	Icons      []string `json:"icons,omitempty"`

	// Layout options
	VizType    string  `json:"viz_type,omitempty"`
	Page       string  `json:"page,omitempty"`   // Page id or "#n" key; empty selects all pages
	Width      int     `json:"width,omitempty"`  // Canvas width override
	Height     int     `json:"height,omitempty"` // Canvas height override
	Scrollbar  float64 `json:"scrollbar,omitempty"`
	CharWidth  float64 `json:"char_width,omitempty"`
	LineHeight float64 `json:"line_height,omitempty"`
	ColumnGap  float64 `json:"column_gap,omitempty"`
	RowGap     float64 `json:"row_gap,omitempty"`
	MapScale   float64 `json:"map_scale,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Seed     uint64   `json:"seed,omitempty"`
	Links    bool     `json:"links,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Node-link labels with page keys
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger        `json:"-"`
	ImageDir string             `json:"-"` // Base directory for SRC:/BG: files
	Images   *layout.ImageSizes `json:"-"` // Known image sizes; probed from ImageDir when nil
	Remote   RemoteSizer        `json:"-"` // Sizes http(s) images; nil skips them
	TTL      time.Duration      `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DocumentID is a stable id for the source text.
	DocumentID string

	// SourceHash is the content hash of the source and parser settings.
	SourceHash string

	// Document is the parsed document in wire form.
	Document wire.Document

	// Layouts holds one layout per selected page (wireframe only).
	Layouts []wire.Layout

	// Map is the navigation map (map and nodelink only).
	Map *wire.Map

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PageCount  int
	NodeCount  int
	EdgeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether every layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid for a visualization type.
func ValidateFormat(vizType, format string) error {
	valid, ok := ValidFormats[vizType]
	if !ok {
		return ValidateVizType(vizType)
	}
	if !slices.Contains(valid, format) {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidFormat,
			"invalid format %q for %s (must be one of: %s)", format, vizType, strings.Join(valid, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid for a visualization type.
func ValidateFormats(vizType string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(vizType, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidInput,
			"invalid style: %q (must be one of: %s)", style, strings.Join(wire.Styles, ", "))
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if _, ok := ValidFormats[vizType]; !ok {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidInput,
			"invalid viz_type: %q (must be one of: wireframe, map, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the source and parser settings.
func (o *Options) ValidateForParse() error {
	if strings.TrimSpace(o.Source) == "" {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidInput, "source is required")
	}
	if len(o.Source) > MaxSourceSize {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidInput, "source too large (max %d bytes)", MaxSourceSize)
	}
	if err := uxlerrors.ValidateSourceName(o.SourceName); err != nil {
		return err
	}
	if o.Mode == "" {
		o.Mode = parser.Strict.String()
	}
	if _, err := parser.ParseMode(o.Mode); err != nil {
		return uxlerrors.Wrap(uxlerrors.ErrCodeInvalidInput, err, "invalid mode")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.CharWidth == 0 {
		o.CharWidth = layout.DefaultCharWidth
	}
	if o.LineHeight == 0 {
		o.LineHeight = layout.DefaultLineHeight
	}
	if o.ColumnGap == 0 {
		o.ColumnGap = navmap.DefaultColumnGap
	}
	if o.RowGap == 0 {
		o.RowGap = navmap.DefaultRowGap
	}
	if o.MapScale == 0 {
		o.MapScale = navmap.DefaultScale
	}
	if o.TTL == 0 {
		o.TTL = cache.DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidInput, "canvas size must not be negative")
	}
	if o.Scrollbar < 0 || o.CharWidth < 0 || o.LineHeight < 0 {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidInput, "text metrics and scrollbar must not be negative")
	}
	if o.ColumnGap < 0 || o.RowGap < 0 || o.MapScale < 0 {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidInput, "map gaps and scale must not be negative")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.VizType, o.Formats); err != nil {
		return err
	}
	if o.PNGScale < 0 {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidInput, "png scale must not be negative")
	}
	return ValidateStyle(o.Style)
}

// IsMap returns true if the output is a navigation map rather than a page.
func (o *Options) IsMap() bool {
	return o.VizType == VizTypeMap || o.VizType == VizTypeNodelink
}

// ParserOptions returns the parser settings.
func (o *Options) ParserOptions() parser.Options {
	mode, _ := parser.ParseMode(o.Mode)
	opts := parser.Options{Mode: mode, SourceName: o.SourceName}
	if len(o.Icons) > 0 {
		opts.Icons = parser.NewIconSet(o.Icons...)
	}
	return opts
}

// SourceHash returns the content hash of the source and parser settings.
func (o *Options) SourceHash() string {
	data, _ := json.Marshal(struct {
		Source string   `json:"source"`
		Mode   string   `json:"mode"`
		Icons  []string `json:"icons"`
	}{o.Source, o.Mode, o.Icons})
	return cache.Hash(data)
}

// LayoutKeyOpts returns cache key options for the layout of one page.
func (o *Options) LayoutKeyOpts(page string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Page:       page,
		Width:      o.Width,
		Height:     o.Height,
		Scrollbar:  o.Scrollbar,
		CharWidth:  o.CharWidth,
		LineHeight: o.LineHeight,
	}
}

// MapKeyOpts returns cache key options for the navigation map.
func (o *Options) MapKeyOpts() cache.MapKeyOpts {
	return cache.MapKeyOpts{
		ColumnGap: o.ColumnGap,
		RowGap:    o.RowGap,
		Scale:     o.MapScale,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Seed:   o.Seed,
		Links:  o.Links,
		Scale:  o.PNGScale,
	}
}
