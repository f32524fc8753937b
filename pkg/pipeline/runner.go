package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uxl/pkg/cache"
	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/layout"
	"github.com/matzehuels/uxl/pkg/observability"
	"github.com/matzehuels/uxl/pkg/wire"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// Stage 1: Parse
	parseStart := time.Now()
	doc, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		DocumentID: cache.DocumentID([]byte(opts.Source)).String(),
		SourceHash: opts.SourceHash(),
		Document:   wire.FromDocument(doc),
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.PageCount = len(doc.Pages)
	result.Stats.NodeCount = doc.NodeCount()
	result.Stats.EdgeCount = len(doc.Edges)

	r.Logger.Info("parsed document",
		"pages", result.Stats.PageCount,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	if opts.IsMap() {
		m, hit, err := r.MapWithCacheInfo(ctx, doc, opts)
		if err != nil {
			return nil, fmt.Errorf("map: %w", err)
		}
		result.Map = &m
		result.CacheInfo.LayoutHit = hit
	} else {
		layouts, hit, err := r.LayoutsWithCacheInfo(ctx, doc, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Layouts = layouts
		result.CacheInfo.LayoutHit = hit
	}
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"viz", opts.VizType,
		"pages", len(result.Layouts),
		"cached", result.CacheInfo.LayoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, doc, result.Layouts, result.Map, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse parses the source and reports parse hooks. Parse results are not
// cached: parsing is cheap and the document is needed in memory.
func (r *Runner) Parse(ctx context.Context, opts Options) (*document.Document, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.SourceName)
	start := time.Now()

	doc, err := Parse(opts)

	pages := 0
	if doc != nil {
		pages = len(doc.Pages)
	}
	hooks.OnParseComplete(ctx, opts.SourceName, pages, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LayoutsWithCacheInfo lays out the pages opts.Page selects and reports
// whether every layout came from the cache.
func (r *Runner) LayoutsWithCacheInfo(ctx context.Context, doc *document.Document, opts Options) ([]wire.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	pages, err := SelectPages(doc, opts.Page)
	if err != nil {
		return nil, false, err
	}

	sourceHash := opts.SourceHash()
	measurer := NewMeasurer(ctx, doc, opts)
	// Probed image sizes change layouts, so a run with images bypasses the cache.
	cacheable := measurer.Images.Len() == 0

	allHit := true
	layouts := make([]wire.Layout, 0, len(pages))
	for _, page := range pages {
		key := r.Keyer.LayoutKey(sourceHash, opts.LayoutKeyOpts(page.Key()))

		if cacheable && !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				if l, err := wire.UnmarshalLayout(data); err == nil {
					observability.Cache().OnCacheHit(ctx, "layout")
					layouts = append(layouts, l)
					continue
				}
			}
			observability.Cache().OnCacheMiss(ctx, "layout")
		}
		allHit = false

		l, err := r.layoutPage(ctx, doc, page, measurer, opts)
		if err != nil {
			return nil, false, err
		}
		layouts = append(layouts, l)

		if cacheable {
			store(ctx, r, "layout", key, l, wire.MarshalLayout, opts.TTL)
		}
	}
	return layouts, allHit, nil
}

// Layouts is a convenience wrapper that calls LayoutsWithCacheInfo and discards the cache hit info.
func (r *Runner) Layouts(ctx context.Context, doc *document.Document, opts Options) ([]wire.Layout, error) {
	layouts, _, err := r.LayoutsWithCacheInfo(ctx, doc, opts)
	return layouts, err
}

func (r *Runner) layoutPage(ctx context.Context, doc *document.Document, page *document.Page, m layout.Measurer, opts Options) (wire.Layout, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, page.Key(), countNodes(page))
	start := time.Now()

	l, err := LayoutPage(doc, page, m, opts)
	hooks.OnLayoutComplete(ctx, page.Key(), l.Passes, time.Since(start), err)
	if err != nil {
		return wire.Layout{}, fmt.Errorf("page %s: %w", page.Key(), err)
	}
	if l.Passes > 1 {
		r.Logger.Debug("relayout for scrollbars", "page", page.Key(), "passes", l.Passes)
	}
	return l, nil
}

// store writes v to the cache. Cache failures are logged, never returned.
func store[T any](ctx context.Context, r *Runner, kind, key string, v T, marshal func(T) ([]byte, error), ttl time.Duration) {
	data, err := marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "kind", kind, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func countNodes(n document.Node) int {
	count := 1
	for _, c := range n.Children() {
		count += countNodes(c)
	}
	return count
}

// MapWithCacheInfo builds the navigation map and reports whether it came
// from the cache.
func (r *Runner) MapWithCacheInfo(ctx context.Context, doc *document.Document, opts Options) (wire.Map, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return wire.Map{}, false, err
	}

	key := r.Keyer.MapKey(opts.SourceHash(), opts.MapKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if m, err := wire.UnmarshalMap(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "map")
				return m, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "map")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, "map", len(doc.Pages))
	start := time.Now()
	m := BuildMap(doc, opts)
	hooks.OnLayoutComplete(ctx, "map", 1, time.Since(start), nil)

	store(ctx, r, "map", key, m, wire.MarshalMap, opts.TTL)
	return m, false, nil
}

// Map is a convenience wrapper that calls MapWithCacheInfo and discards the cache hit info.
func (r *Runner) Map(ctx context.Context, doc *document.Document, opts Options) (wire.Map, error) {
	m, _, err := r.MapWithCacheInfo(ctx, doc, opts)
	return m, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. Wireframes draw layouts, maps draw m, and node-link diagrams draw the
// navigation graph of doc.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *document.Document, layouts []wire.Layout, m *wire.Map, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// The artifact key covers the source so node-link labels stay in sync.
	var input any = layouts
	if opts.IsMap() {
		if m == nil {
			built := BuildMap(doc, opts)
			m = &built
		}
		input = m
	}
	inputData, err := json.Marshal(input)
	if err != nil {
		return nil, false, fmt.Errorf("serialize render input for cache key: %w", err)
	}
	keyHash := cache.Hash(append([]byte(opts.SourceHash()+opts.VizType), inputData...))
	artifactOpts := func(format string) cache.ArtifactKeyOpts {
		o := opts.ArtifactKeyOpts(format)
		if opts.Detailed {
			o.Style += "+detailed"
		}
		return o
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(keyHash, artifactOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var rendered map[string][]byte
	switch opts.VizType {
	case VizTypeNodelink:
		rendered, err = RenderNodelink(doc, opts)
	case VizTypeMap:
		rendered, err = RenderMap(*m, opts)
	default:
		rendered, err = RenderLayouts(layouts, opts)
	}
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(keyHash, artifactOpts(format))
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc *document.Document, layouts []wire.Layout, m *wire.Map, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, layouts, m, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set. It
// runs before validation, which would otherwise install a discard logger.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
