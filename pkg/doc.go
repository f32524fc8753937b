// Package pkg provides the core libraries of uxl, a compact text language
// for screen wireframes and the navigation between them.
//
// # Overview
//
// A UXL document is a list of pages, each an indented tree of frames,
// buttons, captions, images and tables. Buttons and frames carry GOTO
// actions that link pages. The pkg directory is organized into four areas:
//
//  1. Language - parsing, validation and the document model
//  2. Geometry - box layout, column normalization and the navigation map
//  3. Output - wire types and renderers
//  4. Infrastructure - pipeline, cache, configuration, errors and hooks
//
// # Architecture
//
// The typical data flow through uxl:
//
//	UXL text
//	    ↓
//	[parser] package (records, tree building, validation, GOTO edges)
//	    ↓
//	[document] + [nav] (node tree and navigation graph)
//	    ↓
//	[layout] / [navmap] (page boxes, map placement)
//	    ↓
//	[wire] (serializable layouts and maps)
//	    ↓
//	SVG/PDF/PNG/JSON/DOT output
//
// # Quick Start
//
// Parse a document and lay out its first page:
//
//	doc, err := parser.Parse(text, parser.Options{})
//	if err != nil {
//	    return err // *errors.ParseError with line, column and snippet
//	}
//	res, err := layout.Layout(doc.Pages[0], doc.Canvas, layout.Options{})
//
// Or run the whole pipeline, with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  text,
//	    VizType: pipeline.VizTypeWireframe,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Package Organization
//
// ## Language
//
// [document] - The node tree: pages, frames, buttons, captions, images,
// tables and rows, with sizes, alignments, actions and the canvas.
//
// [parser] - Turns UXL text into a validated [document.Document]. Fields
// are classified by content, not position. Strict and permissive modes.
//
// [nav] - The GOTO graph between pages and target resolution.
//
// [suggest] - "Did you mean" hints for tags and page ids (fuzzy matching).
//
// ## Geometry
//
// [layout] - The box layout engine: measure, place, align and scrollbars.
//
// [columns] - Normalizes table column widths to the table width.
//
// [navmap] - Places pages in columns by their distance from the start page
// and routes the connections between them.
//
// ## Output
//
// [wire] - JSON and BSON forms of documents, layouts and maps.
//
// [render] - Wireframe renderers (SVG, PDF, PNG) and Graphviz node-link
// diagrams.
//
// [fonts] - Embedded fonts for text measurement and drawing.
//
// ## Infrastructure
//
// [pipeline] - parse → layout → render, shared by the CLI and the HTTP
// service. Probes image sizes from disk and, optionally, over HTTP.
//
// [cache] - File, Redis and MongoDB caches for layouts and artifacts.
//
// [httputil] - Remote image probing with retry and a size cache.
//
// [config] - The TOML configuration file.
//
// [errors] - Coded errors and positioned parse errors.
//
// [observability] - Hooks for parse, layout, render, cache and HTTP events.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/parser/...       # Specific package
//	go test -run Example ./pkg/... # Examples only
package pkg
