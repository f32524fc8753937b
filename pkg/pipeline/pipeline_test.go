package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/uxl/pkg/cache"
	uxlerrors "github.com/matzehuels/uxl/pkg/errors"
	"github.com/matzehuels/uxl/pkg/wire"
)

const shop = `UXL:1.0
320x240
P\home\Home
  C\Welcome\T
  B\Browse\GOTO:list
P\list\Products
  T\COLS:2L,1R\100%x
    TH\Item\Price
    TD\Lamp\20
  B\Back\GOTO:home
  B\Details\GOTO:item
P\item\Item
  I\SRC:lamp.png`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		vizType string
		format  string
		wantErr bool
	}{
		{"wireframe", "svg", false},
		{"wireframe", "png", false},
		{"wireframe", "pdf", false},
		{"wireframe", "json", false},
		{"wireframe", "dot", true},
		{"map", "json", false},
		{"nodelink", "dot", false},
		{"nodelink", "pdf", true},
		{"wireframe", "SVG", true}, // case-sensitive
		{"wireframe", "", true},
		{"tower", "svg", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.vizType, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q, %q) error = %v, wantErr %v", tt.vizType, tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats("wireframe", []string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	err := ValidateFormats("wireframe", []string{"svg", "invalid"})
	if err == nil {
		t.Fatal("Invalid format should fail")
	}
	if !uxlerrors.Is(err, uxlerrors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %s, want INVALID_FORMAT", uxlerrors.GetCode(err))
	}

	// Empty slice is valid
	if err := ValidateFormats("map", nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"sketch", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Source: shop}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.Mode != "strict" {
		t.Errorf("Mode = %q, want strict", opts.Mode)
	}
	if opts.VizType != DefaultVizType || opts.Style != DefaultStyle {
		t.Errorf("VizType/Style = %q/%q", opts.VizType, opts.Style)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.CharWidth != 7 || opts.LineHeight != 16 || opts.MapScale != 0.25 {
		t.Errorf("metrics = %v/%v/%v", opts.CharWidth, opts.LineHeight, opts.MapScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	if opts.TTL != cache.DefaultTTL {
		t.Errorf("TTL = %v", opts.TTL)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"empty source", Options{Source: "  \n"}},
		{"bad mode", Options{Source: shop, Mode: "lenient"}},
		{"bad viz type", Options{Source: shop, VizType: "tower"}},
		{"negative canvas", Options{Source: shop, Width: -1}},
		{"negative scrollbar", Options{Source: shop, Scrollbar: -4}},
		{"bad style", Options{Source: shop, Style: "neon"}},
		{"bad format", Options{Source: shop, VizType: "nodelink", Formats: []string{"pdf"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("ValidateAndSetDefaults() should fail")
			}
		})
	}
}

func TestSourceHash(t *testing.T) {
	a := Options{Source: shop, Mode: "strict"}
	b := Options{Source: shop, Mode: "permissive"}
	c := Options{Source: shop, Mode: "strict"}
	if a.SourceHash() == b.SourceHash() {
		t.Error("parser mode should change the source hash")
	}
	if a.SourceHash() != c.SourceHash() {
		t.Error("SourceHash should be deterministic")
	}
}

func TestSelectPages(t *testing.T) {
	doc, err := Parse(Options{Source: shop})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	all, err := SelectPages(doc, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("SelectPages(all) = %d pages, err %v", len(all), err)
	}
	one, err := SelectPages(doc, "LIST")
	if err != nil || len(one) != 1 || one[0].Key() != "list" {
		t.Fatalf("SelectPages(LIST) = %v, err %v", one, err)
	}

	_, err = SelectPages(doc, "lst")
	if !uxlerrors.Is(err, uxlerrors.ErrCodePageNotFound) {
		t.Fatalf("SelectPages(lst) error = %v, want PAGE_NOT_FOUND", err)
	}
	if !strings.Contains(err.Error(), `did you mean "list"`) {
		t.Errorf("error should suggest list: %v", err)
	}
}

func TestRunnerExecuteWireframe(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	opts := Options{Source: shop, Page: "home", Formats: []string{"svg", "json"}, Links: true}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if len(res.Layouts) != 1 || res.Layouts[0].Page != "home" {
		t.Fatalf("Layouts = %+v", res.Layouts)
	}
	if res.Stats.PageCount != 3 || res.Stats.EdgeCount != 3 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if !bytes.Contains(res.Artifacts["svg"], []byte(`<a href="#page-list">`)) {
		t.Error("svg should link to the list page")
	}
	if _, err := wire.UnmarshalLayout(res.Artifacts["json"]); err != nil {
		t.Errorf("json artifact: %v", err)
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() again error = %v", err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", again.CacheInfo)
	}
	if !bytes.Equal(again.Artifacts["svg"], res.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}
	if again.DocumentID != res.DocumentID {
		t.Error("DocumentID should be stable")
	}
}

func TestRunnerExecuteAllPages(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Source: shop, Formats: []string{"json", "pdf"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(res.Layouts) != 3 {
		t.Fatalf("Layouts = %d, want 3", len(res.Layouts))
	}
	var layouts []wire.Layout
	if err := json.Unmarshal(res.Artifacts["json"], &layouts); err != nil || len(layouts) != 3 {
		t.Errorf("json array = %d layouts, err %v", len(layouts), err)
	}
	if !bytes.HasPrefix(res.Artifacts["pdf"], []byte("%PDF-")) {
		t.Error("pdf artifact is not a PDF")
	}
}

func TestRunnerExecuteMap(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Source: shop, VizType: "map", Formats: []string{"json", "svg"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Map == nil || len(res.Map.Nodes) != 3 {
		t.Fatalf("Map = %+v", res.Map)
	}
	// home -> list <-> home, list -> item: columns by depth
	if got := res.Map.Columns; len(got) != 3 || got[0][0] != "home" || got[1][0] != "list" || got[2][0] != "item" {
		t.Errorf("Columns = %v", got)
	}
	if n, _ := res.Map.Node("home"); n.W != 80 || n.H != 60 {
		t.Errorf("thumbnail = %vx%v, want 80x60", n.W, n.H)
	}
	if !bytes.Contains(res.Artifacts["svg"], []byte(`id="map-home" class="start"`)) {
		t.Error("svg should mark the start page")
	}
}

func TestRunnerExecuteNodelink(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Source: shop, VizType: "nodelink", Formats: []string{"dot"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	dot := string(res.Artifacts["dot"])
	if !strings.Contains(dot, `"home" -> "list" [dir=both];`) || !strings.Contains(dot, `"list" -> "item";`) {
		t.Errorf("dot =\n%s", dot)
	}
}

func TestRunnerParseError(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Source: "P\\home\\Home\n  B\\Go\\GOTO:nowhere", SourceName: "bad.uxl"})
	pe, ok := uxlerrors.AsParseError(err)
	if !ok {
		t.Fatalf("Execute() error = %v, want ParseError", err)
	}
	if pe.Line != 2 || pe.Source != "bad.uxl" {
		t.Errorf("ParseError at %s", pe.Position())
	}
}

func TestRunnerRefresh(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(fc, nil, nil)
	opts := Options{Source: shop, Page: "home"}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	opts.Refresh = true
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestProbeImages(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lamp.png"), buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Parse(Options{Source: shop + "\n  I\\SRC:https://example.com/a.png\n  I\\SRC:missing.png"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sizes := ProbeImages(context.Background(), doc, dir, nil, nil)
	if sizes.Len() != 1 {
		t.Errorf("probed %d images, want 1", sizes.Len())
	}
	if s, ok := sizes.Get("lamp.png"); !ok || s.W != 40 || s.H != 20 {
		t.Errorf("lamp.png = %+v, %v", s, ok)
	}
}

type fakeSizer map[string][2]int

func (f fakeSizer) Size(_ context.Context, url string) (int, int, error) {
	s, ok := f[url]
	if !ok {
		return 0, 0, errors.New("not found")
	}
	return s[0], s[1], nil
}

func TestProbeImagesRemote(t *testing.T) {
	doc, err := Parse(Options{Source: shop + "\n  I\\SRC:https://example.com/a.png\n  I\\SRC:https://example.com/gone.png"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	remote := fakeSizer{"https://example.com/a.png": {300, 100}}
	sizes := ProbeImages(context.Background(), doc, "", remote, nil)
	if sizes.Len() != 1 {
		t.Errorf("probed %d images, want 1", sizes.Len())
	}
	if s, ok := sizes.Get("https://example.com/a.png"); !ok || s.W != 300 || s.H != 100 {
		t.Errorf("a.png = %+v, %v", s, ok)
	}
}

func TestExamples(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.uxl"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no example documents found")
	}

	r := NewRunner(cache.NewNullCache(), nil, nil)
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			data, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			opts := Options{
				Source:     string(data),
				SourceName: file,
				VizType:    VizTypeWireframe,
				Formats:    []string{FormatSVG, FormatJSON},
				ImageDir:   filepath.Dir(file),
			}
			res, err := r.Execute(context.Background(), opts)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if len(res.Layouts) != res.Stats.PageCount || res.Stats.EdgeCount == 0 {
				t.Errorf("layouts = %d, pages = %d, edges = %d", len(res.Layouts), res.Stats.PageCount, res.Stats.EdgeCount)
			}

			opts.VizType = VizTypeMap
			if _, err := r.Execute(context.Background(), opts); err != nil {
				t.Errorf("map: Execute() error = %v", err)
			}
		})
	}
}
