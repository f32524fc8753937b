package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/uxl/pkg/cache"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "app/shop.uxl", "app/shop"},
		{"", "-", "uxl"},
		{"out/shop.svg", "shop.uxl", "out/shop"},
		{"out/shop.pdf", "shop.uxl", "out/shop"},
		{"out/shop", "shop.uxl", "out/shop"},
		{"out/shop.v2", "shop.uxl", "out/shop.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPaths(t *testing.T) {
	tests := []struct {
		name string
		p    artifactWriteParams
		want map[string]string
	}{
		{
			"single format keeps output",
			artifactWriteParams{formats: []string{"svg"}, input: "shop.uxl", output: "wire.svg"},
			map[string]string{"svg": "wire.svg"},
		},
		{
			"derived from input",
			artifactWriteParams{formats: []string{"svg", "pdf"}, input: "shop.uxl"},
			map[string]string{"svg": "shop.svg", "pdf": "shop.pdf"},
		},
		{
			"output as base",
			artifactWriteParams{formats: []string{"svg", "png"}, input: "shop.uxl", output: "out/wire.svg"},
			map[string]string{"svg": "out/wire.svg", "png": "out/wire.png"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPaths(tt.p)
			if len(got) != len(tt.want) {
				t.Fatalf("artifactPaths() = %v, want %v", got, tt.want)
			}
			for f, path := range tt.want {
				if got[f] != path {
					t.Errorf("path[%s] = %q, want %q", f, got[f], path)
				}
			}
		})
	}
}

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.uxl")
	if err := os.WriteFile(path, []byte("P\\a\\A"), 0o644); err != nil {
		t.Fatal(err)
	}
	text, name, err := readSource(path)
	if err != nil || text != "P\\a\\A" || name != path {
		t.Errorf("readSource() = %q, %q, %v", text, name, err)
	}
	if _, _, err := readSource(filepath.Join(t.TempDir(), "missing.uxl")); err == nil {
		t.Error("readSource(missing) should fail")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"pdf", []string{"pdf"}},
		{"svg,pdf,png", []string{"svg", "pdf", "png"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestMapVizType(t *testing.T) {
	tests := []struct {
		formats  []string
		graphviz bool
		want     string
	}{
		{[]string{"svg"}, false, "map"},
		{[]string{"svg"}, true, "nodelink"},
		{[]string{"dot"}, false, "nodelink"},
		{[]string{"json", "pdf"}, false, "map"},
	}
	for _, tt := range tests {
		if got := mapVizType(tt.formats, tt.graphviz); got != tt.want {
			t.Errorf("mapVizType(%v, %v) = %q, want %q", tt.formats, tt.graphviz, got, tt.want)
		}
	}
}

func TestCacheLocation(t *testing.T) {
	tests := []struct {
		cfg  cache.Config
		want string
	}{
		{cache.Config{Backend: "file", Dir: "/tmp/uxl"}, "/tmp/uxl"},
		{cache.Config{Dir: "/tmp/uxl"}, "/tmp/uxl"},
		{cache.Config{Backend: "redis", RedisAddr: "localhost:6379"}, "redis://localhost:6379"},
		{cache.Config{Backend: "mongo", MongoURI: "mongodb://db:27017", MongoDB: "uxl"}, "mongodb://db:27017/uxl"},
		{cache.Config{Backend: "none"}, "none"},
	}
	for _, tt := range tests {
		if got := cacheLocation(tt.cfg); got != tt.want {
			t.Errorf("cacheLocation(%+v) = %q, want %q", tt.cfg, got, tt.want)
		}
	}
}
