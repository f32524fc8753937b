package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/matzehuels/uxl/pkg/document"
)

func TestResolveVersion(t *testing.T) {
	module := func(v string) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Path: "github.com/matzehuels/uxl", Version: v}}, true
		}
	}
	missing := func() (*debug.BuildInfo, bool) { return nil, false }

	tests := []struct {
		name string
		v    string
		read func() (*debug.BuildInfo, bool)
		want string
	}{
		{"ldflags win", "v1.2.0", module("v1.1.0"), "v1.2.0"},
		{"go install", "dev", module("v1.1.0"), "v1.1.0"},
		{"local build", "dev", module("(devel)"), "dev"},
		{"no build info", "dev", missing, "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveVersion(tt.v, tt.read); got != tt.want {
				t.Errorf("resolveVersion(%q) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	i := Get()
	if i.Language != document.DefaultVersion || i.Commit != Commit || i.Date != Date {
		t.Errorf("Get() = %+v", i)
	}
	if !strings.Contains(i.String(), "uxl language: "+document.DefaultVersion) {
		t.Errorf("String() = %q", i.String())
	}
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version "+i.Version) || !strings.Contains(got, "uxl language: ") {
		t.Errorf("Template() = %q", got)
	}
}
