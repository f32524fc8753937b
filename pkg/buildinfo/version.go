// Package buildinfo reports which uxl build is running and which UXL
// document version it reads.
//
// Version, Commit and Date are set with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/uxl/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/uxl/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/uxl/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// A "go install" build has no ldflags; Version then falls back to the module
// version recorded in the binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"

	"github.com/matzehuels/uxl/pkg/document"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build description served by "uxl --version" and GET /version.
type Info struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Language string `json:"language"` // Highest UXL document version accepted
}

// Get returns the running build's Info.
func Get() Info {
	return Info{
		Version:  resolveVersion(Version, debug.ReadBuildInfo),
		Commit:   Commit,
		Date:     Date,
		Language: document.DefaultVersion,
	}
}

func resolveVersion(v string, read func() (*debug.BuildInfo, bool)) string {
	if v != "dev" {
		return v
	}
	if bi, ok := read(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return v
}

// String returns Info as "key: value" lines.
func (i Info) String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\nuxl language: %s", i.Version, i.Commit, i.Date, i.Language)
}

// Template returns the cobra version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\nuxl language: %s\n", i.Version, i.Commit, i.Date, i.Language)
}
