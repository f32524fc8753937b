package cli

import (
	"fmt"
	"strings"
	"testing"

	uxlerrors "github.com/matzehuels/uxl/pkg/errors"
)

func TestFormatDiagnostic(t *testing.T) {
	err := fmt.Errorf("parse: %w", &uxlerrors.ParseError{
		Message:  "unknown tag X",
		Source:   "shop.uxl",
		Line:     3,
		Col:      3,
		LineText: "  X\\Oops",
	})

	got := formatDiagnostic(err)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("diagnostic has %d lines:\n%s", len(lines), got)
	}
	if !strings.Contains(lines[0], "shop.uxl:3:3 unknown tag X") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "   3 |   X\\Oops") {
		t.Errorf("source line = %q", lines[1])
	}
	// The caret sits under column 3 of the source line.
	if strings.Index(lines[2], "^") != strings.Index(lines[1], "X") {
		t.Errorf("caret misplaced:\n%s\n%s", lines[1], lines[2])
	}
}

func TestFormatDiagnosticPlainError(t *testing.T) {
	err := uxlerrors.New(uxlerrors.ErrCodePageNotFound, "page %q not found", "lst")
	got := formatDiagnostic(err)
	if !strings.HasSuffix(got, `page "lst" not found`) || strings.Contains(got, "\n") {
		t.Errorf("formatDiagnostic() = %q", got)
	}
}

func TestFormatStats(t *testing.T) {
	tests := []struct {
		pages, nodes, edges int
		cached              bool
		want                []string
	}{
		{3, 12, 1, false, []string{"3 pages", "12 nodes", "1 edge", iconFresh}},
		{1, 0, 0, true, []string{"1 page", iconCached}},
	}
	for _, tt := range tests {
		got := formatStats(tt.pages, tt.nodes, tt.edges, tt.cached)
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("formatStats(%d, %d, %d) = %q, missing %q", tt.pages, tt.nodes, tt.edges, got, w)
			}
		}
	}
}
