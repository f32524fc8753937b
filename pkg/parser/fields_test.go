package parser

import (
	"strings"
	"testing"

	"github.com/matzehuels/uxl/pkg/document"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		value  string
		quoted bool
		want   fieldKind
	}{
		{"M4", false, fieldMargin},
		{"P0", false, fieldPadding},
		{"R12", false, fieldRadius},
		{"ICON:search", false, fieldIcon},
		{"icon:home:16", false, fieldIcon},
		{"BG:img/bg.png", false, fieldBackground},
		{"SRC:a.png", false, fieldSource},
		{"FIT", false, fieldFit},
		{"CROP", false, fieldFit},
		{"FIT:cover", false, fieldFit},
		{"COLS:1,2", false, fieldColumns},
		{"100x50", false, fieldSize},
		{"50%x", false, fieldSize},
		{"x20S", false, fieldSize},
		{"LT", false, fieldAlign},
		{"B", false, fieldAlign},
		{"GOTO:home", false, fieldAction},
		{"goto:home", false, fieldAction},
		{"BACK:home", false, fieldAction},
		{"Home", false, fieldText},
		{"m4", false, fieldText},
		{"lt", false, fieldText},
		{"x", false, fieldText},
		{"Note: read me", false, fieldText},
		{"Fit", false, fieldText},
		{"M4", true, fieldText},
		{"GOTO:home", true, fieldText},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := classify(field{value: tt.value, quoted: tt.quoted}); got != tt.want {
				t.Errorf("classify(%q, quoted=%v) = %v, want %v", tt.value, tt.quoted, got, tt.want)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	crop := func(v int) document.Dimension {
		return document.Dimension{Unit: document.UnitPx, Value: v, Overflow: document.OverflowCrop}
	}
	tests := []struct {
		in      string
		want    document.Size
		wantErr bool
	}{
		{in: "100x50", want: document.Size{W: document.Px(100), H: document.Px(50)}},
		{in: "100Cx50C", want: document.Size{W: crop(100), H: crop(50)}},
		{in: "100%x", want: document.Size{W: document.Percent(100)}},
		{in: "x40", want: document.Size{H: document.Px(40)}},
		{in: "25%Sx10X", wantErr: true},
		{in: "50%Sx", want: document.Size{W: document.Dimension{Unit: document.UnitPercent, Value: 50, Overflow: document.OverflowScroll}}},
		{in: "0X0", want: document.Size{W: document.Px(0), H: document.Px(0)}},
		{in: "101%x", wantErr: true},
		{in: "Sx10", wantErr: true},
		{in: "10%%x", wantErr: true},
		{in: "10C%x", wantErr: true},
		{in: "10CSx", wantErr: true},
		{in: "200000x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseSize(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr string
	}{
		{line: `B\Go\GOTO:x`, want: []string{"B", "Go", "GOTO:x"}},
		{line: `  C\ spaced  \ "quoted \\ ok" `, want: []string{"C", "spaced", `quoted \ ok`}},
		{line: `C\""`, want: []string{"C", ""}},
		{line: `C\"a\b"`, wantErr: "invalid escape sequence"},
		{line: `C\"abc\"`, wantErr: "unterminated quoted field"},
		{line: `C\x\`, wantErr: "trailing field separator"},
		{line: `C\"x"\`, wantErr: "trailing field separator"},
		{line: `C\"x" y`, wantErr: "unexpected content after closing quote"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			fields, serr := splitFields(tt.line, indentation(tt.line))
			if tt.wantErr != "" {
				if serr == nil || !strings.HasPrefix(serr.msg, tt.wantErr) {
					t.Fatalf("splitFields(%q) error = %v, want %q", tt.line, serr, tt.wantErr)
				}
				return
			}
			if serr != nil {
				t.Fatalf("splitFields(%q) error = %s", tt.line, serr.msg)
			}
			if len(fields) != len(tt.want) {
				t.Fatalf("splitFields(%q) = %d fields, want %d", tt.line, len(fields), len(tt.want))
			}
			for i, f := range fields {
				if f.value != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, f.value, tt.want[i])
				}
			}
		})
	}
}

func TestIconSet(t *testing.T) {
	var none IconSet
	if !none.Contains("anything") {
		t.Error("nil set should accept any icon")
	}
	s := NewIconSet("Search", " home ")
	if !s.Contains("SEARCH") || !s.Contains("home") || s.Contains("gear") {
		t.Errorf("Contains() mismatch for %v", s.Names())
	}
	if NewIconSet() != nil {
		t.Error("NewIconSet() with no names should be nil")
	}
}
