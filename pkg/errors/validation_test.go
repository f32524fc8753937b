package errors

import (
	"strings"
	"testing"
)

func TestValidatePageID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"home", false},
		{"Sign-Up_2", false},
		{"", true},
		{"has space", true},
		{"dot.id", true},
		{"ünï", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidatePageID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePageID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateReference(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{"relative", "img/logo.png", false},
		{"url", "https://example.com/a.png", false},
		{"empty", "", true},
		{"space", "a b.png", true},
		{"control", "a\x01.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReference(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateReference(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple", "out/home.svg", false},
		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secret", true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.path, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateSourceName(t *testing.T) {
	if err := ValidateSourceName("prototype.uxl"); err != nil {
		t.Errorf("ValidateSourceName() error = %v", err)
	}
	if err := ValidateSourceName("bad\nname"); err == nil {
		t.Error("ValidateSourceName() with newline: expected error")
	}
	if err := ValidateSourceName(strings.Repeat("x", 300)); err == nil {
		t.Error("ValidateSourceName() too long: expected error")
	}
}
