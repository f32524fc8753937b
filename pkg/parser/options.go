package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Mode selects how strictly actions are checked.
type Mode int

const (
	// Strict rejects unknown actions and actions on tables.
	Strict Mode = iota
	// Permissive silently drops unknown actions and actions on tables.
	// Every other rule is identical to Strict.
	Permissive
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Permissive {
		return "permissive"
	}
	return "strict"
}

// ParseMode converts a mode name to a Mode. The empty string is Strict.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "permissive":
		return Permissive, nil
	default:
		return Strict, fmt.Errorf("invalid parse mode %q (want strict or permissive)", s)
	}
}

// IconSet is the set of icon names a host can draw. A nil set accepts every
// syntactically valid name.
type IconSet map[string]struct{}

// NewIconSet builds an icon set from names, compared case-insensitively.
// It returns nil when names is empty.
func NewIconSet(names ...string) IconSet {
	if len(names) == 0 {
		return nil
	}
	s := make(IconSet, len(names))
	for _, n := range names {
		s[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	return s
}

// Contains reports whether name is in the set.
func (s IconSet) Contains(name string) bool {
	if s == nil {
		return true
	}
	_, ok := s[strings.ToLower(name)]
	return ok
}

// Names returns the sorted icon names.
func (s IconSet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Options configures a parse.
type Options struct {
	Mode       Mode    // Strict (default) or Permissive
	SourceName string  // Label used in diagnostics
	Icons      IconSet // Allowed icon names; nil accepts any
}
