package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/uxl/pkg/document"
	uxlerrors "github.com/matzehuels/uxl/pkg/errors"
	"github.com/matzehuels/uxl/pkg/suggest"
)

// fieldKind is the content class of a field. The declaration order is the
// recognizer precedence.
type fieldKind int

const (
	fieldMargin fieldKind = iota
	fieldPadding
	fieldRadius
	fieldIcon
	fieldBackground
	fieldSource
	fieldFit
	fieldColumns
	fieldSize
	fieldAlign
	fieldAction
	fieldText
)

var fieldKindNames = [...]string{
	fieldMargin:     "margin",
	fieldPadding:    "padding",
	fieldRadius:     "radius",
	fieldIcon:       "icon",
	fieldBackground: "background",
	fieldSource:     "source",
	fieldFit:        "fit",
	fieldColumns:    "columns",
	fieldSize:       "size",
	fieldAlign:      "alignment",
	fieldAction:     "action",
	fieldText:       "text",
}

func (k fieldKind) String() string { return fieldKindNames[k] }

// kindSet is a bit set of field kinds.
type kindSet uint16

func setOf(kinds ...fieldKind) kindSet {
	var s kindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

func (s kindSet) has(k fieldKind) bool { return s&(1<<k) != 0 }

const (
	// MaxSpacing bounds margin, padding and radius values.
	MaxSpacing = 1000
	// MinIconSize and MaxIconSize bound the optional icon pixel size.
	MinIconSize = 8
	MaxIconSize = 48
)

var (
	spacingRegex  = regexp.MustCompile(`^[MPR]\d+$`)
	alignRegex    = regexp.MustCompile(`^[LRTB]+$`)
	actionRegex   = regexp.MustCompile(`^[A-Z][A-Z_]*:\S*$`)
	iconNameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// classify returns the kind a field's content matches. Quoted fields are
// always text.
func classify(f field) fieldKind {
	if f.quoted {
		return fieldText
	}
	v := f.value
	switch {
	case spacingRegex.MatchString(v):
		switch v[0] {
		case 'M':
			return fieldMargin
		case 'P':
			return fieldPadding
		default:
			return fieldRadius
		}
	case hasPrefixFold(v, "ICON:"):
		return fieldIcon
	case hasPrefixFold(v, "BG:"):
		return fieldBackground
	case hasPrefixFold(v, "SRC:"):
		return fieldSource
	case v == "FIT" || v == "CROP" || hasPrefixFold(v, "FIT:"):
		return fieldFit
	case hasPrefixFold(v, "COLS:"):
		return fieldColumns
	case looksLikeSize(v):
		return fieldSize
	case alignRegex.MatchString(v):
		return fieldAlign
	case hasPrefixFold(v, "GOTO:") || actionRegex.MatchString(v):
		return fieldAction
	default:
		return fieldText
	}
}

// isGoto reports whether an action field uses the GOTO verb.
func isGoto(v string) bool { return hasPrefixFold(v, "GOTO:") }

// values collects the classified fields of one tag line.
type values struct {
	seen kindSet

	margin, padding, radius int
	icon                    string
	iconSize                int
	background, source      string
	fit                     document.FitMode
	columns                 string
	columnsCol              int
	size                    document.Size
	align                   document.Alignment
	action                  document.Action
	actionField             field
	texts                   []field
}

// set parses f as kind and stores the result. Errors describe what is wrong
// with the value; the caller adds the field, tag and expected format.
func (v *values) set(kind fieldKind, f field, icons IconSet) error {
	s := f.value
	switch kind {
	case fieldMargin, fieldPadding, fieldRadius:
		n, err := strconv.Atoi(s[1:])
		if err != nil || n > MaxSpacing {
			return fmt.Errorf("value must be between 0 and %d", MaxSpacing)
		}
		switch kind {
		case fieldMargin:
			v.margin = n
		case fieldPadding:
			v.padding = n
		default:
			v.radius = n
		}

	case fieldIcon:
		parts := strings.Split(s[len("ICON:"):], ":")
		if len(parts) > 2 {
			return fmt.Errorf("too many ':' separators")
		}
		name := parts[0]
		if !iconNameRegex.MatchString(name) {
			return fmt.Errorf("icon name %q must be letters, digits, '_' or '-'", name)
		}
		if len(parts) == 2 {
			size, err := strconv.Atoi(parts[1])
			if err != nil {
				return fmt.Errorf("icon size %q is not a number", parts[1])
			}
			if size < MinIconSize || size > MaxIconSize {
				return fmt.Errorf("icon size %d out of range %d..%d", size, MinIconSize, MaxIconSize)
			}
			v.iconSize = size
		}
		if !icons.Contains(name) {
			return fmt.Errorf("unknown icon %q%s", name, suggest.Hint(strings.ToLower(name), icons.Names()))
		}
		v.icon = strings.ToLower(name)

	case fieldBackground, fieldSource:
		ref := s[strings.IndexByte(s, ':')+1:]
		if err := uxlerrors.ValidateReference(ref); err != nil {
			return fmt.Errorf("%s", uxlerrors.UserMessage(err))
		}
		if kind == fieldBackground {
			v.background = ref
		} else {
			v.source = ref
		}

	case fieldFit:
		switch {
		case s == "FIT":
			v.fit = document.FitContain
		case s == "CROP":
			v.fit = document.FitCover
		case strings.EqualFold(s[len("FIT:"):], "contain"):
			v.fit = document.FitContain
		case strings.EqualFold(s[len("FIT:"):], "cover"):
			v.fit = document.FitCover
		default:
			return fmt.Errorf("fit mode %q must be contain or cover", s[len("FIT:"):])
		}

	case fieldColumns:
		spec := strings.TrimSpace(s[len("COLS:"):])
		if spec == "" {
			return fmt.Errorf("at least one column is required")
		}
		v.columns = spec
		v.columnsCol = f.col

	case fieldSize:
		size, err := parseSize(s)
		if err != nil {
			return err
		}
		v.size = size

	case fieldAlign:
		align, err := parseAlignment(s)
		if err != nil {
			return err
		}
		v.align = align

	case fieldAction:
		target := strings.TrimSpace(s[len("GOTO:"):])
		if target == "" {
			return fmt.Errorf("target page id is empty")
		}
		if err := uxlerrors.ValidatePageID(target); err != nil {
			return fmt.Errorf("target %q may only contain letters, digits, '_' and '-'", target)
		}
		v.action = document.Goto{Target: document.NormalizeID(target)}
		v.actionField = f
	}
	return nil
}

// parseAlignment parses letters from {L,R,T,B}; each at most once, with L+R
// and T+B rejected.
func parseAlignment(s string) (document.Alignment, error) {
	var a document.Alignment
	seen := map[rune]bool{}
	for _, r := range s {
		if seen[r] {
			return a, fmt.Errorf("letter %c repeated", r)
		}
		seen[r] = true
	}
	if seen['L'] && seen['R'] {
		return a, fmt.Errorf("L and R cannot be combined")
	}
	if seen['T'] && seen['B'] {
		return a, fmt.Errorf("T and B cannot be combined")
	}
	switch {
	case seen['L']:
		a.H = document.HLeft
	case seen['R']:
		a.H = document.HRight
	}
	switch {
	case seen['T']:
		a.V = document.VTop
	case seen['B']:
		a.V = document.VBottom
	}
	return a, nil
}
