package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/uxl/pkg/document"
)

// field is one backslash-delimited token of a tag line.
type field struct {
	value  string // Unescaped value; trimmed when unquoted
	src    string // Source text as written
	quoted bool
	col    int // 1-based rune column of the field start
}

// splitLines normalizes line endings and strips a leading byte order mark.
func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// isBlank reports whether a line holds only spaces.
func isBlank(line string) bool {
	return strings.Trim(line, " ") == ""
}

// isComment reports whether a line's content after leading spaces starts with ';'.
func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), ";")
}

var (
	versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?$`)
	canvasRegex  = regexp.MustCompile(`^(\d+)([CS]?)[xX](\d+)([CS]?)$`)
)

// isVersionLine reports whether a significant line is a version declaration.
func isVersionLine(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= 4 && strings.EqualFold(t[:4], "UXL:")
}

// isCanvasLine reports whether a significant line is a canvas declaration.
// Canvas lines start with a digit at indentation 0.
func isCanvasLine(line string) bool {
	return line != "" && line[0] >= '0' && line[0] <= '9'
}

// parseVersion checks a version declaration ("UXL:1.0") and returns the
// normalized major.minor version.
func (p *parser) parseVersion(num int, line string) (string, error) {
	v := strings.TrimSpace(strings.TrimSpace(line)[4:])
	m := versionRegex.FindStringSubmatch(v)
	if m == nil {
		return "", p.errorf(num, 1, "invalid version line %q (want UXL:<major>.<minor>[.<patch>])", strings.TrimSpace(line))
	}
	if m[1] != "1" || m[2] != "0" || (m[3] != "" && strings.Trim(m[3], "0") != "") {
		return "", p.errorf(num, 1, "unsupported document version %q (supported: %s)", v, document.DefaultVersion)
	}
	return document.DefaultVersion, nil
}

// parseCanvas parses "<W>[C|S]x<H>[C|S]".
func (p *parser) parseCanvas(num int, line string) (document.Canvas, error) {
	t := strings.TrimSpace(line)
	m := canvasRegex.FindStringSubmatch(t)
	if m == nil {
		return document.Canvas{}, p.errorf(num, 1, "invalid canvas size %q (want <W>[C|S]x<H>[C|S], e.g. 390x844S)", t)
	}
	w, errW := strconv.Atoi(m[1])
	h, errH := strconv.Atoi(m[3])
	if errW != nil || errH != nil || w <= 0 || h <= 0 || w > MaxPixels || h > MaxPixels {
		return document.Canvas{}, p.errorf(num, 1, "invalid canvas size %q: width and height must be between 1 and %d", t, MaxPixels)
	}
	return document.Canvas{
		W:         w,
		H:         h,
		OverflowX: overflowFromSuffix(m[2]),
		OverflowY: overflowFromSuffix(m[4]),
	}, nil
}

func overflowFromSuffix(s string) document.Overflow {
	switch s {
	case "C":
		return document.OverflowCrop
	case "S":
		return document.OverflowScroll
	default:
		return document.OverflowNone
	}
}

// indentation returns the number of leading spaces.
func indentation(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// splitError describes a field-splitting failure at a byte offset of the line.
type splitError struct {
	offset int
	msg    string
}

// splitFields splits the content of a tag line (starting at byte offset start)
// into backslash-delimited fields. Quoted fields support only \" and \\.
func splitFields(line string, start int) ([]field, *splitError) {
	var fields []field
	i := start
	for {
		// Leading spaces belong to no field.
		for i < len(line) && line[i] == ' ' {
			i++
		}
		fieldStart := i

		if i < len(line) && line[i] == '"' {
			var b strings.Builder
			i++
			closed := false
			for i < len(line) {
				c := line[i]
				if c == '\\' {
					if i+1 >= len(line) {
						break
					}
					next := line[i+1]
					if next != '"' && next != '\\' {
						return nil, &splitError{i, "invalid escape sequence \\" + string(next) + ` in quoted field (only \" and \\ are allowed)`}
					}
					b.WriteByte(next)
					i += 2
					continue
				}
				if c == '"' {
					closed = true
					i++
					break
				}
				b.WriteByte(c)
				i++
			}
			if !closed {
				return nil, &splitError{fieldStart, "unterminated quoted field"}
			}
			fields = append(fields, field{
				value:  b.String(),
				src:    line[fieldStart:i],
				quoted: true,
				col:    runeCol(line, fieldStart),
			})
			for i < len(line) && line[i] == ' ' {
				i++
			}
			if i == len(line) {
				return fields, nil
			}
			if line[i] != '\\' {
				return nil, &splitError{i, "unexpected content after closing quote"}
			}
			i++
			if i == len(line) {
				return nil, &splitError{i - 1, "trailing field separator"}
			}
			continue
		}

		end := strings.IndexByte(line[i:], '\\')
		if end < 0 {
			end = len(line)
		} else {
			end += i
		}
		raw := line[fieldStart:end]
		value := strings.TrimRight(raw, " ")
		if value == "" {
			return nil, &splitError{fieldStart, "empty field"}
		}
		fields = append(fields, field{
			value: value,
			src:   value,
			col:   runeCol(line, fieldStart),
		})
		if end == len(line) {
			return fields, nil
		}
		i = end + 1
		if i == len(line) {
			return nil, &splitError{end, "trailing field separator"}
		}
	}
}

// runeCol converts a byte offset into a 1-based rune column.
func runeCol(line string, offset int) int {
	if offset > len(line) {
		offset = len(line)
	}
	return utf8.RuneCountInString(line[:offset]) + 1
}
