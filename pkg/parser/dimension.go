package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/uxl/pkg/document"
)

// MaxPixels bounds pixel dimensions and canvas sizes.
const MaxPixels = 100000

var (
	sizeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Number", Pattern: `\d+`},
		{Name: "Percent", Pattern: `%`},
		{Name: "Overflow", Pattern: `[CS]`},
		{Name: "Cross", Pattern: `[xX]`},
	})

	numberToken   = sizeLexer.Symbols()["Number"]
	percentToken  = sizeLexer.Symbols()["Percent"]
	overflowToken = sizeLexer.Symbols()["Overflow"]
	crossToken    = sizeLexer.Symbols()["Cross"]
)

// looksLikeSize reports whether s has the shape of a size field: only digits,
// '%', 'C', 'S' and exactly one 'x', with at least one digit.
func looksLikeSize(s string) bool {
	crosses, digits := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == 'x' || r == 'X':
			crosses++
		case r == '%' || r == 'C' || r == 'S':
		default:
			return false
		}
	}
	return crosses == 1 && digits > 0
}

// parseSize parses "<dim>x<dim>" where each side is [<int>[%]][C|S].
func parseSize(s string) (document.Size, error) {
	lex, err := sizeLexer.LexString("", s)
	if err != nil {
		return document.Size{}, err
	}

	var sides [2][]lexer.Token
	side := 0
	for {
		tok, err := lex.Next()
		if err != nil {
			return document.Size{}, err
		}
		if tok.EOF() {
			break
		}
		if tok.Type == crossToken {
			side++
			if side > 1 {
				return document.Size{}, fmt.Errorf("only one 'x' may separate width and height")
			}
			continue
		}
		sides[side] = append(sides[side], tok)
	}
	if len(sides[0]) == 0 && len(sides[1]) == 0 {
		return document.Size{}, fmt.Errorf("at least one side must be given")
	}

	w, err := parseDimension(sides[0], "width")
	if err != nil {
		return document.Size{}, err
	}
	h, err := parseDimension(sides[1], "height")
	if err != nil {
		return document.Size{}, err
	}
	return document.Size{W: w, H: h}, nil
}

// parseDimension parses one side: [Number [Percent]] [Overflow].
func parseDimension(toks []lexer.Token, axis string) (document.Dimension, error) {
	var d document.Dimension
	if len(toks) == 0 {
		return d, nil
	}

	i := 0
	if toks[i].Type == numberToken {
		v, err := strconv.Atoi(toks[i].Value)
		if err != nil {
			return d, fmt.Errorf("%s %q is not a number", axis, toks[i].Value)
		}
		d.Unit, d.Value = document.UnitPx, v
		i++
		if i < len(toks) && toks[i].Type == percentToken {
			d.Unit = document.UnitPercent
			i++
		}
	}
	if i < len(toks) && toks[i].Type == overflowToken {
		if d.Unit == document.UnitAuto {
			return d, fmt.Errorf("%s overflow %q needs an explicit value", axis, toks[i].Value)
		}
		if toks[i].Value == "C" {
			d.Overflow = document.OverflowCrop
		} else {
			d.Overflow = document.OverflowScroll
		}
		i++
	}
	if i != len(toks) {
		return d, fmt.Errorf("unexpected %q in %s", joinTokens(toks[i:]), axis)
	}

	switch d.Unit {
	case document.UnitPercent:
		if d.Value > 100 {
			return d, fmt.Errorf("%s %d%% out of range 0..100", axis, d.Value)
		}
	case document.UnitPx:
		if d.Value > MaxPixels {
			return d, fmt.Errorf("%s %d out of range 0..%d", axis, d.Value, MaxPixels)
		}
	}
	return d, nil
}

func joinTokens(toks []lexer.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Value)
	}
	return b.String()
}
