// Package columns parses table column specifications and normalizes column
// weights into integer percentages that sum to exactly 100.
//
// Normalization uses largest-remainder (Hamilton) apportionment: each column
// receives the floor of its exact share, and the remaining percentage points go
// one at a time to the columns with the largest fractional remainders, ties
// broken by column order. Shares are computed with integer arithmetic so the
// result is exact and deterministic.
package columns

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/uxl/pkg/document"
)

// MaxWeight is the largest weight a single column may declare.
const MaxWeight = 100

var (
	// ErrNoColumns is returned when a specification declares no columns.
	ErrNoColumns = errors.New("table must declare at least one column")

	// ErrZeroTotal is returned when all column weights are zero.
	ErrZeroTotal = errors.New("column weights must sum to more than zero")
)

var itemRegex = regexp.MustCompile(`^(\d+)([LRClrc]?)$`)

// Parse parses a comma-separated column specification such as "2L,1R,1".
// Each item is a weight 0..100 followed by an optional alignment letter
// (L, R or C; default centered). Parse does not normalize.
func Parse(spec string) ([]document.Column, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrNoColumns
	}
	items := strings.Split(spec, ",")
	cols := make([]document.Column, 0, len(items))
	for i, item := range items {
		item = strings.TrimSpace(item)
		m := itemRegex.FindStringSubmatch(item)
		if m == nil {
			return nil, fmt.Errorf("column %d: invalid item %q (want <weight>[L|R|C])", i+1, item)
		}
		w, err := strconv.Atoi(m[1])
		if err != nil || w > MaxWeight {
			return nil, fmt.Errorf("column %d: weight %s out of range 0..%d", i+1, m[1], MaxWeight)
		}
		col := document.Column{Weight: w}
		switch strings.ToUpper(m[2]) {
		case "L":
			col.Align = document.HLeft
		case "R":
			col.Align = document.HRight
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// Normalize returns a copy of cols whose weights are integer percentages
// summing to exactly 100. Input that already sums to 100 is returned unchanged.
func Normalize(cols []document.Column) ([]document.Column, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	total := 0
	for i, c := range cols {
		if c.Weight < 0 || c.Weight > MaxWeight {
			return nil, fmt.Errorf("column %d: weight %d out of range 0..%d", i+1, c.Weight, MaxWeight)
		}
		total += c.Weight
	}
	if total == 0 {
		return nil, ErrZeroTotal
	}

	out := make([]document.Column, len(cols))
	copy(out, cols)
	if total == 100 {
		return out, nil
	}

	type share struct {
		index     int
		remainder int // numerator of the fractional part, over total
	}
	shares := make([]share, len(cols))
	assigned := 0
	for i, c := range cols {
		exact := c.Weight * 100
		out[i].Weight = exact / total
		shares[i] = share{index: i, remainder: exact % total}
		assigned += out[i].Weight
	}

	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].remainder > shares[b].remainder
	})
	for k := 0; k < 100-assigned; k++ {
		out[shares[k].index].Weight++
	}
	return out, nil
}

// ParseAndNormalize parses spec and normalizes the resulting columns.
func ParseAndNormalize(spec string) ([]document.Column, error) {
	cols, err := Parse(spec)
	if err != nil {
		return nil, err
	}
	return Normalize(cols)
}

// Weights returns the weights of cols.
func Weights(cols []document.Column) []int {
	out := make([]int, len(cols))
	for i, c := range cols {
		out[i] = c.Weight
	}
	return out
}
