package columns

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/matzehuels/uxl/pkg/document"
)

func cols(weights ...int) []document.Column {
	out := make([]document.Column, len(weights))
	for i, w := range weights {
		out[i] = document.Column{Weight: w}
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		weights []int
		want    []int
	}{
		{"already 100", []int{50, 30, 20}, []int{50, 30, 20}},
		{"thirds", []int{1, 1, 1}, []int{34, 33, 33}},
		{"two to one", []int{2, 1}, []int{67, 33}},
		{"one to two", []int{1, 2}, []int{33, 67}},
		{"zero column", []int{0, 1}, []int{0, 100}},
		{"single", []int{7}, []int{100}},
		{"sevenths", []int{3, 3, 3, 3, 3, 3, 3}, []int{15, 15, 14, 14, 14, 14, 14}},
		{"over 100", []int{100, 100, 50}, []int{40, 40, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(cols(tt.weights...))
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if w := Weights(got); !slices.Equal(w, tt.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.weights, w, tt.want)
			}
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		weights []int
		want    error
	}{
		{"empty", nil, ErrNoColumns},
		{"all zero", []int{0, 0}, ErrZeroTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(cols(tt.weights...))
			if !errors.Is(err, tt.want) {
				t.Errorf("Normalize() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Normalize(cols(101)); err == nil {
		t.Error("Normalize() with weight 101: expected error")
	}
}

func TestNormalizeSumsTo100(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(12)
		weights := make([]int, n)
		for j := range weights {
			weights[j] = 1 + rng.Intn(100)
		}
		got, err := Normalize(cols(weights...))
		if err != nil {
			t.Fatalf("Normalize(%v) error = %v", weights, err)
		}
		sum := 0
		for _, c := range got {
			if c.Weight < 0 {
				t.Fatalf("Normalize(%v) produced negative weight: %v", weights, Weights(got))
			}
			sum += c.Weight
		}
		if sum != 100 {
			t.Fatalf("Normalize(%v) sums to %d: %v", weights, sum, Weights(got))
		}
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := cols(1, 1, 1)
	if _, err := Normalize(in); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(Weights(in), []int{1, 1, 1}) {
		t.Errorf("input mutated: %v", Weights(in))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    []document.Column
		wantErr bool
	}{
		{
			name: "aligned",
			spec: "2L,1R,1",
			want: []document.Column{
				{Weight: 2, Align: document.HLeft},
				{Weight: 1, Align: document.HRight},
				{Weight: 1, Align: document.HCenter},
			},
		},
		{
			name: "spaces and lower case",
			spec: " 30l , 70c ",
			want: []document.Column{
				{Weight: 30, Align: document.HLeft},
				{Weight: 70, Align: document.HCenter},
			},
		},
		{name: "empty", spec: "", wantErr: true},
		{name: "empty item", spec: "1,,2", wantErr: true},
		{name: "bad align", spec: "1X", wantErr: true},
		{name: "negative", spec: "-1", wantErr: true},
		{name: "too large", spec: "101", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if !tt.wantErr && !slices.Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseAndNormalize(t *testing.T) {
	got, err := ParseAndNormalize("1L,1R")
	if err != nil {
		t.Fatal(err)
	}
	want := []document.Column{{Weight: 50, Align: document.HLeft}, {Weight: 50, Align: document.HRight}}
	if !slices.Equal(got, want) {
		t.Errorf("ParseAndNormalize() = %v, want %v", got, want)
	}
}
