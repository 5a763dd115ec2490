package genealogy

import (
	"testing"

	"github.com/awohns/copyviz/pkg/errors"
)

func TestNewSiteIndex(t *testing.T) {
	idx, err := NewSiteIndex([]float64{2.5, 7.1, 12.0}, 15)
	if err != nil {
		t.Fatalf("NewSiteIndex() error: %v", err)
	}

	tests := []struct {
		pos  float64
		want int
	}{
		{0, 0},   // left sentinel
		{2.5, 0}, // first site
		{7.1, 1},
		{12.0, 2},
		{15, 3}, // right sentinel maps to the site count
	}

	for _, tt := range tests {
		got, err := idx.Lookup(tt.pos)
		if err != nil {
			t.Fatalf("Lookup(%g) error: %v", tt.pos, err)
		}
		if got != tt.want {
			t.Errorf("Lookup(%g) = %d, want %d", tt.pos, got, tt.want)
		}
	}

	if idx.NumSites() != 3 {
		t.Errorf("NumSites() = %d, want 3", idx.NumSites())
	}
}

func TestSiteIndexLookupUnknown(t *testing.T) {
	idx, err := NewSiteIndex([]float64{2.5}, 10)
	if err != nil {
		t.Fatalf("NewSiteIndex() error: %v", err)
	}
	_, err = idx.Lookup(3.3)
	if !errors.Is(err, errors.ErrCodeMalformedGenealogy) {
		t.Errorf("Lookup(3.3) = %v, want MALFORMED_GENEALOGY", err)
	}
}

func TestNewSiteIndexBadPositions(t *testing.T) {
	tests := []struct {
		name      string
		positions []float64
		length    float64
	}{
		{"not increasing", []float64{5, 3}, 10},
		{"duplicate", []float64{5, 5}, 10},
		{"at zero", []float64{0, 5}, 10},
		{"beyond length", []float64{5, 11}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSiteIndex(tt.positions, tt.length); err == nil {
				t.Error("NewSiteIndex() should fail")
			}
		})
	}
}

func TestMaxChildren(t *testing.T) {
	edges := []Edge{
		{Left: 0, Right: 10, Parent: 0, Children: []int{1, 2, 3, 4}}, // root edges excluded
		{Left: 0, Right: 5, Parent: 1, Children: []int{2, 3}},
		{Left: 5, Right: 10, Parent: 2, Children: []int{3}},
	}
	got, err := MaxChildren(edges)
	if err != nil {
		t.Fatalf("MaxChildren() error: %v", err)
	}
	if got != 2 {
		t.Errorf("MaxChildren() = %d, want 2", got)
	}
}

func TestMaxChildrenNoNonRootEdges(t *testing.T) {
	edges := []Edge{
		{Left: 0, Right: 10, Parent: 0, Children: []int{1, 2}},
	}
	_, err := MaxChildren(edges)
	if !errors.Is(err, errors.ErrCodeBadNormalization) {
		t.Errorf("MaxChildren() = %v, want BAD_NORMALIZATION", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edges []Edge
		valid bool
	}{
		{
			name: "well formed",
			edges: []Edge{
				{Left: 0, Right: 5, Parent: 1, Children: []int{2}},
			},
			valid: true,
		},
		{
			name: "empty interval",
			edges: []Edge{
				{Left: 5, Right: 5, Parent: 1, Children: []int{2}},
			},
		},
		{
			name: "inverted interval",
			edges: []Edge{
				{Left: 7, Right: 5, Parent: 1, Children: []int{2}},
			},
		},
		{
			name: "parent outside node space",
			edges: []Edge{
				{Left: 0, Right: 5, Parent: 9, Children: []int{2}},
			},
		},
		{
			name: "sample as parent",
			edges: []Edge{
				{Left: 0, Right: 5, Parent: 3, Children: []int{1}},
			},
		},
		{
			name: "child is root",
			edges: []Edge{
				{Left: 0, Right: 5, Parent: 1, Children: []int{0}},
			},
		},
		{
			name: "self parent",
			edges: []Edge{
				{Left: 0, Right: 5, Parent: 2, Children: []int{2}},
			},
		},
		{
			name: "no children",
			edges: []Edge{
				{Left: 0, Right: 5, Parent: 1, Children: nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.edges, 2, 4)
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, errors.ErrCodeMalformedGenealogy) {
				t.Errorf("Validate() = %v, want MALFORMED_GENEALOGY", err)
			}
		})
	}
}
