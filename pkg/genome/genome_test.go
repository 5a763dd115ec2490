package genome

import (
	"testing"

	"github.com/awohns/copyviz/pkg/errors"
)

func TestAncestorHaplotypeValidate(t *testing.T) {
	valid := AncestorHaplotype{
		ID:         1,
		Alleles:    []Allele{0, 1, AlleleUnknown},
		Start:      0,
		End:        2,
		FocalSites: []int{1},
	}

	tests := []struct {
		name     string
		mutate   func(*AncestorHaplotype)
		wantCode errors.Code
	}{
		{
			name:   "valid",
			mutate: func(a *AncestorHaplotype) {},
		},
		{
			name:     "id zero is reserved",
			mutate:   func(a *AncestorHaplotype) { a.ID = 0 },
			wantCode: errors.ErrCodeInvalidTrace,
		},
		{
			name:     "wrong site count",
			mutate:   func(a *AncestorHaplotype) { a.Alleles = []Allele{0, 1} },
			wantCode: errors.ErrCodeDimensionMismatch,
		},
		{
			name:     "empty interval",
			mutate:   func(a *AncestorHaplotype) { a.Start, a.End = 2, 2 },
			wantCode: errors.ErrCodeInvalidTrace,
		},
		{
			name:     "no focal sites",
			mutate:   func(a *AncestorHaplotype) { a.FocalSites = nil },
			wantCode: errors.ErrCodeInvalidTrace,
		},
		{
			name:     "focal site out of range",
			mutate:   func(a *AncestorHaplotype) { a.FocalSites = []int{3} },
			wantCode: errors.ErrCodeInvalidTrace,
		},
		{
			name:     "illegal allele value",
			mutate:   func(a *AncestorHaplotype) { a.Alleles = []Allele{0, 2, 1} },
			wantCode: errors.ErrCodeInvalidTrace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			a.Alleles = append([]Allele(nil), valid.Alleles...)
			a.FocalSites = append([]int(nil), valid.FocalSites...)
			tt.mutate(&a)

			err := a.Validate(3)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("Validate() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestSampleMatrixValidate(t *testing.T) {
	m := SampleMatrix{{0, 1, 0}, {1, 1, 0}}
	if err := m.Validate(3); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	ragged := SampleMatrix{{0, 1, 0}, {1, 1}}
	if err := ragged.Validate(3); !errors.Is(err, errors.ErrCodeDimensionMismatch) {
		t.Errorf("ragged matrix: got %v, want DIMENSION_MISMATCH", err)
	}

	unknown := SampleMatrix{{0, AlleleUnknown, 0}}
	if err := unknown.Validate(3); !errors.Is(err, errors.ErrCodeInvalidTrace) {
		t.Errorf("unknown allele: got %v, want INVALID_TRACE", err)
	}
}

func TestDerivedCounts(t *testing.T) {
	m := SampleMatrix{
		{0, 1, 1},
		{0, 1, 0},
		{0, 1, 1},
	}
	got := m.DerivedCounts()
	want := []int{0, 3, 2}
	for k := range want {
		if got[k] != want[k] {
			t.Errorf("DerivedCounts()[%d] = %d, want %d", k, got[k], want[k])
		}
	}
}

func TestIDSpaceRoundTrip(t *testing.T) {
	space := IDSpace{NumAncestors: 3, NumSamples: 2}

	tests := []struct {
		node NodeID
		want int
	}{
		{Root(), 0},
		{Ancestor(1), 1},
		{Ancestor(3), 3},
		{Sample(0), 4},
		{Sample(1), 5},
	}

	for _, tt := range tests {
		t.Run(tt.node.String(), func(t *testing.T) {
			id := space.Encode(tt.node)
			if id != tt.want {
				t.Fatalf("Encode(%v) = %d, want %d", tt.node, id, tt.want)
			}
			back, err := space.Decode(id)
			if err != nil {
				t.Fatalf("Decode(%d) error: %v", id, err)
			}
			if back != tt.node {
				t.Errorf("Decode(%d) = %v, want %v", id, back, tt.node)
			}
		})
	}

	if space.Size() != 6 {
		t.Errorf("Size() = %d, want 6", space.Size())
	}
	if _, err := space.Decode(6); err == nil {
		t.Error("Decode(6) should fail for out-of-space id")
	}
}

func TestIDSpaceEncodePanics(t *testing.T) {
	space := IDSpace{NumAncestors: 2, NumSamples: 1}

	for _, n := range []NodeID{Ancestor(0), Ancestor(3), Sample(-1), Sample(1)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Encode(%v) should panic", n)
				}
			}()
			space.Encode(n)
		}()
	}
}
