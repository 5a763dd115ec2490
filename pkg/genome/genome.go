// Package genome defines the haplotype data model shared by the
// copying-path visualizer: ancestor haplotypes reconstructed by an
// external inference engine, the observed sample matrix, and the
// unified node-id space that covers both.
//
// # Node IDs
//
// Ancestors and samples live in one dense integer id space used for
// matrix rows and row layout:
//
//	0            root sentinel ("no ancestor")
//	1..A         ancestor haplotypes, in engine order (assumed temporal)
//	A+1..A+S     sample haplotypes
//
// Raw integers are error-prone, so the package exposes [NodeID], a
// tagged (kind, index) pair, together with [IDSpace] for explicit
// encoding and decoding. All matrix-indexing code goes through the
// IDSpace rather than relying on integer ranges lining up by accident.
package genome

import (
	"fmt"

	"github.com/awohns/copyviz/pkg/errors"
)

// Allele is a single haplotype value at one site.
type Allele int8

// Allele values. Ancestor haplotypes may be unknown outside their
// defining interval; sample haplotypes are always 0 or 1.
const (
	AlleleAncestral Allele = 0
	AlleleDerived   Allele = 1
	AlleleUnknown   Allele = -1
)

// AncestorHaplotype is one reconstructed ancestor: a per-site allele
// array, the site interval [Start, End) on which it is defined, and
// the focal sites that diagnose it. Owned by the external inference
// engine and read-only here.
type AncestorHaplotype struct {
	// ID is the ancestor's index in 1..A. ID 0 is reserved for the
	// root sentinel and never corresponds to a real haplotype.
	ID int

	// Alleles holds one value per site; AlleleUnknown outside the
	// defining interval.
	Alleles []Allele

	// Start and End delimit the defining site interval [Start, End).
	Start, End int

	// FocalSites lists the sites diagnostic of this ancestor,
	// ordered by position. Must be non-empty.
	FocalSites []int
}

// Validate checks the ancestor against the shared site count.
func (a AncestorHaplotype) Validate(numSites int) error {
	if a.ID < 1 {
		return errors.New(errors.ErrCodeInvalidTrace, "ancestor id %d: ids start at 1", a.ID)
	}
	if len(a.Alleles) != numSites {
		return errors.New(errors.ErrCodeDimensionMismatch,
			"ancestor %d has %d sites, want %d", a.ID, len(a.Alleles), numSites)
	}
	if a.Start < 0 || a.End > numSites || a.Start >= a.End {
		return errors.New(errors.ErrCodeInvalidTrace,
			"ancestor %d has invalid interval [%d, %d)", a.ID, a.Start, a.End)
	}
	if len(a.FocalSites) == 0 {
		return errors.New(errors.ErrCodeInvalidTrace, "ancestor %d has no focal sites", a.ID)
	}
	for _, s := range a.FocalSites {
		if s < 0 || s >= numSites {
			return errors.New(errors.ErrCodeInvalidTrace,
				"ancestor %d focal site %d out of range [0, %d)", a.ID, s, numSites)
		}
	}
	for k, v := range a.Alleles {
		if v != AlleleAncestral && v != AlleleDerived && v != AlleleUnknown {
			return errors.New(errors.ErrCodeInvalidTrace,
				"ancestor %d site %d has allele %d", a.ID, k, v)
		}
	}
	return nil
}

// SampleMatrix is the observed haplotype data: one row per sample,
// one column per site, values 0 or 1.
type SampleMatrix [][]Allele

// NumSamples returns the number of sample rows.
func (m SampleMatrix) NumSamples() int { return len(m) }

// NumSites returns the number of site columns, or 0 for an empty matrix.
func (m SampleMatrix) NumSites() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Validate checks that every row has numSites columns and that all
// values are 0 or 1.
func (m SampleMatrix) Validate(numSites int) error {
	for j, row := range m {
		if len(row) != numSites {
			return errors.New(errors.ErrCodeDimensionMismatch,
				"sample %d has %d sites, want %d", j, len(row), numSites)
		}
		for k, v := range row {
			if v != AlleleAncestral && v != AlleleDerived {
				return errors.New(errors.ErrCodeInvalidTrace,
					"sample %d site %d has allele %d, want 0 or 1", j, k, v)
			}
		}
	}
	return nil
}

// DerivedCounts returns, for each site, the number of samples carrying
// the derived allele. The counts drive the frequency grouping in the
// row layout.
func (m SampleMatrix) DerivedCounts() []int {
	counts := make([]int, m.NumSites())
	for _, row := range m {
		for k, v := range row {
			if v == AlleleDerived {
				counts[k]++
			}
		}
	}
	return counts
}

// NodeKind distinguishes the three node categories of the unified id
// space.
type NodeKind int

const (
	// KindRoot is the reserved sentinel id 0, meaning "no ancestor".
	KindRoot NodeKind = iota
	// KindAncestor is a reconstructed ancestor haplotype.
	KindAncestor
	// KindSample is an observed sample haplotype.
	KindSample
)

// String returns the lowercase kind name.
func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindAncestor:
		return "ancestor"
	case KindSample:
		return "sample"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// NodeID is a tagged node identifier. For KindAncestor the index is
// the ancestor id (1..A); for KindSample it is the sample row (0..S-1);
// for KindRoot it is always 0.
type NodeID struct {
	Kind  NodeKind
	Index int
}

// Root returns the root sentinel id.
func Root() NodeID { return NodeID{Kind: KindRoot} }

// Ancestor returns the NodeID for ancestor i (1..A).
func Ancestor(i int) NodeID { return NodeID{Kind: KindAncestor, Index: i} }

// Sample returns the NodeID for sample row j (0..S-1).
func Sample(j int) NodeID { return NodeID{Kind: KindSample, Index: j} }

// String formats the id as "root", "ancestor 3", or "sample 0".
func (n NodeID) String() string {
	if n.Kind == KindRoot {
		return "root"
	}
	return fmt.Sprintf("%s %d", n.Kind, n.Index)
}

// IDSpace describes the dense node-id space for a run: A ancestors and
// S samples plus the root sentinel, for A+S+1 ids total.
type IDSpace struct {
	NumAncestors int // A
	NumSamples   int // S
}

// Size returns the total number of dense ids, A+S+1.
func (s IDSpace) Size() int { return s.NumAncestors + s.NumSamples + 1 }

// Encode converts a NodeID to its dense integer form. It panics on an
// id outside the space; callers construct NodeIDs from validated data.
func (s IDSpace) Encode(n NodeID) int {
	switch n.Kind {
	case KindRoot:
		return 0
	case KindAncestor:
		if n.Index < 1 || n.Index > s.NumAncestors {
			panic(fmt.Sprintf("copyviz: ancestor %d outside space of %d ancestors", n.Index, s.NumAncestors))
		}
		return n.Index
	case KindSample:
		if n.Index < 0 || n.Index >= s.NumSamples {
			panic(fmt.Sprintf("copyviz: sample %d outside space of %d samples", n.Index, s.NumSamples))
		}
		return s.NumAncestors + 1 + n.Index
	}
	panic(fmt.Sprintf("copyviz: unknown node kind %d", n.Kind))
}

// Decode converts a dense integer id back to its tagged form.
func (s IDSpace) Decode(id int) (NodeID, error) {
	switch {
	case id == 0:
		return Root(), nil
	case id >= 1 && id <= s.NumAncestors:
		return Ancestor(id), nil
	case id > s.NumAncestors && id < s.Size():
		return Sample(id - s.NumAncestors - 1), nil
	}
	return NodeID{}, errors.New(errors.ErrCodeInternal,
		"node id %d outside space of %d ancestors and %d samples", id, s.NumAncestors, s.NumSamples)
}
