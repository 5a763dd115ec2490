// Package genealogy models the copying genealogy supplied by the
// external inference engine: an edge list in genomic coordinates plus
// the site index that translates those coordinates to discrete sites.
//
// The engine guarantees that, for a fixed child, edge intervals are
// pairwise non-overlapping and cover the genome wherever the child
// exists. This package validates what it can cheaply (interval widths,
// known breakpoints); the per-site overlap check happens during parent
// matrix construction in the copying package, where the per-site
// arrays are materialized anyway.
package genealogy

import (
	"github.com/awohns/copyviz/pkg/errors"
)

// Edge records that parent is the copy source of every child over the
// genomic interval [Left, Right). Parent 0 denotes the genealogy root.
type Edge struct {
	Left     float64
	Right    float64
	Parent   int
	Children []int
}

// SiteIndex maps genomic positions to discrete site indices. It covers
// every site position plus the sentinel boundaries 0 and the sequence
// length, which maps to the site count. Read-only after construction.
type SiteIndex struct {
	index    map[float64]int
	numSites int
}

// NewSiteIndex builds the index from the per-site positions and the
// sequence length. Positions must be strictly increasing and inside
// (0, sequenceLength).
func NewSiteIndex(positions []float64, sequenceLength float64) (*SiteIndex, error) {
	idx := &SiteIndex{
		index:    make(map[float64]int, len(positions)+2),
		numSites: len(positions),
	}
	prev := 0.0
	for k, pos := range positions {
		if pos <= prev || pos >= sequenceLength {
			return nil, errors.New(errors.ErrCodeInvalidTrace,
				"site %d position %g not strictly increasing within (0, %g)", k, pos, sequenceLength)
		}
		idx.index[pos] = k
		prev = pos
	}
	// Sentinel boundaries so edges spanning the whole genome resolve.
	idx.index[0] = 0
	idx.index[sequenceLength] = len(positions)
	return idx, nil
}

// NumSites returns the number of discrete sites.
func (s *SiteIndex) NumSites() int { return s.numSites }

// Lookup translates a genomic position to its site index. A position
// that was never registered means the genealogy references a
// breakpoint the haplotype data does not know about, which is fatal.
func (s *SiteIndex) Lookup(pos float64) (int, error) {
	k, ok := s.index[pos]
	if !ok {
		return 0, errors.New(errors.ErrCodeMalformedGenealogy,
			"genealogy references position %g, which is not a known breakpoint", pos)
	}
	return k, nil
}

// MaxChildren returns the maximum fan-out over all non-root edges,
// the normalization constant for intensity heatmaps. A genealogy with
// no non-root edges has no usable normalization and fails rather than
// letting a later division produce garbage.
func MaxChildren(edges []Edge) (int, error) {
	max := 0
	for _, e := range edges {
		if e.Parent == 0 {
			continue
		}
		if len(e.Children) > max {
			max = len(e.Children)
		}
	}
	if max == 0 {
		return 0, errors.New(errors.ErrCodeBadNormalization,
			"genealogy has no non-root edges; intensity normalization is undefined")
	}
	return max, nil
}

// Validate checks per-edge well-formedness: positive-width intervals,
// parents restricted to the root or an ancestor (samples never donate),
// and children inside the given id-space size. Cross-edge invariants
// (overlap) are checked during parent matrix construction.
func Validate(edges []Edge, numAncestors, numNodes int) error {
	for i, e := range edges {
		if e.Left >= e.Right {
			return errors.New(errors.ErrCodeMalformedGenealogy,
				"edge %d has non-positive interval [%g, %g)", i, e.Left, e.Right)
		}
		if e.Parent < 0 || e.Parent > numAncestors {
			return errors.New(errors.ErrCodeMalformedGenealogy,
				"edge %d parent %d is not the root or one of the %d ancestors", i, e.Parent, numAncestors)
		}
		if len(e.Children) == 0 {
			return errors.New(errors.ErrCodeMalformedGenealogy, "edge %d has no children", i)
		}
		for _, c := range e.Children {
			if c < 1 || c >= numNodes {
				return errors.New(errors.ErrCodeMalformedGenealogy,
					"edge %d child %d outside node space of size %d", i, c, numNodes)
			}
			if c == e.Parent {
				return errors.New(errors.ErrCodeMalformedGenealogy,
					"edge %d node %d is its own parent", i, c)
			}
		}
	}
	return nil
}
