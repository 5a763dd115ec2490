package copying

import (
	"gonum.org/v1/gonum/mat"

	"github.com/awohns/copyviz/pkg/errors"
	"github.com/awohns/copyviz/pkg/genome"
)

// Intensity accumulates how often each (ancestor, site) cell has been
// used as a copy source so far in the traversal. It is an explicit
// per-run value, never shared package state: every visualization run
// starts from a fresh accumulator, and counts only ever increase
// within a run.
type Intensity struct {
	space       genome.IDSpace
	numSites    int
	maxChildren int
	counts      []int // row-major, (A+1) rows of numSites; row 0 is the root slot
}

// NewIntensity creates a zeroed accumulator. maxChildren is the
// maximum fan-out over non-root edges (see [genealogy.MaxChildren])
// and must be positive; a zero constant would make every snapshot a
// division by zero, so it fails here, before any frame is rendered.
func NewIntensity(space genome.IDSpace, numSites, maxChildren int) (*Intensity, error) {
	if maxChildren <= 0 {
		return nil, errors.New(errors.ErrCodeBadNormalization,
			"max children is %d; intensity normalization is undefined", maxChildren)
	}
	return &Intensity{
		space:       space,
		numSites:    numSites,
		maxChildren: maxChildren,
		counts:      make([]int, (space.NumAncestors+1)*numSites),
	}, nil
}

// Record registers one traversal step: parents is the per-site parent
// row of the node being rendered, and every site with a set parent
// increments that parent's usage count at that site. Parent 0 (the
// root) is counted in its own slot but never normal-checked or drawn.
func (in *Intensity) Record(parents []int32) {
	for k, p := range parents {
		if p == Unset {
			continue
		}
		in.counts[int(p)*in.numSites+k]++
	}
}

// Snapshot returns the current counts normalized by the max-children
// constant as an (A+1)×numSites dense matrix, row 0 being the unused
// root slot. A normalized ancestor value above 1 means the genealogy
// and the normalization constant disagree, which is surfaced as a
// correctness violation rather than clamped away.
//
// Successive snapshots within one run are elementwise non-decreasing.
func (in *Intensity) Snapshot() (*mat.Dense, error) {
	rows := in.space.NumAncestors + 1
	snap := mat.NewDense(rows, in.numSites, nil)
	for i := 0; i < rows; i++ {
		for k := 0; k < in.numSites; k++ {
			v := float64(in.counts[i*in.numSites+k]) / float64(in.maxChildren)
			if i > 0 && v > 1 {
				node := genome.Ancestor(i)
				return nil, errors.New(errors.ErrCodeBadNormalization,
					"intensity %.3f for %v at site %d exceeds 1; genealogy and normalization disagree", v, node, k)
			}
			snap.Set(i, k, v)
		}
	}
	return snap, nil
}

// Count returns the raw usage count for an ancestor at a site.
func (in *Intensity) Count(ancestor, site int) int {
	return in.counts[ancestor*in.numSites+site]
}

// MaxChildren returns the normalization constant.
func (in *Intensity) MaxChildren() int { return in.maxChildren }
