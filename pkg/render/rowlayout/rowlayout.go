// Package rowlayout assigns every haplotype node to an integer display
// row for stacked-panel rendering.
//
// Ancestors come first, grouped by the sample-frequency of their first
// focal site: whenever that frequency differs from the previous
// ancestor's, a blank separator row is inserted, so ancestors of equal
// focal-site frequency form visually contiguous bands. One more
// separator row divides the ancestor block from the sample block, and
// samples follow in index order.
//
// The assignment is deterministic for a fixed ancestor ordering and
// sample count. That matters because rows are baked into a static base
// raster that is reused across every frame of a run; two layouts of
// the same input must agree cell for cell.
package rowlayout

import (
	"github.com/awohns/copyviz/pkg/errors"
	"github.com/awohns/copyviz/pkg/genome"
)

// Layout is the computed row assignment. The root sentinel occupies
// row 0 for indexing symmetry but is never drawn; see [Build].
type Layout struct {
	space genome.IDSpace
	rows  []int // dense node id -> row

	// AncestorRows is the height of the ancestor block in rows,
	// including separator rows. The intensity panel mirrors this
	// height.
	AncestorRows int

	// TotalRows is the full height of the haplotype panel in rows.
	TotalRows int
}

// Build computes the row assignment for the given ancestors and
// samples. The ancestor slice must be ordered the way the inference
// engine emitted it (by age); Build takes that ordering as an explicit
// contract and never re-sorts.
//
// The root sentinel (id 0) is pinned to row 0. It occupies the slot so
// that downstream code can index rows by raw node id, but no haplotype
// or intensity cell is ever drawn for it.
func Build(ancestors []genome.AncestorHaplotype, samples genome.SampleMatrix) (Layout, error) {
	space := genome.IDSpace{NumAncestors: len(ancestors), NumSamples: samples.NumSamples()}
	l := Layout{
		space: space,
		rows:  make([]int, space.Size()),
	}

	numSites := samples.NumSites()
	freq := samples.DerivedCounts()

	l.rows[0] = 0
	nextRow := 1
	lastFreq := 0
	for i, a := range ancestors {
		if a.ID != i+1 {
			return Layout{}, errors.New(errors.ErrCodeInvalidTrace,
				"ancestor at position %d has id %d; ids must be dense from 1", i, a.ID)
		}
		if len(a.FocalSites) == 0 {
			return Layout{}, errors.New(errors.ErrCodeInvalidTrace,
				"ancestor %d has no focal sites; cannot group by focal-site frequency", a.ID)
		}
		focal := a.FocalSites[0]
		if focal < 0 || focal >= numSites {
			return Layout{}, errors.New(errors.ErrCodeInvalidTrace,
				"ancestor %d focal site %d out of range [0, %d)", a.ID, focal, numSites)
		}
		if f := freq[focal]; f != lastFreq {
			lastFreq = f
			nextRow++ // separator row before this frequency band
		}
		l.rows[space.Encode(genome.Ancestor(a.ID))] = nextRow
		nextRow++
	}
	l.AncestorRows = nextRow

	nextRow++ // separator block between ancestors and samples
	for j := 0; j < space.NumSamples; j++ {
		l.rows[space.Encode(genome.Sample(j))] = nextRow
		nextRow++
	}
	l.TotalRows = nextRow

	return l, nil
}

// Row returns the display row of the given node.
func (l Layout) Row(n genome.NodeID) int {
	return l.rows[l.space.Encode(n)]
}

// RowOf returns the display row of a dense node id, as stored in a
// parent matrix.
func (l Layout) RowOf(id int32) int {
	return l.rows[id]
}

// Space returns the node-id space the layout was built for.
func (l Layout) Space() genome.IDSpace { return l.space }
