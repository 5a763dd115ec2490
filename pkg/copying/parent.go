// Package copying reconstructs per-site copying paths from a
// genealogy edge set and accumulates ancestor usage intensity as the
// paths are replayed.
//
// # Replay contract
//
// The visualizer renders one frame per node in a fixed order: samples
// in increasing index order, then ancestors in decreasing index order
// down to 1 (the root sentinel is never rendered). [TraversalOrder]
// materializes that order; [Intensity] must receive exactly one
// Record call per step, in that order, for snapshots to reproduce the
// monotone heatmap the frame sequence encodes. Frame indices are part
// of the external contract with consumers of the rendered sequence,
// so the order is not configurable.
package copying

import (
	"github.com/awohns/copyviz/pkg/errors"
	"github.com/awohns/copyviz/pkg/genealogy"
	"github.com/awohns/copyviz/pkg/genome"
)

// Unset marks a (node, site) pair not covered by any genealogy edge.
const Unset int32 = -1

// ParentMatrix stores, for every node and site, the id of the ancestor
// the node copied from at that site, or Unset. Built once from the
// edge set and immutable afterwards.
type ParentMatrix struct {
	space    genome.IDSpace
	numSites int
	data     []int32 // row-major, space.Size() rows of numSites
}

// BuildParentMatrix materializes the edge set into per-node, per-site
// parent assignments. Edge endpoints are translated through the site
// index; an unmapped endpoint or a non-positive site interval is a
// fatal input error. Writing a (child, site) cell twice means the
// genealogy assigned overlapping intervals to one child, which is
// asserted rather than silently overwritten since an overwrite would
// mask a malformed genealogy.
func BuildParentMatrix(edges []genealogy.Edge, idx *genealogy.SiteIndex, space genome.IDSpace) (*ParentMatrix, error) {
	numSites := idx.NumSites()
	p := &ParentMatrix{
		space:    space,
		numSites: numSites,
		data:     make([]int32, space.Size()*numSites),
	}
	for i := range p.data {
		p.data[i] = Unset
	}

	for i, e := range edges {
		l, err := idx.Lookup(e.Left)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedGenealogy, err, "edge %d left endpoint", i)
		}
		r, err := idx.Lookup(e.Right)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedGenealogy, err, "edge %d right endpoint", i)
		}
		if l >= r {
			return nil, errors.New(errors.ErrCodeMalformedGenealogy,
				"edge %d maps to empty site interval [%d, %d)", i, l, r)
		}
		for _, c := range e.Children {
			row := p.data[c*numSites : (c+1)*numSites]
			for k := l; k < r; k++ {
				if row[k] != Unset {
					return nil, errors.New(errors.ErrCodeMalformedGenealogy,
						"edge %d overlaps a previous edge for child %d at site %d", i, c, k)
				}
				row[k] = int32(e.Parent)
			}
		}
	}
	return p, nil
}

// NumSites returns the number of site columns.
func (p *ParentMatrix) NumSites() int { return p.numSites }

// Parent returns the copy source of node at the given site, or Unset.
func (p *ParentMatrix) Parent(node genome.NodeID, site int) int32 {
	return p.data[p.space.Encode(node)*p.numSites+site]
}

// Row returns the full per-site parent assignment of node. The slice
// aliases the matrix and must not be modified.
func (p *ParentMatrix) Row(node genome.NodeID) []int32 {
	id := p.space.Encode(node)
	return p.data[id*p.numSites : (id+1)*p.numSites]
}

// TraversalOrder returns the fixed frame order: samples 0..S-1
// ascending, then ancestors A-1..1 descending. The total length is
// S+A-1, one entry per rendered frame.
func TraversalOrder(space genome.IDSpace) []genome.NodeID {
	order := make([]genome.NodeID, 0, space.NumSamples+space.NumAncestors-1)
	for j := 0; j < space.NumSamples; j++ {
		order = append(order, genome.Sample(j))
	}
	for i := space.NumAncestors - 1; i >= 1; i-- {
		order = append(order, genome.Ancestor(i))
	}
	return order
}
