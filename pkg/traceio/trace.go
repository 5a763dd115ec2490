package traceio

import (
	"github.com/awohns/copyviz/pkg/errors"
	"github.com/awohns/copyviz/pkg/genealogy"
	"github.com/awohns/copyviz/pkg/genome"
)

// Trace is the handoff document from the genealogical inference
// engine: everything one visualization run needs. Read-only once
// validated.
type Trace struct {
	// SequenceLength is the genome length in genomic coordinates,
	// used to register the terminal site boundary.
	SequenceLength float64

	// Positions holds the genomic position of each site, strictly
	// increasing within (0, SequenceLength).
	Positions []float64

	// Ancestors are the reconstructed haplotypes in engine order,
	// assumed temporal, with dense ids from 1.
	Ancestors []genome.AncestorHaplotype

	// Samples is the observed haplotype matrix.
	Samples genome.SampleMatrix

	// Edges is the genealogy in genomic coordinates.
	Edges []genealogy.Edge
}

// NumSites returns the shared site count.
func (t *Trace) NumSites() int { return len(t.Positions) }

// Space returns the node-id space the trace spans.
func (t *Trace) Space() genome.IDSpace {
	return genome.IDSpace{NumAncestors: len(t.Ancestors), NumSamples: t.Samples.NumSamples()}
}

// Validate checks the whole document: site-count agreement between
// positions, ancestors, and samples, per-ancestor well-formedness,
// dense ancestor ids, and per-edge sanity. It runs at setup, before
// any rendering begins, so dimension mismatches never survive into
// the frame loop.
func (t *Trace) Validate() error {
	numSites := t.NumSites()
	if numSites == 0 {
		return errors.New(errors.ErrCodeInvalidTrace, "trace has no sites")
	}
	if t.SequenceLength <= 0 {
		return errors.New(errors.ErrCodeInvalidTrace,
			"sequence length %g must be positive", t.SequenceLength)
	}
	if len(t.Ancestors) == 0 {
		return errors.New(errors.ErrCodeInvalidTrace, "trace has no ancestors")
	}
	if t.Samples.NumSamples() == 0 {
		return errors.New(errors.ErrCodeInvalidTrace, "trace has no samples")
	}

	for i, a := range t.Ancestors {
		if a.ID != i+1 {
			return errors.New(errors.ErrCodeInvalidTrace,
				"ancestor at position %d has id %d; ids must be dense from 1", i, a.ID)
		}
		if err := a.Validate(numSites); err != nil {
			return err
		}
	}
	if err := t.Samples.Validate(numSites); err != nil {
		return err
	}
	return genealogy.Validate(t.Edges, len(t.Ancestors), t.Space().Size())
}
