// Package traceio reads and writes the JSON trace document that the
// genealogical inference engine hands to the visualizer.
//
// # JSON Format
//
// The document has five top-level fields:
//
//	{
//	  "sequence_length": 10.0,
//	  "positions": [2.0, 5.0, 8.0],
//	  "ancestors": [
//	    {"id": 1, "alleles": [0, 1, 0], "start": 0, "end": 3, "focal_sites": [1]}
//	  ],
//	  "samples": [[0, 1, 1]],
//	  "edges": [
//	    {"left": 0, "right": 10, "parent": 0, "children": [1]}
//	  ]
//	}
//
// Allele values are 0, 1, or -1 (unknown, ancestors only). Edge
// coordinates are genomic positions and must be registered site
// positions or the sentinels 0 and sequence_length.
//
// # Import and Export
//
// [Import] reads and fully validates a document from a file path;
// [Read] does the same from any io.Reader. [Export] and [Write] are
// the inverses and produce documents that re-import identically, so a
// trace can be normalized, archived, and replayed.
package traceio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/awohns/copyviz/pkg/errors"
	"github.com/awohns/copyviz/pkg/genealogy"
	"github.com/awohns/copyviz/pkg/genome"
)

type document struct {
	SequenceLength float64           `json:"sequence_length"`
	Positions      []float64         `json:"positions"`
	Ancestors      []ancestor        `json:"ancestors"`
	Samples        [][]genome.Allele `json:"samples"`
	Edges          []edge            `json:"edges"`
}

type ancestor struct {
	ID         int             `json:"id"`
	Alleles    []genome.Allele `json:"alleles"`
	Start      int             `json:"start"`
	End        int             `json:"end"`
	FocalSites []int           `json:"focal_sites"`
}

type edge struct {
	Left     float64 `json:"left"`
	Right    float64 `json:"right"`
	Parent   int     `json:"parent"`
	Children []int   `json:"children"`
}

// Read decodes and validates a trace document from r. Decode errors
// and validation failures are both fatal; a partially valid trace is
// never returned.
func Read(r io.Reader) (*Trace, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTrace, err, "decode trace")
	}

	t := &Trace{
		SequenceLength: doc.SequenceLength,
		Positions:      doc.Positions,
		Samples:        genome.SampleMatrix(doc.Samples),
		Ancestors:      make([]genome.AncestorHaplotype, len(doc.Ancestors)),
		Edges:          make([]genealogy.Edge, len(doc.Edges)),
	}
	for i, a := range doc.Ancestors {
		t.Ancestors[i] = genome.AncestorHaplotype{
			ID:         a.ID,
			Alleles:    a.Alleles,
			Start:      a.Start,
			End:        a.End,
			FocalSites: a.FocalSites,
		}
	}
	for i, e := range doc.Edges {
		t.Edges[i] = genealogy.Edge{
			Left:     e.Left,
			Right:    e.Right,
			Parent:   e.Parent,
			Children: e.Children,
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Import reads a trace document from a file path.
func Import(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "trace file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidTrace, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}
