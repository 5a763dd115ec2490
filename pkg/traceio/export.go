package traceio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/awohns/copyviz/pkg/errors"
)

// Write encodes the trace as an indented JSON document. The output
// re-imports identically through [Read].
func Write(t *Trace, w io.Writer) error {
	doc := document{
		SequenceLength: t.SequenceLength,
		Positions:      t.Positions,
		Samples:        t.Samples,
		Ancestors:      make([]ancestor, len(t.Ancestors)),
		Edges:          make([]edge, len(t.Edges)),
	}
	for i, a := range t.Ancestors {
		doc.Ancestors[i] = ancestor{
			ID:         a.ID,
			Alleles:    a.Alleles,
			Start:      a.Start,
			End:        a.End,
			FocalSites: a.FocalSites,
		}
	}
	for i, e := range t.Edges {
		doc.Edges[i] = edge{
			Left:     e.Left,
			Right:    e.Right,
			Parent:   e.Parent,
			Children: e.Children,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode trace")
	}
	return nil
}

// Export writes the trace to a JSON file at path.
func Export(t *Trace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return Write(t, f)
}
