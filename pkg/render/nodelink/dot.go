// Package nodelink renders the genealogy topology as a node-link
// diagram: one node per haplotype, one arrow per (parent, child,
// interval) relation, labeled with the genomic interval it covers.
//
// This is the diagram counterpart of the frame renderer's heatmap: it
// shows who copies from whom, while the frames show where. Rendering
// uses [github.com/goccy/go-graphviz] for in-process DOT layout, so
// no external graphviz installation is required.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/awohns/copyviz/pkg/genealogy"
	"github.com/awohns/copyviz/pkg/genome"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the genomic interval on edge labels. When
	// false, edges are unlabeled arrows.
	Detailed bool
}

// ToDOT converts a genealogy edge set to Graphviz DOT. Samples are
// drawn as filled boxes, ancestors as plain boxes, and the root as a
// point. The resulting DOT string can be rendered with [RenderSVG] or
// [RenderPNG].
func ToDOT(edges []genealogy.Edge, space genome.IDSpace, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph genealogy {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=rounded, fontsize=14];\n")
	buf.WriteString("\n")

	for _, id := range referencedNodes(edges) {
		node, err := space.Decode(id)
		if err != nil {
			// Validation happens before rendering; an unknown id
			// here still gets a node so the diagram stays readable.
			fmt.Fprintf(&buf, "  %d [label=\"node %d\"];\n", id, id)
			continue
		}
		switch node.Kind {
		case genome.KindRoot:
			fmt.Fprintf(&buf, "  0 [label=\"root\", shape=point, width=0.2];\n")
		case genome.KindSample:
			fmt.Fprintf(&buf, "  %d [label=%q, style=\"rounded,filled\", fillcolor=lightgrey];\n", id, node.String())
		default:
			fmt.Fprintf(&buf, "  %d [label=%q];\n", id, node.String())
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		attr := ""
		if opts.Detailed {
			attr = fmt.Sprintf(" [label=\"[%g, %g)\", fontsize=10]", e.Left, e.Right)
		}
		for _, c := range e.Children {
			fmt.Fprintf(&buf, "  %d -> %d%s;\n", c, e.Parent, attr)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// referencedNodes returns the sorted dense ids appearing in the edge
// set, so the DOT output is deterministic.
func referencedNodes(edges []genealogy.Edge) []int {
	seen := map[int]bool{}
	for _, e := range edges {
		seen[e.Parent] = true
		for _, c := range e.Children {
			seen[c] = true
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// IsDOT reports whether the requested output format is raw DOT text,
// which needs no graphviz rendering.
func IsDOT(format string) bool {
	return strings.EqualFold(format, "dot")
}
