package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/awohns/copyviz/pkg/render/nodelink"
	"github.com/awohns/copyviz/pkg/traceio"
)

// topologyOpts holds the command-line flags for the topology command.
type topologyOpts struct {
	output   string // output file path
	format   string // output format: "svg", "png", or "dot"
	detailed bool   // label edges with their genome intervals
}

// validTopologyFormats is the set of supported topology output formats.
var validTopologyFormats = map[string]bool{"svg": true, "png": true, "dot": true}

// topologyCommand creates the topology command for rendering the
// genealogy as a node-link diagram via Graphviz.
func (c *CLI) topologyCommand() *cobra.Command {
	opts := topologyOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "topology [trace]",
		Short: "Render the copying genealogy as a node-link diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validTopologyFormats[opts.format] {
				return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'dot')", opts.format)
			}
			return c.runTopology(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <trace>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with their genome intervals")

	return cmd
}

// runTopology loads the trace and renders its edge set as a diagram.
func (c *CLI) runTopology(ctx context.Context, input string, opts *topologyOpts) error {
	logger := loggerFromContext(ctx)

	trace, err := traceio.Import(input)
	if err != nil {
		return err
	}
	logger.Info("loaded trace",
		"ancestors", len(trace.Ancestors),
		"samples", trace.Samples.NumSamples(),
		"edges", len(trace.Edges))

	dot := nodelink.ToDOT(trace.Edges, trace.Space(), nodelink.Options{Detailed: opts.detailed})

	var data []byte
	switch {
	case nodelink.IsDOT(opts.format):
		data = []byte(dot)
	case opts.format == "png":
		data, err = nodelink.RenderPNG(ctx, dot)
	default:
		data, err = nodelink.RenderSVG(ctx, dot)
	}
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}

	printSuccess("rendered topology (%d edges)", len(trace.Edges))
	printFile(output)
	return nil
}
