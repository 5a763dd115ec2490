package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/awohns/copyviz/pkg/copying"
	"github.com/awohns/copyviz/pkg/genealogy"
	"github.com/awohns/copyviz/pkg/render/rowlayout"
	"github.com/awohns/copyviz/pkg/traceio"
)

// statsCommand creates the stats command, which validates a trace and
// prints its dimensions without rendering anything.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [trace]",
		Short: "Validate a trace and print its dimensions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), args[0])
		},
	}
}

// runStats prints the size of every pipeline input derived from the
// trace. Running the layout here doubles as a structural check: a
// trace that passes stats will also lay out.
func (c *CLI) runStats(ctx context.Context, input string) error {
	trace, err := traceio.Import(input)
	if err != nil {
		return err
	}

	layout, err := rowlayout.Build(trace.Ancestors, trace.Samples)
	if err != nil {
		return err
	}
	maxChildren, err := genealogy.MaxChildren(trace.Edges)
	if err != nil {
		return err
	}
	frames := len(copying.TraversalOrder(trace.Space()))

	fmt.Println(StyleTitle.Render(input))
	printNewline()
	printKeyValue("ancestors", fmt.Sprintf("%d", len(trace.Ancestors)))
	printKeyValue("samples", fmt.Sprintf("%d", trace.Samples.NumSamples()))
	printKeyValue("sites", fmt.Sprintf("%d", trace.NumSites()))
	printKeyValue("edges", fmt.Sprintf("%d", len(trace.Edges)))
	printKeyValue("seq length", fmt.Sprintf("%g", trace.SequenceLength))
	printKeyValue("rows", fmt.Sprintf("%d", layout.TotalRows))
	printKeyValue("max children", fmt.Sprintf("%d", maxChildren))
	printKeyValue("frames", fmt.Sprintf("%d", frames))
	printNewline()
	printDetail("render with: %s render %s", appName, input)
	return nil
}
