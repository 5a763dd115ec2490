package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/awohns/copyviz/pkg/traceio"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output string // output file path
}

// exportCommand creates the export command, which validates a trace and
// rewrites it in canonical indented form.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [trace]",
		Short: "Validate a trace and rewrite it in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <trace>_canonical.json)")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, opts *exportOpts) error {
	trace, err := traceio.Import(input)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "_canonical.json"
	}
	if err := traceio.Export(trace, output); err != nil {
		return err
	}

	printSuccess("exported canonical trace")
	printFile(output)
	return nil
}
