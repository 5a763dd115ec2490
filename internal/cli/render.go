package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/awohns/copyviz/pkg/pipeline"
	"github.com/awohns/copyviz/pkg/render"
	"github.com/awohns/copyviz/pkg/render/sink"
	"github.com/awohns/copyviz/pkg/style"
)

// defaultPattern is the frame filename pattern for directory output.
const defaultPattern = "frame_%03d.png"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	outDir     string // directory for per-frame PNGs
	pattern    string // frame filename pattern, must contain a %d verb
	gifPath    string // animated GIF output path
	gifDelay   int    // GIF frame delay in hundredths of a second
	stylePath  string // TOML style file layered over defaults
	boxSize    int    // override for the style's box size
	noProgress bool   // disable the progress bar
}

// renderCommand creates the render command for generating frame
// animations.
//
// Default settings:
//   - output: <trace>_frames/frame_NNN.png next to the input file
//   - GIF: disabled unless --gif is given
//   - style: built-in defaults, overridable with --style and --box-size
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		pattern: defaultPattern,
	}

	cmd := &cobra.Command{
		Use:   "render [trace]",
		Short: "Render a copying trace as per-frame PNGs or an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "directory for per-frame PNGs (default <trace>_frames)")
	cmd.Flags().StringVar(&opts.pattern, "pattern", opts.pattern, "frame filename pattern, must contain a %d verb")
	cmd.Flags().StringVar(&opts.gifPath, "gif", "", "write an animated GIF to this path")
	cmd.Flags().IntVar(&opts.gifDelay, "delay", 0, "GIF frame delay in 1/100s (default from style)")
	cmd.Flags().StringVar(&opts.stylePath, "style", "", "TOML style file layered over the defaults")
	cmd.Flags().IntVar(&opts.boxSize, "box-size", 0, "cell size in pixels (overrides style)")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable the progress bar")

	return cmd
}

// runRender loads the style, builds the requested sinks, and executes
// the pipeline, with or without the progress bar.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	st, err := loadStyle(opts.stylePath, opts.boxSize)
	if err != nil {
		return err
	}

	// GIF-only output skips the frame directory.
	outDir := opts.outDir
	if outDir == "" && opts.gifPath == "" {
		outDir = frameDir(input)
	}

	var sinks []render.FrameSink
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
		dir, err := sink.NewDir(outDir, opts.pattern)
		if err != nil {
			return err
		}
		sinks = append(sinks, dir)
	}
	if opts.gifDelay != 0 && opts.gifPath == "" {
		printWarning("--delay has no effect without --gif")
	}
	if opts.gifPath != "" {
		delay := opts.gifDelay
		if delay == 0 {
			delay = st.GIFDelay
		}
		gif, err := sink.NewGIF(opts.gifPath, delay)
		if err != nil {
			return err
		}
		sinks = append(sinks, gif)
	}

	pipeOpts := pipeline.Options{
		TracePath: input,
		Style:     st,
		Sinks:     sinks,
		Logger:    c.Logger,
	}

	prog := newProgress(c.Logger)
	result, err := c.executeWithProgress(ctx, pipeOpts, opts.noProgress)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d frames", result.Frames))

	printSuccess("rendered %d frames (%d ancestors, %d samples, %d sites)",
		result.Frames, result.Stats.NumAncestors, result.Stats.NumSamples, result.Stats.NumSites)
	if outDir != "" {
		printFile(filepath.Join(outDir, fmt.Sprintf(opts.pattern, 0)) + " ...")
	}
	if opts.gifPath != "" {
		printFile(opts.gifPath)
	}
	return nil
}

// executeWithProgress runs the pipeline, feeding frame events into the
// bubbletea progress bar unless disabled.
func (c *CLI) executeWithProgress(ctx context.Context, opts pipeline.Options, noProgress bool) (*pipeline.Result, error) {
	runner := c.newRunner()

	if noProgress || !isatty.IsTerminal(os.Stderr.Fd()) {
		return runner.Execute(ctx, opts)
	}

	p := tea.NewProgram(NewRenderProgressModel(),
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx))

	opts.OnFrame = func(index, total int) {
		p.Send(frameMsg{Index: index, Total: total})
	}

	type outcome struct {
		result *pipeline.Result
		err    error
	}
	ch := make(chan outcome, 1)
	go func() {
		result, err := runner.Execute(ctx, opts)
		p.Send(renderDoneMsg{Err: err})
		ch <- outcome{result, err}
	}()

	if _, err := p.Run(); err != nil {
		// The progress bar is cosmetic; the pipeline outcome decides.
		c.Logger.Debug("progress display failed", "err", err)
	}
	out := <-ch
	return out.result, out.err
}

// loadStyle loads the style file (if any) and applies flag overrides.
func loadStyle(path string, boxSize int) (style.Style, error) {
	st := style.Default()
	if path != "" {
		loaded, err := style.Load(path)
		if err != nil {
			return style.Style{}, err
		}
		st = loaded
	}
	if boxSize > 0 {
		st.BoxSize = boxSize
	}
	return st, st.Validate()
}

// frameDir derives the default frame directory from the trace path:
// "data/trace.json" becomes "data/trace_frames".
func frameDir(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_frames"
}
