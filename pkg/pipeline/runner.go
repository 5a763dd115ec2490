package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/awohns/copyviz/pkg/copying"
	"github.com/awohns/copyviz/pkg/errors"
	"github.com/awohns/copyviz/pkg/genealogy"
	"github.com/awohns/copyviz/pkg/observability"
	"github.com/awohns/copyviz/pkg/render"
	"github.com/awohns/copyviz/pkg/render/rowlayout"
	"github.com/awohns/copyviz/pkg/traceio"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner with the given logger. A nil logger falls
// back to log.Default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → layout → render pipeline.
//
// Every sink in opts.Sinks is closed before Execute returns, whether
// or not an error occurred.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	if verr := opts.ValidateAndSetDefaults(); verr != nil {
		return nil, verr
	}
	r.applyLogger(&opts)

	defer func() {
		for _, s := range opts.Sinks {
			if cerr := s.Close(); cerr != nil && err == nil {
				err = cerr
				result = nil
			}
		}
	}()

	result = &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	trace, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Trace = trace
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NumAncestors = len(trace.Ancestors)
	result.Stats.NumSamples = trace.Samples.NumSamples()
	result.Stats.NumSites = trace.NumSites()

	r.Logger.Info("loaded trace",
		"ancestors", result.Stats.NumAncestors,
		"samples", result.Stats.NumSamples,
		"sites", result.Stats.NumSites,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, err := r.ComputeLayout(ctx, trace)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.TotalRows = layout.TotalRows

	r.Logger.Info("computed layout",
		"rows", layout.TotalRows,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	frames, intensity, err := r.RenderFrames(ctx, trace, layout, opts)
	if err != nil {
		return nil, err
	}
	result.Frames = frames
	result.Intensity = intensity
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered frames",
		"frames", frames,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and validates the trace named by the options. An
// in-memory trace is validated in place.
func (r *Runner) Load(ctx context.Context, opts Options) (*traceio.Trace, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.TracePath)

	var trace *traceio.Trace
	var err error
	if opts.Trace != nil {
		trace = opts.Trace
		err = trace.Validate()
	} else {
		trace, err = traceio.Import(opts.TracePath)
	}

	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.TracePath, 0, 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Pipeline().OnLoadComplete(ctx, opts.TracePath,
		len(trace.Ancestors), trace.Samples.NumSamples(), trace.NumSites(),
		time.Since(start), nil)
	return trace, nil
}

// ComputeLayout assigns haplotype rows for a validated trace.
func (r *Runner) ComputeLayout(ctx context.Context, trace *traceio.Trace) (rowlayout.Layout, error) {
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, trace.Space().Size())

	layout, err := rowlayout.Build(trace.Ancestors, trace.Samples)
	observability.Pipeline().OnLayoutComplete(ctx, layout.TotalRows, time.Since(start), err)
	return layout, err
}

// RenderFrames reconstructs the copying paths and emits one frame per
// focus node to every sink. It returns the number of frames written
// and the final intensity accumulator.
func (r *Runner) RenderFrames(ctx context.Context, trace *traceio.Trace, layout rowlayout.Layout, opts Options) (int, *copying.Intensity, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return 0, nil, err
	}
	r.applyLogger(&opts)

	space := trace.Space()

	idx, err := genealogy.NewSiteIndex(trace.Positions, trace.SequenceLength)
	if err != nil {
		return 0, nil, err
	}
	parents, err := copying.BuildParentMatrix(trace.Edges, idx, space)
	if err != nil {
		return 0, nil, err
	}
	maxChildren, err := genealogy.MaxChildren(trace.Edges)
	if err != nil {
		return 0, nil, err
	}
	intensity, err := copying.NewIntensity(space, trace.NumSites(), maxChildren)
	if err != nil {
		return 0, nil, err
	}
	renderer, err := render.New(trace.Ancestors, trace.Samples, layout, trace.NumSites(), opts.Style)
	if err != nil {
		return 0, nil, err
	}

	order := copying.TraversalOrder(space)
	total := len(order)

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, total)

	written := 0
	for i, node := range order {
		if cerr := ctx.Err(); cerr != nil {
			err := errors.Wrap(errors.ErrCodeInternal, cerr, "render canceled at frame %d", i)
			observability.Pipeline().OnRenderComplete(ctx, total, time.Since(start), err)
			return written, intensity, err
		}

		row := parents.Row(node)
		intensity.Record(row)
		snapshot, serr := intensity.Snapshot()
		if serr != nil {
			observability.Pipeline().OnRenderComplete(ctx, total, time.Since(start), serr)
			return written, intensity, serr
		}

		img, ferr := renderer.Frame(node, row, snapshot)
		if ferr != nil {
			observability.Pipeline().OnRenderComplete(ctx, total, time.Since(start), ferr)
			return written, intensity, ferr
		}
		for _, s := range opts.Sinks {
			if werr := s.WriteFrame(i, img); werr != nil {
				observability.Pipeline().OnRenderComplete(ctx, total, time.Since(start), werr)
				return written, intensity, werr
			}
		}
		written++

		observability.Frame().OnFrame(ctx, i, total)
		if opts.OnFrame != nil {
			opts.OnFrame(i, total)
		}
		r.Logger.Debug("wrote frame", "index", i, "focus", node.String())
	}

	observability.Pipeline().OnRenderComplete(ctx, total, time.Since(start), nil)
	return written, intensity, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
