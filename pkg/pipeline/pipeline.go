// Package pipeline provides the core visualization pipeline for Copyviz.
//
// This package implements the complete load → layout → render pipeline
// that is shared by the CLI commands. By centralizing this logic, every
// entry point gets the same validation, staging, and instrumentation.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate an inference trace from disk or memory
//  2. Layout: Assign haplotype rows, including frequency separators
//  3. Render: Reconstruct copying paths and emit one frame per focus node
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    TracePath: "trace.json",
//	    Sinks:     []render.FrameSink{dirSink},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Frames, "frames written")
//
// Run individual stages:
//
//	// Load only
//	trace, err := runner.Load(ctx, opts)
//
//	// Layout with an existing trace
//	layout, err := runner.ComputeLayout(ctx, trace)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/awohns/copyviz/pkg/copying"
	"github.com/awohns/copyviz/pkg/errors"
	"github.com/awohns/copyviz/pkg/render"
	"github.com/awohns/copyviz/pkg/render/rowlayout"
	"github.com/awohns/copyviz/pkg/render/sink"
	"github.com/awohns/copyviz/pkg/style"
	"github.com/awohns/copyviz/pkg/traceio"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a visualization run.
type Options struct {
	// Load options. Exactly one of TracePath or Trace must be set;
	// an in-memory Trace takes precedence.
	TracePath string
	Trace     *traceio.Trace

	// StylePath points to a TOML style file layered over the
	// defaults. Leave empty to use Style as given.
	StylePath string

	// Style controls geometry and colors. The zero value is replaced
	// by style.Default.
	Style style.Style

	// Sinks receive every rendered frame. Execute closes each sink
	// before returning, on success and on failure. Defaults to a
	// single discarding sink when empty.
	Sinks []render.FrameSink

	// OnFrame, if set, fires after each frame has been written to
	// every sink. Used by the CLI to drive progress display.
	OnFrame func(index, total int)

	// Logger for stage-level progress. Defaults to a discarding
	// logger.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Trace is the loaded and validated inference trace.
	Trace *traceio.Trace

	// Layout is the computed row assignment.
	Layout rowlayout.Layout

	// Frames is the number of frames emitted.
	Frames int

	// Intensity holds the final accumulated copying counts.
	Intensity *copying.Intensity

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NumAncestors int
	NumSamples   int
	NumSites     int
	TotalRows    int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults
// for the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Trace == nil && o.TracePath == "" {
		return errors.New(errors.ErrCodeInvalidTrace, "a trace path or an in-memory trace is required")
	}

	if o.StylePath != "" {
		st, err := style.Load(o.StylePath)
		if err != nil {
			return err
		}
		o.Style = st
	}
	if o.Style == (style.Style{}) {
		o.Style = style.Default()
	}
	if err := o.Style.Validate(); err != nil {
		return err
	}

	if len(o.Sinks) == 0 {
		o.Sinks = []render.FrameSink{&sink.Null{}}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
