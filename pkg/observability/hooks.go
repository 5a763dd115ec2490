// Package observability provides hooks for instrumenting the
// visualization pipeline without hard dependencies on a metrics
// backend.
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which keeps the
// core packages free of observability framework imports and avoids
// import cycles.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks to emit events:
//
//	observability.Pipeline().OnRenderStart(ctx, totalFrames)
//	// ... render all frames ...
//	observability.Pipeline().OnRenderComplete(ctx, totalFrames, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives stage events from a visualization run.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, path string)
	OnLoadComplete(ctx context.Context, path string, numAncestors, numSamples, numSites int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, numNodes int)
	OnLayoutComplete(ctx context.Context, totalRows int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, totalFrames int)
	OnRenderComplete(ctx context.Context, totalFrames int, duration time.Duration, err error)
}

// FrameHooks receives per-frame events during the traversal.
type FrameHooks interface {
	// OnFrame fires after each frame is written to every sink.
	OnFrame(ctx context.Context, index, total int)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, int, time.Duration, error) {}

// NoopFrameHooks is a no-op implementation of FrameHooks.
type NoopFrameHooks struct{}

func (NoopFrameHooks) OnFrame(context.Context, int, int) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	frameHooks    FrameHooks    = NoopFrameHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Call once at
// application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetFrameHooks registers custom per-frame hooks.
func SetFrameHooks(h FrameHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		frameHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Frame returns the registered per-frame hooks.
func Frame() FrameHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return frameHooks
}

// Reset restores all hooks to their no-op defaults. Primarily useful
// for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	frameHooks = NoopFrameHooks{}
}
