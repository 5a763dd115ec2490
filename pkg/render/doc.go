// Package render composes the copying-path frames.
//
// # Panels
//
// Every frame stacks two panels over a shared site axis:
//
//   - The intensity panel, one row per ancestor-block row, drawn as a
//     grid of grayscale cells shading how often each ancestor site has
//     served as a copy source so far.
//   - The haplotype panel, ancestors first (with separator rows
//     between frequency bands) and samples below, each cell colored by
//     its allele value.
//
// The [Renderer] draws the haplotype values and the zeroed intensity
// grid once into a static base raster. Each call to [Renderer.Frame]
// copies that base and overlays one node's view: an outline around the
// node's row, a copy marker in the ancestor cell the node copied from
// at every covered site, and the current intensity snapshot.
//
// # Sinks
//
// Frames leave the renderer through a [FrameSink], keyed by their
// traversal step index. The sink decides persistence: one PNG per
// frame, an animated GIF, or a counter for tests (see the sink
// subpackage).
package render
