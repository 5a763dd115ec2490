package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/mat"

	"github.com/awohns/copyviz/pkg/copying"
	"github.com/awohns/copyviz/pkg/errors"
	"github.com/awohns/copyviz/pkg/genome"
	"github.com/awohns/copyviz/pkg/render/rowlayout"
	"github.com/awohns/copyviz/pkg/style"
)

// FrameSink receives rendered frames in traversal order. Close flushes
// any buffered output; sinks that write eagerly may treat it as a
// no-op.
type FrameSink interface {
	WriteFrame(index int, img image.Image) error
	Close() error
}

// Renderer draws copying-path frames for one visualization run. It is
// not safe for concurrent use; the traversal is sequential by
// contract.
type Renderer struct {
	ancestors []genome.AncestorHaplotype
	samples   genome.SampleMatrix
	layout    rowlayout.Layout
	style     style.Style
	numSites  int

	width, height   int
	intensityOrigin image.Point
	haplotypeOrigin image.Point

	base image.Image
}

// New validates dimensions and pre-renders the static base raster.
// The ancestor slice and layout must come from the same inputs; a
// site-count disagreement between ancestors, samples, and numSites is
// a fatal setup failure.
func New(ancestors []genome.AncestorHaplotype, samples genome.SampleMatrix, lay rowlayout.Layout, numSites int, st style.Style) (*Renderer, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	if samples.NumSites() != numSites {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"sample matrix has %d sites, site index has %d", samples.NumSites(), numSites)
	}
	for _, a := range ancestors {
		if len(a.Alleles) != numSites {
			return nil, errors.New(errors.ErrCodeDimensionMismatch,
				"ancestor %d has %d sites, site index has %d", a.ID, len(a.Alleles), numSites)
		}
	}
	space := lay.Space()
	if space.NumAncestors != len(ancestors) || space.NumSamples != samples.NumSamples() {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"layout space (%d ancestors, %d samples) does not match inputs (%d, %d)",
			space.NumAncestors, space.NumSamples, len(ancestors), samples.NumSamples())
	}

	b := st.BoxSize
	r := &Renderer{
		ancestors: ancestors,
		samples:   samples,
		layout:    lay,
		style:     st,
		numSites:  numSites,
		width:     st.LeftPadding + numSites*b + st.RightPadding,
	}
	intensityHeight := lay.AncestorRows * b
	r.height = st.TopPadding + intensityHeight + st.MidPadding + lay.TotalRows*b + st.BottomPadding
	r.intensityOrigin = image.Point{X: st.LeftPadding, Y: st.TopPadding}
	r.haplotypeOrigin = image.Point{X: st.LeftPadding, Y: st.TopPadding + intensityHeight + st.MidPadding}

	r.base = r.drawBase()
	return r, nil
}

// Bounds returns the frame dimensions in pixels.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// Base returns the static base raster shared by all frames.
func (r *Renderer) Base() image.Image { return r.base }

// drawBase renders everything that is identical across frames: the
// zeroed intensity grid and all known haplotype values.
func (r *Renderer) drawBase() image.Image {
	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(r.style.Colors.Background.RGBA)
	dc.Clear()

	r.drawIntensityPanel(dc, nil)

	// Ancestor haplotypes: cells unknown outside the defining
	// interval stay background-colored.
	for _, a := range r.ancestors {
		row := r.layout.Row(genome.Ancestor(a.ID))
		for k, v := range a.Alleles {
			if v == genome.AlleleUnknown {
				continue
			}
			r.fillCell(dc, r.haplotypeOrigin, row, k, r.alleleColor(v))
		}
	}
	for j := 0; j < r.samples.NumSamples(); j++ {
		row := r.layout.Row(genome.Sample(j))
		for k, v := range r.samples[j] {
			r.fillCell(dc, r.haplotypeOrigin, row, k, r.alleleColor(v))
		}
	}
	return dc.Image()
}

// Frame renders one traversal step: the focus node's row outlined, a
// copy marker in every ancestor cell the node copied from, and the
// given intensity snapshot. The returned image is freshly allocated;
// the base raster is never mutated.
func (r *Renderer) Frame(node genome.NodeID, parents []int32, intensity *mat.Dense) (image.Image, error) {
	if len(parents) != r.numSites {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"%v parent row has %d sites, want %d", node, len(parents), r.numSites)
	}

	dc := gg.NewContextForImage(r.base)
	b := float64(r.style.BoxSize)

	// Outline around the focus node's row.
	row := r.layout.Row(node)
	y := float64(r.haplotypeOrigin.Y) + float64(row)*b
	x := float64(r.haplotypeOrigin.X)
	dc.SetColor(r.style.Colors.Outline.RGBA)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, float64(r.numSites)*b, b)
	dc.Stroke()

	// Copy markers. The root sentinel owns no display cell, so sites
	// copied from it carry no marker.
	for k, p := range parents {
		if p == copying.Unset || p == 0 {
			continue
		}
		a := r.ancestors[p-1]
		c := r.style.Colors.Outline.RGBA
		switch a.Alleles[k] {
		case genome.AlleleAncestral:
			c = r.style.Colors.CopyAncestral.RGBA
		case genome.AlleleDerived:
			c = r.style.Colors.CopyDerived.RGBA
		}
		r.fillCell(dc, r.haplotypeOrigin, r.layout.RowOf(p), k, c)
	}

	r.drawIntensityPanel(dc, intensity)
	return dc.Image(), nil
}

// drawIntensityPanel draws the ancestor usage heatmap. A nil snapshot
// means all-zero, used for the base raster.
func (r *Renderer) drawIntensityPanel(dc *gg.Context, intensity *mat.Dense) {
	b := float64(r.style.BoxSize)
	for _, a := range r.ancestors {
		row := r.layout.Row(genome.Ancestor(a.ID))
		for k := 0; k < r.numSites; k++ {
			v := 0.0
			if intensity != nil {
				v = intensity.At(a.ID, k)
			}
			shade := uint8(255 - int(v*255))
			x := float64(r.intensityOrigin.X) + float64(k)*b
			y := float64(r.intensityOrigin.Y) + float64(row)*b
			dc.SetRGB255(int(shade), int(shade), int(shade))
			dc.DrawRectangle(x, y, b, b)
			dc.Fill()
			dc.SetColor(r.style.Colors.Outline.RGBA)
			dc.SetLineWidth(1)
			dc.DrawRectangle(x, y, b, b)
			dc.Stroke()
		}
	}
}

func (r *Renderer) fillCell(dc *gg.Context, origin image.Point, row, site int, c color.Color) {
	b := float64(r.style.BoxSize)
	dc.SetColor(c)
	dc.DrawRectangle(float64(origin.X)+float64(site)*b, float64(origin.Y)+float64(row)*b, b, b)
	dc.Fill()
}

func (r *Renderer) alleleColor(v genome.Allele) color.Color {
	if v == genome.AlleleDerived {
		return r.style.Colors.AlleleDerived.RGBA
	}
	return r.style.Colors.AlleleAncestral.RGBA
}
