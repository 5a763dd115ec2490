package sink

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/awohns/copyviz/pkg/errors"
)

// GIF collects frames and writes one animated GIF on Close. Frames
// must arrive in index order; the whole traversal is buffered in
// memory, which is fine at the visualizer's scale (tens of frames of
// a few hundred pixels).
type GIF struct {
	path   string
	delay  int // per frame, hundredths of a second
	frames []*image.Paletted
	next   int
}

// NewGIF creates a GIF sink writing to path with the given per-frame
// delay in hundredths of a second.
func NewGIF(path string, delay int) (*GIF, error) {
	if delay <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "gif delay must be positive, got %d", delay)
	}
	return &GIF{path: path, delay: delay}, nil
}

// WriteFrame palettizes and buffers the frame.
func (g *GIF) WriteFrame(index int, img image.Image) error {
	if index != g.next {
		return errors.New(errors.ErrCodeInternal,
			"gif sink received frame %d, want %d; frames must arrive in traversal order", index, g.next)
	}
	g.next++

	bounds := img.Bounds()
	p := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(p, bounds, img, bounds.Min)
	g.frames = append(g.frames, p)
	return nil
}

// Close encodes and writes the animation. Closing a sink that
// received no frames is an error: an empty animation means the
// traversal never ran.
func (g *GIF) Close() error {
	if len(g.frames) == 0 {
		return errors.New(errors.ErrCodeInternal, "gif sink closed with no frames")
	}

	anim := &gif.GIF{}
	for _, f := range g.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, g.delay)
	}

	f, err := os.Create(g.path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", g.path)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, anim); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", g.path)
	}
	return nil
}
