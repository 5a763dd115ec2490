package sink

import "image"

// Null discards frames and counts them. Useful for tests and for
// exercising a traversal without touching the filesystem.
type Null struct {
	Frames int
}

// WriteFrame discards the frame.
func (n *Null) WriteFrame(index int, img image.Image) error {
	n.Frames++
	return nil
}

// Close is a no-op.
func (n *Null) Close() error { return nil }
