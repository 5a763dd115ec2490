package sink

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/awohns/copyviz/pkg/errors"
)

// Dir writes one PNG per frame into a directory.
type Dir struct {
	dir     string
	pattern string
}

// NewDir creates the directory if needed and validates the filename
// pattern, which must contain exactly one integer printf verb for the
// frame index.
func NewDir(dir, pattern string) (*Dir, error) {
	if !strings.Contains(pattern, "%") {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"frame pattern %q has no index verb (want e.g. copying_%%03d.png)", pattern)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
	}
	return &Dir{dir: dir, pattern: pattern}, nil
}

// WriteFrame encodes the frame as PNG under the patterned name.
func (d *Dir) WriteFrame(index int, img image.Image) error {
	path := filepath.Join(d.dir, fmt.Sprintf(d.pattern, index))
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create frame %d", index)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode frame %d", index)
	}
	return nil
}

// Close is a no-op; frames are written eagerly.
func (d *Dir) Close() error { return nil }
