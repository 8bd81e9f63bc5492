package bmpblur

import (
	"fmt"
	"io"

	intImage "github.com/gogpu/bmpblur/internal/image"
)

// Filter applies the configured kernel to img the configured number of
// passes and returns the result. img is never modified.
//
// Intermediate passes ping-pong between two pooled buffers, so memory use
// stays at two images regardless of the pass count.
func Filter(img *Image, opts ...Option) (*Image, error) {
	if err := validImage(img); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	if o.passes < 1 {
		return nil, fmt.Errorf("%w: passes must be at least 1, got %d", ErrArgument, o.passes)
	}
	if o.workers < 0 {
		return nil, fmt.Errorf("%w: workers must not be negative, got %d", ErrArgument, o.workers)
	}

	pool := intImage.NewPool(2)
	width, height := img.Pixels.Width(), img.Pixels.Height()

	cur := img
	for pass := range o.passes {
		buf, err := pool.Get(width, height)
		if err != nil {
			return nil, sizeError(width, height, err)
		}
		next := &Image{
			Header: img.Header,
			Pixels: &PixelBuffer{buf: buf, topDown: img.Pixels.TopDown()},
		}

		Logger().Debug("bmpblur: filter pass",
			"pass", pass+1,
			"of", o.passes,
			"kernel", o.kernel.String(),
			"workers", o.workers)

		if o.workers == Sequential {
			err = applyInto(cur, next, o.kernel)
		} else {
			err = applyParallelInto(cur, next, o.kernel, o.workers)
		}
		if err != nil {
			return nil, err
		}

		if cur != img {
			pool.Put(cur.Pixels.buf)
		}
		cur = next
	}
	return cur, nil
}

// Process decodes a BMP from r, filters it and encodes the result to w.
// It returns the number of bytes written to w.
func Process(r io.Reader, w io.Writer, opts ...Option) (int64, error) {
	img, err := Decode(r, opts...)
	if err != nil {
		return 0, err
	}
	out, err := Filter(img, opts...)
	if err != nil {
		return 0, err
	}
	return Encode(w, out)
}
