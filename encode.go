package bmpblur

import (
	"fmt"
	"io"
)

// Encode writes img to w as a BMP file and returns the number of bytes
// written.
//
// The header is written verbatim. Each row is followed by enough zero
// bytes to make its length a multiple of four. Encode does not clean up
// on failure; a partially written destination must be discarded by the
// caller.
func Encode(w io.Writer, img *Image) (int64, error) {
	if err := validImage(img); err != nil {
		return 0, err
	}
	h, pb := img.Header, img.Pixels
	if int(h.Width) != pb.Width() || h.NormalizedHeight() != pb.Height() {
		return 0, fmt.Errorf("%w: header is %dx%d, pixels are %dx%d",
			ErrArgument, h.Width, h.NormalizedHeight(), pb.Width(), pb.Height())
	}

	raw, err := h.MarshalBinary()
	if err != nil {
		return 0, fmt.Errorf("%w: marshal header: %w", ErrArgument, err)
	}

	var written int64
	n, err := w.Write(raw)
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("%w: writing header: %w", ErrFile, err)
	}

	padding := rowPadding(pb.Width(), pb.BytesPerPixel())
	var pad [3]byte
	for y := range pb.Height() {
		n, err := w.Write(pb.Row(y))
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("%w: writing row %d: %w", ErrFile, y, err)
		}
		if padding > 0 {
			n, err := w.Write(pad[:padding])
			written += int64(n)
			if err != nil {
				return written, fmt.Errorf("%w: writing padding of row %d: %w", ErrFile, y, err)
			}
		}
	}

	return written, nil
}
