package bmpblur

import (
	"fmt"
	"io"
)

// Decode reads a 32bpp uncompressed BMP from r.
//
// Decode reads from the current position of r and never seeks: callers
// must position the stream at the start of the file. The header is read
// and validated first; on validation failure no pixel buffer is allocated.
// Pixel rows are read immediately after the 54-byte header. A short read
// discards the partially filled buffer and returns an ErrFile error.
func Decode(r io.Reader, opts ...Option) (*Image, error) {
	o := newOptions(opts)

	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if err := h.check(); err != nil {
		return nil, err
	}

	width, height := int(h.Width), h.NormalizedHeight()
	pb, err := newPixelBuffer(width, height, h.TopDown(), o.maxPixels)
	if err != nil {
		return nil, err
	}

	Logger().Debug("bmpblur: decoding",
		"width", width,
		"height", height,
		"topDown", h.TopDown(),
		"offset", h.Offset)

	if int(h.Offset) != HeaderLen {
		Logger().Warn("bmpblur: pixel offset differs from header length; reading pixels after header",
			"offset", h.Offset)
	}

	if err := readPixels(r, pb, h.RowPadding()); err != nil {
		return nil, err
	}

	return &Image{Header: h, Pixels: pb}, nil
}

// readPixels fills pb row by row, skipping padding bytes after each row.
func readPixels(r io.Reader, pb *PixelBuffer, padding int) error {
	var pad [3]byte
	for y := range pb.Height() {
		if _, err := io.ReadFull(r, pb.Row(y)); err != nil {
			return fmt.Errorf("%w: reading row %d of %d: %w", ErrFile, y, pb.Height(), err)
		}
		if padding > 0 {
			if _, err := io.ReadFull(r, pad[:padding]); err != nil {
				return fmt.Errorf("%w: reading padding of row %d: %w", ErrFile, y, err)
			}
		}
	}
	return nil
}

// DecodeConfig reads and validates only the header.
func DecodeConfig(r io.Reader) (Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return Header{}, err
	}
	if err := h.check(); err != nil {
		return h, err
	}
	return h, nil
}
