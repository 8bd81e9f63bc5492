// Package image provides the contiguous pixel storage behind bmpblur.
//
// A Buf holds 32-bit BGRA pixels in a single byte slice addressed by row
// stride, so a buffer is either fully allocated or not allocated at all.
package image

import (
	"bytes"
	"errors"
	"math"
)

// BytesPerPixel is the storage size of one BGRA pixel.
const BytesPerPixel = 4

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrTooLarge is returned when width*height*BytesPerPixel does not fit
	// in an int or exceeds the caller's pixel limit.
	ErrTooLarge = errors.New("image: dimensions exceed allocation limit")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// Buf is a rectangular BGRA pixel buffer.
//
// Thread safety: Buf is safe for concurrent read access. Concurrent writers
// must target disjoint rows; Buf itself does no locking.
type Buf struct {
	data   []byte
	width  int
	height int
	stride int
}

// RowBytes returns the unpadded byte length of a row of the given width.
func RowBytes(width int) int {
	return width * BytesPerPixel
}

// CheckSize reports whether a width x height buffer can be allocated
// without overflowing int and without exceeding maxPixels. A maxPixels of
// zero or less disables the pixel limit.
func CheckSize(width, height, maxPixels int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if width > math.MaxInt/BytesPerPixel/height {
		return ErrTooLarge
	}
	if maxPixels > 0 && width > maxPixels/height {
		return ErrTooLarge
	}
	return nil
}

// NewBuf creates a zeroed buffer with the given dimensions.
func NewBuf(width, height int) (*Buf, error) {
	return NewBufWithStride(width, height, RowBytes(width))
}

// NewBufWithStride creates a new buffer with custom stride for alignment.
// Stride must be at least RowBytes(width).
func NewBufWithStride(width, height, stride int) (*Buf, error) {
	if err := CheckSize(width, height, 0); err != nil {
		return nil, err
	}
	if stride < RowBytes(width) {
		return nil, ErrInvalidStride
	}
	if stride > math.MaxInt/height {
		return nil, ErrTooLarge
	}

	return &Buf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// Clone creates a deep copy of the buffer.
func (b *Buf) Clone() *Buf {
	newData := make([]byte, len(b.data))
	copy(newData, b.data)

	return &Buf{
		data:   newData,
		width:  b.width,
		height: b.height,
		stride: b.stride,
	}
}

// Width returns the buffer width in pixels.
func (b *Buf) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row (including padding).
func (b *Buf) Stride() int {
	return b.stride
}

// Data returns the raw pixel data slice.
func (b *Buf) Data() []byte {
	return b.data
}

// Row returns the pixel bytes of row y without stride padding.
// Returns nil if y is out of bounds.
func (b *Buf) Row(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+RowBytes(b.width)]
}

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (b *Buf) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *Buf) PixelOffset(x, y int) int {
	if !b.InBounds(x, y) {
		return -1
	}
	return y*b.stride + x*BytesPerPixel
}

// BGRA returns the channels of pixel (x, y).
// Returns zeros if coordinates are out of bounds.
func (b *Buf) BGRA(x, y int) (bl, g, r, a uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := b.data[off : off+BytesPerPixel : off+BytesPerPixel]
	return p[0], p[1], p[2], p[3]
}

// SetBGRA sets the channels of pixel (x, y).
// Returns ErrOutOfBounds if coordinates are outside buffer bounds.
func (b *Buf) SetBGRA(x, y int, bl, g, r, a uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	p := b.data[off : off+BytesPerPixel : off+BytesPerPixel]
	p[0], p[1], p[2], p[3] = bl, g, r, a
	return nil
}

// Clear sets all pixels to zero.
func (b *Buf) Clear() {
	clear(b.data)
}

// Fill sets every pixel to the given color.
func (b *Buf) Fill(bl, g, r, a uint8) {
	for y := range b.height {
		row := b.Row(y)
		for x := 0; x < len(row); x += BytesPerPixel {
			row[x], row[x+1], row[x+2], row[x+3] = bl, g, r, a
		}
	}
}

// Equal reports whether both buffers have the same dimensions and pixels.
// Stride padding is ignored.
func (b *Buf) Equal(o *Buf) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.width != o.width || b.height != o.height {
		return false
	}
	for y := range b.height {
		if !bytes.Equal(b.Row(y), o.Row(y)) {
			return false
		}
	}
	return true
}
