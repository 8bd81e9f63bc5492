package bmpblur

import (
	"errors"
	"fmt"
	"strings"

	intImage "github.com/gogpu/bmpblur/internal/image"
)

// Pixel is one 32-bit BMP pixel in on-disk channel order.
type Pixel struct {
	B, G, R, A uint8
}

// PixelBuffer is a rectangular grid of pixels stored in file row order.
//
// Rows are held in one contiguous allocation, so a PixelBuffer is either
// complete or does not exist. Row 0 is the first row in the file, which is
// the bottom display row unless TopDown reports true.
//
// Thread safety: concurrent reads are safe. Concurrent writers must target
// disjoint rows.
type PixelBuffer struct {
	buf     *intImage.Buf
	topDown bool
}

// NewPixelBuffer allocates a zeroed bottom-up buffer.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	return newPixelBuffer(width, height, false, DefaultMaxPixels)
}

// newPixelBuffer allocates a buffer, enforcing maxPixels (<= 0 disables
// the limit). Size errors map to ErrArgument for bad dimensions and to
// ErrMemory for buffers that cannot be allocated.
func newPixelBuffer(width, height int, topDown bool, maxPixels int) (*PixelBuffer, error) {
	if err := intImage.CheckSize(width, height, maxPixels); err != nil {
		return nil, sizeError(width, height, err)
	}
	buf, err := intImage.NewBuf(width, height)
	if err != nil {
		return nil, sizeError(width, height, err)
	}
	return &PixelBuffer{buf: buf, topDown: topDown}, nil
}

func sizeError(width, height int, err error) error {
	if errors.Is(err, intImage.ErrInvalidDimensions) {
		return fmt.Errorf("%w: %dx%d pixel buffer: %w", ErrArgument, width, height, err)
	}
	return fmt.Errorf("%w: %dx%d pixel buffer: %w", ErrMemory, width, height, err)
}

// Width returns the number of pixels per row.
func (p *PixelBuffer) Width() int {
	return p.buf.Width()
}

// Height returns the number of rows (the normalized height).
func (p *PixelBuffer) Height() int {
	return p.buf.Height()
}

// BytesPerPixel returns the storage size of one pixel.
func (p *PixelBuffer) BytesPerPixel() int {
	return intImage.BytesPerPixel
}

// TopDown reports whether row 0 is the top display row.
func (p *PixelBuffer) TopDown() bool {
	return p.topDown
}

// InBounds reports whether (x, y) addresses a pixel.
func (p *PixelBuffer) InBounds(x, y int) bool {
	return p.buf.InBounds(x, y)
}

// At returns the pixel at (x, y), or the zero Pixel when out of bounds.
func (p *PixelBuffer) At(x, y int) Pixel {
	b, g, r, a := p.buf.BGRA(x, y)
	return Pixel{B: b, G: g, R: r, A: a}
}

// Set stores px at (x, y).
func (p *PixelBuffer) Set(x, y int, px Pixel) error {
	if err := p.buf.SetBGRA(x, y, px.B, px.G, px.R, px.A); err != nil {
		return fmt.Errorf("%w: set (%d, %d): %w", ErrArgument, x, y, err)
	}
	return nil
}

// Row returns the raw BGRA bytes of row y, or nil if y is out of range.
// The slice aliases the buffer.
func (p *PixelBuffer) Row(y int) []byte {
	return p.buf.Row(y)
}

// Fill sets every pixel to px.
func (p *PixelBuffer) Fill(px Pixel) {
	p.buf.Fill(px.B, px.G, px.R, px.A)
}

// Clone returns a deep copy.
func (p *PixelBuffer) Clone() *PixelBuffer {
	return &PixelBuffer{buf: p.buf.Clone(), topDown: p.topDown}
}

// Equal reports whether both buffers have the same geometry and pixels.
func (p *PixelBuffer) Equal(o *PixelBuffer) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.topDown == o.topDown && p.buf.Equal(o.buf)
}

// Image pairs a decoded header with its pixels.
type Image struct {
	Header Header
	Pixels *PixelBuffer
}

// NewImage allocates a zeroed image with a fresh header. A negative height
// produces a top-down image.
func NewImage(width, height int32) (*Image, error) {
	h := NewHeader(width, height)
	if p := h.problems(); len(p) > 0 {
		return nil, fmt.Errorf("%w: new image: %s", ErrArgument, strings.Join(p, ", "))
	}
	pb, err := newPixelBuffer(int(width), h.NormalizedHeight(), h.TopDown(), DefaultMaxPixels)
	if err != nil {
		return nil, err
	}
	return &Image{Header: h, Pixels: pb}, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int {
	return img.Pixels.Width()
}

// Height returns the normalized image height in pixels.
func (img *Image) Height() int {
	return img.Pixels.Height()
}

// Clone returns a deep copy of img.
func (img *Image) Clone() *Image {
	return &Image{Header: img.Header, Pixels: img.Pixels.Clone()}
}

// Equal reports whether both images have identical headers and pixels.
func (img *Image) Equal(o *Image) bool {
	if img == nil || o == nil {
		return img == o
	}
	return img.Header == o.Header && img.Pixels.Equal(o.Pixels)
}

// validImage checks that img is usable as filter input.
func validImage(img *Image) error {
	if img == nil || img.Pixels == nil || img.Pixels.buf == nil {
		return fmt.Errorf("%w: nil image", ErrArgument)
	}
	return nil
}
