package bmpblur

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Header layout constants.
const (
	// HeaderLen is the size of the file header plus BITMAPINFOHEADER.
	HeaderLen = 54

	// Magic is the "BM" signature read as a little-endian uint16.
	Magic = 0x4D42

	// infoHeaderLen is the BITMAPINFOHEADER size written by NewHeader.
	infoHeaderLen = 40

	// BitsPerPixel is the only supported color depth.
	BitsPerPixel = 32
)

// Header is the fixed 54-byte BMP header. Field order and sizes match the
// on-disk layout exactly, so the struct is read and written with
// encoding/binary in one call and round-trips byte for byte.
type Header struct {
	Type            uint16 // signature, must be Magic
	Size            uint32 // file size in bytes
	Reserved        uint32
	Offset          uint32 // offset of pixel data
	HeaderSize      uint32 // DIB header size
	Width           int32  // must be positive
	Height          int32  // positive: bottom-up rows, negative: top-down
	Planes          uint16 // must be 1
	BitsPerPixel    uint16 // must be 32
	Compression     uint32 // must be 0
	ImageSize       uint32 // pixel data size in bytes
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// NewHeader returns a valid header for an uncompressed 32bpp image.
// A negative height produces a top-down image.
func NewHeader(width, height int32) Header {
	h := Header{
		Type:         Magic,
		Offset:       HeaderLen,
		HeaderSize:   infoHeaderLen,
		Width:        width,
		Height:       height,
		Planes:       1,
		BitsPerPixel: BitsPerPixel,
	}
	h.ImageSize = uint32(h.DataSize())
	h.Size = HeaderLen + h.ImageSize
	return h
}

// Validate reports whether the header describes a supported image:
// BMP signature, 32 bits per pixel, one plane and no compression.
func (h Header) Validate() bool {
	return h.Type == Magic &&
		h.BitsPerPixel == BitsPerPixel &&
		h.Planes == 1 &&
		h.Compression == 0
}

// problems lists every reason the header is unusable, in field order.
func (h Header) problems() []string {
	var p []string
	if h.Type != Magic {
		p = append(p, fmt.Sprintf("type %#04x", h.Type))
	}
	if h.BitsPerPixel != BitsPerPixel {
		p = append(p, fmt.Sprintf("%d bits per pixel", h.BitsPerPixel))
	}
	if h.Planes != 1 {
		p = append(p, fmt.Sprintf("%d planes", h.Planes))
	}
	if h.Compression != 0 {
		p = append(p, fmt.Sprintf("compression %d", h.Compression))
	}
	if h.Width <= 0 {
		p = append(p, fmt.Sprintf("width %d", h.Width))
	}
	if h.Height == 0 {
		p = append(p, "height 0")
	}
	return p
}

// check returns an ErrValid error describing every problem, or nil.
func (h Header) check() error {
	if p := h.problems(); len(p) > 0 {
		return fmt.Errorf("%w: %s", ErrValid, strings.Join(p, ", "))
	}
	return nil
}

// NormalizedHeight returns the row count, |Height|.
func (h Header) NormalizedHeight() int {
	height := int(h.Height)
	if height < 0 {
		return -height
	}
	return height
}

// TopDown reports whether the first stored row is the top display row.
func (h Header) TopDown() bool {
	return h.Height < 0
}

// BytesPerPixel returns BitsPerPixel / 8.
func (h Header) BytesPerPixel() int {
	return int(h.BitsPerPixel) / 8
}

// RowPadding returns the number of zero bytes that follow each row on
// disk so that rows occupy a multiple of four bytes.
func (h Header) RowPadding() int {
	return rowPadding(int(h.Width), h.BytesPerPixel())
}

// DataSize returns the on-disk size of the pixel data including padding.
func (h Header) DataSize() int {
	rowLen := int(h.Width)*h.BytesPerPixel() + h.RowPadding()
	return rowLen * h.NormalizedHeight()
}

func rowPadding(width, bytesPerPixel int) int {
	return (4 - (width*bytesPerPixel)%4) % 4
}

// ReadHeader reads exactly HeaderLen bytes from r and parses them.
// It does not validate the result.
func ReadHeader(r io.Reader) (Header, error) {
	var raw [HeaderLen]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return Header{}, fmt.Errorf("%w: reading header: %w", ErrFile, err)
	}
	var h Header
	if _, err := binary.Decode(raw[:], binary.LittleEndian, &h); err != nil {
		return Header{}, fmt.Errorf("%w: parsing header: %w", ErrValid, err)
	}
	return h, nil
}

// MarshalBinary returns the 54-byte on-disk form of h.
func (h Header) MarshalBinary() ([]byte, error) {
	raw := make([]byte, HeaderLen)
	if _, err := binary.Encode(raw, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return raw, nil
}

// UnmarshalBinary parses the 54-byte on-disk form into h.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderLen {
		return fmt.Errorf("%w: header is %d bytes, want %d", ErrValid, len(data), HeaderLen)
	}
	_, err := binary.Decode(data[:HeaderLen], binary.LittleEndian, h)
	return err
}
