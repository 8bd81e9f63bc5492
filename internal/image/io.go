package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// I/O errors.
var (
	// ErrEmptyImage is returned when a decoded image has no pixels.
	ErrEmptyImage = errors.New("image: empty image")
)

// ToStdImage converts b to an *image.NRGBA in display order.
// BMP stores bottom-up images with the last display row first, so when
// topDown is false the rows are flipped.
func ToStdImage(b *Buf, topDown bool) *image.NRGBA {
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		srcY := y
		if !topDown {
			srcY = b.height - 1 - y
		}
		row := b.Row(srcY)
		dstStart := y * nrgba.Stride
		for x := range b.width {
			srcOff := x * BytesPerPixel
			dstOff := dstStart + x*4
			nrgba.Pix[dstOff] = row[srcOff+2]   // R <- B
			nrgba.Pix[dstOff+1] = row[srcOff+1] // G <- G
			nrgba.Pix[dstOff+2] = row[srcOff]   // B <- R
			nrgba.Pix[dstOff+3] = row[srcOff+3] // A <- A
		}
	}
	return nrgba
}

// FromStdImage creates a top-down Buf from a standard library image.
func FromStdImage(img image.Image) (*Buf, error) {
	bounds := img.Bounds()
	buf, err := NewBuf(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	// Fast path for RGBA images
	if rgba, ok := img.(*image.RGBA); ok {
		for y := range buf.height {
			src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+buf.width*4]
			dst := buf.Row(y)
			for x := 0; x < len(src); x += 4 {
				dst[x], dst[x+1], dst[x+2], dst[x+3] = src[x+2], src[x+1], src[x], src[x+3]
			}
		}
		return buf, nil
	}

	// Generic slow path for any image type
	for y := range buf.height {
		for x := range buf.width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			_ = buf.SetBGRA(x, y, c.B, c.G, c.R, c.A)
		}
	}
	return buf, nil
}

// DecodeStd decodes a BMP stream with golang.org/x/image/bmp and returns
// it as a top-down Buf. It is independent of bmpblur's own decoder and is
// used to cross-check encoded output.
func DecodeStd(r io.Reader) (*Buf, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode BMP: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return FromStdImage(img)
}

// EncodePNG encodes b as PNG in display order, scaled down with
// Thumbnail when maxSide > 0.
func EncodePNG(w io.Writer, b *Buf, topDown bool, maxSide int) error {
	if err := png.Encode(w, Thumbnail(b, topDown, maxSide)); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// Thumbnail scales b so that its longer side is at most maxSide pixels,
// preserving aspect ratio. Images already within the limit are converted
// without scaling.
func Thumbnail(b *Buf, topDown bool, maxSide int) *image.NRGBA {
	src := ToStdImage(b, topDown)
	if maxSide <= 0 || (b.width <= maxSide && b.height <= maxSide) {
		return src
	}

	w, h := maxSide, maxSide
	if b.width > b.height {
		h = max(1, b.height*maxSide/b.width)
	} else {
		w = max(1, b.width*maxSide/b.height)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
