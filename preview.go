package bmpblur

import (
	"fmt"
	"io"

	intImage "github.com/gogpu/bmpblur/internal/image"
)

// WritePreview encodes img to w as a PNG in display order. When maxSide
// is positive the preview is scaled so its longer side is at most maxSide
// pixels.
func WritePreview(w io.Writer, img *Image, maxSide int) error {
	if err := validImage(img); err != nil {
		return err
	}
	if err := intImage.EncodePNG(w, img.Pixels.buf, img.Pixels.TopDown(), maxSide); err != nil {
		return fmt.Errorf("%w: %w", ErrFile, err)
	}
	return nil
}

// Verify decodes the BMP stream r with golang.org/x/image/bmp and checks
// that it shows the same picture as img. Only the color channels are
// compared: that decoder treats the fourth byte of a 40-byte-header BMP as
// padding.
func Verify(r io.Reader, img *Image) error {
	if err := validImage(img); err != nil {
		return err
	}
	std, err := intImage.DecodeStd(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValid, err)
	}

	pb := img.Pixels
	if std.Width() != pb.Width() || std.Height() != pb.Height() {
		return fmt.Errorf("%w: decoded %dx%d, want %dx%d", ErrValid,
			std.Width(), std.Height(), pb.Width(), pb.Height())
	}
	for y := range pb.Height() {
		fileY := y
		if !pb.TopDown() {
			fileY = pb.Height() - 1 - y
		}
		for x := range pb.Width() {
			b, g, r, _ := std.BGRA(x, y)
			want := pb.At(x, fileY)
			if b != want.B || g != want.G || r != want.R {
				return fmt.Errorf("%w: pixel (%d, %d) is (%d, %d, %d), want (%d, %d, %d)", ErrValid,
					x, y, r, g, b, want.R, want.G, want.B)
			}
		}
	}
	return nil
}
