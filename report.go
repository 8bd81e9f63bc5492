package bmpblur

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteReport prints the header fields and buffer geometry of img to w,
// formatting numbers for the given locale.
func WriteReport(w io.Writer, img *Image, tag language.Tag) error {
	if err := validImage(img); err != nil {
		return err
	}
	p := message.NewPrinter(tag)
	h := img.Header

	lines := []struct {
		format string
		args   []any
	}{
		{"file type (should be 0x4d42): %x\n", []any{h.Type}},
		{"file size: %d\n", []any{h.Size}},
		{"offset to image data: %d\n", []any{h.Offset}},
		{"header size: %d\n", []any{h.HeaderSize}},
		{"width_px: %d\n", []any{h.Width}},
		{"height_px: %d\n", []any{h.Height}},
		{"planes: %d\n", []any{h.Planes}},
		{"bits: %d\n", []any{h.BitsPerPixel}},
		{"data size is %d\n", []any{img.Pixels.Width() * img.Pixels.Height() * img.Pixels.BytesPerPixel()}},
		{"norm_height size is %d\n", []any{img.Pixels.Height()}},
		{"bytes per pixel is %d\n", []any{img.Pixels.BytesPerPixel()}},
	}
	for _, l := range lines {
		if _, err := p.Fprintf(w, l.format, l.args...); err != nil {
			return fmt.Errorf("%w: writing report: %w", ErrFile, err)
		}
	}
	return nil
}
