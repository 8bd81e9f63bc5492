package bmpblur

import (
	"bytes"
	"testing"
)

// solidImage returns a width x height image filled with px.
func solidImage(t testing.TB, width, height int32, px Pixel) *Image {
	t.Helper()
	img, err := NewImage(width, height)
	if err != nil {
		t.Fatalf("NewImage(%d, %d) error = %v", width, height, err)
	}
	img.Pixels.Fill(px)
	return img
}

// noiseImage returns an image filled with deterministic pseudo-random
// pixels.
func noiseImage(t testing.TB, width, height int32) *Image {
	t.Helper()
	img, err := NewImage(width, height)
	if err != nil {
		t.Fatalf("NewImage(%d, %d) error = %v", width, height, err)
	}
	state := uint32(2463534242)
	for y := range img.Height() {
		row := img.Pixels.Row(y)
		for i := range row {
			// xorshift32
			state ^= state << 13
			state ^= state >> 17
			state ^= state << 5
			row[i] = byte(state >> 24)
		}
	}
	return img
}

// encodeBytes encodes img and returns the file bytes.
func encodeBytes(t testing.TB, img *Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, err := Encode(&buf, img); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf.Bytes()
}

// setB sets only the blue channel of each pixel from values, row-major.
func setB(t testing.TB, img *Image, values ...uint8) {
	t.Helper()
	if len(values) != img.Width()*img.Height() {
		t.Fatalf("setB: got %d values for %dx%d image", len(values), img.Width(), img.Height())
	}
	for i, v := range values {
		x, y := i%img.Width(), i/img.Width()
		px := img.Pixels.At(x, y)
		px.B = v
		if err := img.Pixels.Set(x, y, px); err != nil {
			t.Fatalf("Set(%d, %d) error = %v", x, y, err)
		}
	}
}

// errWriter fails once more than limit bytes have been written.
type errWriter struct {
	limit int
	n     int
	err   error
}

func (w *errWriter) Write(p []byte) (int, error) {
	room := w.limit - w.n
	if room >= len(p) {
		w.n += len(p)
		return len(p), nil
	}
	if room < 0 {
		room = 0
	}
	w.n += room
	return room, w.err
}
