package bmpblur

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"golang.org/x/image/bmp"
)

func TestDecodeEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name          string
		width, height int32
	}{
		{"bottom-up", 7, 5},
		{"top-down", 7, -5},
		{"single pixel", 1, 1},
		{"single row", 9, 1},
		{"single column", 1, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := noiseImage(t, tt.width, tt.height)
			data := encodeBytes(t, src)

			img, err := Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !img.Equal(src) {
				t.Error("decoded image differs from source")
			}
			if img.Pixels.TopDown() != (tt.height < 0) {
				t.Errorf("TopDown() = %v, want %v", img.Pixels.TopDown(), tt.height < 0)
			}

			again := encodeBytes(t, img)
			if !bytes.Equal(again, data) {
				t.Error("encode(decode(bytes)) differs from bytes")
			}
		})
	}
}

func TestDecode_Geometry(t *testing.T) {
	img, err := Decode(bytes.NewReader(encodeBytes(t, solidImage(t, 6, -4, Pixel{}))))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	pb := img.Pixels
	if pb.Width() != 6 || pb.Height() != 4 || pb.BytesPerPixel() != 4 {
		t.Errorf("geometry = %dx%d@%d, want 6x4@4", pb.Width(), pb.Height(), pb.BytesPerPixel())
	}
	for y := range pb.Height() {
		if len(pb.Row(y)) != 6*4 {
			t.Errorf("len(Row(%d)) = %d, want %d", y, len(pb.Row(y)), 24)
		}
	}
}

func TestDecode_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Header)
	}{
		{"bad magic", func(h *Header) { h.Type = 0x1234 }},
		{"24 bpp", func(h *Header) { h.BitsPerPixel = 24 }},
		{"two planes", func(h *Header) { h.Planes = 2 }},
		{"compressed", func(h *Header) { h.Compression = 1 }},
		{"zero width", func(h *Header) { h.Width = 0 }},
		{"negative width", func(h *Header) { h.Width = -4 }},
		{"zero height", func(h *Header) { h.Height = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solidImage(t, 4, 4, Pixel{B: 1})
			tt.modify(&img.Header)
			raw, _ := img.Header.MarshalBinary()
			data := append(raw, make([]byte, 4*4*4)...)

			got, err := Decode(bytes.NewReader(data))
			if !errors.Is(err, ErrValid) {
				t.Errorf("Decode() error = %v, want %v", err, ErrValid)
			}
			if got != nil {
				t.Error("Decode() returned an image on validation failure")
			}
		})
	}
}

func TestDecode_ShortRead(t *testing.T) {
	data := encodeBytes(t, noiseImage(t, 5, 5))

	for _, n := range []int{0, 10, HeaderLen, HeaderLen + 1, len(data) - 1} {
		img, err := Decode(bytes.NewReader(data[:n]))
		if !errors.Is(err, ErrFile) {
			t.Errorf("Decode(%d bytes) error = %v, want %v", n, err, ErrFile)
		}
		if img != nil {
			t.Errorf("Decode(%d bytes) returned a partial image", n)
		}
	}
}

func TestDecode_ShortReadUnwraps(t *testing.T) {
	data := encodeBytes(t, noiseImage(t, 2, 2))
	_, err := Decode(bytes.NewReader(data[:len(data)-2]))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Decode() error = %v, want to wrap %v", err, io.ErrUnexpectedEOF)
	}
}

func TestDecode_MaxPixels(t *testing.T) {
	data := encodeBytes(t, solidImage(t, 4, 4, Pixel{}))

	_, err := Decode(bytes.NewReader(data), WithMaxPixels(15))
	if !errors.Is(err, ErrMemory) {
		t.Errorf("Decode(limit 15) error = %v, want %v", err, ErrMemory)
	}
	if _, err := Decode(bytes.NewReader(data), WithMaxPixels(16)); err != nil {
		t.Errorf("Decode(limit 16) error = %v", err)
	}
}

func TestDecode_HugeHeader(t *testing.T) {
	h := NewHeader(1<<30, -(1 << 30))
	raw, _ := h.MarshalBinary()

	// Fails before any allocation or pixel read.
	_, err := Decode(bytes.NewReader(raw))
	if !errors.Is(err, ErrMemory) {
		t.Errorf("Decode() error = %v, want %v", err, ErrMemory)
	}
}

func TestDecode_Sequential(t *testing.T) {
	first := noiseImage(t, 3, 3)
	second := solidImage(t, 2, 2, Pixel{R: 9})

	var stream bytes.Buffer
	stream.Write(encodeBytes(t, first))
	stream.Write(encodeBytes(t, second))

	// Decode leaves the reader positioned after the pixel data.
	got1, err := Decode(&stream)
	if err != nil {
		t.Fatalf("Decode(first) error = %v", err)
	}
	got2, err := Decode(&stream)
	if err != nil {
		t.Fatalf("Decode(second) error = %v", err)
	}
	if !got1.Equal(first) || !got2.Equal(second) {
		t.Error("sequential decode returned wrong images")
	}
}

func TestDecodeConfig(t *testing.T) {
	data := encodeBytes(t, solidImage(t, 8, 3, Pixel{}))
	h, err := DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if h.Width != 8 || h.Height != 3 {
		t.Errorf("DecodeConfig() = %dx%d, want 8x3", h.Width, h.Height)
	}

	data[28] = 24
	if _, err := DecodeConfig(bytes.NewReader(data)); !errors.Is(err, ErrValid) {
		t.Errorf("DecodeConfig(24bpp) error = %v, want %v", err, ErrValid)
	}
}

func TestEncode_BytesWritten(t *testing.T) {
	img := noiseImage(t, 5, 3)
	var buf bytes.Buffer
	n, err := Encode(&buf, img)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := int64(HeaderLen + 5*3*4)
	if n != want || int64(buf.Len()) != want {
		t.Errorf("Encode() = %d (buffer %d), want %d", n, buf.Len(), want)
	}
}

func TestEncode_HeaderVerbatim(t *testing.T) {
	img := solidImage(t, 2, 2, Pixel{})
	img.Header.Size = 12345
	img.Header.XPelsPerMeter = 2835
	img.Header.Reserved = 42

	data := encodeBytes(t, img)
	want, _ := img.Header.MarshalBinary()
	if !bytes.Equal(data[:HeaderLen], want) {
		t.Error("Encode() altered the header")
	}
}

func TestEncode_WriteError(t *testing.T) {
	errDisk := errors.New("disk full")
	img := noiseImage(t, 4, 4)
	total := HeaderLen + 4*4*4

	for _, limit := range []int{0, 20, HeaderLen, HeaderLen + 17, total - 1} {
		w := &errWriter{limit: limit, err: errDisk}
		n, err := Encode(w, img)
		if !errors.Is(err, ErrFile) || !errors.Is(err, errDisk) {
			t.Errorf("Encode(limit %d) error = %v, want %v wrapping %v", limit, err, ErrFile, errDisk)
		}
		if n != int64(limit) {
			t.Errorf("Encode(limit %d) wrote %d bytes", limit, n)
		}
	}
}

func TestEncode_Invalid(t *testing.T) {
	if _, err := Encode(io.Discard, nil); !errors.Is(err, ErrArgument) {
		t.Errorf("Encode(nil) error = %v, want %v", err, ErrArgument)
	}

	img := solidImage(t, 3, 3, Pixel{})
	img.Header.Width = 4
	if _, err := Encode(io.Discard, img); !errors.Is(err, ErrArgument) {
		t.Errorf("Encode(mismatch) error = %v, want %v", err, ErrArgument)
	}
}

// TestEncode_XImageCompatible decodes the encoder output with
// golang.org/x/image/bmp and compares the color channels.
func TestEncode_XImageCompatible(t *testing.T) {
	for _, height := range []int32{6, -6} {
		src := noiseImage(t, 5, height)
		std, err := bmp.Decode(bytes.NewReader(encodeBytes(t, src)))
		if err != nil {
			t.Fatalf("bmp.Decode() error = %v", err)
		}
		if got := std.Bounds().Size(); got.X != 5 || got.Y != 6 {
			t.Fatalf("bmp.Decode() size = %v, want 5x6", got)
		}

		for y := range 6 {
			fileY := y
			if height > 0 {
				fileY = 5 - y
			}
			for x := range 5 {
				want := src.Pixels.At(x, fileY)
				r, g, b, _ := std.At(x, y).RGBA()
				if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
					t.Fatalf("height %d: pixel (%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
						height, x, y, r>>8, g>>8, b>>8, want.R, want.G, want.B)
				}
			}
		}
	}
}
