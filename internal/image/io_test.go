package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// makeBMP32 builds a 32bpp BITMAPINFOHEADER file from BGRA rows in file order.
func makeBMP32(t *testing.T, width, height int, pix []byte) []byte {
	t.Helper()
	var b bytes.Buffer
	le := binary.LittleEndian
	_ = binary.Write(&b, le, uint16(0x4D42))
	_ = binary.Write(&b, le, uint32(54+len(pix)))
	_ = binary.Write(&b, le, uint32(0))
	_ = binary.Write(&b, le, uint32(54))
	_ = binary.Write(&b, le, uint32(40))
	_ = binary.Write(&b, le, int32(width))
	_ = binary.Write(&b, le, int32(height))
	_ = binary.Write(&b, le, uint16(1))
	_ = binary.Write(&b, le, uint16(32))
	_ = binary.Write(&b, le, uint32(0))
	_ = binary.Write(&b, le, uint32(len(pix)))
	_ = binary.Write(&b, le, [4]uint32{})
	b.Write(pix)
	return b.Bytes()
}

func TestToStdImage_BottomUp(t *testing.T) {
	buf, _ := NewBuf(2, 2)
	// File row 0 is the bottom display row for bottom-up images.
	_ = buf.SetBGRA(0, 0, 50, 100, 200, 255)

	img := ToStdImage(buf, false)
	c := img.NRGBAAt(0, 1)
	if c != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("NRGBAAt(0, 1) = %v, want {200 100 50 255}", c)
	}

	img = ToStdImage(buf, true)
	c = img.NRGBAAt(0, 0)
	if c != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("top-down NRGBAAt(0, 0) = %v, want {200 100 50 255}", c)
	}
}

func TestFromStdImage(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 3))
	rgba.SetRGBA(3, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	buf, err := FromStdImage(rgba)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	b, g, r, a := buf.BGRA(3, 2)
	if b != 30 || g != 20 || r != 10 || a != 255 {
		t.Errorf("BGRA(3, 2) = (%d, %d, %d, %d), want (30, 20, 10, 255)", b, g, r, a)
	}

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 1, color.Gray{Y: 77})
	buf, err = FromStdImage(gray)
	if err != nil {
		t.Fatalf("FromStdImage(gray) error = %v", err)
	}
	b, g, r, a = buf.BGRA(1, 1)
	if b != 77 || g != 77 || r != 77 || a != 255 {
		t.Errorf("gray BGRA(1, 1) = (%d, %d, %d, %d), want (77, 77, 77, 255)", b, g, r, a)
	}

	if _, err := FromStdImage(image.NewRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("FromStdImage(empty) error = %v, want %v", err, ErrInvalidDimensions)
	}
}

func TestDecodeStd(t *testing.T) {
	// 2x2 bottom-up: file row 0 = display row 1.
	pix := []byte{
		1, 2, 3, 255, 4, 5, 6, 255,
		7, 8, 9, 255, 10, 11, 12, 255,
	}
	buf, err := DecodeStd(bytes.NewReader(makeBMP32(t, 2, 2, pix)))
	if err != nil {
		t.Fatalf("DecodeStd() error = %v", err)
	}

	// Result is top-down.
	b, g, r, _ := buf.BGRA(0, 0)
	if b != 7 || g != 8 || r != 9 {
		t.Errorf("BGRA(0, 0) = (%d, %d, %d), want (7, 8, 9)", b, g, r)
	}
	b, g, r, _ = buf.BGRA(1, 1)
	if b != 4 || g != 5 || r != 6 {
		t.Errorf("BGRA(1, 1) = (%d, %d, %d), want (4, 5, 6)", b, g, r)
	}
}

func TestDecodeStd_Invalid(t *testing.T) {
	if _, err := DecodeStd(bytes.NewReader([]byte("not a bitmap"))); err == nil {
		t.Error("DecodeStd() should fail on garbage input")
	}
}

func TestEncodePNG(t *testing.T) {
	buf, _ := NewBuf(8, 4)
	buf.Fill(0, 128, 255, 255)

	var out bytes.Buffer
	if err := EncodePNG(&out, buf, true, 0); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	r, g, b, _ := img.At(3, 3).RGBA()
	if r>>8 != 255 || g>>8 != 128 || b>>8 != 0 {
		t.Errorf("At(3, 3) = (%d, %d, %d), want (255, 128, 0)", r>>8, g>>8, b>>8)
	}
}

func TestThumbnail(t *testing.T) {
	buf, _ := NewBuf(200, 100)
	buf.Fill(10, 20, 30, 255)

	img := Thumbnail(buf, false, 50)
	if got := img.Bounds().Size(); got != image.Pt(50, 25) {
		t.Errorf("Thumbnail size = %v, want (50,25)", got)
	}

	img = Thumbnail(buf, false, 500)
	if got := img.Bounds().Size(); got != image.Pt(200, 100) {
		t.Errorf("Thumbnail within limit size = %v, want (200,100)", got)
	}

	tall, _ := NewBuf(10, 40)
	img = Thumbnail(tall, true, 20)
	if got := img.Bounds().Size(); got != image.Pt(5, 20) {
		t.Errorf("tall Thumbnail size = %v, want (5,20)", got)
	}
}
