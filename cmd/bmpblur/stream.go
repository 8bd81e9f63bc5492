package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/bmpblur"
)

// zstdExt marks paths whose contents are zstd-compressed BMP streams.
const zstdExt = ".zst"

func isZstd(path string) bool {
	return strings.EqualFold(filepath.Ext(path), zstdExt)
}

// zstdReadCloser closes both the decoder and the underlying file.
type zstdReadCloser struct {
	dec  *zstd.Decoder
	file *os.File
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return z.file.Close()
}

// zstdWriteCloser flushes the encoder before closing the file.
type zstdWriteCloser struct {
	enc  *zstd.Encoder
	file *os.File
}

func (z *zstdWriteCloser) Write(p []byte) (int, error) {
	return z.enc.Write(p)
}

func (z *zstdWriteCloser) Close() error {
	return errors.Join(z.enc.Close(), z.file.Close())
}

// openSource opens path for reading, decompressing .zst files.
func openSource(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bmpblur.ErrFile, err)
	}
	if !isZstd(path) {
		return f, nil
	}
	dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: zstd reader for %s: %w", bmpblur.ErrFile, path, err)
	}
	return &zstdReadCloser{dec: dec, file: f}, nil
}

// createDest creates path for writing, compressing .zst files.
func createDest(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bmpblur.ErrFile, err)
	}
	if !isZstd(path) {
		return f, nil
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: zstd writer for %s: %w", bmpblur.ErrFile, path, err)
	}
	return &zstdWriteCloser{enc: enc, file: f}, nil
}

// decodeFile reads one BMP from path.
func decodeFile(path string, opts []bmpblur.Option) (*bmpblur.Image, error) {
	r, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	img, err := bmpblur.Decode(r, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// encodeFile writes img to path. A partially written file is removed.
func encodeFile(path string, img *bmpblur.Image) (int64, error) {
	w, err := createDest(path)
	if err != nil {
		return 0, err
	}
	n, err := bmpblur.Encode(w, img)
	if cerr := w.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: closing %s: %w", bmpblur.ErrFile, path, cerr)
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	return n, nil
}

// verifyFile re-reads path with an independent decoder and compares it
// with img.
func verifyFile(path string, img *bmpblur.Image) error {
	r, err := openSource(path)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	if err := bmpblur.Verify(r, img); err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}
	return nil
}

// writePreview stores a PNG preview of img at path.
func writePreview(path string, img *bmpblur.Image, maxSide int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", bmpblur.ErrFile, err)
	}
	err = bmpblur.WritePreview(f, img, maxSide)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: closing %s: %w", bmpblur.ErrFile, path, cerr)
	}
	return err
}
