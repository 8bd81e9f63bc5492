package bmpblur

import (
	"fmt"

	"github.com/gogpu/bmpblur/internal/parallel"
)

// applyFilter computes the filtered pixel at (x, y).
//
// Each in-bounds neighbor (including the pixel itself) contributes
// channel*weight to a per-channel sum and increments a counter. The
// result is sum/count with Go's truncating division, clamped to [0, 255].
// Border pixels are therefore averaged over fewer samples with the same
// weights as interior pixels. Sums are int64, which cannot overflow for
// nine int32 weights times 255.
func applyFilter(in *PixelBuffer, k Kernel, x, y int) Pixel {
	var sumB, sumG, sumR, sumA int64
	var count int64

	width, height := in.Width(), in.Height()
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= height {
			continue
		}
		row := in.Row(ny)
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= width {
				continue
			}
			w := int64(k[dy+1][dx+1])
			off := nx * 4
			sumB += int64(row[off]) * w
			sumG += int64(row[off+1]) * w
			sumR += int64(row[off+2]) * w
			sumA += int64(row[off+3]) * w
			count++
		}
	}

	// count >= 1: (x, y) itself is always in bounds.
	return Pixel{
		B: clampChannel(sumB / count),
		G: clampChannel(sumG / count),
		R: clampChannel(sumR / count),
		A: clampChannel(sumA / count),
	}
}

func clampChannel(v int64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// filterTask is one worker's unit of work. It is passed by value; the
// kernel is copied, the input is only read, and writes are confined to
// rows by rowWindow.
type filterTask struct {
	src    *PixelBuffer
	dst    rowWindow
	kernel Kernel
}

func (t filterTask) run() error {
	for y := t.dst.rows.Start; y < t.dst.rows.End; y++ {
		for x := range t.src.Width() {
			if err := t.dst.set(x, y, applyFilter(t.src, t.kernel, x, y)); err != nil {
				return err
			}
		}
	}
	return nil
}

// rowWindow grants write access to a range of rows of a buffer.
type rowWindow struct {
	pb   *PixelBuffer
	rows parallel.RowRange
}

func (w rowWindow) set(x, y int, px Pixel) error {
	if y < w.rows.Start || y >= w.rows.End {
		return fmt.Errorf("%w: row %d outside worker rows %v", ErrArgument, y, w.rows)
	}
	row := w.pb.Row(y)
	off := x * 4
	if off < 0 || off+4 > len(row) {
		return fmt.Errorf("%w: column %d outside row of %d pixels", ErrArgument, x, w.pb.Width())
	}
	row[off], row[off+1], row[off+2], row[off+3] = px.B, px.G, px.R, px.A
	return nil
}

// newOutput allocates an output image with the geometry and header of in.
func newOutput(in *Image) (*Image, error) {
	pb, err := newPixelBuffer(in.Pixels.Width(), in.Pixels.Height(), in.Pixels.TopDown(), 0)
	if err != nil {
		return nil, err
	}
	return &Image{Header: in.Header, Pixels: pb}, nil
}

// checkGeometry verifies that dst can receive the filtered src.
func checkGeometry(src, dst *Image) error {
	if src.Pixels.Width() != dst.Pixels.Width() || src.Pixels.Height() != dst.Pixels.Height() {
		return fmt.Errorf("%w: output is %dx%d, input is %dx%d", ErrArgument,
			dst.Pixels.Width(), dst.Pixels.Height(), src.Pixels.Width(), src.Pixels.Height())
	}
	if src.Pixels == dst.Pixels {
		return fmt.Errorf("%w: input and output share a pixel buffer", ErrArgument)
	}
	return nil
}

// Apply filters every pixel of in with k in row-major order and returns a
// new image of identical geometry. in is not modified.
//
// Each output channel is the weighted sum over in-bounds neighbors divided
// by the number of those neighbors, so for kernels whose weights sum to
// something other than nine the effective scale differs between border
// and interior pixels.
func Apply(in *Image, k Kernel) (*Image, error) {
	if err := validImage(in); err != nil {
		return nil, err
	}
	out, err := newOutput(in)
	if err != nil {
		return nil, err
	}
	if err := applyInto(in, out, k); err != nil {
		return nil, err
	}
	return out, nil
}

func applyInto(in, out *Image, k Kernel) error {
	if err := checkGeometry(in, out); err != nil {
		return err
	}
	task := filterTask{
		src:    in.Pixels,
		dst:    rowWindow{pb: out.Pixels, rows: parallel.RowRange{Start: 0, End: in.Pixels.Height()}},
		kernel: k,
	}
	return task.run()
}

// ApplyParallel is Apply spread over workers goroutines, each filtering a
// contiguous block of rows. The output is byte-for-byte identical to
// Apply for every workers >= 1, including workers greater than the image
// height. workers <= 0 fails with ErrArgument.
func ApplyParallel(in *Image, k Kernel, workers int) (*Image, error) {
	if err := validImage(in); err != nil {
		return nil, err
	}
	if workers <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrArgument, parallel.ErrInvalidWorkers)
	}
	out, err := newOutput(in)
	if err != nil {
		return nil, err
	}
	if err := applyParallelInto(in, out, k, workers); err != nil {
		return nil, err
	}
	return out, nil
}

func applyParallelInto(in, out *Image, k Kernel, workers int) error {
	if err := checkGeometry(in, out); err != nil {
		return err
	}
	ranges, err := parallel.Partition(in.Pixels.Height(), workers)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArgument, err)
	}

	Logger().Debug("bmpblur: parallel filter",
		"workers", workers,
		"rows", in.Pixels.Height(),
		"ranges", fmt.Sprint(ranges))

	err = parallel.Run(ranges, func(r parallel.RowRange) error {
		return filterTask{
			src:    in.Pixels,
			dst:    rowWindow{pb: out.Pixels, rows: r},
			kernel: k,
		}.run()
	})
	if err != nil {
		return fmt.Errorf("%w: parallel filter: %w", ErrArgument, err)
	}
	return nil
}
