// Package bmpblur decodes uncompressed 32-bit BMP images, blurs them with
// a 3x3 integer convolution kernel, and encodes the result back to BMP.
//
// # Overview
//
// The package has three layers:
//
//   - Codec: [Decode] reads and validates a 54-byte header and the pixel
//     rows that follow it; [Encode] writes the header verbatim and the rows
//     with BMP row padding.
//   - Engine: [Apply] filters sequentially; [ApplyParallel] partitions the
//     rows into contiguous blocks, one goroutine per block, and produces
//     byte-identical output.
//   - Pipeline: [Filter] runs one or more passes with [Option] settings, and
//     [Process] chains decode, filter and encode.
//
// # Quick Start
//
//	in, _ := os.Open("in.bmp")
//	defer in.Close()
//	img, err := bmpblur.Decode(in)
//	if err != nil {
//	    log.Fatal(bmpblur.Diagnostic(err))
//	}
//	out, err := bmpblur.ApplyParallel(img, bmpblur.GaussianKernel, 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dst, _ := os.Create("out.bmp")
//	defer dst.Close()
//	_, err = bmpblur.Encode(dst, out)
//
// # Border Normalization
//
// Each output channel is the kernel-weighted sum of the in-bounds
// neighbors divided by the count of those neighbors. Interior pixels divide
// by 9, edge pixels by 6 and corner pixels by 4, whatever the kernel
// weights are. For kernels whose weights do not sum to 9 this gives border
// pixels a different effective scale than interior pixels. Results are
// clamped to [0, 255].
//
// # Errors
//
// Every returned error wraps one of [ErrArgument], [ErrFile], [ErrMemory]
// or [ErrValid]. [Diagnostic] maps an error to a fixed user-facing message.
//
// # Logging
//
// bmpblur is silent by default. Use [SetLogger] to receive debug records.
package bmpblur
