// Command bmpblur blurs 32-bit BMP images with a 3x3 convolution kernel.
//
// Usage:
//
//	bmpblur [flags] <source> <destination> [destination2]
//
// With one destination the configured kernel is applied. With two, the
// first destination receives the sequential box filter and the second the
// parallel Gaussian filter. Paths ending in .zst are zstd-compressed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/language"

	"github.com/gogpu/bmpblur"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// output is one destination and the options that produce it.
type output struct {
	path string
	opts []bmpblur.Option
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bmpblur", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "YAML run configuration")
		kernel     = fs.String("kernel", "box", "kernel name: box or gaussian")
		workers    = fs.Int("workers", bmpblur.DefaultWorkers, "filter goroutines, 0 for sequential")
		passes     = fs.Int("passes", 1, "number of filter passes")
		info       = fs.Bool("info", false, "print the source header")
		lang       = fs.String("lang", "en", "locale for -info numbers")
		preview    = fs.String("preview", "", "write a PNG preview of the last output")
		previewMax = fs.Int("preview-size", 256, "longest preview side in pixels, 0 for full size")
		verify     = fs.Bool("verify", false, "re-read every destination with an independent decoder")
		verbose    = fs.Bool("v", false, "debug logging on stderr")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return fail(stderr, fmt.Errorf("%w: %w", bmpblur.ErrArgument, err))
	}

	if *verbose {
		bmpblur.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		defer bmpblur.SetLogger(nil)
	}

	cfg := bmpblur.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = bmpblur.LoadConfig(*configPath); err != nil {
			return fail(stderr, err)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "kernel":
			cfg.Kernel = *kernel
			cfg.Matrix = nil
		case "workers":
			cfg.Workers = *workers
		case "passes":
			cfg.Passes = *passes
		}
	})
	opts, err := cfg.Options()
	if err != nil {
		return fail(stderr, err)
	}

	if fs.NArg() < 2 || fs.NArg() > 3 {
		return fail(stderr, fmt.Errorf("%w: want 2 or 3 paths, got %d", bmpblur.ErrArgument, fs.NArg()))
	}
	src := fs.Arg(0)

	img, err := decodeFile(src, opts)
	if err != nil {
		return fail(stderr, err)
	}

	if *info {
		tag, err := language.Parse(*lang)
		if err != nil {
			return fail(stderr, fmt.Errorf("%w: -lang: %w", bmpblur.ErrArgument, err))
		}
		if err := bmpblur.WriteReport(stdout, img, tag); err != nil {
			return fail(stderr, err)
		}
	}

	outputs := []output{{path: fs.Arg(1), opts: opts}}
	if fs.NArg() == 3 {
		parallel := cfg.Workers
		if parallel == bmpblur.Sequential {
			parallel = bmpblur.DefaultWorkers
		}
		outputs = []output{
			{path: fs.Arg(1), opts: append(opts[:len(opts):len(opts)],
				bmpblur.WithKernel(bmpblur.BoxKernel), bmpblur.WithWorkers(bmpblur.Sequential))},
			{path: fs.Arg(2), opts: append(opts[:len(opts):len(opts)],
				bmpblur.WithKernel(bmpblur.GaussianKernel), bmpblur.WithWorkers(parallel))},
		}
	}

	var last *bmpblur.Image
	for _, o := range outputs {
		out, err := bmpblur.Filter(img, o.opts...)
		if err != nil {
			return fail(stderr, err)
		}
		n, err := encodeFile(o.path, out)
		if err != nil {
			return fail(stderr, err)
		}
		bmpblur.Logger().Debug("bmpblur: wrote", "path", o.path, "bytes", n)

		if *verify {
			if err := verifyFile(o.path, out); err != nil {
				return fail(stderr, err)
			}
		}
		last = out
	}

	if *preview != "" {
		if err := writePreview(*preview, last, *previewMax); err != nil {
			return fail(stderr, err)
		}
	}
	return 0
}

// fail prints the diagnostic for err, logs the details and returns the
// process exit status.
func fail(stderr io.Writer, err error) int {
	msg := bmpblur.Diagnostic(err)
	if msg == "" {
		msg = err.Error()
	}
	fmt.Fprintln(stderr, msg)
	bmpblur.Logger().Error("bmpblur: failed", "kind", bmpblur.KindOf(err).String(), "err", err)
	return 1
}
