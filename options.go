package bmpblur

// DefaultMaxPixels is the default upper bound on width*height accepted by
// Decode (256 Mpx, 1 GiB of pixel data).
const DefaultMaxPixels = 1 << 28

// DefaultWorkers is the worker count used by Filter and Process unless
// overridden.
const DefaultWorkers = 4

// Sequential selects the single-goroutine filter path in WithWorkers.
const Sequential = 0

// Option configures Decode, Filter and Process.
//
// Example:
//
//	out, err := bmpblur.Filter(img,
//	    bmpblur.WithKernel(bmpblur.GaussianKernel),
//	    bmpblur.WithWorkers(8),
//	)
type Option func(*options)

// options holds the resolved configuration.
type options struct {
	maxPixels int
	workers   int
	kernel    Kernel
	passes    int
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		maxPixels: DefaultMaxPixels,
		workers:   DefaultWorkers,
		kernel:    BoxKernel,
		passes:    1,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithMaxPixels limits the pixel count Decode will allocate. Larger images
// fail with ErrMemory. n <= 0 removes the limit.
func WithMaxPixels(n int) Option {
	return func(o *options) {
		o.maxPixels = n
	}
}

// WithWorkers sets the number of filter goroutines. Sequential (0) runs
// Apply instead of ApplyParallel; negative values make Filter fail with
// ErrArgument.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithKernel sets the convolution kernel. The default is BoxKernel.
func WithKernel(k Kernel) Option {
	return func(o *options) {
		o.kernel = k
	}
}

// WithPasses sets how many times the filter is applied. The default is 1.
func WithPasses(n int) Option {
	return func(o *options) {
		o.passes = n
	}
}
