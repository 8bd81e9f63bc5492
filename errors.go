package bmpblur

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of
// them; use errors.Is or KindOf to classify.
var (
	// ErrArgument reports an invalid caller-supplied parameter, such as a
	// non-positive worker count or an unknown kernel name.
	ErrArgument = errors.New("bmpblur: invalid argument")

	// ErrFile reports a failed or short read or write on a stream.
	ErrFile = errors.New("bmpblur: file error")

	// ErrMemory reports that a pixel buffer could not be allocated.
	ErrMemory = errors.New("bmpblur: memory allocation failed")

	// ErrValid reports a header that fails format validation.
	ErrValid = errors.New("bmpblur: invalid BMP")
)

// Kind classifies an error into one of the four error kinds.
type Kind uint8

const (
	// KindNone is the kind of a nil error or one not produced by bmpblur.
	KindNone Kind = iota
	KindArgument
	KindFile
	KindMemory
	KindValid
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindFile:
		return "file"
	case KindMemory:
		return "memory"
	case KindValid:
		return "valid"
	default:
		return "none"
	}
}

// KindOf returns the kind of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrArgument):
		return KindArgument
	case errors.Is(err, ErrFile):
		return KindFile
	case errors.Is(err, ErrMemory):
		return KindMemory
	case errors.Is(err, ErrValid):
		return KindValid
	default:
		return KindNone
	}
}

// Diagnostic returns the fixed user-facing message for the kind of err.
// Errors of no known kind yield an empty string.
func Diagnostic(err error) string {
	switch KindOf(err) {
	case KindArgument:
		return "Usage: bmpblur [flags] <source> <destination> [destination2]"
	case KindFile:
		return "Unable to open file!"
	case KindMemory:
		return "Unable to allocate memory!"
	case KindValid:
		return "BMP file not valid!"
	default:
		return ""
	}
}
