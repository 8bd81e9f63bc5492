package bmpblur

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is a filter run configuration, usually loaded from YAML:
//
//	kernel: gaussian      # box or gaussian
//	matrix:               # optional explicit 3x3 weights, overrides kernel
//	  - [0, 1, 0]
//	  - [1, 4, 1]
//	  - [0, 1, 0]
//	workers: 8            # 0 runs the sequential filter
//	passes: 2
//	max_pixels: 16777216
type Config struct {
	Kernel    string    `yaml:"kernel"`
	Matrix    [][]int32 `yaml:"matrix,omitempty"`
	Workers   int       `yaml:"workers"`
	Passes    int       `yaml:"passes"`
	MaxPixels int       `yaml:"max_pixels"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Kernel:    "box",
		Workers:   DefaultWorkers,
		Passes:    1,
		MaxPixels: DefaultMaxPixels,
	}
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their DefaultConfig values. A missing file is not an error: the
// defaults are returned and a debug record is logged.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			Logger().Debug("bmpblur: config file not found, using defaults", "path", path)
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("%w: read config %q: %w", ErrFile, path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses YAML configuration data on top of DefaultConfig and
// validates the result. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse config: %w", ErrArgument, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a runnable filter.
func (c Config) Validate() error {
	if _, err := c.KernelValue(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrArgument, c.Workers)
	}
	if c.Passes < 1 {
		return fmt.Errorf("%w: passes must be at least 1, got %d", ErrArgument, c.Passes)
	}
	return nil
}

// KernelValue resolves the configured kernel. An explicit matrix takes
// precedence over the kernel name.
func (c Config) KernelValue() (Kernel, error) {
	if len(c.Matrix) > 0 {
		return KernelFromRows(c.Matrix)
	}
	return KernelByName(c.Kernel)
}

// Options converts the configuration into Options for Decode, Filter and
// Process.
func (c Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	k, _ := c.KernelValue()
	return []Option{
		WithKernel(k),
		WithWorkers(c.Workers),
		WithPasses(c.Passes),
		WithMaxPixels(c.MaxPixels),
	}, nil
}

// Marshal returns the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
