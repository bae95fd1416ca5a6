package runtime

import (
	"os/exec"
	goruntime "runtime"
)

// Options configures how tools are looked up and installed.
type Options struct {
	// LookPath resolves an executable on PATH.
	LookPath func(file string) (string, error)

	// GOOS selects platform-specific installer commands.
	GOOS string
}

// Option is a functional option for Options.
type Option func(*Options) error

func defaultOptions() Options {
	return Options{
		LookPath: exec.LookPath,
		GOOS:     goruntime.GOOS,
	}
}

// NewOptions applies opt over the defaults.
func NewOptions(opt ...Option) (Options, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return Options{}, err
		}
	}
	return opts, nil
}

// WithLookPath overrides PATH resolution.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(o *Options) error {
		if fn != nil {
			o.LookPath = fn
		}
		return nil
	}
}

// WithGOOS overrides the target platform.
func WithGOOS(goos string) Option {
	return func(o *Options) error {
		if goos != "" {
			o.GOOS = goos
		}
		return nil
	}
}
