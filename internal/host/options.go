package host

import (
	"fmt"
	goruntime "runtime"
	"time"
)

const (
	// DefaultQuiescence is the pause between stopping the host application and relaunching it.
	DefaultQuiescence = 2 * time.Second

	defaultExitPollInterval = 250 * time.Millisecond
	defaultExitPollRetries  = 20
)

// Options configures a ProcessController.
type Options struct {
	GOOS       string
	Quiescence time.Duration
	Processes  ProcessLister
	Launcher   Launcher

	// ExitPollInterval and ExitPollRetries bound the wait for killed processes to exit.
	ExitPollInterval time.Duration
	ExitPollRetries  uint64
}

// Option is a functional option for Options.
type Option func(*Options) error

func defaultOptions() Options {
	return Options{
		GOOS:             goruntime.GOOS,
		Quiescence:       DefaultQuiescence,
		Processes:        systemProcesses,
		Launcher:         startDetached,
		ExitPollInterval: defaultExitPollInterval,
		ExitPollRetries:  defaultExitPollRetries,
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

// WithGOOS selects the platform command set.
func WithGOOS(goos string) Option {
	return func(o *Options) error {
		if goos != "" {
			o.GOOS = goos
		}
		return nil
	}
}

// WithQuiescence overrides the delay between kill and relaunch.
func WithQuiescence(d time.Duration) Option {
	return func(o *Options) error {
		if d < 0 {
			return fmt.Errorf("quiescence delay cannot be negative: %s", d)
		}
		o.Quiescence = d
		return nil
	}
}

// WithProcessLister replaces the process table source.
func WithProcessLister(fn ProcessLister) Option {
	return func(o *Options) error {
		if fn == nil {
			return fmt.Errorf("process lister cannot be nil")
		}
		o.Processes = fn
		return nil
	}
}

// WithLauncher replaces how the relaunch command is started.
func WithLauncher(fn Launcher) Option {
	return func(o *Options) error {
		if fn == nil {
			return fmt.Errorf("launcher cannot be nil")
		}
		o.Launcher = fn
		return nil
	}
}

// WithExitPolling bounds the wait for killed processes to exit.
func WithExitPolling(interval time.Duration, retries uint64) Option {
	return func(o *Options) error {
		if interval <= 0 {
			return fmt.Errorf("exit poll interval must be positive: %s", interval)
		}
		o.ExitPollInterval = interval
		o.ExitPollRetries = retries
		return nil
	}
}
