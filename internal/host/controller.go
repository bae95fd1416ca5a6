// Package host detects and restarts the desktop application whose configuration mcp-get edits.
package host

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
)

// Controller observes and restarts the host application.
type Controller interface {
	// IsRunning reports whether the host application is running.
	// Detection failures are reported as not running.
	IsRunning(ctx context.Context) bool

	// Restart stops every running instance of the host application and launches it again.
	Restart(ctx context.Context) error
}

var _ Controller = (*ProcessController)(nil)

// ProcessController implements Controller using the process table.
// On a platform without a known command set it never reports the host as running.
type ProcessController struct {
	logger    hclog.Logger
	opts      Options
	platform  Platform
	supported bool
}

// NewProcessController returns a Controller for the configured platform.
func NewProcessController(logger hclog.Logger, opt ...Option) (*ProcessController, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	platform, ok := PlatformFor(opts.GOOS)

	return &ProcessController{
		logger:    logger.Named("host"),
		opts:      opts,
		platform:  platform,
		supported: ok,
	}, nil
}

// IsRunning implements Controller.
func (c *ProcessController) IsRunning(ctx context.Context) bool {
	if !c.supported {
		c.logger.Debug("Host application detection unsupported", "goos", c.opts.GOOS)
		return false
	}

	matches, err := c.find(ctx)
	if err != nil {
		c.logger.Warn("Failed to detect host application, assuming it is not running", "error", err)
		return false
	}

	return len(matches) > 0
}

// Restart implements Controller.
func (c *ProcessController) Restart(ctx context.Context) error {
	if !c.supported {
		return fmt.Errorf("restarting the host application is not supported on %s", c.opts.GOOS)
	}

	matches, err := c.find(ctx)
	if err != nil {
		return err
	}

	var errs error
	for _, p := range matches {
		if err := p.Kill(ctx); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return fmt.Errorf("failed to stop %s: %w", c.platform.ProcessName, errs)
	}

	if err := c.waitForExit(ctx, matches); err != nil {
		// The relaunch is still attempted; a straggler usually exits during the quiescence delay.
		c.logger.Warn("Host application did not exit in time", "error", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.opts.Quiescence):
	}

	c.logger.Info("Relaunching host application", "command", strings.Join(c.platform.Launch, " "))
	if err := c.opts.Launcher(ctx, c.platform.Launch); err != nil {
		return fmt.Errorf("failed to relaunch %s: %w", c.platform.ProcessName, err)
	}

	return nil
}

// find returns the running processes matching the platform's process name.
func (c *ProcessController) find(ctx context.Context) ([]Process, error) {
	procs, err := c.opts.Processes(ctx)
	if err != nil {
		return nil, err
	}

	var matches []Process
	for _, p := range procs {
		name, err := p.Name(ctx)
		if err != nil {
			// Processes can exit between listing and inspection.
			continue
		}
		if strings.EqualFold(name, c.platform.ProcessName) {
			matches = append(matches, p)
		}
	}

	return matches, nil
}

// waitForExit polls until none of procs are running.
func (c *ProcessController) waitForExit(ctx context.Context, procs []Process) error {
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.opts.ExitPollInterval), c.opts.ExitPollRetries),
		ctx,
	)

	return backoff.Retry(func() error {
		for _, p := range procs {
			running, err := p.Running(ctx)
			if err != nil {
				continue
			}
			if running {
				return fmt.Errorf("%s is still running", c.platform.ProcessName)
			}
		}
		return nil
	}, b)
}
