package runtime

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// ToolManager checks for, and installs, the external tools runtimes depend on.
type ToolManager interface {
	// Available reports whether the tool can be found on PATH.
	Available(tool *Tool) bool

	// CanInstall reports whether an automated installer exists for the tool on this platform.
	CanInstall(tool *Tool) bool

	// Install runs the platform installer for the tool.
	Install(ctx context.Context, tool *Tool) error
}

var _ ToolManager = (*ExecToolManager)(nil)

// ExecToolManager implements ToolManager using PATH lookup and subprocess execution.
type ExecToolManager struct {
	logger hclog.Logger
	opts   Options
	stdout io.Writer
	stderr io.Writer
}

// NewExecToolManager returns a ToolManager that streams installer output to stdout/stderr.
func NewExecToolManager(logger hclog.Logger, stdout io.Writer, stderr io.Writer, opt ...Option) (*ExecToolManager, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &ExecToolManager{
		logger: logger.Named("tools"),
		opts:   opts,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// Available implements ToolManager.
func (m *ExecToolManager) Available(tool *Tool) bool {
	if tool == nil {
		return true
	}

	path, err := m.opts.LookPath(tool.Name)
	if err != nil {
		m.logger.Debug("Tool not found on PATH", "tool", tool.Name, "error", err)
		return false
	}

	m.logger.Debug("Tool found", "tool", tool.Name, "path", path)
	return true
}

// CanInstall implements ToolManager.
func (m *ExecToolManager) CanInstall(tool *Tool) bool {
	_, ok := tool.Installer(m.opts.GOOS)
	return ok
}

// Install implements ToolManager.
func (m *ExecToolManager) Install(ctx context.Context, tool *Tool) error {
	args, ok := tool.Installer(m.opts.GOOS)
	if !ok {
		return fmt.Errorf("no automated installer for '%s' on %s", tool.Name, m.opts.GOOS)
	}

	m.logger.Info("Installing tool", "tool", tool.Name, "command", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = m.stdout
	cmd.Stderr = m.stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to install '%s': %w", tool.DisplayName, err)
	}

	return nil
}
