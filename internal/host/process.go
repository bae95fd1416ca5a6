package host

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/shirou/gopsutil/v3/process"
)

// Process is the subset of a running process the controller needs.
type Process interface {
	Name(ctx context.Context) (string, error)
	Running(ctx context.Context) (bool, error)
	Kill(ctx context.Context) error
}

// ProcessLister returns the processes currently running on the machine.
type ProcessLister func(ctx context.Context) ([]Process, error)

// Launcher starts args without waiting for it to exit.
type Launcher func(ctx context.Context, args []string) error

var _ Process = (*systemProcess)(nil)

type systemProcess struct {
	p *process.Process
}

func (s *systemProcess) Name(ctx context.Context) (string, error) {
	return s.p.NameWithContext(ctx)
}

func (s *systemProcess) Running(ctx context.Context) (bool, error) {
	return s.p.IsRunningWithContext(ctx)
}

func (s *systemProcess) Kill(ctx context.Context) error {
	return s.p.KillWithContext(ctx)
}

func systemProcesses(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		out = append(out, &systemProcess{p: p})
	}

	return out, nil
}

// startDetached starts the relaunch command and releases it.
// The host application must outlive this process, so it is not tied to ctx.
func startDetached(_ context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no launch command")
	}

	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start '%s': %w", args[0], err)
	}

	return cmd.Process.Release()
}
