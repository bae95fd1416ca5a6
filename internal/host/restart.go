package host

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcp-get/internal/prompt"
)

// PromptForRestart offers to restart the host application so configuration changes take effect.
// Nothing is asked when the application is not running. Restart failures are logged and
// reported to out but never returned; the result is true only when a restart succeeded.
func PromptForRestart(
	ctx context.Context,
	c Controller,
	p prompt.Prompter,
	out io.Writer,
	logger hclog.Logger,
) bool {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if out == nil {
		out = io.Discard
	}

	if !c.IsRunning(ctx) {
		return false
	}

	restart, err := p.Confirm(ctx, "Would you like to restart Claude to apply the changes?", true)
	if err != nil {
		logger.Warn("Restart prompt failed", "error", err)
		return false
	}
	if !restart {
		_, _ = fmt.Fprintln(out, "Restart Claude to apply the changes.")
		return false
	}

	_, _ = fmt.Fprintln(out, "Restarting Claude...")
	if err := c.Restart(ctx); err != nil {
		logger.Error("Failed to restart host application", "error", err)
		_, _ = fmt.Fprintf(out, "⚠ Failed to restart Claude: %v\n", err)
		_, _ = fmt.Fprintln(out, "Please restart Claude manually to apply the changes.")
		return false
	}

	_, _ = fmt.Fprintln(out, "✓ Claude has been restarted")
	return true
}
