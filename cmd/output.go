package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcp-get/internal/cmd"
	"github.com/mozilla-ai/mcp-get/internal/cmd/output"
)

// newOutputHandler returns the handler for format writing to the command's output.
func newOutputHandler[T any](format cmd.OutputFormat, c *cobra.Command, p output.Printer[T]) (output.Handler[T], error) {
	return cmd.NewOutputHandler[T](format, c.OutOrStdout(), p)
}
