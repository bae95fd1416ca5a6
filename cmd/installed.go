package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcp-get/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcp-get/internal/cmd/options"
	"github.com/mozilla-ai/mcp-get/internal/cmd/output"
	"github.com/mozilla-ai/mcp-get/internal/installer"
	"github.com/mozilla-ai/mcp-get/internal/printer"
)

// InstalledCmd should be used to represent the 'installed' command.
type InstalledCmd struct {
	*cmd.BaseCmd
	Format  cmd.OutputFormat
	builder cmd.InstallerBuilder
}

// NewInstalledCmd creates a newly configured (Cobra) command.
func NewInstalledCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InstalledCmd{
		BaseCmd: baseCmd,
		Format:  cmd.FormatText,
		builder: installerBuilder(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:   "installed",
		Short: "Lists the MCP servers registered in the Claude desktop config.",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCommand, nil
}

func (c *InstalledCmd) run(cmd *cobra.Command, _ []string) error {
	handler, err := newOutputHandler[installer.Server](c.Format, cmd, printer.NewServerPrinter())
	if err != nil {
		return err
	}
	if th, ok := handler.(*output.TextHandler[installer.Server]); ok {
		th.WithEmptyMessage("No MCP servers installed")
	}

	i, err := c.builder.BuildInstaller(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return handler.HandleError(err)
	}

	servers, err := i.InstalledServers()
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResults(servers...)
}
