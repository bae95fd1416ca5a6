package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcp-get/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcp-get/internal/cmd/options"
	"github.com/mozilla-ai/mcp-get/internal/packages"
	"github.com/mozilla-ai/mcp-get/internal/printer"
)

// InfoCmd should be used to represent the 'info' command.
type InfoCmd struct {
	*cmd.BaseCmd
	Format  cmd.OutputFormat
	builder cmd.InstallerBuilder
}

// NewInfoCmd creates a newly configured (Cobra) command.
func NewInfoCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InfoCmd{
		BaseCmd: baseCmd,
		Format:  cmd.FormatText,
		builder: installerBuilder(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:   "info <package>",
		Short: "Shows details of a catalog package and whether it is installed.",
		Long:  c.longDescription(),
		Args:  cobra.MaximumNArgs(1),
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

// longDescription returns the long version of the command description.
func (c *InfoCmd) longDescription() string {
	return `Shows the catalog entry for a package, including the environment variables it reads
and whether it is currently installed.`
}

func (c *InfoCmd) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("package name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	p, err := printer.NewPackagePrinter()
	if err != nil {
		return err
	}

	handler, err := newOutputHandler[packages.Details](c.Format, cmd, p)
	if err != nil {
		return err
	}

	i, err := c.builder.BuildInstaller(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return handler.HandleError(err)
	}

	details, err := i.PackageDetails(name)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(details)
}
