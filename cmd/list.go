package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcp-get/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcp-get/internal/cmd/options"
	"github.com/mozilla-ai/mcp-get/internal/filter"
	"github.com/mozilla-ai/mcp-get/internal/packages"
	"github.com/mozilla-ai/mcp-get/internal/printer"
)

// ListCmd should be used to represent the 'list' command.
type ListCmd struct {
	*cmd.BaseCmd
	Format  cmd.OutputFormat
	Filters []string
	builder cmd.InstallerBuilder
}

// NewListCmd creates a newly configured (Cobra) command.
func NewListCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		BaseCmd: baseCmd,
		Format:  cmd.FormatText,
		builder: installerBuilder(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists the packages available in the catalog.",
		Long:  c.longDescription(),
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	cobraCommand.Flags().StringArrayVar(
		&c.Filters,
		"filter",
		nil,
		fmt.Sprintf("Only list packages matching key=value (keys: %s), can be repeated", strings.Join(packages.Matchers().Keys(), ", ")),
	)

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *ListCmd) longDescription() string {
	return `Lists the packages available in the catalog, marking those already installed.
Filters are case-insensitive; 'name', 'vendor' and 'query' match substrings,
'runtime' matches exactly and 'installed' takes true or false.`
}

func (c *ListCmd) run(cmd *cobra.Command, _ []string) error {
	filters, err := filter.Parse(c.Filters)
	if err != nil {
		return err
	}

	handler, err := newOutputHandler[packages.Details](c.Format, cmd, printer.NewPackageListPrinter())
	if err != nil {
		return err
	}

	i, err := c.builder.BuildInstaller(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return handler.HandleError(err)
	}

	pkgs, err := i.Packages()
	if err != nil {
		return handler.HandleError(err)
	}

	pkgs, err = filter.Apply(pkgs, filters, packages.Matchers())
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResults(pkgs...)
}
