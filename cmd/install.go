package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcp-get/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcp-get/internal/cmd/options"
)

// InstallCmd should be used to represent the 'install' command.
type InstallCmd struct {
	*cmd.BaseCmd
	builder cmd.InstallerBuilder
}

// NewInstallCmd creates a newly configured (Cobra) command.
func NewInstallCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InstallCmd{
		BaseCmd: baseCmd,
		builder: installerBuilder(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:   "install <package>",
		Short: "Installs an MCP server package into the Claude desktop config.",
		Long:  c.longDescription(),
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.run,
	}

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *InstallCmd) longDescription() string {
	return `Installs an MCP server package from the catalog into the Claude desktop config.
Environment variables the server needs are taken from your environment or prompted for,
and Claude is restarted on request so the server is picked up.`
}

func (c *InstallCmd) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("package name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	i, err := c.builder.BuildInstaller(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	details, err := i.PackageDetails(name)
	if err != nil {
		return err
	}

	return i.Install(cmd.Context(), details.Package)
}
