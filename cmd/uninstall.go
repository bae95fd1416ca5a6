package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcp-get/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcp-get/internal/cmd/options"
)

// UninstallCmd should be used to represent the 'uninstall' command.
type UninstallCmd struct {
	*cmd.BaseCmd
	builder cmd.InstallerBuilder
}

// NewUninstallCmd creates a newly configured (Cobra) command.
func NewUninstallCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &UninstallCmd{
		BaseCmd: baseCmd,
		builder: installerBuilder(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:     "uninstall <package>",
		Aliases: []string{"remove"},
		Short:   "Removes an MCP server package from the Claude desktop config.",
		Long:    c.longDescription(),
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.run,
	}

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *UninstallCmd) longDescription() string {
	return `Removes an MCP server package from the Claude desktop config. The package does not
need to be in the catalog; any server installed under the package's name is removed.`
}

func (c *UninstallCmd) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("package name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	i, err := c.builder.BuildInstaller(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	return i.Uninstall(cmd.Context(), name)
}
