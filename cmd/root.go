package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcp-get/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcp-get/internal/cmd/options"
	"github.com/mozilla-ai/mcp-get/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

type RootCmd struct {
	*cmd.BaseCmd
}

// Execute runs the CLI until the command finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	baseCmd := &cmd.BaseCmd{}
	defer func() {
		_ = baseCmd.Close()
	}()

	rootCmd, err := NewRootCmd(&RootCmd{BaseCmd: baseCmd})
	if err != nil {
		return fmt.Errorf("error creating root command: %w", err)
	}

	return rootCmd.ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. opt is passed to every subcommand.
func NewRootCmd(c *RootCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           "mcp-get <command> [args]",
		Short:         "Install and manage MCP servers for the Claude desktop app.",
		Long:          c.longDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []func(*cmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error){
		NewInstallCmd,
		NewUninstallCmd,
		NewInfoCmd,
		NewListCmd,
		NewInstalledCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(c.BaseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `'mcp-get' installs MCP server packages into the Claude desktop app's configuration,
prompting for any environment variables a server needs and offering to restart Claude
so the change takes effect.`
}

// installerBuilder returns the builder from opts, falling back to the BaseCmd.
func installerBuilder(baseCmd *cmd.BaseCmd, opts cmdopts.CmdOptions) cmd.InstallerBuilder {
	if opts.InstallerBuilder != nil {
		return opts.InstallerBuilder
	}

	return baseCmd
}
