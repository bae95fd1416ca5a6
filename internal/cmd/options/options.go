package options

import (
	"fmt"

	"github.com/mozilla-ai/mcp-get/internal/cmd"
)

type CmdOption func(*CmdOptions) error

type CmdOptions struct {
	InstallerBuilder cmd.InstallerBuilder
}

// defaultOptions leaves InstallerBuilder unset; commands fall back to their BaseCmd.
func defaultOptions() CmdOptions {
	return CmdOptions{}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

// WithInstallerBuilder replaces how commands obtain an Installer.
func WithInstallerBuilder(b cmd.InstallerBuilder) CmdOption {
	return func(o *CmdOptions) error {
		if b == nil {
			return fmt.Errorf("installer builder cannot be nil")
		}
		o.InstallerBuilder = b
		return nil
	}
}
