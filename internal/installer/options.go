package installer

import (
	"context"
	"fmt"
	"io"

	"github.com/mozilla-ai/mcp-get/internal/config"
	"github.com/mozilla-ai/mcp-get/internal/host"
	"github.com/mozilla-ai/mcp-get/internal/packages"
	"github.com/mozilla-ai/mcp-get/internal/runtime"
	"github.com/mozilla-ai/mcp-get/internal/telemetry"
)

// EnvResolver decides the environment a package is registered with.
type EnvResolver interface {
	Resolve(ctx context.Context, pkg packages.Package) (map[string]string, error)
}

// Options holds the collaborators an Installer sequences.
// Any left nil is given a default built from the Installer's logger, prompter and output.
type Options struct {
	Out           io.Writer
	ConfigLoader  config.Loader
	CatalogLoader packages.Loader
	Resolver      EnvResolver
	Tools         runtime.ToolManager
	Telemetry     telemetry.Reporter
	Host          host.Controller
}

// Option is a functional option for Options.
type Option func(*Options) error

// NewOptions applies opt to an empty Options.
func NewOptions(opt ...Option) (Options, error) {
	var opts Options

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return Options{}, err
		}
	}

	return opts, nil
}

// WithOutput sets where user-facing messages are written.
func WithOutput(w io.Writer) Option {
	return func(o *Options) error {
		if w == nil {
			return fmt.Errorf("output writer cannot be nil")
		}
		o.Out = w
		return nil
	}
}

// WithConfigLoader replaces how the host configuration is loaded.
func WithConfigLoader(l config.Loader) Option {
	return func(o *Options) error {
		if l == nil {
			return fmt.Errorf("config loader cannot be nil")
		}
		o.ConfigLoader = l
		return nil
	}
}

// WithCatalogLoader replaces the package catalog source.
func WithCatalogLoader(l packages.Loader) Option {
	return func(o *Options) error {
		if l == nil {
			return fmt.Errorf("catalog loader cannot be nil")
		}
		o.CatalogLoader = l
		return nil
	}
}

// WithResolver replaces the environment variable resolver.
func WithResolver(r EnvResolver) Option {
	return func(o *Options) error {
		if r == nil {
			return fmt.Errorf("resolver cannot be nil")
		}
		o.Resolver = r
		return nil
	}
}

// WithToolManager replaces runtime tool detection and installation.
func WithToolManager(t runtime.ToolManager) Option {
	return func(o *Options) error {
		if t == nil {
			return fmt.Errorf("tool manager cannot be nil")
		}
		o.Tools = t
		return nil
	}
}

// WithTelemetry replaces the install reporter.
func WithTelemetry(r telemetry.Reporter) Option {
	return func(o *Options) error {
		if r == nil {
			return fmt.Errorf("telemetry reporter cannot be nil")
		}
		o.Telemetry = r
		return nil
	}
}

// WithHostController replaces host application control.
func WithHostController(c host.Controller) Option {
	return func(o *Options) error {
		if c == nil {
			return fmt.Errorf("host controller cannot be nil")
		}
		o.Host = c
		return nil
	}
}
