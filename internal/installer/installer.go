// Package installer sequences installing and uninstalling MCP server packages into the host configuration.
package installer

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcp-get/internal/config"
	"github.com/mozilla-ai/mcp-get/internal/envvars"
	"github.com/mozilla-ai/mcp-get/internal/host"
	"github.com/mozilla-ai/mcp-get/internal/packages"
	"github.com/mozilla-ai/mcp-get/internal/preferences"
	"github.com/mozilla-ai/mcp-get/internal/prompt"
	"github.com/mozilla-ai/mcp-get/internal/runtime"
	"github.com/mozilla-ai/mcp-get/internal/telemetry"
)

// Installer runs the install and uninstall lifecycles.
// It keeps no state between operations: configuration and preferences are read afresh each time.
type Installer struct {
	logger     hclog.Logger
	configPath string
	prompter   prompt.Prompter
	opts       Options
}

// Server is an installed registration, named by the key it is stored under.
type Server struct {
	Name               string `json:"name" yaml:"name"`
	config.ServerEntry `yaml:",inline"`
}

// NewInstaller returns an Installer editing the host configuration at configPath.
func NewInstaller(logger hclog.Logger, configPath string, p prompt.Prompter, opt ...Option) (*Installer, error) {
	configPath = strings.TrimSpace(configPath)
	if configPath == "" {
		return nil, fmt.Errorf("host config path cannot be empty")
	}
	if p == nil {
		return nil, fmt.Errorf("prompter cannot be nil")
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}
	if err := applyDefaults(logger, configPath, p, &opts); err != nil {
		return nil, err
	}

	return &Installer{
		logger:     logger.Named("installer"),
		configPath: configPath,
		prompter:   p,
		opts:       opts,
	}, nil
}

func applyDefaults(logger hclog.Logger, configPath string, p prompt.Prompter, opts *Options) error {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.ConfigLoader == nil {
		opts.ConfigLoader = &config.DefaultLoader{}
	}
	if opts.CatalogLoader == nil {
		opts.CatalogLoader = packages.NewLoader(logger, "", nil)
	}
	if opts.Resolver == nil {
		opts.Resolver = envvars.NewResolver(logger, p, opts.Out, envvars.WithConfigPath(configPath))
	}
	if opts.Tools == nil {
		tm, err := runtime.NewExecToolManager(logger, opts.Out, opts.Out)
		if err != nil {
			return err
		}
		opts.Tools = tm
	}
	if opts.Telemetry == nil {
		store, err := preferences.NewStore(logger, "")
		if err != nil {
			return err
		}
		r, err := telemetry.NewHTTPReporter(logger, store, p, telemetry.WithOutput(opts.Out))
		if err != nil {
			return err
		}
		opts.Telemetry = r
	}
	if opts.Host == nil {
		c, err := host.NewProcessController(logger)
		if err != nil {
			return err
		}
		opts.Host = c
	}

	return nil
}

// ConfigPath returns the host configuration file this Installer edits.
func (i *Installer) ConfigPath() string {
	return i.configPath
}

// Install registers pkg with the host application.
// A missing runtime tool only produces a warning. Telemetry and restart failures are reported but never returned.
func (i *Installer) Install(ctx context.Context, pkg packages.Package) error {
	logger := i.logger.With("package", pkg.Name, "runtime", pkg.Runtime)
	logger.Info("Installing package")

	i.ensureTool(ctx, pkg)

	env, err := i.opts.Resolver.Resolve(ctx, pkg)
	if err != nil {
		logger.Error("Failed to resolve environment variables", "error", err)
		return fmt.Errorf("failed to resolve environment variables for '%s': %w", pkg.Name, err)
	}

	cfg, err := i.opts.ConfigLoader.Load(i.configPath)
	if err != nil {
		logger.Error("Failed to load host configuration", "path", i.configPath, "error", err)
		return err
	}

	if err := cfg.InstallServer(pkg, env); err != nil {
		logger.Error("Failed to register server", "path", i.configPath, "error", err)
		return fmt.Errorf("failed to install '%s': %w", pkg.Name, err)
	}

	logger.Info("Package installed", "key", config.Sanitize(pkg.Name), "envVars", len(env))
	_, _ = fmt.Fprintf(i.opts.Out, "✓ Successfully installed %s\n", pkg.Name)

	if i.opts.Telemetry.CheckConsent(ctx) {
		i.opts.Telemetry.Report(ctx, pkg.Name)
	}

	host.PromptForRestart(ctx, i.opts.Host, i.prompter, i.opts.Out, i.logger)

	return nil
}

// Uninstall removes the registration for the package named name.
// A package that is not installed is reported to the user and is not an error.
func (i *Installer) Uninstall(ctx context.Context, name string) error {
	key := config.Sanitize(name)
	logger := i.logger.With("package", name, "key", key)

	cfg, err := i.opts.ConfigLoader.Load(i.configPath)
	if err != nil {
		logger.Error("Failed to load host configuration", "path", i.configPath, "error", err)
		return err
	}

	if !cfg.HasServer(key) {
		logger.Info("Package not installed")
		_, _ = fmt.Fprintf(i.opts.Out, "Package %s is not installed\n", name)
		return nil
	}

	if err := cfg.RemoveServer(key); err != nil {
		logger.Error("Failed to remove server", "path", i.configPath, "error", err)
		return fmt.Errorf("failed to uninstall '%s': %w", name, err)
	}

	logger.Info("Package uninstalled")
	_, _ = fmt.Fprintf(i.opts.Out, "✓ Successfully uninstalled %s\n", name)

	host.PromptForRestart(ctx, i.opts.Host, i.prompter, i.opts.Out, i.logger)

	return nil
}

// IsInstalled reports whether a registration is stored under name exactly as given.
// Unlike Install and Uninstall, name is not sanitized: a package whose name contains '/'
// is only found by its stored key (e.g. 'foo-bar' for 'foo/bar').
// An unreadable configuration counts as nothing installed.
func (i *Installer) IsInstalled(name string) bool {
	cfg, err := i.opts.ConfigLoader.Load(i.configPath)
	if err != nil {
		i.logger.Warn("Failed to load host configuration", "path", i.configPath, "error", err)
		return false
	}

	return cfg.HasServer(name)
}

// PackageDetails returns the catalog entry named name decorated with its installation state.
func (i *Installer) PackageDetails(name string) (packages.Details, error) {
	catalog, err := i.opts.CatalogLoader.Load()
	if err != nil {
		return packages.Details{}, err
	}

	pkg, err := catalog.Find(name)
	if err != nil {
		return packages.Details{}, err
	}

	return packages.Details{Package: pkg, IsInstalled: i.IsInstalled(pkg.Name)}, nil
}

// Packages returns every catalog entry decorated with its installation state, in catalog order.
func (i *Installer) Packages() ([]packages.Details, error) {
	catalog, err := i.opts.CatalogLoader.Load()
	if err != nil {
		return nil, err
	}

	cfg, err := i.opts.ConfigLoader.Load(i.configPath)
	if err != nil {
		return nil, err
	}

	pkgs := catalog.List()
	out := make([]packages.Details, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, packages.Details{Package: p, IsInstalled: cfg.HasServer(p.Name)})
	}

	return out, nil
}

// InstalledServers returns every registration in the host configuration, sorted by key.
func (i *Installer) InstalledServers() ([]Server, error) {
	cfg, err := i.opts.ConfigLoader.Load(i.configPath)
	if err != nil {
		return nil, err
	}

	entries := cfg.Servers()
	out := make([]Server, 0, len(entries))
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		out = append(out, Server{Name: k, ServerEntry: entries[k]})
	}

	return out, nil
}

// ensureTool warns when the tool pkg's runtime launches with is missing, offering to install it where possible.
// It never fails the install.
func (i *Installer) ensureTool(ctx context.Context, pkg packages.Package) {
	spec, err := runtime.SpecFor(pkg.Runtime)
	if err != nil || spec.Tool == nil {
		return
	}

	tool := spec.Tool
	if i.opts.Tools.Available(tool) {
		return
	}

	i.logger.Warn("Runtime tool missing", "tool", tool.Name, "runtime", pkg.Runtime)
	_, _ = fmt.Fprintf(
		i.opts.Out,
		"⚠ %s requires %s ('%s'), which was not found on your PATH.\n",
		pkg.Name,
		tool.DisplayName,
		tool.Name,
	)

	if !i.opts.Tools.CanInstall(tool) {
		_, _ = fmt.Fprintf(i.opts.Out, "Install %s before starting the server: %s\n", tool.DisplayName, tool.HelpURL)
		return
	}

	install, err := i.prompter.Confirm(ctx, fmt.Sprintf("Would you like to install %s now?", tool.DisplayName), true)
	if err != nil {
		i.logger.Warn("Tool install prompt failed", "tool", tool.Name, "error", err)
		return
	}
	if !install {
		_, _ = fmt.Fprintf(i.opts.Out, "Continuing without %s. Install it later: %s\n", tool.DisplayName, tool.HelpURL)
		return
	}

	if err := i.opts.Tools.Install(ctx, tool); err != nil {
		i.logger.Warn("Tool install failed", "tool", tool.Name, "error", err)
		_, _ = fmt.Fprintf(i.opts.Out, "⚠ %v\nInstall it manually: %s\n", err, tool.HelpURL)
		return
	}

	_, _ = fmt.Fprintf(i.opts.Out, "✓ Installed %s\n", tool.DisplayName)
}
