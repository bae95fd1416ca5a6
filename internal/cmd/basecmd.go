package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcp-get/internal/cache"
	"github.com/mozilla-ai/mcp-get/internal/config"
	"github.com/mozilla-ai/mcp-get/internal/flags"
	"github.com/mozilla-ai/mcp-get/internal/host"
	"github.com/mozilla-ai/mcp-get/internal/installer"
	"github.com/mozilla-ai/mcp-get/internal/packages"
	"github.com/mozilla-ai/mcp-get/internal/perms"
	"github.com/mozilla-ai/mcp-get/internal/preferences"
	"github.com/mozilla-ai/mcp-get/internal/prompt"
	"github.com/mozilla-ai/mcp-get/internal/runtime"
	"github.com/mozilla-ai/mcp-get/internal/settings"
	"github.com/mozilla-ai/mcp-get/internal/telemetry"
)

var _ InstallerBuilder = (*BaseCmd)(nil)

// Installer is the lifecycle surface the commands drive.
type Installer interface {
	Install(ctx context.Context, pkg packages.Package) error
	Uninstall(ctx context.Context, name string) error
	PackageDetails(name string) (packages.Details, error)
	Packages() ([]packages.Details, error)
	InstalledServers() ([]installer.Server, error)
}

// InstallerBuilder builds an Installer that prompts on in and writes messages to out.
type InstallerBuilder interface {
	BuildInstaller(in io.Reader, out io.Writer) (Installer, error)
}

type BaseCmd struct {
	logger   hclog.Logger
	logFile  *os.File
	settings *settings.Settings
}

// SetLogger updates the command's logger
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	// Get log level from flags first, then environment, then default
	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	// Get log path from flags first, then environment
	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	// Terminal output is reserved for user-facing messages, so logs are discarded unless a path is set.
	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, logging disabled\n", logPath, err)
		} else {
			c.logFile = f
			output = f
		}
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "mcp-get",
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})

	return c.logger
}

// Close releases the log file opened by Logger, if any.
func (c *BaseCmd) Close() error {
	if c.logFile == nil {
		return nil
	}

	err := c.logFile.Close()
	c.logFile = nil
	return err
}

// SetSettings replaces the settings file contents, mainly for tests.
func (c *BaseCmd) SetSettings(s settings.Settings) {
	c.settings = &s
}

// Settings returns the settings file contents, loading them on first use.
func (c *BaseCmd) Settings() (settings.Settings, error) {
	if c.settings != nil {
		return *c.settings, nil
	}

	path, err := settings.Path("")
	if err != nil {
		return settings.Settings{}, err
	}

	s, err := settings.Load(path)
	if err != nil {
		return settings.Settings{}, err
	}

	c.Logger().Debug("Loaded settings", "path", path)
	c.settings = &s

	return s, nil
}

// HostConfigPath resolves the host configuration file: flag or env var, then settings, then the platform default.
func (c *BaseCmd) HostConfigPath() (string, error) {
	if p := strings.TrimSpace(flags.HostConfig); p != "" {
		return p, nil
	}

	s, err := c.Settings()
	if err != nil {
		return "", err
	}
	if p := strings.TrimSpace(s.HostConfig); p != "" {
		return p, nil
	}

	return config.DefaultPath()
}

// AnalyticsURL resolves the analytics endpoint. Empty means the built-in default.
func (c *BaseCmd) AnalyticsURL() (string, error) {
	if u := strings.TrimSpace(flags.AnalyticsURL); u != "" {
		return u, nil
	}

	s, err := c.Settings()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(s.AnalyticsURL), nil
}

// CatalogLoader returns a loader for the configured catalog, caching remote catalogs on disk.
func (c *BaseCmd) CatalogLoader() (packages.Loader, error) {
	s, err := c.Settings()
	if err != nil {
		return nil, err
	}

	location := strings.TrimSpace(flags.Catalog)
	if location == "" {
		location = strings.TrimSpace(s.Catalog)
	}
	if location == "" {
		return packages.NewLoader(c.Logger(), "", nil), nil
	}

	opts := []cache.Option{
		cache.WithCaching(!flags.NoCache),
		cache.WithRefreshCache(flags.RefreshCache),
	}

	ttl, err := s.TTL()
	if err != nil {
		return nil, err
	}
	if ttl > 0 {
		opts = append(opts, cache.WithTTL(ttl))
	}

	ch, err := cache.NewCache(c.Logger(), opts...)
	if err != nil {
		return nil, err
	}

	return packages.NewLoader(c.Logger(), location, ch), nil
}

// BuildInstaller wires an Installer against the real filesystem, terminal, network and process table.
func (c *BaseCmd) BuildInstaller(in io.Reader, out io.Writer) (Installer, error) {
	logger := c.Logger()

	configPath, err := c.HostConfigPath()
	if err != nil {
		return nil, err
	}

	catalog, err := c.CatalogLoader()
	if err != nil {
		return nil, err
	}

	endpoint, err := c.AnalyticsURL()
	if err != nil {
		return nil, err
	}

	p := prompt.NewTerminal(in, out)

	prefs, err := preferences.NewStore(logger, "")
	if err != nil {
		return nil, err
	}

	reporter, err := telemetry.NewHTTPReporter(
		logger,
		prefs,
		p,
		telemetry.WithEndpoint(endpoint),
		telemetry.WithOutput(out),
	)
	if err != nil {
		return nil, err
	}

	tools, err := runtime.NewExecToolManager(logger, out, out)
	if err != nil {
		return nil, err
	}

	hc, err := host.NewProcessController(logger)
	if err != nil {
		return nil, err
	}

	i, err := installer.NewInstaller(
		logger,
		configPath,
		p,
		installer.WithOutput(out),
		installer.WithCatalogLoader(catalog),
		installer.WithTelemetry(reporter),
		installer.WithToolManager(tools),
		installer.WithHostController(hc),
	)
	if err != nil {
		return nil, err
	}

	return i, nil
}
