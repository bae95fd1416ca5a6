package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarHostConfig   = "MCPGET_HOST_CONFIG"
	EnvVarCatalog      = "MCPGET_CATALOG"
	EnvVarAnalyticsURL = "MCPGET_ANALYTICS_URL"
	EnvVarLogPath      = "MCPGET_LOG_PATH"
	EnvVarLogLevel     = "MCPGET_LOG_LEVEL"

	// Defaults
	DefaultLogPath  = ""
	DefaultLogLevel = "info"

	// Flag names
	FlagNameHostConfig   = "host-config"
	FlagNameCatalog      = "catalog"
	FlagNameAnalyticsURL = "analytics-url"
	FlagNameNoCache      = "no-cache"
	FlagNameRefreshCache = "refresh-cache"
	FlagNameLogPath      = "log-path"
	FlagNameLogLevel     = "log-level"
)

// Values left empty here fall back to the settings file, then to built-in defaults.
var (
	HostConfig   string
	Catalog      string
	AnalyticsURL string
	NoCache      bool
	RefreshCache bool
	LogPath      string
	LogLevel     string
)

func InitFlags(fs *pflag.FlagSet) {
	initHostConfig(fs)
	initCatalog(fs)
	initAnalytics(fs)
	initLogger(fs)
}

func initHostConfig(fs *pflag.FlagSet) {
	if HostConfig == "" {
		HostConfig = strings.TrimSpace(os.Getenv(EnvVarHostConfig))
	}
	fs.StringVar(
		&HostConfig,
		FlagNameHostConfig,
		HostConfig,
		"path to the Claude desktop config file (defaults to the platform location)",
	)
}

func initCatalog(fs *pflag.FlagSet) {
	if Catalog == "" {
		Catalog = strings.TrimSpace(os.Getenv(EnvVarCatalog))
	}
	fs.StringVar(&Catalog, FlagNameCatalog, Catalog, "path or URL of a package catalog (defaults to the built-in catalog)")
	fs.BoolVar(&NoCache, FlagNameNoCache, NoCache, "do not cache a remote catalog")
	fs.BoolVar(&RefreshCache, FlagNameRefreshCache, RefreshCache, "download a remote catalog even if a cached copy is fresh")
}

func initAnalytics(fs *pflag.FlagSet) {
	if AnalyticsURL == "" {
		AnalyticsURL = strings.TrimSpace(os.Getenv(EnvVarAnalyticsURL))
	}
	fs.StringVar(&AnalyticsURL, FlagNameAnalyticsURL, AnalyticsURL, "base URL install analytics are sent to")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogPath)); env != "" {
			LogPath = env
		} else {
			LogPath = DefaultLogPath
		}
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogLevel)); env != "" {
			LogLevel = strings.ToLower(env)
		} else {
			LogLevel = DefaultLogLevel
		}
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for mcp-get logs")
}
