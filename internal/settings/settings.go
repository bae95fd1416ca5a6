// Package settings reads the optional settings.toml file from the per-user mcp-get directory.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mozilla-ai/mcp-get/internal/files"
)

// FileName is the settings file name inside the per-user mcp-get directory.
const FileName = "settings.toml"

// Settings are user defaults, applied below flags and environment variables.
type Settings struct {
	// HostConfig is the path of the host application's configuration file.
	HostConfig string `toml:"host_config,omitempty"`

	// AnalyticsURL is the base URL install events are reported to.
	AnalyticsURL string `toml:"analytics_url,omitempty"`

	// Catalog is a path or URL of a package catalog to use instead of the built-in one.
	Catalog string `toml:"catalog,omitempty"`

	// CacheTTL is how long a downloaded catalog is reused, e.g. "12h".
	CacheTTL string `toml:"cache_ttl,omitempty"`
}

// TTL parses CacheTTL. An empty value returns zero.
func (s Settings) TTL() (time.Duration, error) {
	v := strings.TrimSpace(s.CacheTTL)
	if v == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid cache_ttl '%s': %w", v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid cache_ttl '%s': must be positive", v)
	}

	return d, nil
}

// Path returns the settings file path in dir, or in files.UserDataDir when dir is empty.
func Path(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		d, err := files.UserDataDir()
		if err != nil {
			return "", err
		}
		dir = d
	}

	return filepath.Join(dir, FileName), nil
}

// Load reads the settings file at path. A missing file yields zero Settings.
func Load(path string) (Settings, error) {
	var s Settings

	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to decode settings file (%s): %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Settings{}, fmt.Errorf("unknown keys in settings file (%s): %s", path, strings.Join(keys, ", "))
	}

	if _, err := s.TTL(); err != nil {
		return Settings{}, err
	}

	return s, nil
}
