package config

import (
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/mozilla-ai/mcp-get/internal/files"
)

const (
	// FileName is the host configuration file name.
	FileName = "claude_desktop_config.json"

	hostDirName = "Claude"
)

// DefaultPath returns the host configuration path for the current platform.
func DefaultPath() (string, error) {
	return defaultPath(goruntime.GOOS, os.LookupEnv, os.UserHomeDir)
}

func defaultPath(
	goos string,
	lookupEnv func(string) (string, bool),
	homeDir func() (string, error),
) (string, error) {
	switch goos {
	case "windows":
		if appData, ok := lookupEnv(files.EnvVarAppData); ok && strings.TrimSpace(appData) != "" {
			return filepath.Join(strings.TrimSpace(appData), hostDirName, FileName), nil
		}
		home, err := homeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, "AppData", "Roaming", hostDirName, FileName), nil
	case "darwin":
		home, err := homeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", hostDirName, FileName), nil
	default:
		if xdg, ok := lookupEnv(files.EnvVarXDGConfigHome); ok && strings.TrimSpace(xdg) != "" {
			xdg = strings.TrimSpace(xdg)
			if !filepath.IsAbs(xdg) {
				return "", fmt.Errorf("environment variable '%s' must be an absolute path, got: %s", files.EnvVarXDGConfigHome, xdg)
			}
			return filepath.Join(xdg, hostDirName, FileName), nil
		}
		home, err := homeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, ".config", hostDirName, FileName), nil
	}
}
