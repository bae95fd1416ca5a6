package files

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mozilla-ai/mcp-get/internal/perms"
)

const (
	// EnvVarHome overrides the per-user mcp-get directory (preferences, settings, cache).
	EnvVarHome = "MCPGET_HOME"

	// EnvVarAppData is the Windows roaming application data directory env var name.
	EnvVarAppData = "APPDATA"

	// EnvVarXDGConfigHome is the XDG Base Directory env var name for config files.
	EnvVarXDGConfigHome = "XDG_CONFIG_HOME"
)

// AppDirName returns the name of the application directory for use in user-specific operations where data is being written.
func AppDirName() string {
	return "mcp-get"
}

// UserDataDir returns the per-user directory mcp-get stores its own state in.
// On Windows this is %APPDATA%\mcp-get, elsewhere ~/.mcp-get.
// MCPGET_HOME takes precedence on every platform when set to an absolute path.
func UserDataDir() (string, error) {
	return userDataDir(runtime.GOOS, os.LookupEnv, os.UserHomeDir)
}

// EnsureAtLeastSecureDir creates a directory with secure permissions if it doesn't exist,
// and verifies that it has at least the required secure permissions if it already exists.
// It does not attempt to repair ownership or permissions: if they are wrong,
// it returns an error.
func EnsureAtLeastSecureDir(path string) error {
	return ensureAtLeastDir(path, perms.SecureDir)
}

// EnsureDir creates path with perm if it doesn't exist.
// An existing directory is accepted whatever its permissions; symlinks and non-directories are rejected.
func EnsureDir(path string, perm os.FileMode) error {
	_, err := ensureDir(path, perm)
	return err
}

// WriteFileAtomic writes data to a temporary file alongside path and renames it into place,
// so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temporary file in '%s': %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath) // No-op once renamed.
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("could not write temporary file '%s': %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temporary file '%s': %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("could not set permissions on '%s': %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("could not move temporary file into place at '%s': %w", path, err)
	}

	return nil
}

// ensureAtLeastDir creates a directory with the specified permissions if it doesn't exist,
// and verifies that it has at least the required permissions if it already exists.
// It does not attempt to repair ownership or permissions: if they are wrong, it returns an error.
// Rejects symlinked directories.
//
// NOTE: Only the final directory is checked. Antecedent directories may have default permissions.
func ensureAtLeastDir(path string, perm os.FileMode) error {
	info, err := ensureDir(path, perm)
	if err != nil {
		return err
	}

	// Windows does not report POSIX permission bits meaningfully.
	if runtime.GOOS == "windows" {
		return nil
	}

	if !isPermissionAcceptable(info.Mode().Perm(), perm) {
		return fmt.Errorf(
			"incorrect permissions for directory '%s' (%#o, want %#o or more restrictive)",
			path, info.Mode().Perm(),
			perm,
		)
	}

	return nil
}

// isPermissionAcceptable checks if the actual permissions are acceptable for the required permissions.
// It returns true if the actual permissions are equal to or more restrictive than required.
func isPermissionAcceptable(actual, required os.FileMode) bool {
	return (actual & ^required) == 0
}

// userDataDir resolves the per-user directory for the given platform.
func userDataDir(
	goos string,
	lookupEnv func(string) (string, bool),
	homeDir func() (string, error),
) (string, error) {
	if v, ok := lookupEnv(EnvVarHome); ok && strings.TrimSpace(v) != "" {
		v = strings.TrimSpace(v)
		if !filepath.IsAbs(v) {
			return "", fmt.Errorf("environment variable '%s' must be an absolute path, got: %s", EnvVarHome, v)
		}
		return v, nil
	}

	if goos == "windows" {
		if appData, ok := lookupEnv(EnvVarAppData); ok && strings.TrimSpace(appData) != "" {
			return filepath.Join(strings.TrimSpace(appData), AppDirName()), nil
		}
	}

	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	if goos == "windows" {
		return filepath.Join(home, "AppData", "Roaming", AppDirName()), nil
	}

	return filepath.Join(home, "."+AppDirName()), nil
}

// ensureDir creates path if missing and returns its Lstat info.
func ensureDir(path string, perm os.FileMode) (os.FileInfo, error) {
	if err := os.MkdirAll(path, perm); err != nil {
		return nil, fmt.Errorf("could not ensure directory exists for '%s': %w", path, err)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("could not stat directory '%s': %w", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("path '%s' is a symlink, not a directory", path)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path '%s' is not a directory", path)
	}

	return info, nil
}
