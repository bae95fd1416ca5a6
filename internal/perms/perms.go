// Package perms provides centralized file and directory permission constants
// for the files mcp-get writes on behalf of the user.
package perms

import "os"

// File permission constants for different security contexts.
const (
	// RegularFile permissions for files the host application also reads (claude_desktop_config.json).
	// Mode 0644: owner read/write, group read, others read.
	RegularFile os.FileMode = 0o644

	// SecureFile permissions for per-user mcp-get state (preferences, settings, cached catalogs).
	// Mode 0600: owner read/write only, no group or other access.
	SecureFile os.FileMode = 0o600
)

// Directory permission constants for different security contexts.
const (
	// RegularDir permissions for directories shared with the host application.
	// Mode 0755: owner read/write/execute, group read/execute, others read/execute.
	RegularDir os.FileMode = 0o755

	// SecureDir permissions for the per-user mcp-get directory.
	// Mode 0700: owner read/write/execute only, no group or other access.
	SecureDir os.FileMode = 0o700
)
