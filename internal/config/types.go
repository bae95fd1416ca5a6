package config

import (
	"encoding/json"

	"github.com/mozilla-ai/mcp-get/internal/packages"
)

var (
	_ Loader   = (*DefaultLoader)(nil)
	_ Modifier = (*Document)(nil)
)

// ServersKey is the top-level key of the host configuration holding server registrations.
const ServersKey = "mcpServers"

type Loader interface {
	Load(path string) (Modifier, error)
}

// Modifier reads and changes server registrations in a loaded host configuration.
type Modifier interface {
	// InstallServer writes a registration record for pkg under its sanitized name and saves.
	InstallServer(pkg packages.Package, env map[string]string) error

	// RemoveServer deletes the registration stored under key and saves.
	RemoveServer(key string) error

	// HasServer reports whether a registration is stored under key, exactly as given.
	HasServer(key string) bool

	// Servers returns a copy of every registration, keyed as stored.
	Servers() map[string]ServerEntry

	// Path returns the file the configuration is bound to.
	Path() string
}

type DefaultLoader struct{}

// Document is the host application's configuration file.
// Top-level keys other than mcpServers, and fields of registrations this program did not write,
// are carried through a load and save unchanged.
type Document struct {
	path    string
	other   map[string]json.RawMessage
	servers map[string]json.RawMessage
}

// ServerEntry is the registration record the host uses to launch one MCP server.
type ServerEntry struct {
	Command string            `json:"command" yaml:"command"`
	Args    []string          `json:"args" yaml:"args"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}
