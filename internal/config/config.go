package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mgerrors "github.com/mozilla-ai/mcp-get/internal/errors"
	"github.com/mozilla-ai/mcp-get/internal/files"
	"github.com/mozilla-ai/mcp-get/internal/packages"
	"github.com/mozilla-ai/mcp-get/internal/perms"
	"github.com/mozilla-ai/mcp-get/internal/runtime"
)

// Load reads the host configuration at path.
// A missing file yields an empty document bound to path; it is only created on the first save.
func (d *DefaultLoader) Load(path string) (Modifier, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	doc := &Document{
		path:    path,
		other:   map[string]json.RawMessage{},
		servers: map[string]json.RawMessage{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return nil, fmt.Errorf("%w: failed to read config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc.other); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config file (%s): %w", ErrConfigLoadFailed, path, err)
	}
	if doc.other == nil {
		// The file contained a JSON null.
		doc.other = map[string]json.RawMessage{}
	}

	if raw, ok := doc.other[ServersKey]; ok {
		delete(doc.other, ServersKey)
		if err := json.Unmarshal(raw, &doc.servers); err != nil {
			return nil, fmt.Errorf("%w: '%s' is not an object (%s): %w", ErrConfigLoadFailed, ServersKey, path, err)
		}
		if doc.servers == nil {
			doc.servers = map[string]json.RawMessage{}
		}
	}

	return doc, nil
}

// Sanitize converts a package name into the key its registration is stored under.
// Every '/' becomes '-', so '@scope/server' is stored as '@scope-server'.
func Sanitize(name string) string {
	return strings.ReplaceAll(name, "/", "-")
}

// NewServerEntry builds the registration record that launches pkg with env.
// An empty env is left out of the record.
func NewServerEntry(pkg packages.Package, env map[string]string) (ServerEntry, error) {
	var entry ServerEntry

	switch pkg.Runtime {
	case runtime.Node, runtime.Python:
		spec, err := runtime.SpecFor(pkg.Runtime)
		if err != nil {
			return ServerEntry{}, fmt.Errorf("%w: %w", mgerrors.ErrUnsupportedRuntime, err)
		}
		entry = ServerEntry{Command: spec.Command, Args: spec.Args(pkg.Name)}
	case runtime.Other:
		if strings.TrimSpace(pkg.Command) == "" {
			return ServerEntry{}, fmt.Errorf(
				"%w: package '%s' has runtime '%s' but no command",
				mgerrors.ErrUnsupportedRuntime,
				pkg.Name,
				pkg.Runtime,
			)
		}
		entry = ServerEntry{Command: pkg.Command, Args: append([]string{}, pkg.Args...)}
	default:
		return ServerEntry{}, fmt.Errorf("%w: '%s' (package '%s')", mgerrors.ErrUnsupportedRuntime, pkg.Runtime, pkg.Name)
	}

	if entry.Args == nil {
		entry.Args = []string{}
	}

	if len(env) > 0 {
		entry.Env = make(map[string]string, len(env))
		for k, v := range env {
			entry.Env[k] = v
		}
	}

	return entry, nil
}

// InstallServer stores a registration for pkg under Sanitize(pkg.Name), replacing any existing one, and saves.
func (c *Document) InstallServer(pkg packages.Package, env map[string]string) error {
	entry, err := NewServerEntry(pkg, env)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode server entry for '%s': %w", pkg.Name, err)
	}

	c.servers[Sanitize(pkg.Name)] = raw

	return c.saveConfig()
}

// RemoveServer removes the registration stored under key and saves.
func (c *Document) RemoveServer(key string) error {
	if _, ok := c.servers[key]; !ok {
		return fmt.Errorf("server '%s' not found in config", key)
	}

	delete(c.servers, key)

	return c.saveConfig()
}

// HasServer implements Modifier.
func (c *Document) HasServer(key string) bool {
	_, ok := c.servers[key]
	return ok
}

// Servers returns every registration that decodes as a ServerEntry.
// Entries written by other tools in an unexpected shape are skipped.
func (c *Document) Servers() map[string]ServerEntry {
	out := make(map[string]ServerEntry, len(c.servers))
	for k, raw := range c.servers {
		var e ServerEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		out[k] = e
	}

	return out
}

// Path implements Modifier.
func (c *Document) Path() string {
	return c.path
}

// SaveConfig writes the document to its path.
func (c *Document) SaveConfig() error {
	return c.saveConfig()
}

// MarshalJSON encodes the full document, including keys this program does not manage.
func (c *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.other)+1)
	for k, v := range c.other {
		out[k] = v
	}
	out[ServersKey] = c.servers

	return json.Marshal(out)
}

func (c *Document) saveConfig() error {
	if c.path == "" {
		return fmt.Errorf("%w: config file path not present", ErrConfigSaveFailed)
	}

	flat, err := c.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfigSaveFailed, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, flat, "", "  "); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigSaveFailed, err)
	}
	buf.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(c.path), perms.RegularDir); err != nil {
		return fmt.Errorf("%w: could not create directory for '%s': %w", ErrConfigSaveFailed, c.path, err)
	}

	if err := files.WriteFileAtomic(c.path, buf.Bytes(), perms.RegularFile); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigSaveFailed, err)
	}

	return nil
}
