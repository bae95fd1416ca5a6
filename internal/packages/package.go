package packages

import (
	"encoding/json"

	"github.com/mozilla-ai/mcp-get/internal/runtime"
)

// Package represents a single catalog entry describing an installable MCP server.
type Package struct {
	// Name is the unique catalog key, e.g. '@modelcontextprotocol/server-github'.
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Vendor      string          `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	SourceURL   string          `json:"sourceUrl,omitempty" yaml:"source_url,omitempty"`
	Homepage    string          `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	License     string          `json:"license,omitempty" yaml:"license,omitempty"`
	Runtime     runtime.Runtime `json:"runtime" yaml:"runtime"`

	// Command and Args are only used for runtime 'other'.
	Command string   `json:"command,omitempty" yaml:"command,omitempty"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty"`

	// EnvironmentVariables lists the variables the server reads, in declaration order.
	EnvironmentVariables EnvVars `json:"environmentVariables,omitempty" yaml:"environment_variables,omitempty"`
}

// Details is a Package decorated with its current installation state.
type Details struct {
	Package     `yaml:",inline"`
	IsInstalled bool `json:"isInstalled" yaml:"is_installed"`
}

// HasEnvVars reports whether the package declares any environment variables.
func (p Package) HasEnvVars() bool {
	return len(p.EnvironmentVariables) > 0
}

// UnmarshalJSON decodes a Package, accepting the legacy 'requiredEnvVars' key.
func (p *Package) UnmarshalJSON(data []byte) error {
	type plain Package
	aux := struct {
		*plain
		RequiredEnvVars EnvVars `json:"requiredEnvVars,omitempty"`
	}{
		plain: (*plain)(p),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(p.EnvironmentVariables) == 0 && len(aux.RequiredEnvVars) > 0 {
		p.EnvironmentVariables = aux.RequiredEnvVars
	}

	return nil
}
