package runtime

import (
	"fmt"
	"slices"
)

// Spec describes how packages for a runtime are launched by the host application,
// and which external tool must be present for that to work.
type Spec struct {
	// Command is the launcher executable written into the host registration record.
	// Empty for runtimes where the package supplies its own command.
	Command string

	// Args builds the launcher arguments for a package name.
	Args func(pkg string) []string

	// Tool is the external tool the launcher depends on, nil when none is checked.
	Tool *Tool
}

// Tool is an external executable a runtime depends on.
type Tool struct {
	// Name is the executable looked up on PATH.
	Name string

	// DisplayName is used in user-facing messages.
	DisplayName string

	// Installers maps GOOS to the command that installs the tool, when an automated install is offered.
	Installers map[string][]string

	// HelpURL points users at manual installation instructions.
	HelpURL string
}

// Installer returns the install command for goos, if one is known.
func (t *Tool) Installer(goos string) ([]string, bool) {
	if t == nil {
		return nil, false
	}

	cmd, ok := t.Installers[goos]
	if !ok || len(cmd) == 0 {
		return nil, false
	}

	return slices.Clone(cmd), true
}

// Specs returns the launch specifications for each runtime.
func Specs() map[Runtime]Spec {
	uv := &Tool{
		Name:        "uvx",
		DisplayName: "uv",
		Installers: map[string][]string{
			"darwin":  {"sh", "-c", "curl -LsSf https://astral.sh/uv/install.sh | sh"},
			"linux":   {"sh", "-c", "curl -LsSf https://astral.sh/uv/install.sh | sh"},
			"windows": {"powershell", "-ExecutionPolicy", "ByPass", "-c", "irm https://astral.sh/uv/install.ps1 | iex"},
		},
		HelpURL: "https://docs.astral.sh/uv/getting-started/installation/",
	}

	node := &Tool{
		Name:        "npx",
		DisplayName: "Node.js",
		HelpURL:     "https://nodejs.org/en/download",
	}

	return map[Runtime]Spec{
		Node: {
			Command: "npx",
			Args: func(pkg string) []string {
				return []string{"-y", pkg}
			},
			Tool: node,
		},
		Python: {
			Command: "uvx",
			Args: func(pkg string) []string {
				return []string{pkg}
			},
			Tool: uv,
		},
		Other: {
			Args: func(string) []string {
				return nil
			},
		},
	}
}

// SpecFor returns the Spec for rt.
func SpecFor(rt Runtime) (Spec, error) {
	s, ok := Specs()[rt]
	if !ok {
		return Spec{}, fmt.Errorf("no launch specification for runtime '%s'", rt)
	}

	return s, nil
}
