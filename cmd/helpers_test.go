package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/mozilla-ai/mcp-get/internal/cmd"
	"github.com/mozilla-ai/mcp-get/internal/config"
	mgerrors "github.com/mozilla-ai/mcp-get/internal/errors"
	"github.com/mozilla-ai/mcp-get/internal/installer"
	"github.com/mozilla-ai/mcp-get/internal/packages"
	"github.com/mozilla-ai/mcp-get/internal/runtime"
)

var _ cmd.Installer = (*fakeInstaller)(nil)

// fakeInstaller records calls and serves a fixed catalog.
type fakeInstaller struct {
	catalog      []packages.Package
	installed    map[string]bool
	servers      []installer.Server
	installErr   error
	uninstallErr error
	listErr      error

	installedPkgs []string
	uninstalled   []string
	out           io.Writer
}

func newFakeInstaller() *fakeInstaller {
	return &fakeInstaller{
		catalog: []packages.Package{
			{
				Name:        "@modelcontextprotocol/server-github",
				Description: "GitHub repository access",
				Runtime:     runtime.Node,
				EnvironmentVariables: packages.EnvVars{
					{Name: "GITHUB_PERSONAL_ACCESS_TOKEN", Description: "Personal access token", Required: true},
				},
			},
			{
				Name:        "mcp-server-fetch",
				Description: "Fetch web content",
				Runtime:     runtime.Python,
			},
		},
		installed: map[string]bool{},
	}
}

func (f *fakeInstaller) Install(_ context.Context, pkg packages.Package) error {
	if f.installErr != nil {
		return f.installErr
	}
	f.installedPkgs = append(f.installedPkgs, pkg.Name)
	_, _ = fmt.Fprintf(f.out, "✓ Successfully installed %s\n", pkg.Name)
	return nil
}

func (f *fakeInstaller) Uninstall(_ context.Context, name string) error {
	if f.uninstallErr != nil {
		return f.uninstallErr
	}
	f.uninstalled = append(f.uninstalled, name)
	return nil
}

func (f *fakeInstaller) PackageDetails(name string) (packages.Details, error) {
	for _, p := range f.catalog {
		if p.Name == name {
			return packages.Details{Package: p, IsInstalled: f.installed[name]}, nil
		}
	}
	return packages.Details{}, fmt.Errorf("%w: '%s'", mgerrors.ErrPackageNotFound, name)
}

func (f *fakeInstaller) Packages() ([]packages.Details, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]packages.Details, 0, len(f.catalog))
	for _, p := range f.catalog {
		out = append(out, packages.Details{Package: p, IsInstalled: f.installed[p.Name]})
	}
	return out, nil
}

func (f *fakeInstaller) InstalledServers() ([]installer.Server, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.servers, nil
}

// fakeBuilder hands out the same fakeInstaller, wired to the command's output.
type fakeBuilder struct {
	installer *fakeInstaller
	err       error
}

func (b *fakeBuilder) BuildInstaller(_ io.Reader, out io.Writer) (cmd.Installer, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.installer.out = out
	return b.installer, nil
}

func githubServer() installer.Server {
	return installer.Server{
		Name: "@modelcontextprotocol-server-github",
		ServerEntry: config.ServerEntry{
			Command: "npx",
			Args:    []string{"-y", "@modelcontextprotocol/server-github"},
			Env:     map[string]string{"GITHUB_PERSONAL_ACCESS_TOKEN": "secret"},
		},
	}
}
