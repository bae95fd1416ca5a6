package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mozilla-ai/mcp-get/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcp-get/internal/cmd/options"
)

func TestListCmd_Text(t *testing.T) {
	t.Parallel()

	fi := newFakeInstaller()
	fi.installed["mcp-server-fetch"] = true
	c, err := NewListCmd(&cmd.BaseCmd{}, cmdopts.WithInstallerBuilder(&fakeBuilder{installer: fi}))
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	c.SetOut(buf)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())

	out := buf.String()
	require.Contains(t, out, "  @modelcontextprotocol/server-github (node)")
	require.Contains(t, out, "✓ mcp-server-fetch (python)")
	require.Contains(t, out, "    Fetch web content")
	require.True(t, strings.Index(out, "server-github") < strings.Index(out, "mcp-server-fetch"))
}

func TestListCmd_YAML(t *testing.T) {
	t.Parallel()

	c, err := NewListCmd(&cmd.BaseCmd{}, cmdopts.WithInstallerBuilder(&fakeBuilder{installer: newFakeInstaller()}))
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	c.SetOut(buf)
	c.SetArgs([]string{"--format", "yaml"})
	require.NoError(t, c.Execute())

	var got struct {
		Results []struct {
			Name string `yaml:"name"`
		} `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Results, 2)
	require.Equal(t, "mcp-server-fetch", got.Results[1].Name)
}

func TestListCmd_Error(t *testing.T) {
	t.Parallel()

	fi := newFakeInstaller()
	fi.listErr = errors.New("catalog unavailable")
	c, err := NewListCmd(&cmd.BaseCmd{}, cmdopts.WithInstallerBuilder(&fakeBuilder{installer: fi}))
	require.NoError(t, err)

	c.SetOut(new(bytes.Buffer))
	c.SetErr(new(bytes.Buffer))
	c.SetArgs([]string{})
	require.EqualError(t, c.Execute(), "catalog unavailable")
}

func TestListCmd_RejectsArgs(t *testing.T) {
	t.Parallel()

	c, err := NewListCmd(&cmd.BaseCmd{}, cmdopts.WithInstallerBuilder(&fakeBuilder{installer: newFakeInstaller()}))
	require.NoError(t, err)

	c.SetOut(new(bytes.Buffer))
	c.SetErr(new(bytes.Buffer))
	c.SetArgs([]string{"extra"})
	require.Error(t, c.Execute())
}

func TestListCmd_Filter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []string
		contains    []string
		notContains []string
		errContains string
	}{
		{
			name:        "runtime",
			args:        []string{"--filter", "runtime=python"},
			contains:    []string{"mcp-server-fetch"},
			notContains: []string{"server-github"},
		},
		{
			name:        "repeated filters combine",
			args:        []string{"--filter", "query=github", "--filter", "installed=false"},
			contains:    []string{"server-github"},
			notContains: []string{"mcp-server-fetch"},
		},
		{
			name:     "no matches",
			args:     []string{"--filter", "name=slack"},
			contains: []string{"No items found"},
		},
		{
			name:        "unknown key",
			args:        []string{"--filter", "tag=x"},
			errContains: "unsupported filter keys: tag",
		},
		{
			name:        "malformed",
			args:        []string{"--filter", "runtime"},
			errContains: "expected key=value",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewListCmd(&cmd.BaseCmd{}, cmdopts.WithInstallerBuilder(&fakeBuilder{installer: newFakeInstaller()}))
			require.NoError(t, err)

			buf := new(bytes.Buffer)
			c.SetOut(buf)
			c.SetErr(new(bytes.Buffer))
			c.SetArgs(tc.args)

			err = c.Execute()
			if tc.errContains != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			for _, s := range tc.contains {
				require.Contains(t, buf.String(), s)
			}
			for _, s := range tc.notContains {
				require.NotContains(t, buf.String(), s)
			}
		})
	}
}
