package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Runtime
		wantErr  bool
	}{
		{name: "node", input: "node", expected: Node},
		{name: "python mixed case and spaces", input: "  Python ", expected: Python},
		{name: "other", input: "other", expected: Other},
		{name: "unknown", input: "docker", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rt, err := Parse(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "node, python, other")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, rt)
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	require.Equal(t, "node,python,other", Join(All(), ","))
	require.Equal(t, "", Join(nil, ","))
}

func TestSpecs(t *testing.T) {
	t.Parallel()

	node, err := SpecFor(Node)
	require.NoError(t, err)
	require.Equal(t, "npx", node.Command)
	require.Equal(t, []string{"-y", "@scope/server"}, node.Args("@scope/server"))
	require.NotNil(t, node.Tool)

	py, err := SpecFor(Python)
	require.NoError(t, err)
	require.Equal(t, "uvx", py.Command)
	require.Equal(t, []string{"mcp-server-time"}, py.Args("mcp-server-time"))
	require.Equal(t, "uvx", py.Tool.Name)

	other, err := SpecFor(Other)
	require.NoError(t, err)
	require.Empty(t, other.Command)
	require.Nil(t, other.Tool)

	_, err = SpecFor(Runtime("docker"))
	require.Error(t, err)
}

func TestTool_Installer(t *testing.T) {
	t.Parallel()

	py, err := SpecFor(Python)
	require.NoError(t, err)

	for _, goos := range []string{"darwin", "linux", "windows"} {
		cmd, ok := py.Tool.Installer(goos)
		require.True(t, ok, goos)
		require.NotEmpty(t, cmd)
	}

	_, ok := py.Tool.Installer("plan9")
	require.False(t, ok)

	var nilTool *Tool
	_, ok = nilTool.Installer("linux")
	require.False(t, ok)

	node, err := SpecFor(Node)
	require.NoError(t, err)
	_, ok = node.Tool.Installer("linux")
	require.False(t, ok, "node is never installed automatically")
}

func TestExecToolManager_Available(t *testing.T) {
	t.Parallel()

	found := func(string) (string, error) { return "/usr/bin/uvx", nil }
	missing := func(string) (string, error) { return "", errors.New("not found") }

	py, err := SpecFor(Python)
	require.NoError(t, err)

	m, err := NewExecToolManager(hclog.NewNullLogger(), nil, nil, WithLookPath(found))
	require.NoError(t, err)
	require.True(t, m.Available(py.Tool))
	require.True(t, m.Available(nil))

	m, err = NewExecToolManager(hclog.NewNullLogger(), nil, nil, WithLookPath(missing))
	require.NoError(t, err)
	require.False(t, m.Available(py.Tool))
}

func TestExecToolManager_InstallUnsupportedPlatform(t *testing.T) {
	t.Parallel()

	py, err := SpecFor(Python)
	require.NoError(t, err)

	m, err := NewExecToolManager(nil, nil, nil, WithGOOS("plan9"))
	require.NoError(t, err)
	require.False(t, m.CanInstall(py.Tool))

	err = m.Install(context.Background(), py.Tool)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no automated installer")
}
