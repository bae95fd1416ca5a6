package packages

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcp-get/internal/filter"
	"github.com/mozilla-ai/mcp-get/internal/runtime"
)

func TestMatchers(t *testing.T) {
	t.Parallel()

	items := []Details{
		{Package: Package{Name: "@modelcontextprotocol/server-github", Description: "GitHub API", Vendor: "Anthropic", Runtime: runtime.Node}, IsInstalled: true},
		{Package: Package{Name: "mcp-server-fetch", Description: "Fetch web pages", Runtime: runtime.Python}},
	}

	tests := []struct {
		name    string
		filters map[string]string
		want    []string
	}{
		{name: "runtime", filters: map[string]string{"runtime": "PYTHON"}, want: []string{"mcp-server-fetch"}},
		{name: "installed", filters: map[string]string{"installed": "true"}, want: []string{"@modelcontextprotocol/server-github"}},
		{name: "vendor", filters: map[string]string{"vendor": "anthropic"}, want: []string{"@modelcontextprotocol/server-github"}},
		{name: "query matches description", filters: map[string]string{"query": "web"}, want: []string{"mcp-server-fetch"}},
		{name: "name and runtime", filters: map[string]string{"name": "server", "runtime": "node"}, want: []string{"@modelcontextprotocol/server-github"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := filter.Apply(items, tc.filters, Matchers())
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, d := range got {
				names = append(names, d.Name)
			}
			require.Equal(t, tc.want, names)
		})
	}
}
