package runtime

import (
	"fmt"
	"slices"
	"strings"
)

// Runtime represents the language runtime a catalog package is distributed for.
type Runtime string

const (
	// Node represents packages published to npm and launched with 'npx'.
	Node Runtime = "node"

	// Python represents packages published to PyPI and launched with 'uvx'.
	Python Runtime = "python"

	// Other represents packages that carry their own launch command.
	Other Runtime = "other"
)

// All returns every known runtime in a stable order.
func All() []Runtime {
	return []Runtime{Node, Python, Other}
}

// Parse converts a catalog value into a Runtime.
func Parse(s string) (Runtime, error) {
	rt := Runtime(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(All(), rt) {
		return "", fmt.Errorf("unknown runtime '%s', must be one of: %s", s, Join(All(), ", "))
	}

	return rt, nil
}

// String implements fmt.Stringer.
func (r Runtime) String() string {
	return string(r)
}

// Join concatenates runtimes using sep.
func Join(runtimes []Runtime, sep string) string {
	out := make([]string, len(runtimes))
	for i, rt := range runtimes {
		out[i] = string(rt)
	}

	return strings.Join(out, sep)
}
