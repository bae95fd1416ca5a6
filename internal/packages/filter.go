package packages

import (
	"github.com/mozilla-ai/mcp-get/internal/filter"
)

// Matchers returns the filters supported when listing catalog packages.
func Matchers() filter.Matchers[Details] {
	name := func(d Details) string { return d.Name }

	return filter.Matchers[Details]{
		"name":      filter.Partial(name),
		"runtime":   filter.Equals(func(d Details) string { return d.Runtime.String() }),
		"vendor":    filter.Partial(func(d Details) string { return d.Vendor }),
		"installed": filter.EqualsBool(func(d Details) bool { return d.IsInstalled }),
		"query":     filter.PartialAny(name, func(d Details) string { return d.Description }),
	}
}
