package output

import (
	"encoding/json"
	"io"
	"strings"
)

var _ Handler[any] = (*JSONHandler[any])(nil)

// JSONHandler writes JSON for both data and errors, honoring struct tags.
type JSONHandler[T any] struct {
	out    io.Writer
	indent string
}

func NewJSONHandler[T any](w io.Writer, indentSpaces int) *JSONHandler[T] {
	return &JSONHandler[T]{
		out:    w,
		indent: strings.Repeat(" ", indentSpaces),
	}
}

// Writer returns the underlying io.Writer where JSON will be written.
func (h *JSONHandler[T]) Writer() io.Writer {
	return h.out
}

// HandleResult marshals the given item under a "result" key to JSON.
func (h *JSONHandler[T]) HandleResult(item T) error {
	return h.encode(ResultPayload[T]{Result: item})
}

// HandleResults marshals the given items under a "results" key to JSON.
// No items are rendered as an empty array rather than null.
func (h *JSONHandler[T]) HandleResults(items ...T) error {
	if items == nil {
		items = []T{}
	}

	return h.encode(ResultsPayload[T]{Results: items})
}

// HandleError marshals the given error string under an "error" key to JSON.
func (h *JSONHandler[T]) HandleError(err error) error {
	return h.encode(ErrorPayload{Error: err.Error()})
}

func (h *JSONHandler[T]) encode(v any) error {
	enc := json.NewEncoder(h.out)
	enc.SetIndent("", h.indent)
	return enc.Encode(v)
}
