package output

import (
	"io"
)

var _ Handler[any] = (*TextHandler[any])(nil)

// TextHandler renders items with a Printer. Errors are returned to the caller unchanged
// so cobra reports them on stderr.
type TextHandler[T any] struct {
	out     io.Writer
	printer Printer[T]
	empty   string
}

func NewTextHandler[T any](w io.Writer, p Printer[T]) *TextHandler[T] {
	return &TextHandler[T]{
		out:     w,
		printer: p,
		empty:   "No items found",
	}
}

// WithEmptyMessage sets the line printed when there are no results.
func (h *TextHandler[T]) WithEmptyMessage(msg string) *TextHandler[T] {
	h.empty = msg
	return h
}

// Writer returns the underlying io.Writer where text will be written.
func (h *TextHandler[T]) Writer() io.Writer {
	return h.out
}

func (h *TextHandler[T]) HandleResult(item T) error {
	return h.HandleResults(item)
}

func (h *TextHandler[T]) HandleResults(items ...T) error {
	if len(items) == 0 {
		_, _ = io.WriteString(h.out, h.empty+"\n")
		return nil
	}

	h.printer.Header(h.out, len(items))

	for _, it := range items {
		if err := h.printer.Item(h.out, it); err != nil {
			return err
		}
	}

	h.printer.Footer(h.out, len(items))

	return nil
}

func (h *TextHandler[T]) HandleError(err error) error {
	return err
}
