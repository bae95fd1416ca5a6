package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mozilla-ai/mcp-get/internal/cmd/output"
)

type OutputFormat string

type OutputFormats []OutputFormat

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatText OutputFormat = "text"
)

// outputIndent is the indentation used by structured output formats.
const outputIndent = 2

func AllowedOutputFormats() OutputFormats {
	formats := []OutputFormat{
		FormatJSON,
		FormatText,
		FormatYAML,
	}

	slices.Sort(formats)

	return formats
}

// String implements fmt.Stringer for a collection of output formats,
// converting them to a comma separated string.
func (f *OutputFormats) String() string {
	efs := *f
	out := make([]string, len(efs))
	for i := range efs {
		out[i] = efs[i].String()
	}
	return strings.Join(out, ", ")
}

// String implements fmt.Stringer for an output format.
// This is also required by Cobra as part of implementing flag.Value.
func (f *OutputFormat) String() string {
	return strings.ToLower(string(*f))
}

// Set is used by Cobra to set the output format value from a string.
// This is also required by Cobra as part of implementing flag.Value.
func (f *OutputFormat) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	allowed := AllowedOutputFormats()

	for _, a := range allowed {
		if string(a) == v {
			*f = OutputFormat(v)
			return nil
		}
	}

	return fmt.Errorf("invalid format '%s', must be one of %v", v, allowed.String())
}

// Type is used by Cobra to get the 'type' of an output format for display purposes.
// This is also required by Cobra as part of implementing flag.Value.
func (f *OutputFormat) Type() string {
	return "format"
}

// NewOutputHandler returns the Handler for format. Text output is rendered with p.
func NewOutputHandler[T any](format OutputFormat, w io.Writer, p output.Printer[T]) (output.Handler[T], error) {
	switch format {
	case FormatJSON:
		return output.NewJSONHandler[T](w, outputIndent), nil
	case FormatYAML:
		return output.NewYAMLHandler[T](w, outputIndent), nil
	case FormatText, "":
		return output.NewTextHandler[T](w, p), nil
	default:
		return nil, fmt.Errorf("unsupported output format '%s'", format)
	}
}
