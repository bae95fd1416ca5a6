// Package prompt provides the interactive questions mcp-get asks during installation.
// Callers depend on the Prompter interface so that decision logic can be exercised without a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	mgerrors "github.com/mozilla-ai/mcp-get/internal/errors"
)

// Prompter asks the user questions.
type Prompter interface {
	// Confirm asks a yes/no question, returning def when the user just presses enter.
	Confirm(ctx context.Context, question string, def bool) (bool, error)

	// Input asks for free text. validate is called with the trimmed answer;
	// a non-nil error is shown and the question repeated.
	Input(ctx context.Context, question string, validate func(string) error) (string, error)
}

var _ Prompter = (*Terminal)(nil)

// Terminal is a line-oriented Prompter reading answers from in and writing questions to out.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal returns a Terminal over the given reader and writer.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		if _, err := fmt.Fprintf(t.out, "? %s (%s) ", question, hint); err != nil {
			return false, err
		}

		answer, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if _, err := fmt.Fprintln(t.out, "  Please answer 'y' or 'n'."); err != nil {
			return false, err
		}
	}
}

// Input implements Prompter.
func (t *Terminal) Input(ctx context.Context, question string, validate func(string) error) (string, error) {
	for {
		if _, err := fmt.Fprintf(t.out, "? %s ", question); err != nil {
			return "", err
		}

		answer, err := t.readLine(ctx)
		if err != nil {
			return "", err
		}

		if validate == nil {
			return answer, nil
		}

		verr := validate(answer)
		if verr == nil {
			return answer, nil
		}

		if _, err := fmt.Fprintf(t.out, "  %s\n", verr); err != nil {
			return "", err
		}
	}
}

// readLine reads one trimmed line. A final line without a newline is accepted;
// end of input with nothing read is ErrPromptAborted.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", mgerrors.ErrPromptAborted
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}
