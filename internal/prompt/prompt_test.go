package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	mgerrors "github.com/mozilla-ai/mcp-get/internal/errors"
)

func TestTerminal_Confirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		def      bool
		expected bool
	}{
		{name: "default yes on enter", input: "\n", def: true, expected: true},
		{name: "default no on enter", input: "\n", def: false, expected: false},
		{name: "explicit yes", input: "y\n", def: false, expected: true},
		{name: "explicit YES uppercase", input: "YES\n", def: false, expected: true},
		{name: "explicit no", input: "no\n", def: true, expected: false},
		{name: "retry after garbage", input: "maybe\ny\n", def: false, expected: true},
		{name: "last line without newline", input: "n", def: true, expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}
			p := NewTerminal(strings.NewReader(tc.input), out)

			got, err := p.Confirm(context.Background(), "Continue?", tc.def)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
			require.Contains(t, out.String(), "Continue?")
		})
	}
}

func TestTerminal_Confirm_HintReflectsDefault(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, err := NewTerminal(strings.NewReader("\n"), out).Confirm(context.Background(), "Q", true)
	require.NoError(t, err)
	require.Contains(t, out.String(), "(Y/n)")

	out.Reset()
	_, err = NewTerminal(strings.NewReader("\n"), out).Confirm(context.Background(), "Q", false)
	require.NoError(t, err)
	require.Contains(t, out.String(), "(y/N)")
}

func TestTerminal_Input_Validation(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	p := NewTerminal(strings.NewReader("\n  abc  \n"), out)

	got, err := p.Input(context.Background(), "TOKEN:", func(s string) error {
		if s == "" {
			return errors.New("TOKEN is required")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "abc", got)
	require.Contains(t, out.String(), "TOKEN is required")
}

func TestTerminal_EOF(t *testing.T) {
	t.Parallel()

	p := NewTerminal(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Confirm(context.Background(), "Q", true)
	require.ErrorIs(t, err, mgerrors.ErrPromptAborted)

	_, err = p.Input(context.Background(), "Q", nil)
	require.ErrorIs(t, err, mgerrors.ErrPromptAborted)
}

func TestTerminal_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTerminal(strings.NewReader("y\n"), &bytes.Buffer{}).Confirm(ctx, "Q", true)
	require.ErrorIs(t, err, context.Canceled)
}
