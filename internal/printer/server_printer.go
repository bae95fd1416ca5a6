package printer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mozilla-ai/mcp-get/internal/cmd/output"
	"github.com/mozilla-ai/mcp-get/internal/installer"
)

var _ output.Printer[installer.Server] = (*ServerPrinter)(nil)

// ServerPrinter prints registrations found in the host configuration, as used by 'installed'.
type ServerPrinter struct {
	headerFunc output.WriteFunc[installer.Server]
	footerFunc output.WriteFunc[installer.Server]
}

func NewServerPrinter() *ServerPrinter {
	return &ServerPrinter{
		headerFunc: func(w io.Writer, _ int) {
			_, _ = fmt.Fprintln(w, "📋 Installed servers")
			_, _ = fmt.Fprintln(w, "")
		},
		footerFunc: func(w io.Writer, count int) {
			_, _ = fmt.Fprintln(w, "")
			_, _ = fmt.Fprintf(w, "%d server%s installed\n", count, map[bool]string{true: "s"}[count != 1])
		},
	}
}

func (p *ServerPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *ServerPrinter) SetHeader(fn output.WriteFunc[installer.Server]) {
	p.headerFunc = fn
}

func (p *ServerPrinter) Item(w io.Writer, s installer.Server) error {
	command := strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " "))
	if _, err := fmt.Fprintf(w, "  %s: %s\n", s.Name, command); err != nil {
		return err
	}

	if len(s.Env) == 0 {
		return nil
	}

	// Values are never printed.
	names := make([]string, 0, len(s.Env))
	for k := range s.Env {
		names = append(names, k)
	}
	slices.Sort(names)

	_, err := fmt.Fprintf(w, "    env: %s\n", strings.Join(names, ", "))
	return err
}

func (p *ServerPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ServerPrinter) SetFooter(fn output.WriteFunc[installer.Server]) {
	p.footerFunc = fn
}
