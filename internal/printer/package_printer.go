package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mozilla-ai/mcp-get/internal/cmd/output"
	"github.com/mozilla-ai/mcp-get/internal/packages"
)

var _ output.Printer[packages.Details] = (*PackagePrinter)(nil)

// PackagePrinter prints the full details of a package, as used by 'info'.
type PackagePrinter struct {
	headerFunc output.WriteFunc[packages.Details]
	footerFunc output.WriteFunc[packages.Details]
	opts       PackagePrinterOptions
}

// NewPackagePrinter returns a PackagePrinter configured by options.
func NewPackagePrinter(options ...PackagePrinterOption) (*PackagePrinter, error) {
	opts, err := NewPackagePrinterOptions(options...)
	if err != nil {
		return nil, err
	}

	return &PackagePrinter{opts: opts}, nil
}

func (p *PackagePrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *PackagePrinter) SetHeader(fn output.WriteFunc[packages.Details]) {
	p.headerFunc = fn
}

func (p *PackagePrinter) Item(w io.Writer, pkg packages.Details) error {
	if _, err := fmt.Fprintf(w, "📦 %s\n", pkg.Name); err != nil {
		return err
	}

	fields := []struct {
		label string
		value string
	}{
		{"ℹ️ Description", pkg.Description},
		{"🏢 Vendor", pkg.Vendor},
		{"🔗 Source", pkg.SourceURL},
		{"🏠 Homepage", pkg.Homepage},
		{"📄 License", pkg.License},
		{"🏗️ Runtime", pkg.Runtime.String()},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s: %s\n", f.label, f.value); err != nil {
			return err
		}
	}

	if pkg.Command != "" {
		command := strings.TrimSpace(pkg.Command + " " + strings.Join(pkg.Args, " "))
		if _, err := fmt.Fprintf(w, "  ⚙️ Command: %s\n", command); err != nil {
			return err
		}
	}

	if pkg.HasEnvVars() {
		if _, err := fmt.Fprintln(w, "  🔑 Environment variables:"); err != nil {
			return err
		}
		for _, v := range pkg.EnvironmentVariables {
			marker := "optional"
			if v.Required {
				marker = "required"
			}
			line := fmt.Sprintf("    %s (%s)", v.Name, marker)
			if v.Description != "" {
				line += ": " + v.Description
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	status := "not installed"
	if pkg.IsInstalled {
		status = "installed"
	}
	if _, err := fmt.Fprintf(w, "  📌 Status: %s\n", status); err != nil {
		return err
	}

	if p.opts.showSeparator {
		if _, err := fmt.Fprint(w, "\n────────────────────────────────────────────\n\n"); err != nil {
			return err
		}
	}

	return nil
}

func (p *PackagePrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *PackagePrinter) SetFooter(fn output.WriteFunc[packages.Details]) {
	p.footerFunc = fn
}
