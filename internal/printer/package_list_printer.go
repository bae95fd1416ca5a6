package printer

import (
	"fmt"
	"io"

	"github.com/mozilla-ai/mcp-get/internal/cmd/output"
	"github.com/mozilla-ai/mcp-get/internal/packages"
)

var _ output.Printer[packages.Details] = (*PackageListPrinter)(nil)

// PackageListPrinter prints one short entry per catalog package, as used by 'list'.
type PackageListPrinter struct {
	headerFunc output.WriteFunc[packages.Details]
	footerFunc output.WriteFunc[packages.Details]
}

func NewPackageListPrinter() *PackageListPrinter {
	return &PackageListPrinter{
		headerFunc: DefaultPackageListHeader(),
		footerFunc: DefaultPackageListFooter(),
	}
}

func (p *PackageListPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *PackageListPrinter) SetHeader(fn output.WriteFunc[packages.Details]) {
	p.headerFunc = fn
}

func (p *PackageListPrinter) Item(w io.Writer, pkg packages.Details) error {
	marker := " "
	if pkg.IsInstalled {
		marker = "✓"
	}

	if _, err := fmt.Fprintf(w, "%s %s (%s)\n", marker, pkg.Name, pkg.Runtime); err != nil {
		return err
	}
	if pkg.Description != "" {
		if _, err := fmt.Fprintf(w, "    %s\n", pkg.Description); err != nil {
			return err
		}
	}

	return nil
}

func (p *PackageListPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *PackageListPrinter) SetFooter(fn output.WriteFunc[packages.Details]) {
	p.footerFunc = fn
}

func DefaultPackageListHeader() output.WriteFunc[packages.Details] {
	return func(w io.Writer, _ int) {
		_, _ = fmt.Fprintln(w, "📦 Available packages")
		_, _ = fmt.Fprintln(w, "")
	}
}

func DefaultPackageListFooter() output.WriteFunc[packages.Details] {
	return func(w io.Writer, count int) {
		_, _ = fmt.Fprintln(w, "")
		_, _ = fmt.Fprintf(w, "Found %d package%s\n", count, map[bool]string{true: "s"}[count != 1])
	}
}
