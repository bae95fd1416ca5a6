package printer

type PackagePrinterOptions struct {
	showSeparator bool
}

type PackagePrinterOption func(*PackagePrinterOptions) error

func NewPackagePrinterOptions(opts ...PackagePrinterOption) (PackagePrinterOptions, error) {
	var options PackagePrinterOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return PackagePrinterOptions{}, err
		}
	}
	return options, nil
}

// WithSeparator prints a divider after each package.
func WithSeparator(enabled bool) PackagePrinterOption {
	return func(o *PackagePrinterOptions) error {
		o.showSeparator = enabled
		return nil
	}
}
