package packages

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	mgerrors "github.com/mozilla-ai/mcp-get/internal/errors"
)

//go:embed data/package-list.json data/package-list.schema.json
var embeddedCatalogData embed.FS

const (
	embeddedCatalogPath = "data/package-list.json"
	embeddedSchemaPath  = "data/package-list.schema.json"

	// EmbeddedSource is the Source reported for the catalog compiled into the binary.
	EmbeddedSource = "embedded"
)

// Catalog is the static, read-only list of installable packages.
type Catalog struct {
	packages []Package
	source   string
}

// Parse validates data against the catalog JSON schema and decodes it.
// source is only used for error messages.
func Parse(data []byte, source string) (*Catalog, error) {
	schema, err := embeddedCatalogData.ReadFile(embeddedSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", mgerrors.ErrCatalogInvalid, source, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return nil, fmt.Errorf("%w: %s: %s", mgerrors.ErrCatalogInvalid, source, strings.Join(problems, "; "))
	}

	var pkgs []Package
	if err := json.Unmarshal(data, &pkgs); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", mgerrors.ErrCatalogInvalid, source, err)
	}

	seen := make(map[string]struct{}, len(pkgs))
	for _, p := range pkgs {
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate package name '%s'", mgerrors.ErrCatalogInvalid, source, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	return &Catalog{packages: pkgs, source: source}, nil
}

// Embedded returns the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	data, err := embeddedCatalogData.ReadFile(embeddedCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}

	return Parse(data, EmbeddedSource)
}

// NewCatalog returns a Catalog over the given packages.
func NewCatalog(source string, pkgs ...Package) *Catalog {
	return &Catalog{packages: slices.Clone(pkgs), source: source}
}

// Source describes where the catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// List returns a copy of every package in catalog order.
func (c *Catalog) List() []Package {
	return slices.Clone(c.packages)
}

// Find returns the package whose name matches exactly.
func (c *Catalog) Find(name string) (Package, error) {
	for _, p := range c.packages {
		if p.Name == name {
			return p, nil
		}
	}

	return Package{}, fmt.Errorf("%w: '%s'", mgerrors.ErrPackageNotFound, name)
}
