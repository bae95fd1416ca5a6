package packages

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcp-get/internal/cache"
)

var _ Loader = (*DefaultLoader)(nil)

// Loader loads the package catalog.
type Loader interface {
	Load() (*Catalog, error)
}

// DefaultLoader loads the catalog from a location which may be empty (embedded catalog),
// a filesystem path, a file:// URL, or an http(s) URL.
type DefaultLoader struct {
	location string
	cache    *cache.Cache
	client   *http.Client
	logger   hclog.Logger
}

// NewLoader creates a DefaultLoader. A nil cache disables caching of remote catalogs.
func NewLoader(logger hclog.Logger, location string, c *cache.Cache) *DefaultLoader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &DefaultLoader{
		location: strings.TrimSpace(location),
		cache:    c,
		client:   http.DefaultClient,
		logger:   logger.Named("catalog"),
	}
}

// Load implements Loader.
func (l *DefaultLoader) Load() (*Catalog, error) {
	if l.location == "" {
		l.logger.Debug("Loading embedded catalog")
		return Embedded()
	}

	location := l.location
	if l.cache != nil && isRemote(location) {
		cached, err := l.cache.URL(location)
		if err != nil {
			return nil, err
		}
		location = cached
	}

	l.logger.Debug("Loading catalog", "location", location, "configured", l.location)

	data, err := l.read(location)
	if err != nil {
		return nil, err
	}

	return Parse(data, l.location)
}

// read retrieves the raw catalog bytes from location.
func (l *DefaultLoader) read(location string) ([]byte, error) {
	parsed, err := url.Parse(location)
	// Bare paths, including Windows drive letters which parse as single letter schemes.
	if err != nil || len(parsed.Scheme) <= 1 {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file '%s': %w", location, err)
		}
		return data, nil
	}

	switch parsed.Scheme {
	case "file":
		data, err := os.ReadFile(parsed.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file '%s': %w", parsed.Path, err)
		}
		return data, nil

	case "http", "https":
		resp, err := l.client.Get(location)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch catalog from URL '%s': %w", location, err)
		}
		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("received non-OK HTTP status fetching catalog from URL '%s': %d", location, resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog response body from '%s': %w", location, err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("unsupported catalog URL scheme '%s'", parsed.Scheme)
	}
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
