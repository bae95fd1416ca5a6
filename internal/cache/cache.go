// Package cache keeps local copies of remote package catalogs so that repeated
// commands do not refetch the catalog on every invocation.
package cache

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcp-get/internal/files"
	"github.com/mozilla-ai/mcp-get/internal/perms"
)

// Cache manages cached catalog documents.
// NewCache should be used to create instances of Cache.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
	refresh bool
	client  *http.Client
	logger  hclog.Logger
}

// NewCache creates a new cache instance for remote catalogs.
func NewCache(logger hclog.Logger, opts ...Option) (*Cache, error) {
	options, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	// Only create cache directory if caching is enabled.
	if options.enabled {
		if err := files.EnsureAtLeastSecureDir(options.dir); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Cache{
		dir:     options.dir,
		ttl:     options.ttl,
		enabled: options.enabled,
		refresh: options.refreshCache,
		client:  &http.Client{Timeout: options.timeout},
		logger:  logger.Named("cache"),
	}, nil
}

// URL returns the location the catalog should be read from: a file:// URL for the cached copy
// when one is available and fresh, otherwise the original remote URL.
// Download failures are logged and fall back to the remote URL.
func (c *Cache) URL(remoteURL string) (string, error) {
	if !c.enabled {
		c.logger.Debug("Cache disabled, using remote URL", "url", remoteURL)
		return remoteURL, nil
	}

	cachePath := c.pathFor(remoteURL)

	switch {
	case c.refresh:
		c.logger.Debug("Cache refresh requested", "url", remoteURL)
		if err := c.downloadToCache(remoteURL, cachePath); err != nil {
			c.logger.Warn("Failed to refresh cache, using remote URL", "url", remoteURL, "path", cachePath, "error", err)
			return remoteURL, nil
		}
	case c.isExpired(cachePath):
		c.logger.Debug("Cache expired or missing", "url", remoteURL, "path", cachePath)
		if err := c.downloadToCache(remoteURL, cachePath); err != nil {
			c.logger.Warn("Failed to update cache, using remote URL", "url", remoteURL, "path", cachePath, "error", err)
			return remoteURL, nil
		}
	}

	if _, err := os.Stat(cachePath); err == nil {
		fileURL := "file://" + filepath.ToSlash(cachePath)
		c.logger.Debug("Using cached file", "url", fileURL, "remote", remoteURL)
		return fileURL, nil
	}

	c.logger.Debug("Cache file not found, using remote URL", "url", remoteURL, "path", cachePath)
	return remoteURL, nil
}

// pathFor returns the cache file used for remoteURL.
func (c *Cache) pathFor(remoteURL string) string {
	hash := sha256.Sum256([]byte(remoteURL))
	return filepath.Join(c.dir, fmt.Sprintf("catalog-%x.json", hash))
}

// downloadToCache downloads content from URL and atomically replaces the cache file.
func (c *Cache) downloadToCache(url, cachePath string) error {
	c.logger.Debug("Downloading to cache", "url", url, "path", cachePath)

	resp, err := c.client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch URL '%s': %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-OK HTTP status from URL '%s': %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from URL '%s': %w", url, err)
	}

	if err := files.WriteFileAtomic(cachePath, data, perms.SecureFile); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	c.logger.Debug("Successfully cached file", "url", url, "path", cachePath)
	return nil
}

// isExpired checks if a cache file is expired based on modification time.
func (c *Cache) isExpired(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true // Treat missing as expired.
	}
	return time.Since(info.ModTime()) > c.ttl
}
