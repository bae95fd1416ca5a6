package cache

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mozilla-ai/mcp-get/internal/files"
)

const (
	// DefaultTTL is how long a cached catalog is considered fresh.
	DefaultTTL = 24 * time.Hour

	// DefaultTimeout bounds a single catalog download.
	DefaultTimeout = 30 * time.Second
)

// Option defines a functional option for configuring Cache.
type Option func(*Options) error

// Options contains optional configuration for the cache.
type Options struct {
	dir          string
	ttl          time.Duration
	timeout      time.Duration
	enabled      bool
	refreshCache bool
}

// DefaultDir returns the default cache directory inside the per-user mcp-get directory.
func DefaultDir() (string, error) {
	dir, err := files.UserDataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "cache"), nil
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) (Options, error) {
	o := Options{
		ttl:     DefaultTTL,
		timeout: DefaultTimeout,
		enabled: true,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}

	if o.dir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return Options{}, err
		}
		o.dir = dir
	}

	return o, nil
}

// WithDirectory sets the cache directory.
func WithDirectory(dir string) Option {
	return func(o *Options) error {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return fmt.Errorf("cache directory cannot be empty")
		}
		o.dir = dir
		return nil
	}
}

// WithTTL sets the cache entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(o *Options) error {
		if ttl <= 0 {
			return fmt.Errorf("TTL must be positive, got %v", ttl)
		}
		o.ttl = ttl
		return nil
	}
}

// WithTimeout sets the HTTP timeout used when downloading.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", timeout)
		}
		o.timeout = timeout
		return nil
	}
}

// WithCaching configures whether caching is enabled.
func WithCaching(enabled bool) Option {
	return func(o *Options) error {
		o.enabled = enabled
		return nil
	}
}

// WithRefreshCache forces cache refresh.
func WithRefreshCache(refreshCache bool) Option {
	return func(o *Options) error {
		o.refreshCache = refreshCache
		return nil
	}
}
