// Package preferences persists the per-user choices mcp-get asks about once,
// currently whether anonymous install analytics may be sent.
package preferences

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcp-get/internal/files"
	"github.com/mozilla-ai/mcp-get/internal/perms"
)

// FileName is the name of the preferences file inside the per-user mcp-get directory.
const FileName = "preferences.json"

var _ ReadWriter = (*Store)(nil)

// Reader reads the current preferences.
type Reader interface {
	Read() Preferences
}

// Writer persists preferences.
type Writer interface {
	Write(p Preferences) error
}

// ReadWriter combines Reader and Writer.
type ReadWriter interface {
	Reader
	Writer
}

// Preferences is the single-record preferences document.
type Preferences struct {
	// AllowAnalytics is nil until the user has been asked.
	AllowAnalytics *bool `json:"allowAnalytics,omitempty"`
}

// HasAnalyticsChoice reports whether the user has already answered the analytics question.
func (p Preferences) HasAnalyticsChoice() bool {
	return p.AllowAnalytics != nil
}

// AnalyticsAllowed returns the recorded analytics choice, treating an unanswered question as false.
func (p Preferences) AnalyticsAllowed() bool {
	return p.AllowAnalytics != nil && *p.AllowAnalytics
}

// WithAnalytics returns a copy of the preferences with the analytics choice recorded.
func (p Preferences) WithAnalytics(allow bool) Preferences {
	p.AllowAnalytics = &allow
	return p
}

// Store reads and writes the preferences file.
// It holds no cached state: every Read goes to disk.
type Store struct {
	path   string
	logger hclog.Logger
}

// NewStore returns a Store rooted at dir. An empty dir resolves to files.UserDataDir.
func NewStore(logger hclog.Logger, dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		d, err := files.UserDataDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve preferences directory: %w", err)
		}
		dir = d
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Store{
		path:   filepath.Join(dir, FileName),
		logger: logger.Named("preferences"),
	}, nil
}

// Path returns the location of the preferences file.
func (s *Store) Path() string {
	return s.path
}

// Read returns the stored preferences.
// A missing, unreadable or malformed file yields empty Preferences rather than an error.
// The parent directory is created on first read.
func (s *Store) Read() Preferences {
	if err := files.EnsureDir(filepath.Dir(s.path), perms.SecureDir); err != nil {
		s.logger.Debug("Could not ensure preferences directory", "path", s.path, "error", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Could not read preferences, using defaults", "path", s.path, "error", err)
		}
		return Preferences{}
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("Malformed preferences file, using defaults", "path", s.path, "error", err)
		return Preferences{}
	}

	return p
}

// Write overwrites the preferences file, creating its directory if required.
func (s *Store) Write(p Preferences) error {
	if err := files.EnsureDir(filepath.Dir(s.path), perms.SecureDir); err != nil {
		return fmt.Errorf("could not create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode preferences: %w", err)
	}

	if err := files.WriteFileAtomic(s.path, data, perms.SecureFile); err != nil {
		return fmt.Errorf("could not write preferences to '%s': %w", s.path, err)
	}

	s.logger.Debug("Preferences saved", "path", s.path)
	return nil
}
