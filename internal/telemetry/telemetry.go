// Package telemetry reports anonymous package installs when the user has agreed to it.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcp-get/internal/preferences"
	"github.com/mozilla-ai/mcp-get/internal/prompt"
)

const (
	// DefaultEndpoint is the base URL install events are reported to.
	DefaultEndpoint = "https://mcp-get.com"

	// DefaultTimeout bounds a single report.
	DefaultTimeout = 10 * time.Second

	// HeaderRequestID carries a random identifier for each report.
	HeaderRequestID = "X-Request-ID"
)

// Reporter decides whether installs may be reported and reports them.
type Reporter interface {
	// CheckConsent returns the recorded analytics choice, asking once and persisting the answer if needed.
	CheckConsent(ctx context.Context) bool

	// Report sends an install event for the package. Failures are logged, never returned.
	Report(ctx context.Context, packageName string)
}

var _ Reporter = (*HTTPReporter)(nil)

// HTTPReporter implements Reporter against the mcp-get web service.
type HTTPReporter struct {
	endpoint string
	client   *http.Client
	prefs    preferences.ReadWriter
	prompter prompt.Prompter
	out      io.Writer
	logger   hclog.Logger
}

// Option configures an HTTPReporter.
type Option func(*HTTPReporter) error

// WithEndpoint overrides the base URL.
func WithEndpoint(endpoint string) Option {
	return func(r *HTTPReporter) error {
		endpoint = strings.TrimSpace(endpoint)
		if endpoint == "" {
			return nil
		}

		u, err := url.Parse(endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid analytics endpoint '%s'", endpoint)
		}

		r.endpoint = strings.TrimRight(endpoint, "/")
		return nil
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *HTTPReporter) error {
		if c == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		r.client = c
		return nil
	}
}

// WithOutput sets where user-facing warnings are written.
func WithOutput(w io.Writer) Option {
	return func(r *HTTPReporter) error {
		if w != nil {
			r.out = w
		}
		return nil
	}
}

// NewHTTPReporter returns a Reporter reading consent from prefs and asking through p.
func NewHTTPReporter(
	logger hclog.Logger,
	prefs preferences.ReadWriter,
	p prompt.Prompter,
	opt ...Option,
) (*HTTPReporter, error) {
	if prefs == nil {
		return nil, fmt.Errorf("preferences store cannot be nil")
	}
	if p == nil {
		return nil, fmt.Errorf("prompter cannot be nil")
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	r := &HTTPReporter{
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
		prefs:    prefs,
		prompter: p,
		out:      io.Discard,
		logger:   logger.Named("telemetry"),
	}

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// CheckConsent implements Reporter.
// The question is asked at most once per user; a failed prompt counts as no consent and is not persisted.
func (r *HTTPReporter) CheckConsent(ctx context.Context) bool {
	current := r.prefs.Read()
	if current.HasAnalyticsChoice() {
		return current.AnalyticsAllowed()
	}

	allow, err := r.prompter.Confirm(
		ctx,
		"Would you like to help improve mcp-get by sharing anonymous installation analytics?",
		true,
	)
	if err != nil {
		r.logger.Warn("Analytics consent prompt failed", "error", err)
		return false
	}

	if err := r.prefs.Write(current.WithAnalytics(allow)); err != nil {
		r.logger.Warn("Failed to save analytics preference", "error", err)
	}

	return allow
}

// Report implements Reporter.
func (r *HTTPReporter) Report(ctx context.Context, packageName string) {
	if err := r.send(ctx, packageName); err != nil {
		r.logger.Warn("Failed to report install", "package", packageName, "error", err)
		_, _ = fmt.Fprintf(r.out, "⚠ Failed to track package installation: %v\n", err)
	}
}

// InstallURL returns the URL an install of packageName is reported to.
func (r *HTTPReporter) InstallURL(packageName string) string {
	return fmt.Sprintf("%s/api/packages/%s/install", r.endpoint, url.PathEscape(packageName))
}

func (r *HTTPReporter) send(ctx context.Context, packageName string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.InstallURL(packageName), http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	r.logger.Debug("Reported install", "package", packageName)
	return nil
}
