package telemetry

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcp-get/internal/preferences"
	"github.com/mozilla-ai/mcp-get/internal/testutil"
)

type memPrefs struct {
	prefs    preferences.Preferences
	writes   int
	writeErr error
}

func (m *memPrefs) Read() preferences.Preferences {
	return m.prefs
}

func (m *memPrefs) Write(p preferences.Preferences) error {
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.prefs = p
	return nil
}

func newTestReporter(t *testing.T, prefs preferences.ReadWriter, p *testutil.ScriptedPrompter, opt ...Option) *HTTPReporter {
	t.Helper()

	r, err := NewHTTPReporter(hclog.NewNullLogger(), prefs, p, opt...)
	require.NoError(t, err)

	return r
}

func TestNewHTTPReporter_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewHTTPReporter(nil, nil, testutil.NewScriptedPrompter())
	require.Error(t, err)

	_, err = NewHTTPReporter(nil, &memPrefs{}, nil)
	require.Error(t, err)

	for _, endpoint := range []string{"ftp://example.com", "not a url", "https://"} {
		_, err = NewHTTPReporter(nil, &memPrefs{}, testutil.NewScriptedPrompter(), WithEndpoint(endpoint))
		require.Error(t, err, endpoint)
	}

	_, err = NewHTTPReporter(nil, &memPrefs{}, testutil.NewScriptedPrompter(), WithHTTPClient(nil))
	require.Error(t, err)
}

func TestInstallURL(t *testing.T) {
	t.Parallel()

	r := newTestReporter(t, &memPrefs{}, testutil.NewScriptedPrompter())
	require.Equal(t, "https://mcp-get.com/api/packages/mcp-server-time/install", r.InstallURL("mcp-server-time"))
	require.Equal(
		t,
		"https://mcp-get.com/api/packages/@modelcontextprotocol%2Fserver-github/install",
		r.InstallURL("@modelcontextprotocol/server-github"),
	)

	r = newTestReporter(t, &memPrefs{}, testutil.NewScriptedPrompter(), WithEndpoint("http://localhost:8080/"))
	require.Equal(t, "http://localhost:8080/api/packages/x/install", r.InstallURL("x"))
}

func TestCheckConsent(t *testing.T) {
	t.Parallel()

	yes := preferences.Preferences{}.WithAnalytics(true)
	no := preferences.Preferences{}.WithAnalytics(false)

	tests := []struct {
		name      string
		prefs     *memPrefs
		confirms  []bool
		expected  bool
		asked     int
		writes    int
		persisted *bool
	}{
		{name: "recorded yes", prefs: &memPrefs{prefs: yes}, expected: true},
		{name: "recorded no", prefs: &memPrefs{prefs: no}, expected: false},
		{
			name:      "first time accepted",
			prefs:     &memPrefs{},
			confirms:  []bool{true},
			expected:  true,
			asked:     1,
			writes:    1,
			persisted: yes.AllowAnalytics,
		},
		{
			name:      "first time declined",
			prefs:     &memPrefs{},
			confirms:  []bool{false},
			expected:  false,
			asked:     1,
			writes:    1,
			persisted: no.AllowAnalytics,
		},
		{
			name:     "prompt failure is no consent and not persisted",
			prefs:    &memPrefs{},
			expected: false,
			asked:    1,
		},
		{
			name:     "persist failure still returns the answer",
			prefs:    &memPrefs{writeErr: errors.New("read-only")},
			confirms: []bool{true},
			expected: true,
			asked:    1,
			writes:   1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := testutil.NewScriptedPrompter().WithConfirms(tc.confirms...)
			r := newTestReporter(t, tc.prefs, p)

			require.Equal(t, tc.expected, r.CheckConsent(context.Background()))
			require.Equal(t, tc.asked, p.Asked())
			require.Equal(t, tc.writes, tc.prefs.writes)
			if tc.persisted != nil {
				require.Equal(t, *tc.persisted, *tc.prefs.prefs.AllowAnalytics)
			}
		})
	}
}

func TestCheckConsent_AskedOnceAcrossInvocations(t *testing.T) {
	t.Parallel()

	store, err := preferences.NewStore(hclog.NewNullLogger(), t.TempDir())
	require.NoError(t, err)

	first := testutil.NewScriptedPrompter().WithConfirms(false)
	require.False(t, newTestReporter(t, store, first).CheckConsent(context.Background()))
	require.Equal(t, 1, first.Asked())

	// A new reporter reads the persisted answer from disk.
	second := testutil.NewScriptedPrompter()
	require.False(t, newTestReporter(t, store, second).CheckConsent(context.Background()))
	require.Zero(t, second.Asked())
}

func TestCheckConsent_PersistsIntoExistingUserDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), ".mcp-get")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.Chmod(dir, 0o755))

	store, err := preferences.NewStore(hclog.NewNullLogger(), dir)
	require.NoError(t, err)

	first := testutil.NewScriptedPrompter().WithConfirms(true)
	require.True(t, newTestReporter(t, store, first).CheckConsent(context.Background()))

	_, err = os.Stat(store.Path())
	require.NoError(t, err)
	require.True(t, store.Read().HasAnalyticsChoice())

	second := testutil.NewScriptedPrompter()
	require.True(t, newTestReporter(t, store, second).CheckConsent(context.Background()))
	require.Zero(t, second.Asked())
}

func TestReport_SendsRequest(t *testing.T) {
	t.Parallel()

	type captured struct {
		method, path, contentType, requestID string
		bodyLen                              int64
	}
	reqs := make(chan captured, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		reqs <- captured{
			method:      req.Method,
			path:        req.URL.EscapedPath(),
			contentType: req.Header.Get("Content-Type"),
			requestID:   req.Header.Get(HeaderRequestID),
			bodyLen:     req.ContentLength,
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	r := newTestReporter(t, &memPrefs{}, testutil.NewScriptedPrompter(), WithEndpoint(srv.URL), WithOutput(out))
	r.Report(context.Background(), "foo/bar")

	got := <-reqs
	require.Equal(t, http.MethodPost, got.method)
	require.Equal(t, "/api/packages/foo%2Fbar/install", got.path)
	require.Equal(t, "application/json", got.contentType)
	require.Zero(t, got.bodyLen)
	_, err := uuid.Parse(got.requestID)
	require.NoError(t, err)
	require.Empty(t, out.String())
	require.Empty(t, reqs, "exactly one request is sent")
}

func TestReport_FailuresAreWarnings(t *testing.T) {
	t.Parallel()

	t.Run("non-OK status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		out := &bytes.Buffer{}
		r := newTestReporter(t, &memPrefs{}, testutil.NewScriptedPrompter(), WithEndpoint(srv.URL), WithOutput(out))

		require.NotPanics(t, func() { r.Report(context.Background(), "x") })
		require.Contains(t, out.String(), "500")
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		endpoint := srv.URL
		srv.Close()

		out := &bytes.Buffer{}
		r := newTestReporter(t, &memPrefs{}, testutil.NewScriptedPrompter(), WithEndpoint(endpoint), WithOutput(out))
		r.Report(context.Background(), "x")
		require.Contains(t, out.String(), "Failed to track package installation")
	})
}
