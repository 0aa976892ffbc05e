package testutil

import (
	"net/http/httptest"
	"testing"

	"productcompare.org/web/internal/web/backend"
	"productcompare.org/web/internal/web/httpserver"
	"productcompare.org/web/internal/web/session"
)

// testHashKey signs session cookies in tests. Stable so assertions can reuse
// cookies across requests within a test.
var testHashKey = []byte("0123456789abcdef0123456789abcdef")

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithBackend wires a custom backend service implementation.
func WithBackend(svc backend.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Backend = svc
	}
}

// WithSessions overrides the session manager used by the server.
func WithSessions(mgr *session.Manager) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Sessions = mgr
	}
}

// NewSessionManager builds a session manager with the fixed test keys.
func NewSessionManager(t testing.TB) *session.Manager {
	t.Helper()

	mgr, err := session.NewManager(session.Config{HashKey: testHashKey})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return mgr
}

// NewServer constructs an httptest server running the full HTTP stack with
// sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		Address:        ":0",
		Backend:        backend.NewStaticService(),
		Sessions:       NewSessionManager(t),
		CSRFCookieName: "compareweb_csrf",
		CSRFHeaderName: "X-CSRF-Token",
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	srv := httpserver.New(cfg)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
