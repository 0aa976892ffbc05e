package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"productcompare.org/web/internal/web/httpserver/middleware"
	appsession "productcompare.org/web/internal/web/session"
)

func newStore(t *testing.T) *appsession.Manager {
	t.Helper()

	mgr, err := appsession.NewManager(appsession.Config{
		HashKey: []byte("0123456789abcdef0123456789abcdef"),
	})
	require.NoError(t, err)
	return mgr
}

func TestSessionMiddlewarePersistsChanges(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	handler := middleware.Session(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		require.True(t, ok)
		sess.SignIn("token-1", "asha")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Replay the cookie: the signed-in state must round-trip.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	var token string
	second := middleware.Session(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFromContext(r.Context())
		token = sess.Token()
	}))
	second.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "token-1", token)
}

func TestCSRFIssuesTokenOnSafeMethod(t *testing.T) {
	t.Parallel()

	var issued string
	handler := middleware.CSRF(middleware.CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		issued = middleware.CSRFTokenFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, issued)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, issued, cookies[0].Value)
}

func TestCSRFAcceptsMatchingFormField(t *testing.T) {
	t.Parallel()

	handler := middleware.CSRF(middleware.CSRFConfig{CookieName: "csrf"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	form := url.Values{"csrf_token": {"tok-123"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf", Value: "tok-123"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCSRFRejectsMissingOrMismatchedToken(t *testing.T) {
	t.Parallel()

	handler := middleware.CSRF(middleware.CSRFConfig{CookieName: "csrf"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	form := url.Values{"csrf_token": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf", Value: "tok-123"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequestInfoReturnTo(t *testing.T) {
	t.Parallel()

	var returnTo string
	handler := middleware.RequestInfoMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		returnTo = middleware.ReturnToFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/compare?ids=1,2", nil))
	require.Equal(t, "/compare?ids=1,2", returnTo)
}
