package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"productcompare.org/web/internal/web/session"
)

func newManager(t *testing.T, now func() time.Time) *session.Manager {
	t.Helper()

	mgr, err := session.NewManager(session.Config{
		HashKey: []byte("0123456789abcdef0123456789abcdef"),
		Now:     now,
	})
	require.NoError(t, err)
	return mgr
}

func requestWithCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req
}

func TestManagerRequiresHashKey(t *testing.T) {
	t.Parallel()

	_, err := session.NewManager(session.Config{})
	require.ErrorIs(t, err, session.ErrInvalidConfig)
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	mgr := newManager(t, nil)

	sess := mgr.New()
	require.False(t, sess.LoggedIn())
	require.Equal(t, session.ThemeLight, sess.Theme())

	sess.SignIn("token-1", "asha")
	sess.ToggleTheme()

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Save(rec, sess))

	loaded, err := mgr.Load(requestWithCookies(t, rec))
	require.NoError(t, err)
	require.True(t, loaded.LoggedIn())
	require.Equal(t, "token-1", loaded.Token())
	require.Equal(t, "asha", loaded.Username())
	require.Equal(t, session.ThemeDark, loaded.Theme())
}

func TestTamperedCookieResetsSession(t *testing.T) {
	t.Parallel()

	mgr := newManager(t, nil)

	sess := mgr.New()
	sess.SignIn("token-1", "asha")
	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Save(rec, sess))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	cookies[0].Value += "tampered"
	req.AddCookie(cookies[0])

	loaded, err := mgr.Load(req)
	require.NoError(t, err)
	require.False(t, loaded.LoggedIn())
}

func TestIdleSessionExpires(t *testing.T) {
	t.Parallel()

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mgr := newManager(t, func() time.Time { return current })

	sess := mgr.New()
	sess.SignIn("token-1", "asha")
	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Save(rec, sess))

	current = current.Add(13 * time.Hour)
	_, err := mgr.Load(requestWithCookies(t, rec))
	require.ErrorIs(t, err, session.ErrExpired)
}

func TestClearAuthKeepsTheme(t *testing.T) {
	t.Parallel()

	mgr := newManager(t, nil)

	sess := mgr.New()
	sess.SignIn("token-1", "asha")
	sess.ToggleTheme()
	sess.ClearAuth()

	require.False(t, sess.LoggedIn())
	require.Empty(t, sess.Username())
	require.Equal(t, session.ThemeDark, sess.Theme())
}

func TestFlashIsOneShot(t *testing.T) {
	t.Parallel()

	mgr := newManager(t, nil)

	sess := mgr.New()
	sess.SetFlash("Login successful")
	require.Equal(t, "Login successful", sess.TakeFlash())
	require.Empty(t, sess.TakeFlash())
}
