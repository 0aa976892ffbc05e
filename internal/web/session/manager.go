// Package session keeps the client's per-browser state - auth token, username,
// theme and a one-shot flash message - in a signed cookie, loaded at the start
// of each request and written back when it changes.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	defaultCookieName  = "compareweb_session"
	defaultCookiePath  = "/"
	defaultLifetime    = 30 * 24 * time.Hour
	defaultIdleTimeout = 12 * time.Hour

	// ThemeLight is the default theme for new sessions.
	ThemeLight = "light"
	// ThemeDark is the alternate theme.
	ThemeDark = "dark"
)

// ErrExpired indicates the stored session is no longer valid due to idle or
// absolute expiry.
var ErrExpired = errors.New("session expired")

// ErrInvalidConfig indicates the manager was initialised with missing options.
var ErrInvalidConfig = errors.New("session: invalid config")

// Data is the full persisted session payload.
type Data struct {
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
	ExpiresAt  time.Time `json:"expiresAt,omitempty"`
	Token      string    `json:"token,omitempty"`
	Username   string    `json:"username,omitempty"`
	Theme      string    `json:"theme,omitempty"`
	Flash      string    `json:"flash,omitempty"`
}

// Session holds mutable state for the current request lifecycle.
type Session struct {
	data      Data
	destroyed bool
}

// Config controls cookie encoding and lifecycle limits.
type Config struct {
	CookieName     string
	HashKey        []byte
	BlockKey       []byte
	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite http.SameSite

	IdleTimeout time.Duration
	Lifetime    time.Duration
	Now         func() time.Time
}

// Manager decodes and persists session state via signed cookies.
type Manager struct {
	cfg   Config
	codec *securecookie.SecureCookie
	now   func() time.Time
}

// NewManager constructs a Manager using the provided configuration.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.HashKey) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidConfig)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = defaultCookiePath
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = defaultLifetime
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	if cfg.CookieSameSite == http.SameSiteDefaultMode {
		cfg.CookieSameSite = http.SameSiteLaxMode
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &Manager{
		cfg:   cfg,
		codec: codec,
		now:   nowFn,
	}, nil
}

// Load retrieves the session from the incoming request or creates a new one.
// Undecodable cookies silently reset to a fresh session; expired ones return
// ErrExpired so callers can clear state deliberately.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return m.newSession(), nil
	}

	var stored Data
	if err := m.codec.Decode(m.cfg.CookieName, cookie.Value, &stored); err != nil {
		return m.newSession(), nil
	}

	sess := &Session{data: stored}
	if m.isExpired(sess, m.now()) {
		return nil, ErrExpired
	}
	return sess, nil
}

// New returns a fresh empty session.
func (m *Manager) New() *Session {
	return m.newSession()
}

// Save writes the session back to the response. Destroyed sessions clear the
// cookie instead.
func (m *Manager) Save(w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return errors.New("session: nil session")
	}
	if sess.destroyed {
		http.SetCookie(w, m.expiredCookie())
		return nil
	}

	now := m.now().UTC()
	sess.data.LastActive = now
	sess.data.ExpiresAt = sess.data.CreatedAt.Add(m.cfg.Lifetime)

	encoded, err := m.codec.Encode(m.cfg.CookieName, sess.data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	cookie := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    encoded,
		Path:     m.cfg.CookiePath,
		Domain:   m.cfg.CookieDomain,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: m.cfg.CookieSameSite,
		Expires:  sess.data.ExpiresAt,
		MaxAge:   int(sess.data.ExpiresAt.Sub(now).Round(time.Second).Seconds()),
	}
	http.SetCookie(w, cookie)
	return nil
}

// Destroy invalidates the session cookie immediately.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, m.expiredCookie())
}

func (m *Manager) newSession() *Session {
	now := m.now().UTC()
	return &Session{
		data: Data{
			CreatedAt:  now,
			LastActive: now,
			ExpiresAt:  now.Add(m.cfg.Lifetime),
			Theme:      ThemeLight,
		},
	}
}

func (m *Manager) isExpired(sess *Session, now time.Time) bool {
	now = now.UTC()
	if !sess.data.ExpiresAt.IsZero() && now.After(sess.data.ExpiresAt.UTC()) {
		return true
	}
	if m.cfg.IdleTimeout > 0 {
		last := sess.data.LastActive
		if last.IsZero() {
			last = sess.data.CreatedAt
		}
		if !last.IsZero() && now.Sub(last) > m.cfg.IdleTimeout {
			return true
		}
	}
	return false
}

func (m *Manager) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     m.cfg.CookiePath,
		Domain:   m.cfg.CookieDomain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: m.cfg.CookieSameSite,
	}
}

// Token returns the stored auth token, empty when signed out.
func (s *Session) Token() string {
	return s.data.Token
}

// Username returns the stored account name.
func (s *Session) Username() string {
	return s.data.Username
}

// LoggedIn reports whether the session carries an auth token.
func (s *Session) LoggedIn() bool {
	return s.data.Token != ""
}

// SignIn stores the auth token and username issued by the backend.
func (s *Session) SignIn(token, username string) {
	s.data.Token = token
	s.data.Username = username
}

// SetUsername updates the stored account name.
func (s *Session) SetUsername(username string) {
	s.data.Username = username
}

// ClearAuth removes the auth token and username but keeps the theme.
func (s *Session) ClearAuth() {
	s.data.Token = ""
	s.data.Username = ""
}

// Theme returns the stored theme, defaulting to light.
func (s *Session) Theme() string {
	if s.data.Theme == "" {
		return ThemeLight
	}
	return s.data.Theme
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Session) ToggleTheme() string {
	if s.Theme() == ThemeLight {
		s.data.Theme = ThemeDark
	} else {
		s.data.Theme = ThemeLight
	}
	return s.data.Theme
}

// SetFlash stores a one-shot status message for the next page render.
func (s *Session) SetFlash(message string) {
	s.data.Flash = message
}

// TakeFlash returns the pending flash message and clears it.
func (s *Session) TakeFlash() string {
	flash := s.data.Flash
	s.data.Flash = ""
	return flash
}

// Destroyed reports whether the session has been marked for removal.
func (s *Session) Destroyed() bool {
	return s.destroyed
}
