package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	appsession "productcompare.org/web/internal/web/session"
)

type sessionContextKey string

const requestSessionKey sessionContextKey = "web.session"

// SessionStore abstracts the session manager for middleware integration.
type SessionStore interface {
	Load(*http.Request) (*appsession.Session, error)
	New() *appsession.Session
	Save(http.ResponseWriter, *appsession.Session) error
	Destroy(http.ResponseWriter)
}

// Session attaches the decoded session to the request context and persists it
// back to the client cookie. The cookie must go out with the response headers,
// so the save happens right before the handler's first write.
func Session(store SessionStore) func(http.Handler) http.Handler {
	if store == nil {
		panic("session store is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Load(r)
			if errors.Is(err, appsession.ErrExpired) {
				log.Printf("session expired: resetting")
				sess = store.New()
			} else if err != nil || sess == nil {
				if err != nil {
					log.Printf("session load failed: %v", err)
				}
				sess = store.New()
			}

			sw := &sessionWriter{
				ResponseWriter: w,
				store:          store,
				sess:           sess,
			}
			ctx := context.WithValue(r.Context(), requestSessionKey, sess)
			next.ServeHTTP(sw, r.WithContext(ctx))
			sw.persist()
		})
	}
}

// SessionFromContext retrieves the session attached to this request.
func SessionFromContext(ctx context.Context) (*appsession.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(requestSessionKey).(*appsession.Session)
	return sess, ok && sess != nil
}

// sessionWriter defers the session cookie write until the response headers are
// about to be flushed.
type sessionWriter struct {
	http.ResponseWriter
	store  SessionStore
	sess   *appsession.Session
	opened bool
}

func (sw *sessionWriter) WriteHeader(status int) {
	sw.persist()
	sw.ResponseWriter.WriteHeader(status)
}

func (sw *sessionWriter) Write(p []byte) (int, error) {
	sw.persist()
	return sw.ResponseWriter.Write(p)
}

func (sw *sessionWriter) persist() {
	if sw.opened {
		return
	}
	sw.opened = true
	if err := sw.store.Save(sw.ResponseWriter, sw.sess); err != nil {
		log.Printf("session save failed: %v", err)
	}
}
