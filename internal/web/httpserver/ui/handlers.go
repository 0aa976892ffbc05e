package ui

import (
	"log"
	"net/http"

	"github.com/a-h/templ"

	"productcompare.org/web/internal/web/backend"
	custommw "productcompare.org/web/internal/web/httpserver/middleware"
	"productcompare.org/web/internal/web/session"
	"productcompare.org/web/internal/web/submission"
	"productcompare.org/web/internal/web/templates/layout"
)

// Dependencies collects external services required by the UI handlers.
type Dependencies struct {
	Backend backend.Service
}

// Handlers exposes HTTP handlers for the client's pages and actions.
type Handlers struct {
	svc  backend.Service
	flow *submission.Flow
}

// NewHandlers wires the UI handler set.
func NewHandlers(deps Dependencies) *Handlers {
	svc := deps.Backend
	if svc == nil {
		svc = backend.NewStaticService()
	}
	return &Handlers{
		svc:  svc,
		flow: submission.NewFlow(svc),
	}
}

// shell assembles the layout state shared by every page render.
func (h *Handlers) shell(r *http.Request, title string) layout.Shell {
	shell := layout.Shell{
		Title:     title,
		CSRFToken: custommw.CSRFTokenFromContext(r.Context()),
		ReturnTo:  custommw.ReturnToFromContext(r.Context()),
	}
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		shell.Theme = sess.Theme()
		shell.Username = sess.Username()
		shell.LoggedIn = sess.LoggedIn()
		shell.Flash = sess.TakeFlash()
	}
	return shell
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, shell layout.Shell, body templ.Component) {
	templ.Handler(layout.Page(shell, body)).ServeHTTP(w, r)
}

// sessionOrNew never returns nil so action handlers can set flashes
// unconditionally.
func sessionOrNew(r *http.Request) *session.Session {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		return sess
	}
	log.Printf("ui: request without session context: %s %s", r.Method, r.URL.Path)
	return &session.Session{}
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
