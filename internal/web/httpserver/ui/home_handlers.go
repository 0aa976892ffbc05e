package ui

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"productcompare.org/web/internal/web/backend"
	"productcompare.org/web/internal/web/submission"
	"productcompare.org/web/internal/web/templates/home"
)

// HomePage renders the landing page. A stored token is verified against the
// backend first; a rejected token silently clears local auth state and falls
// back to the login view.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrNew(r)

	if token := sess.Token(); token != "" {
		identity, err := h.svc.Me(r.Context(), token)
		if err != nil {
			log.Printf("home: identity check failed: %v", err)
			sess.ClearAuth()
		} else {
			sess.SetUsername(identity.Username)
		}
	}

	shell := h.shell(r, "")
	data := home.PageData{
		LoggedIn:  sess.LoggedIn(),
		AuthMode:  r.URL.Query().Get("mode"),
		CSRFToken: shell.CSRFToken,
	}
	h.render(w, r, shell, home.Content(data))
}

// Login signs the user in with the backend and stores the issued session.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, false)
}

// Register creates an account and signs the user in.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, true)
}

func (h *Handlers) authenticate(w http.ResponseWriter, r *http.Request, register bool) {
	sess := sessionOrNew(r)

	if err := r.ParseForm(); err != nil {
		sess.SetFlash("Could not read the submitted form.")
		redirect(w, r, "/")
		return
	}
	creds := backend.Credentials{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: strings.TrimSpace(r.PostFormValue("password")),
	}
	if creds.Username == "" || creds.Password == "" {
		sess.SetFlash("Username and password are required")
		redirect(w, r, "/")
		return
	}

	var (
		issued *backend.AuthSession
		err    error
	)
	if register {
		issued, err = h.svc.Register(r.Context(), creds)
	} else {
		issued, err = h.svc.Login(r.Context(), creds)
	}
	if err != nil {
		log.Printf("auth: %v", err)
		sess.SetFlash(err.Error())
		redirect(w, r, "/")
		return
	}

	sess.SignIn(issued.Token, issued.Username)
	if register {
		sess.SetFlash("Account created successfully")
	} else {
		sess.SetFlash("Login successful")
	}
	redirect(w, r, "/")
}

// Logout invalidates the backend session but clears local state regardless of
// the backend's answer.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrNew(r)

	if token := sess.Token(); token != "" {
		if err := h.svc.Logout(r.Context(), token); err != nil {
			log.Printf("logout: %v", err)
		}
	}
	sess.ClearAuth()
	sess.SetFlash("Logged out")
	redirect(w, r, "/")
}

// ToggleTheme flips the stored theme and returns to the posting page.
func (h *Handlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrNew(r)
	sess.ToggleTheme()

	target := r.PostFormValue("redirect")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		target = "/"
	}
	redirect(w, r, target)
}

// SubmitProducts runs the two-product submission flow and redirects to the
// comparison view on success.
func (h *Handlers) SubmitProducts(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrNew(r)

	token := sess.Token()
	if token == "" {
		sess.SetFlash("Please login first.")
		redirect(w, r, "/")
		return
	}
	if err := r.ParseForm(); err != nil {
		sess.SetFlash("Could not read the submitted form.")
		redirect(w, r, "/")
		return
	}

	entries := [2]submission.Entry{}
	for i := range entries {
		suffix := fmt.Sprintf("_%d", i+1)
		entries[i] = submission.Entry{
			Name:         r.PostFormValue("name" + suffix),
			Category:     r.PostFormValue("category" + suffix),
			Price:        r.PostFormValue("price" + suffix),
			PurchaseLink: r.PostFormValue("link" + suffix),
		}
	}

	ids, err := h.flow.Submit(r.Context(), token, entries)
	if err != nil {
		log.Printf("submit: %v", err)
		sess.SetFlash(err.Error())
		redirect(w, r, "/")
		return
	}

	sess.SetFlash("Products submitted. Showing comparison now.")
	redirect(w, r, fmt.Sprintf("/compare?ids=%d,%d", ids[0], ids[1]))
}
