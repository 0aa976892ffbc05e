// Package layout renders the shared page shell: theme attribute, header with
// theme toggle and logout controls, flash message, and footer.
package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Shell carries the state every page render needs.
type Shell struct {
	Title     string
	Theme     string
	Username  string
	LoggedIn  bool
	Flash     string
	CSRFToken string
	// ReturnTo is where the theme toggle sends the browser back to.
	ReturnTo string
}

// Page wraps a body component in the full HTML document.
func Page(shell Shell, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := shell.Title
		if title == "" {
			title = "Personal Product Comparison"
		}
		theme := shell.Theme
		if theme == "" {
			theme = "light"
		}

		if _, err := fmt.Fprintf(w,
			`<!doctype html><html lang="en" data-theme="%s"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><link rel="stylesheet" href="/public/static/app.css"></head><body><main class="app-shell">`,
			templ.EscapeString(theme), templ.EscapeString(title)); err != nil {
			return err
		}

		if err := header(w, shell, theme); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		if shell.Flash != "" {
			if _, err := fmt.Fprintf(w, `<p class="status-text">%s</p>`, templ.EscapeString(shell.Flash)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w,
			`<footer class="app-footer">ProductCompare &bull; Built for clear side-by-side product decisions</footer></main></body></html>`)
		return err
	})
}

func header(w io.Writer, shell Shell, theme string) error {
	subtitle := "Create an account or sign in to access your private comparison workspace."
	if shell.LoggedIn {
		subtitle = fmt.Sprintf("Welcome %s. Add two products and compare all features side by side.",
			templ.EscapeString(shell.Username))
	}

	toggleLabel := "Dark Mode"
	if theme != "light" {
		toggleLabel = "Light Mode"
	}

	if _, err := fmt.Fprintf(w,
		`<header class="app-header"><div><h1>Personal Product Comparison</h1><p>%s</p></div><div class="header-actions">`,
		subtitle); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w,
		`<form method="post" action="/theme"><input type="hidden" name="csrf_token" value="%s"><input type="hidden" name="redirect" value="%s"><button type="submit" class="ghost">%s</button></form>`,
		templ.EscapeString(shell.CSRFToken), templ.EscapeString(shell.ReturnTo), toggleLabel); err != nil {
		return err
	}

	if shell.LoggedIn {
		if _, err := fmt.Fprintf(w,
			`<form method="post" action="/auth/logout"><input type="hidden" name="csrf_token" value="%s"><button type="submit" class="ghost">Logout</button></form>`,
			templ.EscapeString(shell.CSRFToken)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, `</div></header>`)
	return err
}
