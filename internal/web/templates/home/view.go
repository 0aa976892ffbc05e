// Package home renders the landing page: auth forms and the two-product entry
// panel.
package home

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Content renders the home page body.
func Content(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !data.LoggedIn {
			return authPanel(w, data)
		}
		return productForms(w, data)
	})
}

func authPanel(w io.Writer, data PageData) error {
	mode := data.AuthMode
	if mode != AuthModeRegister {
		mode = AuthModeLogin
	}

	heading := "Login"
	action := "/auth/login"
	submitLabel := "Login"
	switchHref := "/?mode=register"
	switchLabel := "No account? Register"
	passwordComplete := "current-password"
	if mode == AuthModeRegister {
		heading = "Create Account"
		action = "/auth/register"
		submitLabel = "Register and Continue"
		switchHref = "/"
		switchLabel = "Already have an account? Login"
		passwordComplete = "new-password"
	}

	_, err := fmt.Fprintf(w,
		`<section class="auth-wrap"><form class="panel card auth-panel" method="post" action="%s">`+
			`<h2>%s</h2><p class="panel-subtitle">Your dashboard is private to your account.</p>`+
			`<input type="hidden" name="csrf_token" value="%s">`+
			`<input name="username" placeholder="Username" autocomplete="username">`+
			`<input name="password" placeholder="Password" type="password" autocomplete="%s">`+
			`<button type="submit" class="btn-primary">%s</button>`+
			`<a class="ghost" href="%s">%s</a>`+
			`</form></section>`,
		action, heading, templ.EscapeString(data.CSRFToken), passwordComplete, submitLabel, switchHref, switchLabel)
	return err
}

func productForms(w io.Writer, data PageData) error {
	if _, err := fmt.Fprintf(w,
		`<section class="panel card"><h2>Add Two Products</h2>`+
			`<p class="panel-subtitle">Enter core fields only. Full specifications are loaded from system demo data.</p>`+
			`<form method="post" action="/products"><input type="hidden" name="csrf_token" value="%s"><div class="home-forms-grid">`,
		templ.EscapeString(data.CSRFToken)); err != nil {
		return err
	}

	for i := 1; i <= 2; i++ {
		if _, err := fmt.Fprintf(w,
			`<div class="home-product-form card"><h3>Product %d</h3>`+
				`<input name="name_%d" placeholder="Product name">`+
				`<select name="category_%d"><option value="electronic">Electronic</option><option value="non-electronic">Non-electronic</option></select>`+
				`<input name="price_%d" placeholder="Price (&#8377;)" type="number" step="0.01">`+
				`<input name="link_%d" placeholder="Purchase link (URL)" class="input-url">`+
				`</div>`,
			i, i, i, i, i); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w,
		`</div><button type="submit" class="show-comparison-btn btn-primary">Show Comparison</button></form></section>`)
	return err
}
