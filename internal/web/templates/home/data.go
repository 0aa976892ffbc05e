package home

// AuthModeLogin and AuthModeRegister select which auth form the page shows.
const (
	AuthModeLogin    = "login"
	AuthModeRegister = "register"
)

// PageData drives the home page: the auth panel when signed out, the
// two-product entry forms when signed in.
type PageData struct {
	LoggedIn  bool
	AuthMode  string
	CSRFToken string
}
