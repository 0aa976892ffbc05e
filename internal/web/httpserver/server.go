package httpserver

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"productcompare.org/web/internal/web/backend"
	custommw "productcompare.org/web/internal/web/httpserver/middleware"
	"productcompare.org/web/internal/web/httpserver/ui"
	"productcompare.org/web/public"
)

// Config holds runtime options for the client HTTP server.
type Config struct {
	Address          string
	Backend          backend.Service
	Sessions         custommw.SessionStore
	CSRFCookieName   string
	CSRFCookieSecure bool
	CSRFHeaderName   string
	CSRFFormField    string
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) *http.Server {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(60 * time.Second))

	staticContent, err := public.StaticFS()
	if err != nil {
		log.Fatalf("embed static: %v", err)
	}
	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))

	handlers := ui.NewHandlers(ui.Dependencies{Backend: cfg.Backend})

	csrfCfg := custommw.CSRFConfig{
		CookieName: cfg.CSRFCookieName,
		HeaderName: cfg.CSRFHeaderName,
		FormField:  cfg.CSRFFormField,
		Secure:     cfg.CSRFCookieSecure,
	}

	mountRoutes(router, handlers, routeOptions{
		Sessions: cfg.Sessions,
		CSRF:     csrfCfg,
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

type routeOptions struct {
	Sessions custommw.SessionStore
	CSRF     custommw.CSRFConfig
}

func mountRoutes(router chi.Router, handlers *ui.Handlers, opts routeOptions) {
	router.Group(func(r chi.Router) {
		r.Use(custommw.Session(opts.Sessions))
		r.Use(custommw.RequestInfoMiddleware())
		r.Use(custommw.CSRF(opts.CSRF))

		r.Get("/", handlers.HomePage)
		r.Post("/auth/login", handlers.Login)
		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/logout", handlers.Logout)
		r.Post("/theme", handlers.ToggleTheme)
		r.Post("/products", handlers.SubmitProducts)
		r.Get("/compare", handlers.ComparePage)
	})

	// Unknown paths land on the home page rather than a bare 404.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
}
