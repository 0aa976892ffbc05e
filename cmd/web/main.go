package main

import (
	"context"
	"crypto/rand"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productcompare.org/web/internal/web/backend"
	"productcompare.org/web/internal/web/config"
	"productcompare.org/web/internal/web/httpserver"
	"productcompare.org/web/internal/web/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	svc := buildBackend(cfg)
	sessions := buildSessions(cfg)

	srv := httpserver.New(httpserver.Config{
		Address:          cfg.Server.Addr,
		Backend:          svc,
		Sessions:         sessions,
		CSRFCookieName:   cfg.CSRF.CookieName,
		CSRFCookieSecure: cfg.CSRF.Secure,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	log.Printf("compare web client listening on %s", cfg.Server.Addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		cancel()
		stop()
		os.Exit(1)
	}
}

func buildBackend(cfg *config.Config) backend.Service {
	if cfg.Backend.BaseURL == "" {
		log.Printf("COMPAREWEB_BACKEND_BASE_URL not set; using in-memory demo backend")
		return backend.NewStaticService()
	}

	client := &http.Client{Timeout: cfg.Backend.Timeout}
	svc, err := backend.NewHTTPService(cfg.Backend.BaseURL, client)
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}
	log.Printf("using comparison backend at %s", cfg.Backend.BaseURL)
	return svc
}

func buildSessions(cfg *config.Config) *session.Manager {
	hashKey := []byte(cfg.Session.HashKey)
	if len(hashKey) == 0 {
		// Sessions won't survive a restart without a configured key.
		log.Printf("COMPAREWEB_SESSION_HASH_KEY not set; generating an ephemeral key")
		hashKey = randomKey(32)
	}

	var blockKey []byte
	if cfg.Session.BlockKey != "" {
		blockKey = []byte(cfg.Session.BlockKey)
	}

	mgr, err := session.NewManager(session.Config{
		CookieName:   cfg.Session.CookieName,
		HashKey:      hashKey,
		BlockKey:     blockKey,
		CookieSecure: cfg.Session.Secure,
		Lifetime:     cfg.Session.Lifetime,
		IdleTimeout:  cfg.Session.IdleTimeout,
	})
	if err != nil {
		log.Fatalf("session manager: %v", err)
	}
	return mgr
}

func randomKey(size int) []byte {
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("generate session key: %v", err)
	}
	return key
}
