// Package server implements the Nyaya backend HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"

	"github.com/manav/nyaya/internal/advice"
	"github.com/manav/nyaya/internal/auth"
	"github.com/manav/nyaya/internal/logger"
	"github.com/manav/nyaya/internal/mailer"
	"github.com/manav/nyaya/internal/store"
)

// Options configures a Server.
type Options struct {
	Store  *store.Store
	Issuer *auth.Issuer
	Chain  *advice.Chain
	Mailer *mailer.Mailer

	// BaseURL is the externally reachable address, used to build
	// verification links.
	BaseURL string

	// DevOAuth enables the passwordless /auth/oauth/dev endpoint.
	DevOAuth bool
}

// Server serves the legal-assistance API.
type Server struct {
	store    *store.Store
	issuer   *auth.Issuer
	chain    *advice.Chain
	mailer   *mailer.Mailer
	states   *auth.StateStore
	baseURL  string
	devOAuth bool

	cron *cron.Cron
}

func New(opts Options) *Server {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return &Server{
		store:    opts.Store,
		issuer:   opts.Issuer,
		chain:    opts.Chain,
		mailer:   opts.Mailer,
		states:   auth.NewStateStore(),
		baseURL:  baseURL,
		devOAuth: opts.DevOAuth,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/languages", s.handleLanguages).Methods(http.MethodGet)
	r.HandleFunc("/form_types", s.handleFormTypes).Methods(http.MethodGet)
	r.HandleFunc("/data/chats", s.handleChats).Methods(http.MethodGet)
	r.HandleFunc("/data/forms", s.handleForms).Methods(http.MethodGet)

	r.Handle("/chat", s.requireAuth(s.handleChat)).Methods(http.MethodPost)
	r.Handle("/generate_form", s.requireAuth(s.handleGenerateForm)).Methods(http.MethodPost)
	r.Handle("/generate_form_pdf", s.requireAuth(s.handleGenerateFormPDF)).Methods(http.MethodPost)

	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify", s.handleVerify).Methods(http.MethodGet)
	r.HandleFunc("/auth/oauth/dev", s.handleOAuthDev).Methods(http.MethodPost)
	r.HandleFunc("/auth/oauth/{provider}/start", s.handleOAuthStart).Methods(http.MethodGet)

	r.Use(corsMiddleware)
	return r
}

// Serve runs the HTTP server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, port int) error {
	s.cron = cron.New()
	s.cron.AddFunc("@every 5m", s.states.Sweep)
	s.cron.Start()
	defer s.cron.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Nyaya API listening on port %d", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
