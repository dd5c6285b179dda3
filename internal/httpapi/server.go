package httpapi

import (
	"context"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"log/slog"

	"github.com/kirdwahi/ledger/internal/events"
	"github.com/kirdwahi/ledger/internal/service/account"
	"github.com/kirdwahi/ledger/internal/service/entry"
)

// Server wires handlers and middleware using Chi.
type Server struct {
	accounts account.Service
	entries  entry.Service
	store    Store
	log      *slog.Logger
	rt       *chi.Mux
}

// New constructs the HTTP server with routes and middleware. An empty token
// leaves the API open with full capability, which is the dev-mode default.
func New(store Store, token string, pub events.Publisher, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)
	r.Use(capability(token))

	s := &Server{
		accounts: account.New(store, store, store, pub),
		entries:  entry.New(store, store, store, pub),
		store:    store,
		log:      logger,
		rt:       r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

func (s *Server) routes() {
	s.rt.Route("/v1", func(r chi.Router) {
		// Accounts
		r.Get("/accounts", s.listAccounts)
		r.Post("/accounts", s.postAccount)
		r.Get("/accounts/{id}", s.getAccount)
		r.Patch("/accounts/{id}", s.patchAccount)
		r.Delete("/accounts/{id}", s.deleteAccount)
		// Entries
		r.Get("/entries", s.listEntries)
		r.Post("/entries", s.postEntry)
		r.Patch("/entries/{id}", s.patchEntry)
		r.Delete("/entries/{id}", s.deleteEntry)
		// Views
		r.Get("/daybook", s.getDayBook)
		r.Get("/accounts/khate/{khate}/ledger", s.getAccountLedger)
		// Exports
		r.Get("/export/daybook", s.exportDayBook)
		r.Get("/export/accounts/{khate}", s.exportAccountLedger)
	})
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	rc, ok := s.store.(ReadyChecker)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := rc.Ready(ctx); err != nil {
		writeErr(w, http.StatusServiceUnavailable, "store not ready", "not_ready")
		return
	}
	w.WriteHeader(http.StatusOK)
}
