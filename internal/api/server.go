// Package api serves one in-memory seating plan over HTTP as JSON.
//
// Every handler runs under a single lock, so the plan sees one logical
// actor no matter how many clients are connected.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ukaji3/seatplan-go/pkg/seatplan"
	"go.uber.org/zap"
)

// Options configures a Server.
type Options struct {
	// DefaultTableCapacity applies to tables created without a capacity.
	DefaultTableCapacity int
	// MaxUpload caps workbook request bodies, in bytes.
	MaxUpload int64
}

// Server is the HTTP server for a seating plan.
type Server struct {
	mu     sync.Mutex
	plan   *seatplan.Plan
	opts   Options
	log    *zap.Logger
	router *chi.Mux
	server *http.Server
}

// NewServer creates a Server around plan. A nil logger discards output.
func NewServer(plan *seatplan.Plan, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		plan:   plan,
		opts:   opts,
		log:    log,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.withLogger)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/plan", s.handleGetPlan)
		r.Put("/plan", s.handlePutPlan)
		r.Get("/stats", s.handleStats)

		r.Get("/guests", s.handleListGuests)
		r.Post("/guests", s.handleCreateGuest)
		r.Get("/guests/{id}", s.handleGetGuest)
		r.Patch("/guests/{id}", s.handleUpdateGuest)
		r.Delete("/guests/{id}", s.handleDeleteGuest)
		r.Put("/guests/{id}/seat", s.handleSeatGuest)
		r.Delete("/guests/{id}/seat", s.handleUnseatGuest)

		r.Get("/tables", s.handleListTables)
		r.Post("/tables", s.handleCreateTable)
		r.Get("/tables/{id}", s.handleGetTable)
		r.Patch("/tables/{id}", s.handleUpdateTable)
		r.Delete("/tables/{id}", s.handleDeleteTable)

		r.Post("/plan/xlsx", s.handleLoadWorkbook)
		r.Get("/plan/xlsx", s.handleSaveWorkbook)
		r.Get("/summary/xlsx", s.handleSummary)

		r.Post("/import/headers", s.handleHeaders)
		r.Post("/import/groups", s.handleImportGroups)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.log.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
