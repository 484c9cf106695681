package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/core/engine"
	apperrors "github.com/wordlens/wordlens/internal/errors"
	"github.com/wordlens/wordlens/internal/observability"
	"github.com/wordlens/wordlens/internal/output"
	"github.com/wordlens/wordlens/internal/server/handlers"
	servermw "github.com/wordlens/wordlens/internal/server/middleware"
)

// Deps carries the application hooks exposed over HTTP. Nil fields
// leave the corresponding endpoint unregistered.
type Deps struct {
	// Status reports corpus and budget state for GET /status.
	Status func(ctx context.Context) (*output.StatusReport, error)

	// Run triggers a reclamation pass for POST /runs.
	Run func(ctx context.Context) (*core.RunReport, error)

	// Runs is the shared single-flight state for reclamation runs.
	// Pass the scheduler's instance so HTTP and scheduled triggers
	// never overlap. Left nil, the server creates its own.
	Runs *engine.RunState
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	host   string
	port   int
	deps   Deps
	runs   *engine.RunState
}

// New creates a new HTTP server instance
func New(host string, port int, deps Deps) *Server {
	r := chi.NewRouter()

	// Standard chi middleware
	r.Use(middleware.RealIP)

	// Our custom middleware in correct order (RequestID → Metrics → Logging → Recovery)
	r.Use(servermw.RequestID)      // 1. Request ID (early for correlation)
	r.Use(servermw.RequestMetrics) // 2. Metrics (measure everything)
	r.Use(servermw.ErrorHandler)   // 3. Error handling (after metrics)
	r.Use(servermw.Recovery)       // 4. Panic recovery (outermost)

	// Standardized error responses using centralized HandleError
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		err := apperrors.NewNotFoundError("The requested resource was not found")
		HandleError(w, req, err)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		err := apperrors.NewMethodNotAllowedError("The requested method is not allowed for this resource")
		HandleError(w, req, err)
	})

	runs := deps.Runs
	if runs == nil {
		runs = &engine.RunState{}
	}

	s := &Server{
		router: r,
		host:   host,
		port:   port,
		deps:   deps,
		runs:   runs,
	}

	// Ensure handlers use the centralized error responder
	handlers.SetHTTPErrorResponder(HandleError)

	// Register routes
	s.registerRoutes()

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	observability.ServerLogger.Info("Starting HTTP server",
		zap.String("host", s.host),
		zap.Int("port", s.port),
		zap.String("addr", addr))

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	observability.ServerLogger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing and instrumentation
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the server port for testing
func (s *Server) Port() int {
	return s.port
}
