package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/brainview-cli/internal/logger"
)

var httpLog = logger.Scoped("http")

// DefaultAddr is the port the web front end expects.
const DefaultAddr = ":5000"

// Server is the HTTP API server.
type Server struct {
	ports  *Ports
	router *mux.Router
}

// NewServer creates a server with all routes registered.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	s := &Server{ports: ports, router: mux.NewRouter()}
	s.routes()
	return s, nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(logRequests, allowCORS)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/info/regions", s.handleRegionInfo).Methods(http.MethodGet, http.MethodOptions)

	api := s.router.PathPrefix("/api/analyses").Subrouter()
	api.HandleFunc("", s.handleListAnalyses).Methods(http.MethodGet)
	api.HandleFunc("/{id}", s.handleGetAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/{id}/views/{mode}", s.handleView).Methods(http.MethodGet)
	api.HandleFunc("/{id}/views/{mode}/slices/{index:[0-9-]+}", s.handleSlice).Methods(http.MethodGet)
	api.HandleFunc("/{id}/export/{plane}", s.handleExport).Methods(http.MethodGet)
	api.HandleFunc("/{id}/histogram.png", s.handleHistogram).Methods(http.MethodGet)
	api.HandleFunc("/{id}/stream", s.handleStream).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		// Streams outlive Shutdown; deriving from ctx ends them too.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		httpLog.Info("listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		httpLog.Warn("shutdown: %v", err)
		return httpServer.Close()
	}
	return nil
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		httpLog.Debug("%s %s (%s)", r.Method, r.URL.RequestURI(), time.Since(start).Round(time.Microsecond))
	})
}

// allowCORS lets browser front ends on other origins call the API.
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
