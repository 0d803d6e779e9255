// Package server exposes the pro forma pipeline over HTTP. Handlers relay
// Compute results verbatim: the output body on success and the validation
// error body otherwise.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rpgo/rental-proforma/internal/calculation"
	"github.com/rpgo/rental-proforma/internal/config"
	"github.com/rpgo/rental-proforma/internal/proforma"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP surface around a proforma.Engine.
type Server struct {
	engine   *proforma.Engine
	parser   *config.InputParser
	settings config.Settings
	logger   calculation.Logger
	router   *mux.Router
}

// New wires the routes. A nil logger disables logging.
func New(engine *proforma.Engine, settings config.Settings, logger calculation.Logger) *Server {
	s := &Server{
		engine:   engine,
		parser:   config.NewInputParser(),
		settings: settings,
		logger:   calculation.OrNop(logger),
	}
	r := mux.NewRouter()
	r.Use(s.requestID, s.accessLog, s.limitBody)
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/calculate", s.calculate).Methods(http.MethodPost)
	api.HandleFunc("/calculate/batch", s.calculateBatch).Methods(http.MethodPost)
	api.HandleFunc("/proforma", s.proformaReport).Methods(http.MethodPost)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.settings.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.settings.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.settings.Server.ReadTimeout,
		WriteTimeout: s.settings.Server.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Infof("Starting server on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Infof("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
