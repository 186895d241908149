// Package server exposes session stores over an HTTP JSON API.
//
// Each client is identified by a session cookie holding a random key; the
// first request without one starts a new session. Every API response carries
// the notices the operation produced, so a UI can show them as toasts.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/SEA6153/tableview/internal/session"
)

// Options configures the HTTP server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CookieName   string
}

// Server serves the records API and /healthz.
type Server struct {
	registry *session.Registry
	redis    Pinger // nil when events are not published to Redis
	opts     Options
	server   *http.Server
	addr     net.Addr
}

// New creates a server over registry. redis may be nil.
func New(registry *session.Registry, redis Pinger, opts Options) *Server {
	if opts.CookieName == "" {
		opts.CookieName = "tableview_session"
	}
	return &Server{
		registry: registry,
		redis:    redis,
		opts:     opts,
	}
}

// Handler returns the router with every route registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.healthCheckHandler)

	mux.HandleFunc("GET /api/tables", s.handleListTables)
	mux.HandleFunc("POST /api/tables", s.handleAddCatalogName)
	mux.HandleFunc("POST /api/tables/create", s.handleCreateTable)
	mux.HandleFunc("DELETE /api/tables/{name}", s.handleRemoveTable)
	mux.HandleFunc("POST /api/tables/rename", s.handlePrepareRename)
	mux.HandleFunc("POST /api/tables/rename/commit", s.handleCommitRename)
	mux.HandleFunc("POST /api/select", s.handleSelect)
	mux.HandleFunc("POST /api/defaults", s.handleLoadDefaults)

	mux.HandleFunc("GET /api/records", s.handleListRecords)
	mux.HandleFunc("PUT /api/records/new", s.handleStageNew)
	mux.HandleFunc("POST /api/records", s.handleCommitNew)
	mux.HandleFunc("DELETE /api/records/{id}", s.handleDeleteRecord)
	mux.HandleFunc("POST /api/records/{id}/edit", s.handleBeginEdit)
	mux.HandleFunc("PUT /api/edit", s.handleStageEdit)
	mux.HandleFunc("POST /api/edit/commit", s.handleCommitEdit)
	mux.HandleFunc("DELETE /api/edit", s.handleCancelEdit)

	mux.HandleFunc("DELETE /api/session", s.handleEndSession)
	return mux
}

// Start binds the listen address and serves in the background.
// Bind errors are returned; later serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	s.addr = ln.Addr()
	log.Printf("[Server] Listening on %s", s.addr)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[Server] Serve error: %v", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.addr != nil {
		return s.addr.String()
	}
	return s.opts.Addr
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Printf("[Server] Shutting down...")
	return s.server.Shutdown(ctx)
}
