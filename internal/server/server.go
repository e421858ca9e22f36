// Package server exposes metadata gathering over HTTP for local
// tooling: one endpoint that scans a project path and returns the
// merged record as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	charmlog "github.com/charmbracelet/log"

	"github.com/mkrale/upmeta/pkg/guess"
	"github.com/mkrale/upmeta/pkg/upstream"
	"github.com/mkrale/upmeta/pkg/vcs"
)

// Server serves the metadata API.
type Server struct {
	log  *charmlog.Logger
	opts guess.Options
}

// New creates a Server. The guess options act as defaults; individual
// requests can override the network and check flags.
func New(logger *charmlog.Logger, opts guess.Options) *Server {
	return &Server{log: logger, opts: opts}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/v1/metadata", s.handleMetadata)
	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.log.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type metadataResponse struct {
	Fields   []upstream.Datum `json:"fields"`
	Findings []findingJSON    `json:"findings,omitempty"`
}

type findingJSON struct {
	Field   string `json:"field"`
	Check   string `json:"check"`
	Message string `json:"message"`
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := q.Get("path")
	if path == "" {
		httpError(w, http.StatusBadRequest, "missing path parameter")
		return
	}
	if err := validatePath(path); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		httpError(w, http.StatusNotFound, "not a directory: "+path)
		return
	}

	opts := s.opts
	if q.Get("net") == "false" {
		opts.Net = vcs.NetDenied
	}
	opts.Check = q.Get("check") == "true"
	opts.ConsultDirectory = q.Get("directory") == "true"

	md, findings, err := guess.GuessMetadata(r.Context(), path, opts)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := metadataResponse{Fields: md.Sorted()}
	for _, f := range findings {
		resp.Findings = append(resp.Findings, findingJSON{
			Field:   string(f.Field),
			Check:   f.Check,
			Message: f.Message,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// validatePath rejects paths that cannot name a real directory before
// anything touches the filesystem.
func validatePath(path string) error {
	if len(path) > 4096 {
		return errors.New("path too long")
	}
	for _, r := range path {
		if r < 0x20 || r == 0x7f {
			return errors.New("path contains control characters")
		}
	}
	return nil
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
