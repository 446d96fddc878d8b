// Package server exposes the topology engine over HTTP for the browser
// dashboard: view state reads, drag and click events, component CRUD, a
// server-sent event stream of reconciliations, and rendered snapshots.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gridsmith/gridview/pkg/cache"
	"github.com/gridsmith/gridview/pkg/component"
	"github.com/gridsmith/gridview/pkg/component/store"
	"github.com/gridsmith/gridview/pkg/errors"
	"github.com/gridsmith/gridview/pkg/pipeline"
	"github.com/gridsmith/gridview/pkg/topology"
)

// Server owns a topology view and serializes every operation on it.
// The view itself is single-threaded by design; the server's mutex is the
// "hosting event loop" that delivers snapshots, drags, and clicks one at a
// time, so a drag accepted before a snapshot arrives is always reflected
// in that snapshot's reconciliation.
type Server struct {
	store       *store.Watched
	runner      *pipeline.Runner
	logger      *log.Logger
	hub         *hub
	artifactTTL time.Duration

	mu   sync.Mutex // serializes view operations
	view *topology.View
}

// selectionEvent is pushed on the SSE stream when focus changes.
type selectionEvent struct {
	Selected string `json:"selected"`
}

// New creates a server around the given watched store.
// c may be nil to disable artifact caching; ttl bounds how long cached
// render artifacts stay valid (zero picks the pipeline default).
func New(st *store.Watched, c cache.Cache, ttl time.Duration, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		store:       st,
		runner:      pipeline.NewRunner(c, logger),
		logger:      logger,
		hub:         newHub(logger),
		artifactTTL: ttl,
	}
	s.view = topology.NewView(func(id string) {
		s.hub.broadcast("selection", selectionEvent{Selected: id})
	})
	return s
}

// Start loads the initial snapshot into the view and begins applying
// store updates until ctx is cancelled. It must be called before Serve.
func (s *Server) Start(ctx context.Context) error {
	snap, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	s.apply(snap)

	updates := s.store.Subscribe(ctx)
	go func() {
		for snap := range updates {
			s.apply(snap)
		}
	}()
	return nil
}

// Serve runs the HTTP listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errc:
		return err
	}
}

// apply merges a snapshot and pushes the resulting state to SSE clients.
func (s *Server) apply(snap []component.Component) {
	s.mu.Lock()
	s.view.SetComponents(snap)
	st := s.view.State()
	s.mu.Unlock()

	s.hub.broadcast("topology", st)
}

// refresh re-reads the store and applies the snapshot immediately.
// Mutation handlers call this so the state a client reads right after a
// write already reflects it; the feed subscription re-delivering the same
// snapshot later is harmless, reconciliation is idempotent.
func (s *Server) refresh(ctx context.Context) {
	snap, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn("refresh failed", "err", err)
		return
	}
	s.apply(snap)
}

// state returns the current view state under the serialization lock.
func (s *Server) state() topology.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.State()
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/topology", s.handleTopology)
		r.Post("/topology/nodes/{id}/position", s.handleMove)
		r.Post("/topology/select", s.handleSelect)
		r.Get("/topology/events", s.hub.serveHTTP(s.state))
		r.Get("/topology/render.svg", s.handleRender(pipeline.FormatSVG, "image/svg+xml"))
		r.Get("/topology/render.png", s.handleRender(pipeline.FormatPNG, "image/png"))

		r.Get("/components", s.handleListComponents)
		r.Post("/components", s.handleCreateComponent)
		r.Get("/components/{id}", s.handleGetComponent)
		r.Put("/components/{id}", s.handleUpdateComponent)
		r.Delete("/components/{id}", s.handleDeleteComponent)
	})

	return r
}

// =============================================================================
// Topology Handlers
// =============================================================================

func (s *Server) handleTopology(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var pos topology.Position
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid position payload"))
		return
	}

	s.mu.Lock()
	s.view.MoveNode(id, pos)
	st := s.view.State()
	s.mu.Unlock()

	s.hub.broadcast("topology", st)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid selection payload"))
		return
	}

	s.mu.Lock()
	s.view.ClickNode(req.ID)
	st := s.view.State()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleRender(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := s.store.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		result, err := s.runner.Execute(r.Context(), snap, pipeline.Options{
			Formats: []string{format},
			TTL:     s.artifactTTL,
			Logger:  s.logger,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
	}
}

// =============================================================================
// Component Handlers
// =============================================================================

// componentRequest is the CRUD payload; the ID comes from the URL (update)
// or is minted server-side (create).
type componentRequest struct {
	Category string           `json:"category"`
	Name     string           `json:"name"`
	Config   component.Config `json:"config,omitempty"`
}

func (s *Server) handleListComponents(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleGetComponent(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCreateComponent(w http.ResponseWriter, r *http.Request) {
	var req componentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid component payload"))
		return
	}

	cat, err := component.ParseCategory(req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := component.New(cat, req.Name, req.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), c); err != nil {
		writeError(w, err)
		return
	}
	s.refresh(r.Context())
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateComponent(w http.ResponseWriter, r *http.Request) {
	var req componentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid component payload"))
		return
	}

	cat, err := component.ParseCategory(req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	c := &component.Component{
		ID:       chi.URLParam(r, "id"),
		Category: cat,
		Name:     req.Name,
		Config:   req.Config,
	}
	if err := c.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), c); err != nil {
		writeError(w, err)
		return
	}
	s.refresh(r.Context())
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteComponent(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	s.refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Response Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCategory,
		errors.ErrCodeInvalidComponent, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeComponentNotFound:
		status = http.StatusNotFound
	}

	writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}

// requestLogger logs each request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		})
	}
}
