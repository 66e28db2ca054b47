// Package http exposes the live conversation as a JSON API with server-sent events.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/cyberdesk/internal/httpx"
	"github.com/aretw0/cyberdesk/internal/presentation/graph"
	"github.com/aretw0/cyberdesk/pkg/document"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
	"github.com/aretw0/cyberdesk/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxNotesBytes = 1 << 20

// Server routes API calls to the conversation.
type Server struct {
	router  chi.Router
	conv    ports.Conversation
	doc     *domain.Document
	notes   ports.NoteStore
	metrics http.Handler
	log     *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithNotes enables GET/PUT /api/notes.
func WithNotes(store ports.NoteStore) Option {
	return func(s *Server) {
		s.notes = store
	}
}

// WithMetrics mounts h (usually promhttp.Handler) at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewHandler creates the API handler for conv. doc is served by /api/graph.
func NewHandler(conv ports.Conversation, doc *domain.Document, opts ...Option) *Server {
	s := &Server{
		conv: conv,
		doc:  doc,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httpx.RequestLogger(s.log))
	r.Use(httpx.CORS)

	r.Get("/health", httpx.Health)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", s.getSession)
		r.Post("/session/select", s.postSelect)
		r.Post("/session/message", s.postMessage)
		r.Post("/session/reset", s.postReset)
		r.Get("/session/events", s.subscribeEvents)
		r.Get("/graph", s.getGraph)
		if s.notes != nil {
			r.Get("/notes", s.getNotes)
			r.Put("/notes", s.putNotes)
		}
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SelectRequest is the body of POST /api/session/select.
type SelectRequest struct {
	Value string `json:"value"`
}

// MessageRequest is the body of POST /api/session/message.
type MessageRequest struct {
	Text string `json:"text"`
}

// NotesBody is the body of GET and PUT /api/notes.
type NotesBody struct {
	Notes string `json:"notes"`
}

// GraphResponse is the body of GET /api/graph.
type GraphResponse struct {
	Nodes       map[string]domain.Node `json:"nodes"`
	Mermaid     string                 `json:"mermaid"`
	Unreachable []string               `json:"unreachable,omitempty"`
}

func (s *Server) getSession(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, s.conv.View())
}

func (s *Server) postSelect(w http.ResponseWriter, r *http.Request) {
	var body SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.conv.Select(r.Context(), body.Value); err != nil {
		s.writeIntentError(w, "select", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s.conv.View())
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	var body MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text, err := runner.SanitizeInput(body.Text)
	if err != nil {
		s.log.Warn("message rejected", "err", err, "size", len(body.Text))
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.conv.Submit(r.Context(), text); err != nil {
		s.writeIntentError(w, "message", err)
		return
	}
	httpx.WriteJSON(w, http.StatusAccepted, s.conv.View())
}

func (s *Server) postReset(w http.ResponseWriter, r *http.Request) {
	if err := s.conv.Reset(r.Context()); err != nil {
		s.writeIntentError(w, "reset", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s.conv.View())
}

func (s *Server) writeIntentError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error(op+" failed", "err", err)
	} else {
		s.log.Debug(op+" rejected", "err", err)
	}
	httpx.WriteError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidOption), errors.Is(err, domain.ErrNotFreeText):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTurnPending):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) getGraph(w http.ResponseWriter, _ *http.Request) {
	state := s.conv.Snapshot()
	httpx.WriteJSON(w, http.StatusOK, GraphResponse{
		Nodes:       s.doc.Nodes,
		Mermaid:     graph.GenerateMermaid(s.doc, &graph.Overlay{CurrentNode: state.CurrentNodeID, AIMode: state.AIModeActive()}),
		Unreachable: document.Unreachable(s.doc),
	})
}

func (s *Server) getNotes(w http.ResponseWriter, r *http.Request) {
	data, err := s.notes.Load(r.Context(), domain.NotesKey)
	if err != nil && !errors.Is(err, domain.ErrNoteNotFound) {
		s.log.Error("failed to load notes", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load notes")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, NotesBody{Notes: string(data)})
}

func (s *Server) putNotes(w http.ResponseWriter, r *http.Request) {
	var body NotesBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxNotesBytes)).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.notes.Save(r.Context(), domain.NotesKey, []byte(body.Notes)); err != nil {
		s.log.Error("failed to save notes", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to save notes")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
