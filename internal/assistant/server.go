// Package assistant is the backend behind the assistant gateway: an HTTP service
// answering officer questions from the investigation manuals.
package assistant

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/cyberdesk/internal/httpx"
	gw "github.com/aretw0/cyberdesk/pkg/assistant"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxQueryBytes = 64 << 10

// Server exposes POST /ask.
type Server struct {
	router   chi.Router
	answerer Answerer
	log      *slog.Logger
}

// NewServer creates the assistant HTTP handler.
func NewServer(answerer Answerer, log *slog.Logger) *Server {
	s := &Server{answerer: answerer, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httpx.RequestLogger(log))

	r.Get("/health", httpx.Health)
	r.Post("/ask", s.handleAsk)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req gw.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			httpx.WriteJSON(w, http.StatusBadRequest, gw.ErrorResponse{Error: "Request body too large"})
		case errors.Is(err, io.EOF):
			httpx.WriteJSON(w, http.StatusBadRequest, gw.ErrorResponse{Error: "No query provided"})
		default:
			s.log.Warn("rejected malformed query", "request_id", middleware.GetReqID(r.Context()), "err", err)
			httpx.WriteJSON(w, http.StatusBadRequest, gw.ErrorResponse{Error: "Invalid request body"})
		}
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, gw.ErrorResponse{Error: "No query provided"})
		return
	}

	s.log.Info("received query", "request_id", middleware.GetReqID(r.Context()), "chars", len(req.Query))

	answer, err := s.answerer.Answer(r.Context(), req.Query)
	if err != nil {
		s.log.Error("failed to answer query", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gw.ErrorResponse{Error: "Failed to process the request"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, gw.Response{Response: answer})
}
