// Package httpapi exposes the chat service over HTTP. The surface is
// two endpoints: GET /new_session creates a session, POST /chat runs
// one chat turn.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/scenechat/scenechat/internal/core/domain"
	"github.com/scenechat/scenechat/internal/core/ports/driving"
	"github.com/scenechat/scenechat/internal/logger"
)

// Server serves the chat API.
type Server struct {
	chat   driving.ChatService
	server *http.Server
}

// NewServer creates a server bound to addr (e.g. ":8000").
func NewServer(addr string, chat driving.ChatService) *Server {
	s := &Server{chat: chat}

	mux := http.NewServeMux()
	mux.HandleFunc("/new_session", s.handleNewSession)
	mux.HandleFunc("/chat", s.handleChat)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           withCORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown is called or
// the listener fails.
func (s *Server) ListenAndServe() error {
	logger.Info("Chat API listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type newSessionResponse struct {
	SessionID string `json:"session_id"`
}

type chatRequest struct {
	SessionID   string `json:"session_id"`
	Character   string `json:"character"`
	UserMessage string `json:"user_message"`
}

type chatResponse struct {
	Character string `json:"character"`
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	id, err := s.chat.NewSession(r.Context())
	if err != nil {
		logger.Warn("Creating session failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not create session"})
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse{SessionID: id})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.SessionID == "" || req.Character == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "session_id and character are required"})
		return
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_message must not be empty"})
		return
	}

	reply, err := s.chat.SendMessage(r.Context(), req.SessionID, req.Character, req.UserMessage)
	if err != nil {
		status, msg := errorStatus(err)
		logger.Warn("Chat turn failed (session %s): %v", req.SessionID, err)
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Character: reply.Persona,
		Response:  reply.Text,
		SessionID: reply.SessionID,
	})
}

// errorStatus maps a chat error to an HTTP status and client message.
// Caller mistakes are 400s; upstream model failures are 502s.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidSession):
		return http.StatusBadRequest, "invalid session id"
	case errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest, "user_message must not be empty"
	default:
		return http.StatusBadGateway, fmt.Sprintf("chat failed: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// withCORS allows browser clients from any origin.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
