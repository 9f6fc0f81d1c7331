// internal/httpapi/routes.go

// Package httpapi is the HTTP edge: a chat relay for user-facing clients
// and the dialog webhook the NLU runtime calls back into.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
	"dining-concierge/internal/nlu"
	"dining-concierge/internal/session"
)

// DialogHandler processes one dialog turn.
type DialogHandler interface {
	HandleTurn(ctx context.Context, event models.TurnEvent) (models.TurnResponse, error)
}

// Recognizer relays free text to the NLU runtime.
type Recognizer interface {
	RecognizeText(ctx context.Context, sessionID, text string) (*nlu.Recognition, error)
}

type Server struct {
	dialog   DialogHandler
	nlu      Recognizer
	sessions *session.Store
	validate *validator.Validate
	logger   logger.Logger
}

func NewServer(dialog DialogHandler, recognizer Recognizer, sessions *session.Store, log logger.Logger) *Server {
	return &Server{
		dialog:   dialog,
		nlu:      recognizer,
		sessions: sessions,
		validate: validator.New(),
		logger:   log,
	}
}

// Router wires all routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/dialog", s.handleDialog).Methods(http.MethodPost)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ChatRequest is one user utterance from a client.
type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text" validate:"required"`
}

// ChatResponse carries the runtime's reply messages back to the client.
type ChatResponse struct {
	SessionID string   `json:"sessionId"`
	Messages  []string `json:"messages"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	rec, err := s.nlu.RecognizeText(r.Context(), req.SessionID, req.Text)
	if err != nil {
		s.logger.WithError(err).Error("chat relay failed", map[string]interface{}{
			"session_id": req.SessionID,
		})
		writeError(w, http.StatusBadGateway, "assistant is unavailable, try again shortly")
		return
	}

	if err := s.sessions.Save(r.Context(), models.DialogSession{
		SessionID:  req.SessionID,
		IntentName: rec.IntentName,
		State:      models.StateInProgress,
	}); err != nil {
		// Session persistence is best effort on the relay path.
		s.logger.WithError(err).Warn("session save failed", map[string]interface{}{
			"session_id": req.SessionID,
		})
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		SessionID: req.SessionID,
		Messages:  rec.Messages,
	})
}

func (s *Server) handleDialog(w http.ResponseWriter, r *http.Request) {
	var event models.TurnEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid turn event")
		return
	}

	resp, err := s.dialog.HandleTurn(r.Context(), event)
	if err != nil {
		s.logger.WithError(err).Error("dialog turn failed", map[string]interface{}{
			"session_id": event.SessionID,
			"intent":     event.SessionState.Intent.Name,
			"code":       string(errors.Code(err)),
		})
		if errors.IsRetryable(err) {
			writeError(w, http.StatusBadGateway, "dialog processing failed, retry")
			return
		}
		writeError(w, http.StatusBadRequest, "unprocessable dialog turn")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
