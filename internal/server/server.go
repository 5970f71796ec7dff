// internal/server/server.go

// Package server exposes the chat and onboarding APIs over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	commonerrors "helpdesk-assistant/internal/common/errors"
	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/models"
	"helpdesk-assistant/internal/store"
)

// ChatService is the message-handling surface the HTTP layer binds to.
type ChatService interface {
	HandleMessage(ctx context.Context, sessionID, text string) ([]models.ChatMessage, error)
	HandleDecision(ctx context.Context, sessionID, messageID string, confirm bool) ([]models.ChatMessage, error)
	Transcript(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
}

// OnboardingService manages new-hire requests. Optional.
type OnboardingService interface {
	Create(ctx context.Context, req models.OnboardingRequest) (models.OnboardingRequest, error)
	Get(ctx context.Context, id string) (models.OnboardingRequest, error)
	Approve(ctx context.Context, id string) (models.OnboardingRequest, error)
	Reject(ctx context.Context, id string) (models.OnboardingRequest, error)
}

// HealthChecker reports readiness of one backing dependency.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	chat       ChatService
	onboarding OnboardingService
	health     map[string]HealthChecker
	logger     logger.Logger
}

func New(chat ChatService, onboarding OnboardingService, health map[string]HealthChecker, log logger.Logger) *Server {
	return &Server{
		chat:       chat,
		onboarding: onboarding,
		health:     health,
		logger:     log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/", s.handleChatMessage)
		r.Post("/decision", s.handleChatDecision)
		r.Get("/{sessionID}", s.handleTranscript)
	})

	if s.onboarding != nil {
		r.Route("/api/onboarding", func(r chi.Router) {
			r.Post("/", s.handleOnboardingCreate)
			r.Get("/{requestID}", s.handleOnboardingGet)
			r.Post("/{requestID}/approve", s.handleOnboardingApprove)
			r.Post("/{requestID}/reject", s.handleOnboardingReject)
		})
	}

	return r
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

type decisionRequest struct {
	SessionID string `json:"sessionId"`
	MessageID string `json:"messageId"`
	Decision  string `json:"decision"` // "confirm" or "cancel"
}

type chatResponse struct {
	SessionID string               `json:"sessionId"`
	Messages  []models.ChatMessage `json:"messages"`
}

func (s *Server) handleChatMessage(w http.ResponseWriter, req *http.Request) {
	var body chatRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid json"})
		return
	}
	if body.SessionID == "" || strings.TrimSpace(body.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "sessionId and text are required"})
		return
	}

	messages, err := s.chat.HandleMessage(req.Context(), body.SessionID, body.Text)
	if err != nil {
		s.logger.WithError(err).Error("chat message failed", map[string]interface{}{
			"sessionId": body.SessionID,
		})
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{SessionID: body.SessionID, Messages: messages})
}

func (s *Server) handleChatDecision(w http.ResponseWriter, req *http.Request) {
	var body decisionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid json"})
		return
	}
	if body.SessionID == "" || body.MessageID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "sessionId and messageId are required"})
		return
	}
	if body.Decision != "confirm" && body.Decision != "cancel" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "decision must be confirm or cancel"})
		return
	}

	messages, err := s.chat.HandleDecision(req.Context(), body.SessionID, body.MessageID, body.Decision == "confirm")
	if err != nil {
		s.logger.WithError(err).Error("chat decision failed", map[string]interface{}{
			"sessionId": body.SessionID,
		})
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{SessionID: body.SessionID, Messages: messages})
}

func (s *Server) handleTranscript(w http.ResponseWriter, req *http.Request) {
	sessionID := chi.URLParam(req, "sessionID")

	messages, err := s.chat.Transcript(req.Context(), sessionID)
	if err != nil {
		s.logger.WithError(err).Error("transcript fetch failed", map[string]interface{}{
			"sessionId": sessionID,
		})
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{SessionID: sessionID, Messages: messages})
}

func (s *Server) handleOnboardingCreate(w http.ResponseWriter, req *http.Request) {
	var body models.OnboardingRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid json"})
		return
	}

	created, err := s.onboarding.Create(req.Context(), body)
	if err != nil {
		var stdErr *commonerrors.StandardError
		if errors.As(err, &stdErr) && stdErr.Code == commonerrors.ErrCodeMissingRequiredField {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": stdErr.Message})
			return
		}
		s.logger.WithError(err).Error("onboarding create failed", nil)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleOnboardingGet(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "requestID")

	found, err := s.onboarding.Get(req.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": "request not found"})
			return
		}
		s.logger.WithError(err).Error("onboarding get failed", map[string]interface{}{"requestId": id})
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleOnboardingApprove(w http.ResponseWriter, req *http.Request) {
	s.decideOnboarding(w, req, s.onboarding.Approve)
}

func (s *Server) handleOnboardingReject(w http.ResponseWriter, req *http.Request) {
	s.decideOnboarding(w, req, s.onboarding.Reject)
}

func (s *Server) decideOnboarding(w http.ResponseWriter, req *http.Request, decide func(context.Context, string) (models.OnboardingRequest, error)) {
	id := chi.URLParam(req, "requestID")

	decided, err := decide(req.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": "request not found"})
			return
		}
		if strings.Contains(err.Error(), "already") {
			writeJSON(w, http.StatusConflict, map[string]interface{}{"error": err.Error()})
			return
		}
		s.logger.WithError(err).Error("onboarding decision failed", map[string]interface{}{"requestId": id})
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, decided)
}

func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	status := http.StatusOK
	checks := make(map[string]string, len(s.health))
	for name, checker := range s.health {
		if err := checker.Ping(req.Context()); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks[name] = "ok"
		}
	}
	writeJSON(w, status, map[string]interface{}{
		"status": http.StatusText(status),
		"checks": checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
