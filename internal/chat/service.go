// internal/chat/service.go
package chat

import (
	"context"
	"sync"
	"time"

	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/intent"
	"helpdesk-assistant/internal/models"
)

// Commander is the command layer the service hands parsed intents to. All
// outcomes are appended to the session transcript by the implementation.
type Commander interface {
	Route(ctx context.Context, sess *Session, it intent.Intent)
	Resolve(ctx context.Context, sess *Session, messageID string, confirm bool)
	ContinuePending(ctx context.Context, sess *Session, text string) bool
}

// SessionRepository persists sessions between messages.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
}

// Service owns the per-message lifecycle: single-flight per session, pending
// continuations, intent parsing, routing, persistence.
type Service struct {
	sessions SessionRepository
	commands Commander
	timeout  time.Duration
	inflight sync.Map
	logger   logger.Logger
}

func NewService(sessions SessionRepository, commands Commander, timeout time.Duration, log logger.Logger) *Service {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Service{
		sessions: sessions,
		commands: commands,
		timeout:  timeout,
		logger:   log.WithFields(map[string]interface{}{"component": "chat"}),
	}
}

// busyMessage is returned, not persisted, when a command is already in flight
// for the session. The transcript only ever records accepted commands.
func busyMessage() models.ChatMessage {
	return models.ChatMessage{
		Role:      models.RoleBot,
		Text:      "⏳ Still working on your previous command — one moment.",
		Timestamp: time.Now().UTC(),
	}
}

// HandleMessage processes one user utterance and returns the full transcript
// after routing. At most one command runs per session at a time.
func (s *Service) HandleMessage(ctx context.Context, sessionID, text string) ([]models.ChatMessage, error) {
	if _, loaded := s.inflight.LoadOrStore(sessionID, struct{}{}); loaded {
		return []models.ChatMessage{busyMessage()}, nil
	}
	defer s.inflight.Delete(sessionID)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.Append(models.RoleUser, text)

	if !s.commands.ContinuePending(ctx, sess, text) {
		it := intent.Parse(text)
		s.logger.Debug("parsed intent", map[string]interface{}{
			"sessionId":  sessionID,
			"entity":     string(it.Entity),
			"action":     string(it.Action),
			"confidence": it.Confidence,
		})
		s.commands.Route(ctx, sess, it)
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess.Messages, nil
}

// HandleDecision applies a confirm/cancel button press to the session's
// outstanding confirmation message.
func (s *Service) HandleDecision(ctx context.Context, sessionID, messageID string, confirm bool) ([]models.ChatMessage, error) {
	if _, loaded := s.inflight.LoadOrStore(sessionID, struct{}{}); loaded {
		return []models.ChatMessage{busyMessage()}, nil
	}
	defer s.inflight.Delete(sessionID)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.commands.Resolve(ctx, sess, messageID, confirm)

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess.Messages, nil
}

// Transcript returns the stored conversation for a session.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Messages, nil
}
