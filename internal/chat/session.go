// internal/chat/session.go
package chat

import (
	"time"

	"github.com/google/uuid"

	"helpdesk-assistant/internal/intent"
	"helpdesk-assistant/internal/models"
)

// PendingKind tags the variant of a pending action.
type PendingKind string

const (
	// PendingDelete is a destructive command waiting for the user to confirm
	// or cancel. Entered only by delete handlers.
	PendingDelete PendingKind = "delete"
	// PendingPassword is an email-create command waiting for the user to
	// supply the mailbox password in a follow-up message.
	PendingPassword PendingKind = "password"
)

// PendingAction is the session-scoped continuation for the two-step flows.
// The deletion target is resolved again at confirm time for domains, so only
// the natural key travels in the pending state, never a record snapshot.
type PendingAction struct {
	Kind      PendingKind            `json:"kind"`
	MessageID string                 `json:"messageId,omitempty"`
	Entity    intent.EntityType      `json:"entity"`
	Target    string                 `json:"target"`
	Params    map[string]interface{} `json:"params,omitempty"`
}

// Session is one conversation: the transcript plus the small amount of state
// the router threads between messages. It is plain data; persistence and
// single-flight enforcement live in SessionStore and Service.
type Session struct {
	ID               string               `json:"id"`
	Messages         []models.ChatMessage `json:"messages"`
	Pending          *PendingAction       `json:"pending,omitempty"`
	SelectedHosting  string               `json:"selectedHosting,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	LastActivity     time.Time            `json:"lastActivity"`
}

// NewSession creates an empty session with the given identifier.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:           id,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// Append adds a transcript entry and returns it.
func (s *Session) Append(role models.MessageRole, text string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	s.Messages = append(s.Messages, msg)
	s.LastActivity = msg.Timestamp
	return msg
}

// RemoveMessage deletes the transcript entry with the given id, if present.
func (s *Session) RemoveMessage(id string) {
	for i, m := range s.Messages {
		if m.ID == id {
			s.Messages = append(s.Messages[:i], s.Messages[i+1:]...)
			return
		}
	}
}

// SetPending records the continuation for a two-step flow. At most one
// pending action exists per session; a new one replaces the old.
func (s *Session) SetPending(p PendingAction) {
	s.Pending = &p
}

// ClearPending drops the pending action.
func (s *Session) ClearPending() {
	s.Pending = nil
}
