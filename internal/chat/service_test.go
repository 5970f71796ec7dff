// internal/chat/service_test.go
package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/intent"
	"helpdesk-assistant/internal/models"
)

type memoryRepo struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sessions: make(map[string]*Session)}
}

func (m *memoryRepo) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return NewSession(id), nil
}

func (m *memoryRepo) Save(_ context.Context, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *sess
	m.sessions[sess.ID] = &copied
	return nil
}

type fakeCommander struct {
	routed    []intent.Intent
	resolved  []bool
	continued bool
	block     chan struct{}
}

func (f *fakeCommander) Route(_ context.Context, sess *Session, it intent.Intent) {
	if f.block != nil {
		<-f.block
	}
	f.routed = append(f.routed, it)
	sess.Append(models.RoleBot, "done")
}

func (f *fakeCommander) Resolve(_ context.Context, sess *Session, messageID string, confirm bool) {
	f.resolved = append(f.resolved, confirm)
	sess.Append(models.RoleBot, "resolved")
}

func (f *fakeCommander) ContinuePending(_ context.Context, _ *Session, _ string) bool {
	return f.continued
}

func TestService_HandleMessage_RoutesAndPersists(t *testing.T) {
	repo := newMemoryRepo()
	cmd := &fakeCommander{}
	svc := NewService(repo, cmd, time.Second, logger.NewTestLogger(t))

	messages, err := svc.HandleMessage(context.Background(), "s1", "add laptop dell")
	require.NoError(t, err)

	require.Len(t, cmd.routed, 1)
	assert.Equal(t, intent.EntityAsset, cmd.routed[0].Entity)
	assert.Equal(t, intent.ActionCreate, cmd.routed[0].Action)

	// user message + fake bot reply, both persisted
	assert.Len(t, messages, 2)
	stored, _ := repo.Get(context.Background(), "s1")
	assert.Len(t, stored.Messages, 2)
}

func TestService_HandleMessage_PendingShortCircuitsParsing(t *testing.T) {
	repo := newMemoryRepo()
	cmd := &fakeCommander{continued: true}
	svc := NewService(repo, cmd, time.Second, logger.NewTestLogger(t))

	_, err := svc.HandleMessage(context.Background(), "s1", "password Pass123!")
	require.NoError(t, err)
	assert.Empty(t, cmd.routed, "pending continuation must bypass the router")
}

func TestService_HandleMessage_SingleFlightPerSession(t *testing.T) {
	repo := newMemoryRepo()
	cmd := &fakeCommander{block: make(chan struct{})}
	svc := NewService(repo, cmd, 5*time.Second, logger.NewTestLogger(t))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.HandleMessage(context.Background(), "s1", "add laptop")
	}()

	// Wait until the first command is inside the router.
	assert.Eventually(t, func() bool {
		_, loaded := svc.inflight.Load("s1")
		return loaded
	}, time.Second, 5*time.Millisecond)

	messages, err := svc.HandleMessage(context.Background(), "s1", "add phone")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "Still working")

	// The busy reply is transient: nothing was persisted for it.
	stored, _ := repo.Get(context.Background(), "s1")
	assert.Empty(t, stored.Messages)

	close(cmd.block)
	<-done
	assert.Len(t, cmd.routed, 1)
}

func TestService_HandleDecision(t *testing.T) {
	repo := newMemoryRepo()
	cmd := &fakeCommander{}
	svc := NewService(repo, cmd, time.Second, logger.NewTestLogger(t))

	_, err := svc.HandleDecision(context.Background(), "s1", "msg-1", true)
	require.NoError(t, err)
	require.Len(t, cmd.resolved, 1)
	assert.True(t, cmd.resolved[0])
}

func TestService_Transcript(t *testing.T) {
	repo := newMemoryRepo()
	sess := NewSession("s1")
	sess.Append(models.RoleUser, "hello")
	require.NoError(t, repo.Save(context.Background(), sess))

	svc := NewService(repo, &fakeCommander{}, time.Second, logger.NewTestLogger(t))
	messages, err := svc.Transcript(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}
