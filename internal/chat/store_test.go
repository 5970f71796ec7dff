// internal/chat/store_test.go
package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-assistant/internal/intent"
	"helpdesk-assistant/internal/models"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(client, time.Hour), mr
}

func TestSessionStore_GetMissingReturnsFresh(t *testing.T) {
	store, _ := newTestStore(t)

	sess, err := store.Get(context.Background(), "new-session")
	require.NoError(t, err)
	assert.Equal(t, "new-session", sess.ID)
	assert.Empty(t, sess.Messages)
	assert.Nil(t, sess.Pending)
}

func TestSessionStore_SaveRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := NewSession("s1")
	sess.Append(models.RoleUser, "delete domain example.com")
	msg := sess.Append(models.RoleConfirmation, "are you sure?")
	sess.SetPending(PendingAction{
		Kind:      PendingDelete,
		MessageID: msg.ID,
		Entity:    intent.EntityDomain,
		Target:    "example.com",
	})
	sess.SelectedHosting = "acct-1"

	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, loaded.Messages, 2)
	assert.Equal(t, "acct-1", loaded.SelectedHosting)
	require.NotNil(t, loaded.Pending)
	assert.Equal(t, PendingDelete, loaded.Pending.Kind)
	assert.Equal(t, msg.ID, loaded.Pending.MessageID)
	assert.Equal(t, "example.com", loaded.Pending.Target)
}

func TestSessionStore_TTLRefreshOnSave(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := NewSession("s1")
	require.NoError(t, store.Save(ctx, sess))

	mr.FastForward(30 * time.Minute)
	require.NoError(t, store.Save(ctx, sess))
	mr.FastForward(45 * time.Minute)

	// 75 minutes after creation the session is still alive because the second
	// save reset the one-hour TTL.
	loaded, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", loaded.ID)

	mr.FastForward(time.Hour)
	expired, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, expired.Messages)
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := NewSession("s1")
	sess.Append(models.RoleUser, "hi")
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Delete(ctx, "s1"))

	fresh, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, fresh.Messages)
}
