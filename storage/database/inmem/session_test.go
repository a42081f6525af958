package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	testutil "github.com/alassafsami695-wq/graduation-project-main-sub001/tests"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(Open())
	sess := testutil.StudentSession(7)

	_, err := store.Load(ctx, sess.ID)
	assert.Equal(t, core.ErrSessionNotFound, err)

	require.NoError(t, store.Save(ctx, sess, time.Hour))
	got, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Load(ctx, sess.ID)
	assert.Equal(t, core.ErrSessionNotFound, err)

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, sess.ID))
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := &sessionStore{db: Open().session, now: func() time.Time { return now }}
	sess := testutil.StudentSession(1)

	require.NoError(t, store.Save(ctx, sess, time.Minute))
	now = now.Add(time.Minute)

	_, err := store.Load(ctx, sess.ID)
	assert.Equal(t, core.ErrSessionNotFound, err)
	assert.Empty(t, store.db.t)
}
