package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	testutil "github.com/alassafsami695-wq/graduation-project-main-sub001/tests"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return NewSessionStore(rdb), mr
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	sess := testutil.SessionWithRole(1, "super_admin")

	_, err := store.Load(ctx, sess.ID)
	assert.Equal(t, core.ErrSessionNotFound, err)

	require.NoError(t, store.Save(ctx, sess, time.Hour))
	assert.True(t, mr.Exists("session:"+sess.ID))
	assert.Equal(t, time.Hour, mr.TTL("session:"+sess.ID))

	got, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Load(ctx, sess.ID)
	assert.Equal(t, core.ErrSessionNotFound, err)
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	sess := testutil.StudentSession(3)

	require.NoError(t, store.Save(ctx, sess, time.Minute))
	mr.FastForward(time.Minute + time.Second)

	_, err := store.Load(ctx, sess.ID)
	assert.Equal(t, core.ErrSessionNotFound, err)
}

func TestSessionStore_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set("session:bad", "{not json"))

	_, err := store.Load(ctx, "bad")
	assert.Error(t, err)
	assert.NotEqual(t, core.ErrSessionNotFound, err)
}
