package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps sessions in Redis as JSON, expiring with their TTL.
type SessionStore struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ core.SessionStore = (*SessionStore)(nil)

func NewSessionStore(rdb redis.UniversalClient) *SessionStore {
	return &SessionStore{rdb: rdb, prefix: sessionKeyPrefix}
}

// NewClient returns a Redis client configured from conf.Redis.
func NewClient(conf *core.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
}

func (s *SessionStore) key(id string) string { return s.prefix + id }

func (s *SessionStore) Load(ctx context.Context, id string) (core.Session, error) {
	data, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return core.Session{}, core.ErrSessionNotFound
	}
	if err != nil {
		return core.Session{}, errors.Wrap(err, "loading session")
	}

	var sess core.Session
	if err = json.Unmarshal(data, &sess); err != nil {
		return core.Session{}, errors.Wrap(err, "decoding session")
	}
	return sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess core.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	if ttl < 0 {
		ttl = 0
	}
	if err = s.rdb.Set(ctx, s.key(sess.ID), data, ttl).Err(); err != nil {
		return errors.Wrap(err, "saving session")
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return nil
}
