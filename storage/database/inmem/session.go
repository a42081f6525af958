package inmemdb

import (
	"context"
	"time"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

type sessionStore struct {
	db  *sessionTable
	now func() time.Time
}

func NewSessionStore(db *DB) core.SessionStore {
	return &sessionStore{db: db.session, now: time.Now}
}

func (s *sessionStore) Load(_ context.Context, id string) (core.Session, error) {
	s.db.mutex.RLock()
	row, ok := s.db.t[id]
	s.db.mutex.RUnlock()

	if !ok {
		return core.Session{}, core.ErrSessionNotFound
	}
	if !row.expiresAt.IsZero() && !s.now().Before(row.expiresAt) {
		s.db.mutex.Lock()
		delete(s.db.t, id)
		s.db.mutex.Unlock()
		return core.Session{}, core.ErrSessionNotFound
	}
	return row.sess, nil
}

func (s *sessionStore) Save(_ context.Context, sess core.Session, ttl time.Duration) error {
	row := sessionRow{sess: sess}
	if ttl > 0 {
		row.expiresAt = s.now().Add(ttl)
	}
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()
	s.db.t[sess.ID] = row
	return nil
}

func (s *sessionStore) Delete(_ context.Context, id string) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()
	delete(s.db.t, id)
	return nil
}
