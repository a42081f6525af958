package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

const (
	selectSession = `
SELECT id, user_id, name, email, role, token, authenticated, created_at
FROM sessions
WHERE id = $1 AND (expires_at IS NULL OR expires_at > $2)`

	upsertSession = `
INSERT INTO sessions (id, user_id, name, email, role, token, authenticated, created_at, expires_at)
VALUES (:id, :user_id, :name, :email, :role, :token, :authenticated, :created_at, :expires_at)
ON CONFLICT (id) DO UPDATE SET
	user_id = EXCLUDED.user_id,
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	role = EXCLUDED.role,
	token = EXCLUDED.token,
	authenticated = EXCLUDED.authenticated,
	expires_at = EXCLUDED.expires_at`

	deleteSession = `DELETE FROM sessions WHERE id = $1`
	deleteExpired = `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= $1`
)

type sessionRow struct {
	core.Session
	ExpiresAt sql.NullTime `db:"expires_at"`
}

type sessionStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSessionStore(db *sqlx.DB) *sessionStore {
	return &sessionStore{db: db, now: time.Now}
}

var _ core.SessionStore = (*sessionStore)(nil)

func (s *sessionStore) Load(ctx context.Context, id string) (core.Session, error) {
	var sess core.Session
	err := s.db.GetContext(ctx, &sess, selectSession, id, s.now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return core.Session{}, core.ErrSessionNotFound
	}
	if err != nil {
		return core.Session{}, errors.Wrap(err, "loading session")
	}
	sess.CreatedAt = sess.CreatedAt.UTC()
	return sess, nil
}

func (s *sessionStore) Save(ctx context.Context, sess core.Session, ttl time.Duration) error {
	row := sessionRow{Session: sess}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = s.now().UTC()
	}
	if ttl > 0 {
		row.ExpiresAt = sql.NullTime{Time: s.now().Add(ttl).UTC(), Valid: true}
	}
	if _, err := s.db.NamedExecContext(ctx, upsertSession, row); err != nil {
		return errors.Wrap(err, "saving session")
	}
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, deleteSession, id); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return nil
}

// DeleteExpired purges the expired sessions and returns how many were removed.
func (s *sessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, deleteExpired, s.now().UTC())
	if err != nil {
		return 0, errors.Wrap(err, "deleting expired sessions")
	}
	return res.RowsAffected()
}
