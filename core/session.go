package core

import (
	"context"
	"time"
)

// SessionStorageName is the fixed name under which the session is persisted client-side (cookie name).
const SessionStorageName = "auth-storage"

// Session is the authenticated state of a browser session.
// It is created by login, destroyed by logout or when the remote API rejects the token,
// and only ever read by actions and the transport.
type Session struct {
	ID            string    `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	Role          string    `json:"role" db:"role"`
	Token         string    `json:"token" db:"token"`
	Authenticated bool      `json:"authenticated" db:"authenticated"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"` // UTC
}

// Anonymous is the session of a visitor that did not log in.
var Anonymous = Session{}

func (s Session) IsAnonymous() bool {
	return !s.Authenticated || s.Token == ""
}

// SessionStore persists sessions by ID.
type SessionStore interface {
	Load(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, sess Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
