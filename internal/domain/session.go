package domain

import (
	"context"
	"time"
)

// Identity is the authenticated caller of a request. It is resolved once at
// the API boundary from the session token and passed explicitly to every
// service call; nothing reads authentication state from globals.
type Identity struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"user_name"`
	Email  string `json:"user_email"`
}

// Session maps an opaque token to an identity with an expiry.
type Session struct {
	Token     string
	Identity  Identity
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	Put(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	// DeleteExpired removes all sessions whose expiry is at or before now
	// and reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
