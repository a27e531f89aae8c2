package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Thatkidtk/packtrack-pro/internal/domain"
	"github.com/google/uuid"
)

// SessionService resolves opaque session tokens to user identities. Tokens
// are random and carry no information themselves; everything lives in the
// session store with an expiry.
type SessionService struct {
	sessions domain.SessionRepository
	ttl      time.Duration
}

// NewSessionService creates a new SessionService. Sessions expire ttl after
// creation; expiry is not refreshed on access.
func NewSessionService(sessions domain.SessionRepository, ttl time.Duration) *SessionService {
	return &SessionService{sessions: sessions, ttl: ttl}
}

// Create starts a session for the given user and returns its token.
func (s *SessionService) Create(ctx context.Context, user *domain.User) (string, error) {
	session := &domain.Session{
		Token: uuid.NewString(),
		Identity: domain.Identity{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
		},
		ExpiresAt: time.Now().Add(s.ttl),
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return session.Token, nil
}

// Resolve looks up a token and returns the identity it belongs to. Missing,
// malformed, and expired tokens all map to ErrUnauthorized. Expired rows are
// deleted on the way out.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(time.Now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, domain.ErrUnauthorized
	}

	identity := session.Identity
	return &identity, nil
}

// Destroy removes a session. Destroying an unknown token is not an error.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// PurgeExpired removes all expired sessions and reports how many were removed.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, time.Now())
}
