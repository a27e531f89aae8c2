package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Thatkidtk/packtrack-pro/internal/domain"
)

// SessionRepository implements domain.SessionRepository using SQLite. The
// identity is stored as a serialized JSON payload next to an expiry epoch,
// keyed by the opaque session token.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite-backed SessionRepository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db.SqlDB}
}

func (r *SessionRepository) Put(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session.Identity)
	if err != nil {
		return fmt.Errorf("marshal session payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, payload, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT (token) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at`,
		session.Token, string(payload), session.ExpiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	var (
		payload string
		expires int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, expires_at FROM sessions WHERE token = ?`, token,
	).Scan(&payload, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query session: %w", err)
	}

	session := &domain.Session{
		Token:     token,
		ExpiresAt: time.Unix(expires, 0),
	}
	if err := json.Unmarshal([]byte(payload), &session.Identity); err != nil {
		return nil, fmt.Errorf("unmarshal session payload: %w", err)
	}
	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return affected, nil
}

var _ domain.SessionRepository = (*SessionRepository)(nil)
