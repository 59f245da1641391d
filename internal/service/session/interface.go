package session

import (
	"context"
	"time"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
)

// Store persists session data by session id. Load returns
// types.ErrSessionNotFound for unknown or expired sessions.
type Store interface {
	Load(ctx context.Context, id string) (models.SessionData, error)
	Save(ctx context.Context, id string, data models.SessionData, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type TokenProvider interface {
	Issue(sessionID string) (string, time.Time, error)
	Validate(token string) (string, error)
}
