package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
	wrap "github.com/Temutjin2k/kart-laptimes/pkg/logger/wrapper"
	"github.com/Temutjin2k/kart-laptimes/pkg/metrics"
)

// Cookie tells the transport what to do with the session cookie after a commit.
type Cookie struct {
	Set     bool
	Clear   bool
	Token   string
	Expires time.Time
}

type Manager struct {
	store  Store
	tokens TokenProvider
	ttl    time.Duration
	log    logger.Logger
}

func NewManager(store Store, tokens TokenProvider, ttl time.Duration, log logger.Logger) *Manager {
	return &Manager{
		store:  store,
		tokens: tokens,
		ttl:    ttl,
		log:    log,
	}
}

// Load resolves a cookie token to a session. An empty, invalid or expired
// token, or an unknown session id, yields a fresh empty session that is only
// persisted once something is written to it.
func (m *Manager) Load(ctx context.Context, token string) (*models.Session, error) {
	ctx = wrap.WithAction(ctx, "session_load")

	if token == "" {
		return m.fresh(), nil
	}

	id, err := m.tokens.Validate(token)
	if err != nil {
		m.log.Debug(ctx, "discarding session token", "reason", err.Error())
		return m.fresh(), nil
	}

	data, err := m.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrSessionNotFound) {
			m.log.Debug(wrap.WithSessionID(ctx, id), "session not found, starting a new one")
			return m.fresh(), nil
		}
		ctx = wrap.WithAction(wrap.WithSessionID(ctx, id), types.ActionSessionLoadFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("load session: %w", err))
	}

	return models.NewSession(id, data, false), nil
}

// Commit persists what the handler changed. Destroyed sessions are removed
// from the store; untouched sessions cost nothing.
func (m *Manager) Commit(ctx context.Context, sess *models.Session) (Cookie, error) {
	ctx = wrap.WithAction(wrap.WithSessionID(ctx, sess.ID), "session_commit")

	switch {
	case sess.IsDestroyed():
		if !sess.IsNew() {
			if err := m.store.Delete(ctx, sess.ID); err != nil {
				ctx = wrap.WithAction(ctx, types.ActionSessionCommitFailed)
				return Cookie{}, wrap.Error(ctx, fmt.Errorf("delete session: %w", err))
			}
		}
		metrics.RecordSessionEvent("destroyed")
		m.log.Debug(ctx, "session destroyed")
		return Cookie{Clear: true}, nil

	case sess.IsDirty():
		if err := m.store.Save(ctx, sess.ID, sess.Data(), m.ttl); err != nil {
			ctx = wrap.WithAction(ctx, types.ActionSessionCommitFailed)
			return Cookie{}, wrap.Error(ctx, fmt.Errorf("save session: %w", err))
		}

		token, exp, err := m.tokens.Issue(sess.ID)
		if err != nil {
			return Cookie{}, wrap.Error(ctx, fmt.Errorf("issue session token: %w", err))
		}

		if sess.IsNew() {
			metrics.RecordSessionEvent("created")
			m.log.Debug(ctx, "session created")
		}
		return Cookie{Set: true, Token: token, Expires: exp}, nil

	default:
		return Cookie{}, nil
	}
}

func (m *Manager) fresh() *models.Session {
	return models.NewSession(uuid.NewString(), models.SessionData{}, true)
}
