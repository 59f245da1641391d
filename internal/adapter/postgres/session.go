package postgres

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/pkg/hasher"
	wrap "github.com/Temutjin2k/kart-laptimes/pkg/logger/wrapper"
	"github.com/Temutjin2k/kart-laptimes/pkg/metrics"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

// SessionRepo stores sessions as JSONB rows keyed by the hash of the session id.
type SessionRepo struct {
	db Querier
}

func NewSessionRepo(db *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{
		db: db,
	}
}

// Migrate applies the embedded schema files in name order. Every statement is idempotent.
func Migrate(ctx context.Context, db Querier) error {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if _, err := db.Exec(ctx, string(body)); err != nil {
			ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
			return wrap.Error(ctx, fmt.Errorf("apply %s: %w", f, err))
		}
	}
	return nil
}

func (r *SessionRepo) Load(ctx context.Context, id string) (data models.SessionData, err error) {
	const op = "SessionRepo.Load"
	defer observe("load", time.Now(), &err)

	query := `
		SELECT data
		FROM sessions
		WHERE id = $1 AND expires_at > now()`

	var raw []byte
	if err := r.db.QueryRow(ctx, query, hasher.Hash(id)).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SessionData{}, types.ErrSessionNotFound
		}
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		return models.SessionData{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		return models.SessionData{}, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (r *SessionRepo) Save(ctx context.Context, id string, data models.SessionData, ttl time.Duration) (err error) {
	const op = "SessionRepo.Save"
	defer observe("save", time.Now(), &err)

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO sessions (id, data, expires_at)
		VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, updated_at = now()`

	if _, err := r.db.Exec(ctx, query, hasher.Hash(id), string(raw), time.Now().UTC().Add(ttl)); err != nil {
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) (err error) {
	const op = "SessionRepo.Delete"
	defer observe("delete", time.Now(), &err)

	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, hasher.Hash(id)); err != nil {
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

// DeleteExpired removes sessions past their expiry and returns how many were removed.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (n int64, err error) {
	const op = "SessionRepo.DeleteExpired"
	defer observe("delete_expired", time.Now(), &err)

	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return tag.RowsAffected(), nil
}

func observe(operation string, start time.Time, err *error) {
	var opErr error
	if err != nil && !errors.Is(*err, types.ErrSessionNotFound) {
		opErr = *err
	}
	metrics.RecordSessionStoreOp(string(types.PostgresBackend), operation, opErr, time.Since(start))
}
