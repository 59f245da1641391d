package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/pkg/hasher"
)

// fakeDB keeps rows in a map and understands the few statements SessionRepo issues.
type fakeDB struct {
	rows  map[string][]byte
	execs []string
	fail  error
}

type fakeRow struct {
	raw []byte
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.raw
	return nil
}

func (db *fakeDB) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	db.execs = append(db.execs, query)
	if db.fail != nil {
		return pgconn.CommandTag{}, db.fail
	}
	switch {
	case strings.Contains(query, "INSERT INTO sessions"):
		db.rows[args[0].(string)] = []byte(args[1].(string))
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(query, "DELETE FROM sessions WHERE id"):
		delete(db.rows, args[0].(string))
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (db *fakeDB) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	if db.fail != nil {
		return fakeRow{err: db.fail}
	}
	raw, ok := db.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{raw: raw}
}

func newRepo() (*SessionRepo, *fakeDB) {
	db := &fakeDB{rows: map[string][]byte{}}
	return &SessionRepo{db: db}, db
}

func TestSessionRepo_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	repo, db := newRepo()

	data := models.SessionData{
		User: &models.Profile{Name: "Max"},
		Laps: []models.LapRecord{models.NewLap(30.1, 29.8, 31.0).Record()},
	}
	require.NoError(t, repo.Save(ctx, "sid", data, time.Hour))

	raw, ok := db.rows[hasher.Hash("sid")]
	require.True(t, ok, "rows are keyed by the hashed id")
	var stored models.SessionData
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, data, stored)

	got, err := repo.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, repo.Delete(ctx, "sid"))
	_, err = repo.Load(ctx, "sid")
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
}

func TestSessionRepo_DatabaseError(t *testing.T) {
	repo, db := newRepo()
	db.fail = errors.New("connection refused")

	_, err := repo.Load(context.Background(), "sid")
	assert.ErrorIs(t, err, db.fail)
	assert.NotErrorIs(t, err, types.ErrSessionNotFound)

	assert.ErrorIs(t, repo.Save(context.Background(), "sid", models.SessionData{}, time.Hour), db.fail)
}

func TestMigrate(t *testing.T) {
	db := &fakeDB{rows: map[string][]byte{}}

	require.NoError(t, Migrate(context.Background(), db))
	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], "CREATE TABLE IF NOT EXISTS sessions")
}
