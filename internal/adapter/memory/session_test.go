package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
)

func sampleData() models.SessionData {
	return models.SessionData{
		User: &models.Profile{Name: "Max", Class: "A1", Identifier: "max@x.com"},
		Laps: []models.LapRecord{models.NewLap(30.1, 29.8, 31.0).Record()},
	}
}

func TestSessionStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()

	_, err := s.Load(ctx, "sid")
	require.ErrorIs(t, err, types.ErrSessionNotFound)

	require.NoError(t, s.Save(ctx, "sid", sampleData(), time.Hour))

	got, err := s.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, sampleData(), got)

	require.NoError(t, s.Delete(ctx, "sid"))
	_, err = s.Load(ctx, "sid")
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
}

func TestSessionStore_Snapshot(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()

	data := sampleData()
	require.NoError(t, s.Save(ctx, "sid", data, time.Hour))
	data.User.Name = "changed"
	data.Laps[0].TotalTime = 0

	got, err := s.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "Max", got.User.Name)
	assert.NotZero(t, got.Laps[0].TotalTime)
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessionStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "sid", sampleData(), time.Minute))

	now = now.Add(59 * time.Second)
	_, err := s.Load(ctx, "sid")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = s.Load(ctx, "sid")
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
	assert.Zero(t, s.Len())
}

func TestSessionStore_SaveSweepsAbandoned(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessionStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "abandoned", sampleData(), time.Minute))
	require.NoError(t, s.Save(ctx, "active", sampleData(), time.Hour))
	require.Equal(t, 2, s.Len())

	// no sweep runs until sweepInterval has passed since the last one
	now = now.Add(sweepInterval / 2)
	require.NoError(t, s.Save(ctx, "active", sampleData(), time.Hour))
	now = now.Add(sweepInterval / 2)
	require.NoError(t, s.Save(ctx, "active", sampleData(), time.Hour))

	assert.Equal(t, 1, s.Len())
	_, err := s.Load(ctx, "active")
	assert.NoError(t, err)
}
