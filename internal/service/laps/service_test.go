package laps

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
)

func newService() *Service {
	return NewService(logger.NewWithWriter(io.Discard, "test", logger.LevelError))
}

func newSession(totals ...float64) *models.Session {
	data := models.SessionData{Laps: []models.LapRecord{}}
	for _, total := range totals {
		data.Laps = append(data.Laps, models.NewLap(total, 0, 0).Record())
	}
	return models.NewSession("sid", data, false)
}

func TestService_Submit(t *testing.T) {
	svc := newService()
	sess := newSession()

	rec := svc.Submit(context.Background(), sess, 30.1, 29.8, 31.0)

	assert.Equal(t, 30.1+29.8+31.0, rec.TotalTime)
	assert.InDelta(t, 90.9, rec.TotalTime, 1e-9)
	require.Len(t, sess.Laps(), 1)
	assert.Equal(t, rec, sess.Laps()[0])
	assert.True(t, sess.IsDirty())
}

func TestService_List(t *testing.T) {
	svc := newService()
	sess := newSession(95, 90, 92, 90)

	t.Run("insertion order", func(t *testing.T) {
		entries := svc.List(sess, types.OrderInsertion)
		require.Len(t, entries, 4)
		for i, e := range entries {
			assert.Equal(t, i, e.Index)
		}
		assert.True(t, entries[1].Fastest)
		assert.False(t, entries[3].Fastest, "ties flag the first lap only")
	})

	t.Run("fastest first", func(t *testing.T) {
		entries := svc.List(sess, types.OrderFastest)
		got := make([]int, 0, len(entries))
		for _, e := range entries {
			got = append(got, e.Index)
		}
		assert.Equal(t, []int{1, 3, 2, 0}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, svc.List(newSession(), types.OrderFastest))
	})
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		index   string
		deleted bool
		want    []float64
	}{
		{name: "first", index: "0", deleted: true, want: []float64{2, 3}},
		{name: "middle", index: "1", deleted: true, want: []float64{1, 3}},
		{name: "last", index: "2", deleted: true, want: []float64{1, 2}},
		{name: "out of range", index: "3", want: []float64{1, 2, 3}},
		{name: "negative", index: "-1", want: []float64{1, 2, 3}},
		{name: "missing", index: "", want: []float64{1, 2, 3}},
		{name: "garbage", index: "one", want: []float64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newSession(1, 2, 3)

			err := newService().Delete(context.Background(), sess, tt.index)
			if tt.deleted {
				require.NoError(t, err)
				assert.True(t, sess.IsDirty())
			} else {
				require.ErrorIs(t, err, types.ErrLapNotFound)
				assert.False(t, sess.IsDirty())
			}

			got := make([]float64, 0)
			for _, l := range sess.Laps() {
				got = append(got, l.TotalTime)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
