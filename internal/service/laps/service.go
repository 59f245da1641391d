package laps

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
	wrap "github.com/Temutjin2k/kart-laptimes/pkg/logger/wrapper"
	"github.com/Temutjin2k/kart-laptimes/pkg/metrics"
)

type Service struct {
	log logger.Logger
}

func NewService(log logger.Logger) *Service {
	return &Service{
		log: log,
	}
}

// Submit records a lap built from three validated sector times and returns its snapshot.
func (s *Service) Submit(ctx context.Context, sess *models.Session, sector1, sector2, sector3 float64) models.LapRecord {
	ctx = wrap.WithAction(ctx, "submit_lap")

	rec := models.NewLap(sector1, sector2, sector3).Record()
	sess.AppendLap(rec)

	metrics.RecordLapSubmission("ok")
	s.log.Debug(ctx, "lap recorded", "total_time", rec.TotalTime, "laps", len(sess.Laps()))

	return rec
}

// Rejected counts a submission that failed validation.
func (s *Service) Rejected(ctx context.Context, reason string) {
	metrics.RecordLapSubmission("rejected")
	s.log.Debug(wrap.WithAction(ctx, "submit_lap"), "lap rejected", "reason", reason)
}

// List returns the lap log. Insertion order is the stored order; OrderFastest
// sorts a copy by total time, ties keep insertion order.
func (s *Service) List(sess *models.Session, order types.LapOrder) []models.LapEntry {
	laps := sess.Laps()

	entries := lo.Map(laps, func(l models.LapRecord, i int) models.LapEntry {
		return models.LapEntry{Index: i, Lap: l}
	})

	if len(entries) > 0 {
		fastest := lo.MinBy(entries, func(a, b models.LapEntry) bool {
			return a.Lap.TotalTime < b.Lap.TotalTime
		})
		entries[fastest.Index].Fastest = true
	}

	if order == types.OrderFastest {
		slices.SortStableFunc(entries, func(a, b models.LapEntry) int {
			switch {
			case a.Lap.TotalTime < b.Lap.TotalTime:
				return -1
			case a.Lap.TotalTime > b.Lap.TotalTime:
				return 1
			default:
				return 0
			}
		})
	}

	return entries
}

// Delete removes the lap at the zero-based index given as raw form input.
// Missing, malformed or out-of-range indexes yield types.ErrLapNotFound and
// leave the session untouched.
func (s *Service) Delete(ctx context.Context, sess *models.Session, rawIndex string) error {
	ctx = wrap.WithAction(ctx, "delete_lap")

	idx, err := strconv.Atoi(strings.TrimSpace(rawIndex))
	if err != nil {
		return fmt.Errorf("%w: malformed index %q", types.ErrLapNotFound, rawIndex)
	}

	if !sess.DeleteLap(idx) {
		return fmt.Errorf("%w: index %d out of range", types.ErrLapNotFound, idx)
	}

	metrics.LapsDeletedTotal.Inc()
	s.log.Debug(ctx, "lap deleted", "index", idx)
	return nil
}
