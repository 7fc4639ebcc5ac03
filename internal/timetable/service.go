// Package timetable produces DailyPrayerTimes for a board and date, layering
// a redis hot cache and a postgres durable cache in front of the Al Adhan
// service.
package timetable

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/minaret/internal/aladhan"
	"github.com/miqat-labs/minaret/internal/db"
	"github.com/miqat-labs/minaret/internal/model"
)

const cacheTTL = 48 * time.Hour

// Cache is the hot-cache surface the service needs; internal/redis provides
// the real one. A nil Cache disables the hot layer.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, value any, expiration time.Duration)
}

type Service struct {
	store  db.Store
	cache  Cache
	client *aladhan.Client
}

func NewService(store db.Store, cache Cache, client *aladhan.Client) *Service {
	return &Service{store: store, cache: cache, client: client}
}

func cacheKey(boardID int, day time.Time) string {
	return fmt.Sprintf("timetable:%d:%s", boardID, day.Format("2006-01-02"))
}

// ForDate returns the board's timetable for the calendar day containing
// `day` (in the board's timezone): redis first, then postgres, then the
// upstream service, writing back each miss.
func (s *Service) ForDate(ctx context.Context, board model.Board, day time.Time) (model.DailyPrayerTimes, error) {
	day = startOfDay(day.In(board.Location()))
	key := cacheKey(board.ID, day)

	if s.cache != nil {
		var cached model.DailyPrayerTimes
		if s.cache.GetJSON(ctx, key, &cached) {
			return cached, nil
		}
	}

	if stored, err := s.store.GetTimetable(board.ID, day); err == nil {
		if s.cache != nil {
			s.cache.SetJSON(ctx, key, stored, cacheTTL)
		}
		return stored, nil
	}

	fetched, err := s.client.Timings(ctx, day, board.Latitude, board.Longitude, board.Method, board.School)
	if err != nil {
		return model.DailyPrayerTimes{}, fmt.Errorf("fetching timetable for board %d: %w", board.ID, err)
	}

	// The ordering invariant is the upstream service's promise; a violation
	// here is its defect, not something to mask. Log and carry on.
	if err := fetched.Validate(); err != nil {
		log.Error().Err(err).Int("board_id", board.ID).Str("day", day.Format("2006-01-02")).
			Msg("upstream timetable violates ordering invariant")
	}

	if err := s.store.UpsertTimetable(board.ID, day, fetched); err != nil {
		log.Warn().Err(err).Int("board_id", board.ID).Msg("failed to persist fetched timetable")
	}
	if s.cache != nil {
		s.cache.SetJSON(ctx, key, fetched, cacheTTL)
	}

	return fetched, nil
}

// Window returns today's and tomorrow's timetables for the board, relative
// to now in the board's timezone. Tomorrow is best-effort: the period
// calculator has bounded fallbacks for a nil tomorrow, so a failed fetch
// only costs precision, not availability.
func (s *Service) Window(ctx context.Context, board model.Board, now time.Time) (model.DailyPrayerTimes, *model.DailyPrayerTimes, error) {
	local := now.In(board.Location())

	today, err := s.ForDate(ctx, board, local)
	if err != nil {
		return model.DailyPrayerTimes{}, nil, err
	}

	tomorrow, err := s.ForDate(ctx, board, local.AddDate(0, 0, 1))
	if err != nil {
		log.Warn().Err(err).Int("board_id", board.ID).Msg("tomorrow's timetable unavailable, continuing without it")
		return today, nil, nil
	}

	return today, &tomorrow, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
