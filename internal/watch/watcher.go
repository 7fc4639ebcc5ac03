// Package watch drives the live side of the system: one goroutine per board
// re-invokes the pure period calculator on a 1 Hz ticker and publishes the
// snapshot whenever it changes. All transition logic lives in the
// calculator; the watcher only diffs consecutive snapshots.
package watch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/minaret/internal/broadcast"
	"github.com/miqat-labs/minaret/internal/http/api/board/packets"
	"github.com/miqat-labs/minaret/internal/model"
	"github.com/miqat-labs/minaret/internal/period"
)

// TimetableSource is the slice of timetable.Service the watcher needs.
type TimetableSource interface {
	Window(ctx context.Context, board model.Board, now time.Time) (model.DailyPrayerTimes, *model.DailyPrayerTimes, error)
}

// Watcher tracks a single board. Not safe for concurrent use; each board
// gets its own.
type Watcher struct {
	board model.Board
	times TimetableSource
	pub   broadcast.Publisher
	tick  time.Duration

	today      model.DailyPrayerTimes
	tomorrow   *model.DailyPrayerTimes
	loaded     bool
	lastPub    *period.Period
	lastUrgent bool
}

func NewWatcher(board model.Board, times TimetableSource, pub broadcast.Publisher, tick time.Duration) *Watcher {
	if tick <= 0 {
		tick = time.Second
	}
	return &Watcher{board: board, times: times, pub: pub, tick: tick}
}

// Run evaluates the board until ctx is cancelled. Intended to be called as
// a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	log.Info().Int("board_id", w.board.ID).Str("city", w.board.City).Msg("board watcher started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Int("board_id", w.board.ID).Msg("board watcher stopped")
			return
		case <-ticker.C:
			w.evaluate(ctx, time.Now())
		}
	}
}

// evaluate runs one cycle: refresh the timetables if the calendar day has
// rolled over, recompute the period from scratch, publish if it changed.
func (w *Watcher) evaluate(ctx context.Context, now time.Time) {
	if !w.loaded || w.rolledOver(now) {
		today, tomorrow, err := w.times.Window(ctx, w.board, now)
		if err != nil {
			log.Error().Err(err).Int("board_id", w.board.ID).Msg("timetable refresh failed")
			return
		}
		w.today = today
		w.tomorrow = tomorrow
		w.loaded = true
	}

	snapshot := period.Calculate(w.today, w.tomorrow, now)
	urgent := snapshot.IsUrgent(now)

	// Period.Equal's calculatedAt tolerance always expires between 1 Hz
	// ticks, so the diff here is on the state itself plus the urgency flag.
	if w.lastPub != nil && period.StatesEqual(snapshot.State, w.lastPub.State) && urgent == w.lastUrgent {
		return
	}

	w.publish(snapshot, now, urgent)
	w.lastPub = &snapshot
	w.lastUrgent = urgent
}

// rolledOver reports whether now has left the calendar day the loaded
// timetable belongs to, in the board's timezone.
func (w *Watcher) rolledOver(now time.Time) bool {
	local := now.In(w.board.Location())
	ty, tm, td := w.today.Date.Date()
	ny, nm, nd := local.Date()
	return ty != ny || tm != nm || td != nd
}

func (w *Watcher) publish(snapshot period.Period, now time.Time, urgent bool) {
	response := packets.NewPeriodResponse(snapshot, now)
	payload, err := json.Marshal(response)
	if err != nil {
		log.Error().Err(err).Int("board_id", w.board.ID).Msg("failed to marshal period snapshot")
		return
	}

	topic := broadcast.PeriodTopic(w.board.ID)
	if err := w.pub.Publish(topic, payload); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to publish period snapshot")
		return
	}

	log.Info().
		Int("board_id", w.board.ID).
		Str("state", response.State).
		Bool("urgent", urgent).
		Str("countdown", response.Countdown).
		Msg("period published")
}
