package period

import (
	"fmt"
	"time"

	"github.com/miqat-labs/minaret/internal/model"
)

const (
	// urgentThreshold marks an open window as urgent when less than this
	// remains before its deadline.
	urgentThreshold = 30 * time.Minute
	// calculatedAtTolerance lets two rapidly-repeated recomputations of
	// identical inputs compare equal, so downstream diffing doesn't churn.
	calculatedAtTolerance = time.Second
)

// Period is an immutable snapshot of the computed state together with its
// source timetables. It is rebuilt from scratch on every recomputation and
// never mutated; the derived queries take "now" explicitly so they stay
// deterministic.
type Period struct {
	State        State
	Today        model.DailyPrayerTimes
	Tomorrow     *model.DailyPrayerTimes
	CalculatedAt time.Time
}

// CurrentPrayer returns the prayer whose window is open, if any.
func (p Period) CurrentPrayer() (model.PrayerName, bool) {
	if s, ok := p.State.(InProgress); ok {
		return s.Prayer, true
	}
	return "", false
}

// NextPrayer returns the upcoming prayer and its start instant. ok is false
// only when isha is in progress and tomorrow's timetable is unknown.
func (p Period) NextPrayer() (model.PrayerTime, bool) {
	switch s := p.State.(type) {
	case BeforeFajr:
		return model.PrayerTime{Name: model.Fajr, Time: s.NextFajr}, true
	case BetweenPrayers:
		return model.PrayerTime{Name: s.Next, Time: s.NextStart}, true
	case AfterIsha:
		return model.PrayerTime{Name: model.Fajr, Time: s.TomorrowFajr}, true
	case InProgress:
		if next, ok := s.Prayer.Next(); ok {
			return model.PrayerTime{Name: next, Time: p.Today.TimeOf(next)}, true
		}
		if p.Tomorrow != nil {
			return model.PrayerTime{Name: model.Fajr, Time: p.Tomorrow.Fajr}, true
		}
	}
	return model.PrayerTime{}, false
}

// NextEventTime returns the instant of the next state transition.
func (p Period) NextEventTime() time.Time {
	switch s := p.State.(type) {
	case BeforeFajr:
		return s.NextFajr
	case InProgress:
		return s.Deadline
	case BetweenPrayers:
		return s.NextStart
	case AfterIsha:
		return s.TomorrowFajr
	}
	return time.Time{}
}

// TimeUntilNextEvent is re-evaluated at call time, not cached.
func (p Period) TimeUntilNextEvent(now time.Time) time.Duration {
	return p.NextEventTime().Sub(now)
}

// Progress reports fractional elapsed time through the current window,
// clamped to [0,1]. Outside InProgress/BetweenPrayers it is 0.
func (p Period) Progress(now time.Time) float64 {
	var start, end time.Time
	switch s := p.State.(type) {
	case InProgress:
		start, end = p.Today.TimeOf(s.Prayer), s.Deadline
	case BetweenPrayers:
		start, end = p.Today.TimeOf(s.Previous), s.NextStart
	default:
		return 0
	}

	total := end.Sub(start)
	if total <= 0 {
		return 0
	}
	ratio := float64(now.Sub(start)) / float64(total)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// IsUrgent reports whether a window is open with less than 30 minutes left.
func (p Period) IsUrgent(now time.Time) bool {
	s, ok := p.State.(InProgress)
	return ok && s.Deadline.Sub(now) < urgentThreshold
}

// Countdown formats the time until the next event as "HH:MM:SS" when an
// hour or more remains, else "MM:SS". Negative remainders clamp to zero.
func (p Period) Countdown(now time.Time) string {
	remaining := p.TimeUntilNextEvent(now)
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Equal reports whether two snapshots are interchangeable for display:
// same state, same calendar days, and computed within one second of each
// other. The tolerance is a diffing convenience, not a domain invariant.
func (p Period) Equal(other Period) bool {
	if !StatesEqual(p.State, other.State) {
		return false
	}
	if !sameDate(p.Today.Date, other.Today.Date) {
		return false
	}
	if (p.Tomorrow == nil) != (other.Tomorrow == nil) {
		return false
	}
	if p.Tomorrow != nil && !sameDate(p.Tomorrow.Date, other.Tomorrow.Date) {
		return false
	}
	delta := p.CalculatedAt.Sub(other.CalculatedAt)
	if delta < 0 {
		delta = -delta
	}
	return delta < calculatedAtTolerance
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
