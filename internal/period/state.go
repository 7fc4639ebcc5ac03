// Package period implements the prayer-period state machine: given a day's
// timetable (and optionally the next day's), it determines which liturgical
// period is active at a given instant, what its deadline is, and what comes
// next. Everything here is pure; "now" is always an explicit parameter.
package period

import (
	"time"

	"github.com/miqat-labs/minaret/internal/model"
)

// State is the closed set of four mutually exclusive period variants.
// Exactly one holds at any instant. Consumers switch over the concrete
// types; all four must always be handled.
type State interface {
	isState()
}

// BeforeFajr: the day's first prayer has not started yet.
type BeforeFajr struct {
	NextFajr time.Time
}

// InProgress: a prayer's valid performance window is open.
type InProgress struct {
	Prayer   model.PrayerName
	Deadline time.Time
}

// BetweenPrayers: the previous prayer's window has closed and the next
// prayer has not started. Only reachable between fajr's sunrise deadline
// and dhuhr; the other windows run right up to the next prayer.
type BetweenPrayers struct {
	Previous  model.PrayerName
	Next      model.PrayerName
	NextStart time.Time
}

// AfterIsha: isha's window has closed; nothing remains today.
type AfterIsha struct {
	TomorrowFajr time.Time
}

func (BeforeFajr) isState()     {}
func (InProgress) isState()     {}
func (BetweenPrayers) isState() {}
func (AfterIsha) isState()      {}

// StatesEqual compares two states by variant and by instant (time.Equal,
// so a monotonic-clock reading on one side doesn't break equality).
func StatesEqual(a, b State) bool {
	switch s := a.(type) {
	case BeforeFajr:
		o, ok := b.(BeforeFajr)
		return ok && s.NextFajr.Equal(o.NextFajr)
	case InProgress:
		o, ok := b.(InProgress)
		return ok && s.Prayer == o.Prayer && s.Deadline.Equal(o.Deadline)
	case BetweenPrayers:
		o, ok := b.(BetweenPrayers)
		return ok && s.Previous == o.Previous && s.Next == o.Next && s.NextStart.Equal(o.NextStart)
	case AfterIsha:
		o, ok := b.(AfterIsha)
		return ok && s.TomorrowFajr.Equal(o.TomorrowFajr)
	}
	return false
}

// Name returns the wire tag for a state variant.
func Name(s State) string {
	switch s.(type) {
	case BeforeFajr:
		return "before_fajr"
	case InProgress:
		return "in_progress"
	case BetweenPrayers:
		return "between_prayers"
	case AfterIsha:
		return "after_isha"
	}
	return "unknown"
}
