package period

import (
	"time"

	"github.com/miqat-labs/minaret/internal/model"
)

// Bounded fallback deadlines for when auxiliary data is missing. They keep
// the calculator total; they carry no jurisprudential meaning.
const (
	// missingTomorrowGrace extends isha past midnight when tomorrow's
	// timetable hasn't been fetched yet.
	missingTomorrowGrace = time.Hour
	// missingMidnightWindow bounds isha when neither islamic midnight nor
	// tomorrow's fajr is known.
	missingMidnightWindow = 6 * time.Hour
)

// Calculate maps (today, tomorrow, now) to a Period snapshot. It is total
// over well-formed input: it always returns a value and never fails.
//
// It is also stateless: every call re-derives the full answer from its
// arguments. Callers re-invoke it on a timer (typically 1 Hz) and must
// supply fresh timetables after day rollover; no freshness check happens
// here.
func Calculate(today model.DailyPrayerTimes, tomorrow *model.DailyPrayerTimes, now time.Time) Period {
	return Period{
		State:        stateAt(today, tomorrow, now),
		Today:        today,
		Tomorrow:     tomorrow,
		CalculatedAt: now,
	}
}

func stateAt(today model.DailyPrayerTimes, tomorrow *model.DailyPrayerTimes, now time.Time) State {
	if now.Before(today.Fajr) {
		return BeforeFajr{NextFajr: today.Fajr}
	}

	prayers := today.Prayers()
	for i, p := range prayers {
		if now.Before(p.Time) {
			continue
		}
		if p.Name == model.Isha {
			return ishaState(today, tomorrow, now)
		}
		next := prayers[i+1]
		if !now.Before(next.Time) {
			// already past this window entirely, keep walking
			continue
		}
		deadline := deadlineFor(p.Name, today, next.Time)
		if now.Before(deadline) {
			return InProgress{Prayer: p.Name, Deadline: deadline}
		}
		return BetweenPrayers{Previous: p.Name, Next: next.Name, NextStart: next.Time}
	}

	// unreachable for well-formed input
	return BeforeFajr{NextFajr: today.Fajr}
}

// deadlineFor returns the instant a prayer's window closes. Fajr always
// closes at sunrise, never at dhuhr; dhuhr, asr and maghrib close when the
// following prayer begins. Isha is handled separately in ishaState.
func deadlineFor(name model.PrayerName, today model.DailyPrayerTimes, nextStart time.Time) time.Time {
	if name == model.Fajr {
		return today.Sunrise
	}
	return nextStart
}

// ishaState resolves the period once now >= today.Isha. Isha closes at
// islamic midnight when known, otherwise at tomorrow's fajr, otherwise at a
// bounded fallback so the answer is always defined.
func ishaState(today model.DailyPrayerTimes, tomorrow *model.DailyPrayerTimes, now time.Time) State {
	if today.Midnight != nil {
		if now.Before(*today.Midnight) {
			return InProgress{Prayer: model.Isha, Deadline: *today.Midnight}
		}
		if tomorrow != nil {
			return AfterIsha{TomorrowFajr: tomorrow.Fajr}
		}
		return InProgress{Prayer: model.Isha, Deadline: now.Add(missingTomorrowGrace)}
	}

	if tomorrow != nil {
		if now.Before(tomorrow.Fajr) {
			return InProgress{Prayer: model.Isha, Deadline: tomorrow.Fajr}
		}
		return AfterIsha{TomorrowFajr: tomorrow.Fajr}
	}

	return InProgress{Prayer: model.Isha, Deadline: today.Isha.Add(missingMidnightWindow)}
}
