package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miqat-labs/minaret/internal/model"
)

var chicago = mustLoadLocation("America/Chicago")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// day builds the reference timetable used throughout these tests:
// fajr 05:00, sunrise 06:15, dhuhr 12:00, asr 15:30, maghrib 18:00,
// isha 19:30, islamic midnight 00:15 the next day.
func day(t *testing.T) model.DailyPrayerTimes {
	t.Helper()
	at := func(h, m int) time.Time {
		return time.Date(2026, time.March, 10, h, m, 0, 0, chicago)
	}
	midnight := time.Date(2026, time.March, 11, 0, 15, 0, 0, chicago)
	d := model.DailyPrayerTimes{
		Date:     time.Date(2026, time.March, 10, 0, 0, 0, 0, chicago),
		Fajr:     at(5, 0),
		Sunrise:  at(6, 15),
		Dhuhr:    at(12, 0),
		Asr:      at(15, 30),
		Maghrib:  at(18, 0),
		Sunset:   at(18, 0),
		Isha:     at(19, 30),
		Midnight: &midnight,
	}
	require.NoError(t, d.Validate())
	return d
}

func nextDay(t *testing.T) *model.DailyPrayerTimes {
	t.Helper()
	at := func(h, m int) time.Time {
		return time.Date(2026, time.March, 11, h, m, 0, 0, chicago)
	}
	d := model.DailyPrayerTimes{
		Date:    time.Date(2026, time.March, 11, 0, 0, 0, 0, chicago),
		Fajr:    at(5, 2),
		Sunrise: at(6, 13),
		Dhuhr:   at(12, 0),
		Asr:     at(15, 31),
		Maghrib: at(18, 1),
		Sunset:  at(18, 1),
		Isha:    at(19, 31),
	}
	require.NoError(t, d.Validate())
	return &d
}

func clock(t *testing.T, today model.DailyPrayerTimes, h, m int) time.Time {
	t.Helper()
	y, mo, d := today.Date.Date()
	return time.Date(y, mo, d, h, m, 0, 0, chicago)
}

func TestBeforeFajr(t *testing.T) {
	today := day(t)
	p := Calculate(today, nil, clock(t, today, 4, 30))
	assert.Equal(t, BeforeFajr{NextFajr: today.Fajr}, p.State)
}

func TestFajrInProgressDeadlineIsSunrise(t *testing.T) {
	// scenario: 05:30 during fajr -> window closes at sunrise 06:15
	today := day(t)
	p := Calculate(today, nil, clock(t, today, 5, 30))
	assert.Equal(t, InProgress{Prayer: model.Fajr, Deadline: today.Sunrise}, p.State)
}

func TestFajrDeadlineIndependentOfDhuhr(t *testing.T) {
	today := day(t)
	today.Dhuhr = clock(t, today, 13, 45) // moving dhuhr must not move fajr's deadline

	p := Calculate(today, nil, clock(t, today, 5, 30))
	assert.Equal(t, InProgress{Prayer: model.Fajr, Deadline: today.Sunrise}, p.State)
}

func TestBetweenFajrAndDhuhr(t *testing.T) {
	// scenario: 06:20, past sunrise but before dhuhr
	today := day(t)
	p := Calculate(today, nil, clock(t, today, 6, 20))
	assert.Equal(t, BetweenPrayers{Previous: model.Fajr, Next: model.Dhuhr, NextStart: today.Dhuhr}, p.State)
}

func TestMiddayWindowsCloseAtNextPrayer(t *testing.T) {
	today := day(t)

	p := Calculate(today, nil, clock(t, today, 12, 30))
	assert.Equal(t, InProgress{Prayer: model.Dhuhr, Deadline: today.Asr}, p.State)

	p = Calculate(today, nil, clock(t, today, 15, 30))
	assert.Equal(t, InProgress{Prayer: model.Asr, Deadline: today.Maghrib}, p.State)

	p = Calculate(today, nil, clock(t, today, 17, 59))
	assert.Equal(t, InProgress{Prayer: model.Asr, Deadline: today.Maghrib}, p.State)

	p = Calculate(today, nil, clock(t, today, 18, 0))
	assert.Equal(t, InProgress{Prayer: model.Maghrib, Deadline: today.Isha}, p.State)
}

func TestIshaClosesAtIslamicMidnight(t *testing.T) {
	// scenario: 19:45 during isha -> deadline 00:15 next day
	today := day(t)
	p := Calculate(today, nextDay(t), clock(t, today, 19, 45))
	assert.Equal(t, InProgress{Prayer: model.Isha, Deadline: *today.Midnight}, p.State)
}

func TestAfterMidnightWithTomorrow(t *testing.T) {
	// scenario: 00:30, past islamic midnight -> AfterIsha(tomorrow fajr 05:02)
	today := day(t)
	tomorrow := nextDay(t)
	now := time.Date(2026, time.March, 11, 0, 30, 0, 0, chicago)

	p := Calculate(today, tomorrow, now)
	assert.Equal(t, AfterIsha{TomorrowFajr: tomorrow.Fajr}, p.State)
}

func TestAfterMidnightWithoutTomorrowFallsBackOneHour(t *testing.T) {
	today := day(t)
	now := time.Date(2026, time.March, 11, 0, 30, 0, 0, chicago)

	p := Calculate(today, nil, now)
	assert.Equal(t, InProgress{Prayer: model.Isha, Deadline: now.Add(time.Hour)}, p.State)
}

func TestIshaWithoutMidnightUsesTomorrowFajr(t *testing.T) {
	today := day(t)
	today.Midnight = nil
	tomorrow := nextDay(t)

	p := Calculate(today, tomorrow, clock(t, today, 22, 0))
	assert.Equal(t, InProgress{Prayer: model.Isha, Deadline: tomorrow.Fajr}, p.State)

	late := time.Date(2026, time.March, 11, 5, 10, 0, 0, chicago)
	p = Calculate(today, tomorrow, late)
	assert.Equal(t, AfterIsha{TomorrowFajr: tomorrow.Fajr}, p.State)
}

func TestIshaWithNothingKnownFallsBackSixHours(t *testing.T) {
	today := day(t)
	today.Midnight = nil

	p := Calculate(today, nil, clock(t, today, 22, 0))
	assert.Equal(t, InProgress{Prayer: model.Isha, Deadline: today.Isha.Add(6 * time.Hour)}, p.State)
}

func TestCalculateIsStateless(t *testing.T) {
	today := day(t)
	tomorrow := nextDay(t)
	now := clock(t, today, 13, 0)

	first := Calculate(today, tomorrow, now)
	// an unrelated intermediate call must not influence the next result
	Calculate(today, tomorrow, clock(t, today, 20, 0))
	second := Calculate(today, tomorrow, now)

	assert.Equal(t, first.State, second.State)
	assert.True(t, first.Equal(second))
}

func TestSnapshotCarriesInputs(t *testing.T) {
	today := day(t)
	tomorrow := nextDay(t)
	now := clock(t, today, 13, 0)

	p := Calculate(today, tomorrow, now)
	assert.Equal(t, today, p.Today)
	assert.Equal(t, tomorrow, p.Tomorrow)
	assert.Equal(t, now, p.CalculatedAt)
}
