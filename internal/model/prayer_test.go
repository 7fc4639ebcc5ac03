package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDay(t *testing.T) DailyPrayerTimes {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	at := func(h, m int) time.Time {
		return time.Date(2026, time.March, 10, h, m, 0, 0, loc)
	}
	midnight := time.Date(2026, time.March, 11, 0, 15, 0, 0, loc)
	return DailyPrayerTimes{
		Date:     time.Date(2026, time.March, 10, 0, 0, 0, 0, loc),
		Fajr:     at(5, 0),
		Sunrise:  at(6, 15),
		Dhuhr:    at(12, 0),
		Asr:      at(15, 30),
		Maghrib:  at(18, 0),
		Sunset:   at(18, 0),
		Isha:     at(19, 30),
		Midnight: &midnight,
	}
}

func TestPrayerOrderIsFixed(t *testing.T) {
	assert.Equal(t, []PrayerName{Fajr, Dhuhr, Asr, Maghrib, Isha}, PrayerOrder())
}

func TestPrayerNameNext(t *testing.T) {
	next, ok := Fajr.Next()
	assert.True(t, ok)
	assert.Equal(t, Dhuhr, next)

	next, ok = Maghrib.Next()
	assert.True(t, ok)
	assert.Equal(t, Isha, next)

	_, ok = Isha.Next()
	assert.False(t, ok)

	_, ok = PrayerName("tahajjud").Next()
	assert.False(t, ok)
}

func TestPrayersMatchesOrder(t *testing.T) {
	day := sampleDay(t)
	prayers := day.Prayers()
	require.Len(t, prayers, 5)
	for i, name := range PrayerOrder() {
		assert.Equal(t, name, prayers[i].Name)
		assert.Equal(t, day.TimeOf(name), prayers[i].Time)
	}
	for i := 1; i < len(prayers); i++ {
		assert.True(t, prayers[i-1].Time.Before(prayers[i].Time))
	}
}

func TestValidateAcceptsWellFormedDay(t *testing.T) {
	assert.NoError(t, sampleDay(t).Validate())
}

func TestValidateRejectsDisorderedTimes(t *testing.T) {
	day := sampleDay(t)
	day.Asr = day.Dhuhr.Add(-time.Hour)
	assert.Error(t, day.Validate())

	day = sampleDay(t)
	day.Fajr = day.Sunrise
	assert.Error(t, day.Validate())

	day = sampleDay(t)
	early := day.Isha.Add(-time.Minute)
	day.Midnight = &early
	assert.Error(t, day.Validate())
}

func TestValidateAllowsMissingAuxiliaryTimes(t *testing.T) {
	day := sampleDay(t)
	day.Midnight = nil
	day.Imsak = nil
	assert.NoError(t, day.Validate())
}
