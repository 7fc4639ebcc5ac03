package model

import (
	"fmt"
	"time"
)

// PrayerName identifies one of the five daily prayers.
type PrayerName string

const (
	Fajr    PrayerName = "fajr"
	Dhuhr   PrayerName = "dhuhr"
	Asr     PrayerName = "asr"
	Maghrib PrayerName = "maghrib"
	Isha    PrayerName = "isha"
)

// prayerOrder is the fixed chronological order of the five prayers.
var prayerOrder = [5]PrayerName{Fajr, Dhuhr, Asr, Maghrib, Isha}

// PrayerOrder returns the five prayers in chronological order.
func PrayerOrder() []PrayerName {
	return prayerOrder[:]
}

// Next returns the prayer that follows name in the daily order.
// ok is false for isha (no successor on the same day) and for unknown names.
func (p PrayerName) Next() (PrayerName, bool) {
	for i, name := range prayerOrder {
		if name == p && i+1 < len(prayerOrder) {
			return prayerOrder[i+1], true
		}
	}
	return "", false
}

// PrayerTime pairs a prayer with the instant it begins.
type PrayerTime struct {
	Name PrayerName `json:"name"`
	Time time.Time  `json:"time"`
}

// DailyPrayerTimes is one calendar day's timetable for a single location.
// Values are supplied by the external prayer-time service and are expected
// to satisfy: fajr < sunrise <= dhuhr < asr < maghrib <= sunset < isha,
// with midnight (when present) after isha.
type DailyPrayerTimes struct {
	Date    time.Time `json:"date"` // midnight at the start of the day, local to the board
	Fajr    time.Time `json:"fajr"`
	Sunrise time.Time `json:"sunrise"`
	Dhuhr   time.Time `json:"dhuhr"`
	Asr     time.Time `json:"asr"`
	Maghrib time.Time `json:"maghrib"`
	Sunset  time.Time `json:"sunset"`
	Isha    time.Time `json:"isha"`

	// Auxiliary times; not every calculation method supplies them.
	Imsak      *time.Time `json:"imsak,omitempty"`
	Midnight   *time.Time `json:"midnight,omitempty"`
	FirstThird *time.Time `json:"first_third,omitempty"`
	LastThird  *time.Time `json:"last_third,omitempty"`
}

// Prayers returns the five prayer start times in chronological order.
func (d DailyPrayerTimes) Prayers() []PrayerTime {
	return []PrayerTime{
		{Name: Fajr, Time: d.Fajr},
		{Name: Dhuhr, Time: d.Dhuhr},
		{Name: Asr, Time: d.Asr},
		{Name: Maghrib, Time: d.Maghrib},
		{Name: Isha, Time: d.Isha},
	}
}

// TimeOf returns the start instant of the named prayer.
func (d DailyPrayerTimes) TimeOf(name PrayerName) time.Time {
	switch name {
	case Fajr:
		return d.Fajr
	case Dhuhr:
		return d.Dhuhr
	case Asr:
		return d.Asr
	case Maghrib:
		return d.Maghrib
	case Isha:
		return d.Isha
	}
	return time.Time{}
}

// Validate checks the ordering invariant the upstream service promises.
// A violation means the upstream data is defective; callers at the ingestion
// boundary should log it. The period calculator itself never calls this.
func (d DailyPrayerTimes) Validate() error {
	if !d.Fajr.Before(d.Sunrise) {
		return fmt.Errorf("fajr %s is not before sunrise %s", d.Fajr, d.Sunrise)
	}
	if d.Sunrise.After(d.Dhuhr) {
		return fmt.Errorf("sunrise %s is after dhuhr %s", d.Sunrise, d.Dhuhr)
	}
	if !d.Dhuhr.Before(d.Asr) {
		return fmt.Errorf("dhuhr %s is not before asr %s", d.Dhuhr, d.Asr)
	}
	if !d.Asr.Before(d.Maghrib) {
		return fmt.Errorf("asr %s is not before maghrib %s", d.Asr, d.Maghrib)
	}
	if d.Maghrib.After(d.Sunset) {
		return fmt.Errorf("maghrib %s is after sunset %s", d.Maghrib, d.Sunset)
	}
	if !d.Sunset.Before(d.Isha) {
		return fmt.Errorf("sunset %s is not before isha %s", d.Sunset, d.Isha)
	}
	if d.Midnight != nil && !d.Midnight.After(d.Isha) {
		return fmt.Errorf("midnight %s is not after isha %s", *d.Midnight, d.Isha)
	}
	return nil
}
