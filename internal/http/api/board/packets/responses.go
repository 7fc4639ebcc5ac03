package packets

import (
	"time"

	"github.com/miqat-labs/minaret/internal/model"
	"github.com/miqat-labs/minaret/internal/period"
)

// TimetableResponse is one day's timetable as served to boards.
type TimetableResponse struct {
	Date       string  `json:"date"`
	Fajr       string  `json:"fajr"`
	Sunrise    string  `json:"sunrise"`
	Dhuhr      string  `json:"dhuhr"`
	Asr        string  `json:"asr"`
	Maghrib    string  `json:"maghrib"`
	Sunset     string  `json:"sunset"`
	Isha       string  `json:"isha"`
	Imsak      *string `json:"imsak,omitempty"`
	Midnight   *string `json:"midnight,omitempty"`
	FirstThird *string `json:"first_third,omitempty"`
	LastThird  *string `json:"last_third,omitempty"`
}

func NewTimetableResponse(d model.DailyPrayerTimes) TimetableResponse {
	return TimetableResponse{
		Date:       d.Date.Format("2006-01-02"),
		Fajr:       d.Fajr.Format(time.RFC3339),
		Sunrise:    d.Sunrise.Format(time.RFC3339),
		Dhuhr:      d.Dhuhr.Format(time.RFC3339),
		Asr:        d.Asr.Format(time.RFC3339),
		Maghrib:    d.Maghrib.Format(time.RFC3339),
		Sunset:     d.Sunset.Format(time.RFC3339),
		Isha:       d.Isha.Format(time.RFC3339),
		Imsak:      formatOptional(d.Imsak),
		Midnight:   formatOptional(d.Midnight),
		FirstThird: formatOptional(d.FirstThird),
		LastThird:  formatOptional(d.LastThird),
	}
}

// PeriodResponse is the live state snapshot boards render from. The same
// payload goes out over HTTP and MQTT.
type PeriodResponse struct {
	State          string  `json:"state"`
	CurrentPrayer  *string `json:"current_prayer,omitempty"`
	PreviousPrayer *string `json:"previous_prayer,omitempty"`
	NextPrayer     *string `json:"next_prayer,omitempty"`
	NextPrayerAt   *string `json:"next_prayer_at,omitempty"`
	Deadline       *string `json:"deadline,omitempty"`
	Countdown      string  `json:"countdown"`
	Progress       float64 `json:"progress"`
	Urgent         bool    `json:"urgent"`
	CalculatedAt   string  `json:"calculated_at"`
}

func NewPeriodResponse(p period.Period, now time.Time) PeriodResponse {
	out := PeriodResponse{
		State:        period.Name(p.State),
		Countdown:    p.Countdown(now),
		Progress:     p.Progress(now),
		Urgent:       p.IsUrgent(now),
		CalculatedAt: p.CalculatedAt.Format(time.RFC3339),
	}

	switch s := p.State.(type) {
	case period.InProgress:
		out.CurrentPrayer = prayerName(s.Prayer)
		out.Deadline = formatInstant(s.Deadline)
	case period.BetweenPrayers:
		out.PreviousPrayer = prayerName(s.Previous)
	}

	if next, ok := p.NextPrayer(); ok {
		out.NextPrayer = prayerName(next.Name)
		out.NextPrayerAt = formatInstant(next.Time)
	}

	return out
}

func prayerName(name model.PrayerName) *string {
	s := string(name)
	return &s
}

func formatInstant(t time.Time) *string {
	s := t.Format(time.RFC3339)
	return &s
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return formatInstant(*t)
}
