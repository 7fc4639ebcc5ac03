// Package aladhan is a typed client for the Al Adhan prayer-time API, the
// external service that computes timetables from location and date. This is
// the only place that talks to it; everything downstream works with
// model.DailyPrayerTimes.
package aladhan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/minaret/internal/model"
)

const DefaultBaseURL = "https://api.aladhan.com"

type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Timings fetches one day's timetable for a location and converts it into
// the model type. method and school are passed through to the service
// untouched; this client never computes prayer times itself.
func (c *Client) Timings(ctx context.Context, date time.Time, latitude, longitude float64, method, school int) (model.DailyPrayerTimes, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("method", strconv.Itoa(method))
	q.Set("school", strconv.Itoa(school))
	endpoint := fmt.Sprintf("%s/v1/timings/%s?%s", c.baseURL, date.Format("02-01-2006"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.DailyPrayerTimes{}, fmt.Errorf("building aladhan request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return model.DailyPrayerTimes{}, fmt.Errorf("calling aladhan: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.DailyPrayerTimes{}, fmt.Errorf("aladhan returned status %d", resp.StatusCode)
	}

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.DailyPrayerTimes{}, fmt.Errorf("decoding aladhan response: %w", err)
	}
	if parsed.Code != http.StatusOK {
		return model.DailyPrayerTimes{}, fmt.Errorf("aladhan error: %s", parsed.Status)
	}

	return parsed.Data.DailyPrayerTimes(date)
}

// DailyPrayerTimes converts an Al Adhan data block into the model type,
// resolving each HH:MM string on the requested date in the meta timezone.
// Midnight and the last third of the night roll over to the next calendar
// day when their clock time falls before isha's.
func (d Data) DailyPrayerTimes(date time.Time) (model.DailyPrayerTimes, error) {
	loc, err := time.LoadLocation(d.Meta.Timezone)
	if err != nil {
		return model.DailyPrayerTimes{}, fmt.Errorf("unknown timezone %q: %w", d.Meta.Timezone, err)
	}

	year, month, dayOfMonth := date.Date()
	at := func(raw string) (time.Time, error) {
		h, m, err := parseClock(raw)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(year, month, dayOfMonth, h, m, 0, 0, loc), nil
	}

	out := model.DailyPrayerTimes{
		Date: time.Date(year, month, dayOfMonth, 0, 0, 0, 0, loc),
	}

	required := []struct {
		raw  string
		dest *time.Time
		name string
	}{
		{d.Timings.Fajr, &out.Fajr, "Fajr"},
		{d.Timings.Sunrise, &out.Sunrise, "Sunrise"},
		{d.Timings.Dhuhr, &out.Dhuhr, "Dhuhr"},
		{d.Timings.Asr, &out.Asr, "Asr"},
		{d.Timings.Maghrib, &out.Maghrib, "Maghrib"},
		{d.Timings.Sunset, &out.Sunset, "Sunset"},
		{d.Timings.Isha, &out.Isha, "Isha"},
	}
	for _, field := range required {
		parsed, err := at(field.raw)
		if err != nil {
			return model.DailyPrayerTimes{}, fmt.Errorf("parsing %s %q: %w", field.name, field.raw, err)
		}
		*field.dest = parsed
	}

	optional := []struct {
		raw     string
		dest    **time.Time
		name    string
		nextDay bool // clock times before isha's belong to the next day
	}{
		{d.Timings.Imsak, &out.Imsak, "Imsak", false},
		{d.Timings.Midnight, &out.Midnight, "Midnight", true},
		{d.Timings.Firstthird, &out.FirstThird, "Firstthird", true},
		{d.Timings.Lastthird, &out.LastThird, "Lastthird", true},
	}
	for _, field := range optional {
		if field.raw == "" {
			continue
		}
		parsed, err := at(field.raw)
		if err != nil {
			log.Warn().Err(err).Str("field", field.name).Str("raw", field.raw).Msg("skipping unparseable auxiliary timing")
			continue
		}
		if field.nextDay && parsed.Before(out.Isha) {
			parsed = parsed.AddDate(0, 0, 1)
		}
		t := parsed
		*field.dest = &t
	}

	return out, nil
}

// parseClock reads "HH:MM", tolerating a trailing " (ZONE)" suffix.
func parseClock(raw string) (hour, minute int, err error) {
	s := raw
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed clock value %q", raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("malformed hour in %q", raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("malformed minute in %q", raw)
	}
	return hour, minute, nil
}
