package aladhan

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureBody = `{
  "code": 200,
  "status": "OK",
  "data": {
    "timings": {
      "Fajr": "05:00",
      "Sunrise": "06:15",
      "Dhuhr": "12:00",
      "Asr": "15:30",
      "Sunset": "18:00 (CDT)",
      "Maghrib": "18:00",
      "Isha": "19:30",
      "Imsak": "04:50",
      "Midnight": "00:15",
      "Firstthird": "22:40",
      "Lastthird": "01:50"
    },
    "meta": {
      "latitude": 41.8781,
      "longitude": -87.6298,
      "timezone": "America/Chicago",
      "method": {"id": 2, "name": "Islamic Society of North America (ISNA)"},
      "school": "STANDARD"
    }
  }
}`

func TestTimingsParsesFixture(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, fixtureBody)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, loc)

	day, err := client.Timings(context.Background(), date, 41.8781, -87.6298, 2, 0)
	require.NoError(t, err)

	assert.Equal(t, "/v1/timings/10-03-2026", gotPath)
	assert.Contains(t, gotQuery, "method=2")
	assert.Contains(t, gotQuery, "school=0")

	assert.Equal(t, time.Date(2026, time.March, 10, 5, 0, 0, 0, loc), day.Fajr)
	assert.Equal(t, time.Date(2026, time.March, 10, 6, 15, 0, 0, loc), day.Sunrise)
	assert.Equal(t, time.Date(2026, time.March, 10, 19, 30, 0, 0, loc), day.Isha)
	// the " (CDT)" suffix is stripped
	assert.Equal(t, time.Date(2026, time.March, 10, 18, 0, 0, 0, loc), day.Sunset)

	// clock times before isha roll over to the next day
	require.NotNil(t, day.Midnight)
	assert.Equal(t, time.Date(2026, time.March, 11, 0, 15, 0, 0, loc), *day.Midnight)
	require.NotNil(t, day.LastThird)
	assert.Equal(t, time.Date(2026, time.March, 11, 1, 50, 0, 0, loc), *day.LastThird)
	require.NotNil(t, day.FirstThird)
	assert.Equal(t, time.Date(2026, time.March, 10, 22, 40, 0, 0, loc), *day.FirstThird)

	require.NoError(t, day.Validate())
}

func TestTimingsOmitsMissingAuxiliaryFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
  "code": 200,
  "status": "OK",
  "data": {
    "timings": {
      "Fajr": "05:00", "Sunrise": "06:15", "Dhuhr": "12:00",
      "Asr": "15:30", "Sunset": "18:00", "Maghrib": "18:00", "Isha": "19:30"
    },
    "meta": {"timezone": "UTC", "method": {"id": 3}}
  }
}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	day, err := client.Timings(context.Background(), time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), 0, 0, 3, 0)
	require.NoError(t, err)
	assert.Nil(t, day.Midnight)
	assert.Nil(t, day.Imsak)
	assert.Nil(t, day.FirstThird)
	assert.Nil(t, day.LastThird)
}

func TestTimingsErrors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.Timings(context.Background(), time.Now(), 0, 0, 2, 0)
		assert.Error(t, err)
	})

	t.Run("api error code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"code": 400, "status": "Please specify a valid latitude."}`)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.Timings(context.Background(), time.Now(), 0, 0, 2, 0)
		assert.ErrorContains(t, err, "latitude")
	})

	t.Run("malformed timing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
  "code": 200, "status": "OK",
  "data": {"timings": {"Fajr": "soon"}, "meta": {"timezone": "UTC"}}
}`)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.Timings(context.Background(), time.Now(), 0, 0, 2, 0)
		assert.ErrorContains(t, err, "Fajr")
	})
}

func TestParseClock(t *testing.T) {
	h, m, err := parseClock("05:07")
	require.NoError(t, err)
	assert.Equal(t, 5, h)
	assert.Equal(t, 7, m)

	h, m, err = parseClock("23:59 (BST)")
	require.NoError(t, err)
	assert.Equal(t, 23, h)
	assert.Equal(t, 59, m)

	for _, bad := range []string{"", "25:00", "12:60", "noon", "12"} {
		_, _, err := parseClock(bad)
		assert.Error(t, err, bad)
	}
}
