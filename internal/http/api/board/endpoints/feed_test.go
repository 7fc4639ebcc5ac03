package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miqat-labs/minaret/internal/aladhan"
	"github.com/miqat-labs/minaret/internal/db"
	"github.com/miqat-labs/minaret/internal/http/api"
	"github.com/miqat-labs/minaret/internal/http/api/board/packets"
	"github.com/miqat-labs/minaret/internal/model"
	"github.com/miqat-labs/minaret/internal/timetable"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// synthDay builds a plausible timetable for the given calendar day.
func synthDay(day time.Time) model.DailyPrayerTimes {
	at := func(hour, min int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
	}
	midnight := at(0, 15).AddDate(0, 0, 1)
	return model.DailyPrayerTimes{
		Date:     at(0, 0),
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

// newFeedRouter seeds a board plus timetables around the real clock, since
// the feed handlers evaluate at time.Now. The upstream client points at a
// dead address; every lookup must be served from the store.
func newFeedRouter(t *testing.T) (*gin.Engine, model.Board, model.DailyPrayerTimes) {
	t.Helper()
	store := db.NewMemStore()

	board, err := store.CreateBoard(model.Board{
		Name:      "main hall",
		City:      "Chicago",
		Latitude:  41.8781,
		Longitude: -87.6298,
		Timezone:  "America/Chicago",
		Method:    2,
		CreatedBy: 1,
	})
	require.NoError(t, err)

	now := time.Now().In(board.Location())
	today := synthDay(now)
	for offset := -1; offset <= 1; offset++ {
		day := now.AddDate(0, 0, offset)
		require.NoError(t, store.UpsertTimetable(board.ID, day, synthDay(day)))
	}

	client := aladhan.NewClient("http://127.0.0.1:1", time.Second)
	times := timetable.NewService(store, nil, client)

	router := gin.New()
	api.MountGroup(router, api.GroupConfig{
		Prefix: "/api",
	}, FeedModule(store, times))

	return router, board, today
}

func TestGetTimetable(t *testing.T) {
	router, board, today := newFeedRouter(t)

	path := fmt.Sprintf("/api/boards/%d/timetable?date=%s", board.ID, today.Date.Format("2006-01-02"))
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp packets.TimetableResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, today.Date.Format("2006-01-02"), resp.Date)

	fajr, err := time.Parse(time.RFC3339, resp.Fajr)
	require.NoError(t, err)
	assert.True(t, fajr.Equal(today.Fajr))
	require.NotNil(t, resp.Midnight)
}

func TestGetTimetableBadDate(t *testing.T) {
	router, board, _ := newFeedRouter(t)

	path := fmt.Sprintf("/api/boards/%d/timetable?date=10-03-2026", board.ID)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTimetableUnknownBoard(t *testing.T) {
	router, _, _ := newFeedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/boards/999/timetable", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPeriod(t *testing.T) {
	router, board, _ := newFeedRouter(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/boards/%d/period", board.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp packets.PeriodResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Contains(t, []string{"before_fajr", "in_progress", "between_prayers", "after_isha"}, resp.State)
	assert.NotEmpty(t, resp.Countdown)
	assert.GreaterOrEqual(t, resp.Progress, 0.0)
	assert.LessOrEqual(t, resp.Progress, 1.0)
	assert.NotEmpty(t, resp.CalculatedAt)
}
