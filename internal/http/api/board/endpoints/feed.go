package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/minaret/internal/db"
	"github.com/miqat-labs/minaret/internal/http/api"
	"github.com/miqat-labs/minaret/internal/http/api/board/packets"
	"github.com/miqat-labs/minaret/internal/model"
	"github.com/miqat-labs/minaret/internal/period"
	"github.com/miqat-labs/minaret/internal/timetable"
)

type FeedController struct {
	store db.Store
	times *timetable.Service
}

func newFeedController(store db.Store, times *timetable.Service) *FeedController {
	return &FeedController{store: store, times: times}
}

// FeedModule mounts the public board feed: the daily timetable and the live
// period snapshot boards poll between MQTT pushes.
func FeedModule(store db.Store, times *timetable.Service) api.Module {
	ctl := newFeedController(store, times)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/boards/:id/timetable", ctl.getTimetable)
		c.PUBLIC_GET("/boards/:id/period", ctl.getPeriod)
	})
}

// GET /api/boards/:id/timetable?date=YYYY-MM-DD
func (f *FeedController) getTimetable(ctx *gin.Context) (any, *api.APIError) {
	board, apiErr := f.board(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	day := time.Now().In(board.Location())
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, board.Location())
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid date, expected YYYY-MM-DD"}
		}
		day = parsed
	}

	times, err := f.times.ForDate(ctx.Request.Context(), board, day)
	if err != nil {
		log.Error().Err(err).Int("board_id", board.ID).Msg("timetable lookup failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "timetable unavailable"}
	}

	return packets.NewTimetableResponse(times), nil
}

// GET /api/boards/:id/period
func (f *FeedController) getPeriod(ctx *gin.Context) (any, *api.APIError) {
	board, apiErr := f.board(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	now := time.Now()
	today, tomorrow, err := f.times.Window(ctx.Request.Context(), board, now)
	if err != nil {
		log.Error().Err(err).Int("board_id", board.ID).Msg("period window lookup failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "timetable unavailable"}
	}

	snapshot := period.Calculate(today, tomorrow, now)
	return packets.NewPeriodResponse(snapshot, now), nil
}

func (f *FeedController) board(ctx *gin.Context) (model.Board, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return model.Board{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	board, err := f.store.GetBoardByID(id)
	if err != nil {
		return model.Board{}, &api.APIError{Code: http.StatusNotFound, Message: "board not found"}
	}
	return board, nil
}
