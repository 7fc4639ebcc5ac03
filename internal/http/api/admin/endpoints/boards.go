package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/minaret/internal/db"
	"github.com/miqat-labs/minaret/internal/http/api"
	"github.com/miqat-labs/minaret/internal/http/api/admin/packets"
	"github.com/miqat-labs/minaret/internal/model"
)

type BoardController struct {
	store db.Store
}

func newBoardController(store db.Store) *BoardController {
	return &BoardController{store: store}
}

// BoardModule mounts all authenticated /boards endpoints.
func BoardModule(store db.Store) api.Module {
	ctl := newBoardController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/boards", ctl.listBoards)
		c.POST("/boards", ctl.createBoard)
		c.GET("/boards/:id", ctl.getBoard)
		c.PUT("/boards/:id", ctl.updateBoard)
		c.DELETE("/boards/:id", ctl.deleteBoard)
	})
}

// GET /api/admin/boards
func (b *BoardController) listBoards(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := b.store.ListBoards()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	out := make([]packets.BoardResponse, 0, len(all))
	for _, board := range all {
		if board.CreatedBy != user.ID {
			continue
		}
		out = append(out, packets.NewBoardResponse(board))
	}

	return out, nil
}

// POST /api/admin/boards
func (b *BoardController) createBoard(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateBoardRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := time.LoadLocation(request.Timezone); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown timezone"}
	}

	board, err := b.store.CreateBoard(model.Board{
		Name:      request.Name,
		City:      request.City,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
		Timezone:  request.Timezone,
		Method:    request.Method,
		School:    request.School,
		CreatedBy: user.ID,
	})
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create board"}
	}

	log.Info().Int("board_id", board.ID).Str("city", board.City).Msg("board registered")
	return packets.NewBoardResponse(board), nil
}

// GET /api/admin/boards/:id
func (b *BoardController) getBoard(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	board, apiErr := b.ownedBoard(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.NewBoardResponse(board), nil
}

// PUT /api/admin/boards/:id
func (b *BoardController) updateBoard(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	board, apiErr := b.ownedBoard(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateBoardRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if request.Name != nil {
		board.Name = *request.Name
	}
	if request.City != nil {
		board.City = *request.City
	}
	if request.Latitude != nil {
		board.Latitude = *request.Latitude
	}
	if request.Longitude != nil {
		board.Longitude = *request.Longitude
	}
	if request.Timezone != nil {
		if _, err := time.LoadLocation(*request.Timezone); err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown timezone"}
		}
		board.Timezone = *request.Timezone
	}
	if request.Method != nil {
		board.Method = *request.Method
	}
	if request.School != nil {
		board.School = *request.School
	}

	updated, err := b.store.UpdateBoard(board)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update board"}
	}

	return packets.NewBoardResponse(updated), nil
}

// DELETE /api/admin/boards/:id
func (b *BoardController) deleteBoard(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	board, apiErr := b.ownedBoard(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := b.store.DeleteBoard(board.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete board"}
	}

	return gin.H{"deleted": board.ID}, nil
}

// ownedBoard resolves :id and enforces that the caller registered it.
func (b *BoardController) ownedBoard(ctx *gin.Context, user *model.User) (model.Board, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		log.Error().Err(err).Str("id_raw", ctx.Param("id")).Msg("invalid id in request")
		return model.Board{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	board, err := b.store.GetBoardByID(id)
	if err != nil {
		return model.Board{}, &api.APIError{Code: http.StatusNotFound, Message: "board not found"}
	}
	if board.CreatedBy != user.ID {
		return model.Board{}, &api.APIError{Code: http.StatusNotFound, Message: "board not found"}
	}
	return board, nil
}
