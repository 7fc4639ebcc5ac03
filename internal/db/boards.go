package db

import (
	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/minaret/internal/model"
)

const boardColumns = `id, name, city, latitude, longitude, timezone, method, school, created_by, created_at, updated_at`

func (s *pgStore) CreateBoard(board model.Board) (model.Board, error) {
	var b model.Board
	query := `
	INSERT INTO boards (name, city, latitude, longitude, timezone, method, school, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	RETURNING ` + boardColumns + `;`
	err := s.db.Get(&b, query,
		board.Name, board.City, board.Latitude, board.Longitude,
		board.Timezone, board.Method, board.School, board.CreatedBy)
	if err != nil {
		log.Error().Err(err).Str("name", board.Name).Msg("CreateBoard failed")
		return model.Board{}, err
	}
	return b, nil
}

func (s *pgStore) ListBoards() ([]model.Board, error) {
	var out []model.Board
	query := `SELECT ` + boardColumns + ` FROM boards ORDER BY id;`
	if err := s.db.Select(&out, query); err != nil {
		log.Error().Err(err).Msg("ListBoards failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) GetBoardByID(id int) (model.Board, error) {
	var b model.Board
	err := s.db.Get(&b, `SELECT `+boardColumns+` FROM boards WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("board_id", id).Msg("GetBoardByID failed")
	}
	return b, err
}

func (s *pgStore) UpdateBoard(board model.Board) (model.Board, error) {
	var b model.Board
	query := `
	UPDATE boards
	SET name = $2,
	city = $3,
	latitude = $4,
	longitude = $5,
	timezone = $6,
	method = $7,
	school = $8,
	updated_at = now()
	WHERE id = $1
	RETURNING ` + boardColumns + `;`
	err := s.db.Get(&b, query,
		board.ID, board.Name, board.City, board.Latitude, board.Longitude,
		board.Timezone, board.Method, board.School)
	if err != nil {
		log.Error().Err(err).Int("board_id", board.ID).Msg("UpdateBoard failed")
		return model.Board{}, err
	}
	return b, nil
}

func (s *pgStore) DeleteBoard(id int) error {
	_, err := s.db.Exec(`DELETE FROM boards WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("board_id", id).Msg("DeleteBoard failed")
	}
	return err
}
