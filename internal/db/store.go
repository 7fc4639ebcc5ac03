// exposes a Store interface that is passed to API handlers and services
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/miqat-labs/minaret/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// board functions
	CreateBoard(board model.Board) (model.Board, error)
	ListBoards() ([]model.Board, error)
	GetBoardByID(id int) (model.Board, error)
	UpdateBoard(board model.Board) (model.Board, error)
	DeleteBoard(id int) error

	// timetable cache functions
	UpsertTimetable(boardID int, day time.Time, times model.DailyPrayerTimes) error
	GetTimetable(boardID int, day time.Time) (model.DailyPrayerTimes, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(dbx *sqlx.DB) Store {
	return &pgStore{db: dbx}
}
