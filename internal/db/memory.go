package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/miqat-labs/minaret/internal/model"
)

// memStore is an in-memory Store used by handler tests, so they exercise
// the full request path without a running Postgres.
type memStore struct {
	mu         sync.Mutex
	nextUserID int
	nextBoard  int
	users      map[int]model.User
	boards     map[int]model.Board
	timetables map[string]model.DailyPrayerTimes
}

var _ Store = (*memStore)(nil)

func NewMemStore() Store {
	return &memStore{
		nextUserID: 1,
		nextBoard:  1,
		users:      make(map[int]model.User),
		boards:     make(map[int]model.Board),
		timetables: make(map[string]model.DailyPrayerTimes),
	}
}

func (s *memStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return 0, errors.New("email already exists")
		}
	}
	id := s.nextUserID
	s.nextUserID++
	now := time.Now()
	s.users[id] = model.User{
		ID:             id,
		Email:          email,
		HashedPassword: hashedPassword,
		Name:           name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return id, nil
}

func (s *memStore) GetUserByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *memStore) GetUserByID(id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := u
	return &copied, nil
}

func (s *memStore) UpdateUserProfile(id int, email string, name *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return errors.New("no such user")
	}
	u.Email = email
	u.Name = name
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return nil
}

func (s *memStore) CreateBoard(board model.Board) (model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	board.ID = s.nextBoard
	s.nextBoard++
	now := time.Now()
	board.CreatedAt = now
	board.UpdatedAt = now
	s.boards[board.ID] = board
	return board, nil
}

func (s *memStore) ListBoards() ([]model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Board, 0, len(s.boards))
	for id := 1; id < s.nextBoard; id++ {
		if b, ok := s.boards[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) GetBoardByID(id int) (model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok {
		return model.Board{}, sql.ErrNoRows
	}
	return b, nil
}

func (s *memStore) UpdateBoard(board model.Board) (model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.boards[board.ID]
	if !ok {
		return model.Board{}, sql.ErrNoRows
	}
	board.CreatedBy = existing.CreatedBy
	board.CreatedAt = existing.CreatedAt
	board.UpdatedAt = time.Now()
	s.boards[board.ID] = board
	return board, nil
}

func (s *memStore) DeleteBoard(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, id)
	return nil
}

func timetableKey(boardID int, day time.Time) string {
	return fmt.Sprintf("%d#%s", boardID, day.Format("2006-01-02"))
}

func (s *memStore) UpsertTimetable(boardID int, day time.Time, times model.DailyPrayerTimes) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timetables[timetableKey(boardID, day)] = times
	return nil
}

func (s *memStore) GetTimetable(boardID int, day time.Time) (model.DailyPrayerTimes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timetables[timetableKey(boardID, day)]
	if !ok {
		return model.DailyPrayerTimes{}, sql.ErrNoRows
	}
	return t, nil
}
