package watch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/minaret/internal/broadcast"
	"github.com/miqat-labs/minaret/internal/db"
)

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets how often each board watcher recomputes.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// WithRefreshInterval sets how often the board list is re-read.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.refreshInterval = d
	}
}

// Supervisor keeps one Watcher goroutine running per registered board,
// starting and stopping them as boards are created and deleted.
type Supervisor struct {
	store           db.Store
	times           TimetableSource
	pub             broadcast.Publisher
	tickInterval    time.Duration
	refreshInterval time.Duration

	mu       sync.Mutex
	watchers map[int]context.CancelFunc
}

func NewSupervisor(store db.Store, times TimetableSource, pub broadcast.Publisher, opts ...Option) *Supervisor {
	s := &Supervisor{
		store:           store,
		times:           times,
		pub:             pub,
		tickInterval:    time.Second,
		refreshInterval: time.Minute,
		watchers:        make(map[int]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until ctx is cancelled, reconciling watchers against the board
// list on each refresh.
func (s *Supervisor) Run(ctx context.Context) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	log.Info().Dur("tick", s.tickInterval).Dur("refresh", s.refreshInterval).Msg("watch supervisor started")

	s.reconcile(ctx)
	for {
		select {
		case <-ctx.Done():
			s.stopAll()
			log.Info().Msg("watch supervisor stopped")
			return
		case <-ticker.C:
			s.reconcile(ctx)
		}
	}
}

// reconcile starts watchers for new boards and cancels watchers whose
// boards are gone. A board edit (location/method change) is picked up by
// delete+create of its watcher only on removal; existing watchers keep
// their Board value until the next process restart or board deletion.
func (s *Supervisor) reconcile(ctx context.Context) {
	boards, err := s.store.ListBoards()
	if err != nil {
		log.Error().Err(err).Msg("supervisor could not list boards")
		return
	}

	current := make(map[int]bool, len(boards))
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, board := range boards {
		current[board.ID] = true
		if _, running := s.watchers[board.ID]; running {
			continue
		}
		watcherCtx, cancel := context.WithCancel(ctx)
		s.watchers[board.ID] = cancel
		go NewWatcher(board, s.times, s.pub, s.tickInterval).Run(watcherCtx)
	}

	for id, cancel := range s.watchers {
		if !current[id] {
			cancel()
			delete(s.watchers, id)
		}
	}
}

func (s *Supervisor) stopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, cancel := range s.watchers {
		cancel()
		delete(s.watchers, id)
	}
}
