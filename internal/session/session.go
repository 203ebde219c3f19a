package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("game not found")

// Game is a board shared between requests. All access to the board goes
// through [Game.Do].
type Game struct {
	mu        sync.Mutex
	id        string
	board     *mines.Board
	startedAt time.Time
	lastSeen  time.Time
	now       func() time.Time
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) StartedAt() time.Time {
	return g.startedAt
}

func (g *Game) Do(fn func(b *mines.Board) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastSeen = g.now()
	return fn(g.board)
}

func (g *Game) idleSince() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastSeen
}

type Store struct {
	mu    sync.RWMutex
	games map[string]*Game
	rnd   *rand.Rand
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewStore(logger logrus.FieldLogger, rnd *rand.Rand) *Store {
	if rnd == nil {
		rnd = mines.NewRand()
	}
	return &Store{
		games: make(map[string]*Game),
		rnd:   rnd,
		log:   logger,
		now:   time.Now,
	}
}

func (s *Store) Create(params mines.GameParams) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := mines.NewFromParams(params, s.rnd)
	if err != nil {
		return nil, err
	}
	now := s.now()
	g := &Game{
		id:        uuid.NewString(),
		board:     board,
		startedAt: now,
		lastSeen:  now,
		now:       s.now,
	}
	s.games[g.id] = g

	s.log.WithFields(logrus.Fields{
		"game_id": g.id,
		"params":  params.Seed(),
	}).Debug("game created")
	return g, nil
}

func (s *Store) Get(id string) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return ErrNotFound
	}
	delete(s.games, id)
	s.log.WithField("game_id", id).Debug("game deleted")
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Evict drops every game nobody touched for longer than ttl and returns how
// many were dropped.
func (s *Store) Evict(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-ttl)
	n := 0
	for id, g := range s.games {
		if g.idleSince().Before(cutoff) {
			delete(s.games, id)
			n++
		}
	}
	return n
}

// RunJanitor evicts idle games every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Evict(ttl); n > 0 {
				s.log.WithFields(logrus.Fields{
					"evicted":   n,
					"remaining": s.Len(),
				}).Info("evicted idle games")
			}
		}
	}
}
