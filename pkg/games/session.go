package games

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// SnakeStepInterval is how often a running snake advances by itself.
const SnakeStepInterval = 100 * time.Millisecond

// ErrUnknownGame is returned for a game id that is not in the catalog.
var ErrUnknownGame = errors.New("unknown game")

// Action is one input to a running game. Index addresses a cell, card or
// tile depending on the game; Turn is a snake heading.
type Action struct {
	Kind  string `json:"kind"`
	Index int    `json:"index,omitempty"`
	Turn  string `json:"turn,omitempty"`
}

// Action kinds.
const (
	ActionPlay    = "play"
	ActionTurn    = "turn"
	ActionStep    = "step"
	ActionPause   = "pause"
	ActionRestart = "restart"
)

// Session is a running game.
type Session interface {
	GameID() string
	Apply(a Action) bool
	State() any
	Close()
}

// New starts a session of the game id.
func New(id string, rng *rand.Rand) (Session, error) {
	switch id {
	case TicTacToeID:
		return &ticTacToeSession{g: NewTicTacToe()}, nil
	case MemoryID:
		return &memorySession{g: NewMemory(rng)}, nil
	case SnakeID:
		return newSnakeSession(rng, SnakeStepInterval), nil
	case PuzzleID:
		return &puzzleSession{g: NewPuzzle(rng), rng: rng}, nil
	default:
		return nil, ErrUnknownGame
	}
}

type ticTacToeSession struct{ g *TicTacToe }

func (s *ticTacToeSession) GameID() string { return TicTacToeID }
func (s *ticTacToeSession) State() any     { return *s.g }
func (s *ticTacToeSession) Close()         {}

func (s *ticTacToeSession) Apply(a Action) bool {
	switch a.Kind {
	case ActionPlay:
		return s.g.Play(a.Index)
	case ActionRestart:
		s.g.Reset()
		return true
	}
	return false
}

type memorySession struct{ g *Memory }

func (s *memorySession) GameID() string { return MemoryID }
func (s *memorySession) State() any     { return s.g.State() }
func (s *memorySession) Close()         { s.g.Close() }

func (s *memorySession) Apply(a Action) bool {
	switch a.Kind {
	case ActionPlay:
		return s.g.Flip(a.Index)
	case ActionRestart:
		s.g.Restart()
		return true
	}
	return false
}

// snakeSession advances the snake on its own ticker until Close. It keeps
// a private random source because the ticker goroutine places food.
type snakeSession struct {
	mu  sync.Mutex
	g   *Snake
	rng *rand.Rand

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func newSnakeSession(rng *rand.Rand, interval time.Duration) *snakeSession {
	own := rand.New(rand.NewSource(rng.Int63()))
	s := &snakeSession{
		g:    NewSnake(own),
		rng:  own,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run(interval)
	return s
}

func (s *snakeSession) run(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.g.Step()
			s.mu.Unlock()
		}
	}
}

func (s *snakeSession) GameID() string { return SnakeID }

func (s *snakeSession) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := *s.g
	st.Body = append([]Cell(nil), s.g.Body...)
	return st
}

// Close stops the ticker and waits for it.
func (s *snakeSession) Close() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

func (s *snakeSession) Apply(a Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch a.Kind {
	case ActionTurn:
		d, err := ParseDirection(a.Turn)
		if err != nil {
			return false
		}
		return s.g.Turn(d)
	case ActionStep:
		return s.g.Step()
	case ActionPause:
		s.g.TogglePause()
		return true
	case ActionRestart:
		s.g = NewSnake(s.rng)
		return true
	}
	return false
}

type puzzleSession struct {
	g   *Puzzle
	rng *rand.Rand
}

func (s *puzzleSession) GameID() string { return PuzzleID }
func (s *puzzleSession) State() any     { return *s.g }
func (s *puzzleSession) Close()         {}

func (s *puzzleSession) Apply(a Action) bool {
	switch a.Kind {
	case ActionPlay:
		return s.g.Move(a.Index)
	case ActionRestart:
		s.g = NewPuzzle(s.rng)
		return true
	}
	return false
}
