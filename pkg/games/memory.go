package games

import (
	"math/rand"
	"sync"
	"time"
)

// FlipBackDelay is how long a mismatched pair stays face up.
const FlipBackDelay = time.Second

var memorySymbols = []string{"🚀", "🌟", "🔥", "💎", "🎮", "🎯", "🏆", "🎨"}

// Card is one memory card.
type Card struct {
	ID      int    `json:"id"`
	Value   string `json:"value"`
	Flipped bool   `json:"flipped"`
	Matched bool   `json:"matched"`
}

type stopper interface {
	Stop() bool
}

// Memory is a memory-match game over eight pairs. A mismatched pair is
// turned back over after FlipBackDelay by a timer the game owns.
type Memory struct {
	mu        sync.Mutex
	rng       *rand.Rand
	delay     time.Duration
	afterFunc func(d time.Duration, f func()) stopper

	cards   []Card
	flipped []int
	moves   int
	pairs   int
	over    bool
	closed  bool
	pending stopper
	gen     int
}

// NewMemory deals a shuffled deck.
func NewMemory(rng *rand.Rand) *Memory {
	g := &Memory{
		rng:   rng,
		delay: FlipBackDelay,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
	g.deal()
	return g
}

func (g *Memory) deal() {
	deck := make([]Card, 0, 2*len(memorySymbols))
	for i, v := range append(append([]string(nil), memorySymbols...), memorySymbols...) {
		deck = append(deck, Card{ID: i, Value: v})
	}
	g.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	g.cards = deck
	g.flipped = nil
	g.moves = 0
	g.pairs = 0
	g.over = false
}

// Flip turns card id face up. It refuses matched cards, cards already face
// up, a third card while a pair is showing, and any move once the game is
// over or closed.
func (g *Memory) Flip(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over || g.closed || len(g.flipped) == 2 {
		return false
	}
	idx := g.index(id)
	if idx < 0 || g.cards[idx].Matched || g.cards[idx].Flipped {
		return false
	}

	g.cards[idx].Flipped = true
	g.flipped = append(g.flipped, idx)
	if len(g.flipped) < 2 {
		return true
	}

	g.moves++
	a, b := g.flipped[0], g.flipped[1]
	if g.cards[a].Value == g.cards[b].Value {
		g.cards[a].Matched = true
		g.cards[b].Matched = true
		g.flipped = nil
		g.pairs++
		g.over = g.pairs == len(memorySymbols)
		return true
	}

	gen := g.gen
	g.pending = g.afterFunc(g.delay, func() { g.flipBack(gen) })
	return true
}

func (g *Memory) flipBack(gen int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gen != g.gen || g.closed {
		return
	}
	for _, idx := range g.flipped {
		g.cards[idx].Flipped = false
	}
	g.flipped = nil
	g.pending = nil
}

func (g *Memory) index(id int) int {
	for i, c := range g.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// cancelPending stops a scheduled flip-back and invalidates it in case it
// is already running. Callers hold g.mu.
func (g *Memory) cancelPending() {
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	g.gen++
}

// Restart cancels any pending flip-back and deals a new deck.
func (g *Memory) Restart() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cancelPending()
	g.closed = false
	g.deal()
}

// Close cancels any pending flip-back. A closed game accepts no moves.
func (g *Memory) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cancelPending()
	g.closed = true
}

// MemoryState is a copy of the visible game state.
type MemoryState struct {
	Cards []Card `json:"cards"`
	Moves int    `json:"moves"`
	Pairs int    `json:"pairs"`
	Total int    `json:"total"`
	Over  bool   `json:"over"`
}

// State returns a copy of the game state.
func (g *Memory) State() MemoryState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return MemoryState{
		Cards: append([]Card(nil), g.cards...),
		Moves: g.moves,
		Pairs: g.pairs,
		Total: len(memorySymbols),
		Over:  g.over,
	}
}
