package games

import "math/rand"

// PuzzleSize is the edge length of the sliding puzzle.
const PuzzleSize = 4

// Puzzle is a sliding-tile puzzle. Tiles lists the board row by row; 0 is
// the blank.
type Puzzle struct {
	Size  int   `json:"size"`
	Tiles []int `json:"tiles"`
	Moves int   `json:"moves"`
	Won   bool  `json:"won"`
}

// NewPuzzle returns a shuffled, solvable 4x4 puzzle with the blank in the
// bottom-right corner.
func NewPuzzle(rng *rand.Rand) *Puzzle {
	n := PuzzleSize * PuzzleSize
	tiles := make([]int, n)
	for i := 0; i < n-1; i++ {
		tiles[i] = i + 1
	}

	rng.Shuffle(n-1, func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })

	// Swapping two tiles flips the permutation parity.
	if !Solvable(tiles, PuzzleSize) {
		tiles[0], tiles[1] = tiles[1], tiles[0]
	}

	return &Puzzle{Size: PuzzleSize, Tiles: tiles}
}

// Solvable reports whether the board can be brought to the solved order.
// For odd widths the inversion count must be even. For even widths it
// depends on the blank's row counted from the bottom: an even row needs
// an odd inversion count and an odd row an even one.
func Solvable(tiles []int, size int) bool {
	inversions := 0
	blank := -1
	for i, a := range tiles {
		if a == 0 {
			blank = i
			continue
		}
		for _, b := range tiles[i+1:] {
			if b != 0 && a > b {
				inversions++
			}
		}
	}
	if blank < 0 || size <= 0 {
		return false
	}

	if size%2 == 1 {
		return inversions%2 == 0
	}
	fromBottom := size - blank/size
	return (fromBottom%2 == 0) == (inversions%2 == 1)
}

// CanMove reports whether the tile with value is next to the blank.
func (p *Puzzle) CanMove(value int) bool {
	if value == 0 {
		return false
	}
	tile, blank := p.find(value), p.find(0)
	if tile < 0 || blank < 0 {
		return false
	}

	tx, ty := tile%p.Size, tile/p.Size
	bx, by := blank%p.Size, blank/p.Size
	return (abs(tx-bx) == 1 && ty == by) || (abs(ty-by) == 1 && tx == bx)
}

// Move slides the tile with value into the blank.
func (p *Puzzle) Move(value int) bool {
	if p.Won || !p.CanMove(value) {
		return false
	}
	tile, blank := p.find(value), p.find(0)
	p.Tiles[tile], p.Tiles[blank] = p.Tiles[blank], p.Tiles[tile]
	p.Moves++
	p.Won = p.Solved()
	return true
}

// Solved reports whether every tile is in order.
func (p *Puzzle) Solved() bool {
	for i, v := range p.Tiles {
		if v != 0 && v != i+1 {
			return false
		}
	}
	return true
}

func (p *Puzzle) find(value int) int {
	for i, v := range p.Tiles {
		if v == value {
			return i
		}
	}
	return -1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
