package games

import (
	"fmt"
	"math/rand"
)

// SnakeGridSize is the edge length of the snake board.
const SnakeGridSize = 20

// Direction is a snake heading.
type Direction int

// Headings.
const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses the names produced by Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Up, fmt.Errorf("invalid direction %q", s)
	}
}

func (d Direction) opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Cell is a board coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Snake is the snake game on a wrap-around grid. It starts paused.
type Snake struct {
	Size   int       `json:"size"`
	Body   []Cell    `json:"body"`
	Food   Cell      `json:"food"`
	Dir    Direction `json:"dir"`
	Paused bool      `json:"paused"`
	Over   bool      `json:"over"`
	Score  int       `json:"score"`

	heading Direction
	rng     *rand.Rand
}

// NewSnake returns a one-segment snake in the middle of the board.
func NewSnake(rng *rand.Rand) *Snake {
	return &Snake{
		Size:    SnakeGridSize,
		Body:    []Cell{{X: 10, Y: 10}},
		Food:    Cell{X: 5, Y: 5},
		Dir:     Right,
		Paused:  true,
		heading: Right,
		rng:     rng,
	}
}

// Turn changes the heading for the next step. Reversing onto the last
// step's heading is refused.
func (s *Snake) Turn(d Direction) bool {
	if s.Over || d == s.heading.opposite() {
		return false
	}
	s.Dir = d
	return true
}

// TogglePause pauses or resumes the game.
func (s *Snake) TogglePause() {
	s.Paused = !s.Paused
}

// Step advances the snake by one cell. Running into its own body ends the
// game; eating food grows the snake and places new food.
func (s *Snake) Step() bool {
	if s.Paused || s.Over {
		return false
	}

	head := s.Body[0]
	switch s.Dir {
	case Up:
		head.Y = (head.Y - 1 + s.Size) % s.Size
	case Down:
		head.Y = (head.Y + 1) % s.Size
	case Left:
		head.X = (head.X - 1 + s.Size) % s.Size
	case Right:
		head.X = (head.X + 1) % s.Size
	}
	s.heading = s.Dir

	eats := head == s.Food
	body := s.Body
	if !eats {
		// The tail moves away this step, so the head may take its cell.
		body = body[:len(body)-1]
	}
	if Collides(body, head) {
		s.Over = true
		return true
	}

	s.Body = append([]Cell{head}, body...)
	if eats {
		s.Score++
		food, ok := s.freeCell()
		if !ok {
			s.Over = true
			return true
		}
		s.Food = food
	}
	return true
}

// Collides reports whether c is one of the body cells.
func Collides(body []Cell, c Cell) bool {
	for _, b := range body {
		if b == c {
			return true
		}
	}
	return false
}

func (s *Snake) freeCell() (Cell, bool) {
	free := make([]Cell, 0, s.Size*s.Size-len(s.Body))
	for y := 0; y < s.Size; y++ {
		for x := 0; x < s.Size; x++ {
			c := Cell{X: x, Y: y}
			if !Collides(s.Body, c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{}, false
	}
	return free[s.rng.Intn(len(free))], true
}
