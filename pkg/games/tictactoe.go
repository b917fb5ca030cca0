package games

// Mark is the content of a tic-tac-toe cell.
type Mark string

// Marks and results.
const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
	Draw  Mark = "draw"
)

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// TicTacToe is a 3x3 game where X moves first.
type TicTacToe struct {
	Board [9]Mark `json:"board"`
	Next  Mark    `json:"next"`
}

// NewTicTacToe returns an empty board with X to move.
func NewTicTacToe() *TicTacToe {
	return &TicTacToe{Next: X}
}

// Play marks cell i for the player to move. Occupied cells, out-of-range
// cells and finished games are ignored; the return value reports whether
// the move was made.
func (g *TicTacToe) Play(i int) bool {
	if i < 0 || i >= len(g.Board) || g.Board[i] != Empty || g.Winner() != Empty {
		return false
	}
	g.Board[i] = g.Next
	if g.Next == X {
		g.Next = O
	} else {
		g.Next = X
	}
	return true
}

// Winner returns X or O for a completed line, Draw for a full board and
// Empty while the game is still running.
func (g *TicTacToe) Winner() Mark {
	for _, l := range lines {
		a := g.Board[l[0]]
		if a != Empty && a == g.Board[l[1]] && a == g.Board[l[2]] {
			return a
		}
	}
	for _, c := range g.Board {
		if c == Empty {
			return Empty
		}
	}
	return Draw
}

// Reset clears the board.
func (g *TicTacToe) Reset() {
	*g = TicTacToe{Next: X}
}
