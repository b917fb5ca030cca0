package games

import "strings"

// Game identifiers.
const (
	TicTacToeID = "tictactoe"
	MemoryID    = "memory"
	SnakeID     = "snake"
	PuzzleID    = "puzzle"
)

// Stats are the play statistics shown on a catalog card.
type Stats struct {
	Played   int    `json:"played"`
	Won      int    `json:"won"`
	BestTime string `json:"best_time,omitempty"`
}

// Info describes a game in the catalog.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Stats       Stats  `json:"stats"`
}

// Tab selects which part of the catalog is listed.
type Tab string

const (
	// TabAll lists every game.
	TabAll Tab = "all"
	// TabFavorites lists favorite games only.
	TabFavorites Tab = "favorites"
)

// Catalog returns the games offered by the Game Center.
func Catalog() []Info {
	return []Info{
		{
			ID:          TicTacToeID,
			Name:        "Tic Tac Toe",
			Description: "Classic game of X and O. Be the first to get three in a row!",
			Stats:       Stats{Played: 12, Won: 8, BestTime: "0:45"},
		},
		{
			ID:          MemoryID,
			Name:        "Memory Match",
			Description: "Find all matching pairs of cards in the fewest moves possible.",
			Stats:       Stats{Played: 8, Won: 6, BestTime: "1:23"},
		},
		{
			ID:          SnakeID,
			Name:        "Snake",
			Description: "Control the snake to eat food and grow without hitting the walls or yourself.",
			Stats:       Stats{Played: 15, Won: 0, BestTime: "3:47"},
		},
		{
			ID:          PuzzleID,
			Name:        "Puzzle",
			Description: "Slide the tiles to arrange them in the correct order.",
			Stats:       Stats{Played: 5, Won: 3, BestTime: "2:15"},
		},
	}
}

// Filter returns the games whose name or description contains query
// (case-insensitive) and, on the favorites tab, whose id isFavorite accepts.
func Filter(games []Info, query string, tab Tab, isFavorite func(id string) bool) []Info {
	q := strings.ToLower(query)
	out := make([]Info, 0, len(games))
	for _, g := range games {
		if q != "" &&
			!strings.Contains(strings.ToLower(g.Name), q) &&
			!strings.Contains(strings.ToLower(g.Description), q) {
			continue
		}
		if tab == TabFavorites && (isFavorite == nil || !isFavorite(g.ID)) {
			continue
		}
		out = append(out, g)
	}
	return out
}
