/*
Package games implements the Game Center of the webdesk desktop: the game
catalog with favorites filtering and the rules of its four games.

Every game is a plain state value driven by explicit moves, so a front end
can render it however it likes. Randomness is injected through a
*rand.Rand so tests are deterministic. The memory game owns the only timer
in the package, its mismatch flip-back; Close cancels it.

Example usage:

	p := games.NewPuzzle(rand.New(rand.NewSource(1)))
	if p.Move(15) && p.Solved() {
		// won
	}
*/
package games
