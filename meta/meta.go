// meta/meta.go
package meta

// DEPTH defines the default search depth in full rounds of agent moves.
const DEPTH = 2

// STRATEGY defines the default controlled agent.
const STRATEGY = "alphabeta"

// EVALUATION defines the default cutoff evaluation function.
const EVALUATION = "better"

// GHOST defines the default adversary behaviour.
const GHOST = "random"

// GAMES defines the number of games played by the CLI.
const GAMES = 1

// MAX_MOVES caps the number of single agent moves in one game.
const MAX_MOVES = 1000

// WIDTH, HEIGHT, FOOD and GHOSTS shape random layouts.
const (
	WIDTH  = 5
	HEIGHT = 5
	FOOD   = 3
	GHOSTS = 1
)
