package game

// Action identifies a move. Grid games use the Direction constants.
type Action string

// Controlled is the index of the agent the searchers play for. Every other
// index is an adversary, visited in increasing order within a round.
const Controlled = 0

// State should be immutable - operations on State always return a new copy
type State interface {
	// LegalActions returns the agent's actions in traversal order, possibly none.
	LegalActions(agent int) []Action
	Successor(agent int, action Action) (State, error)
	IsWin() bool
	IsLose() bool
	NumAgents() int
}

// Scorer exposes the intrinsic score of a state.
type Scorer interface {
	Score() float64
}

// Features are the state accessors read by the heuristic evaluation functions.
type Features interface {
	Scorer
	PacmanPosition() Position
	Food() []Position
	Ghosts() []Ghost
	Capsules() []Position
}

// Evaluates the game state to a score where higher is better for the
// controlled agent.
type Evaluate func(State) float64
