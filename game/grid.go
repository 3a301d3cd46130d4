package game

import (
	"fmt"
	"slices"
	"strings"

	"multiagent/utils"
)

// Ghost is the state of one adversary.
type Ghost struct {
	Start       Position // Where the ghost respawns after being caught
	Position    Position
	ScaredTimer int // Remaining ghost moves while scared, 0 if not scared
}

func (g Ghost) Scared() bool {
	return g.ScaredTimer > 0
}

// GridState is a pursuit game on a grid: the controlled agent (index 0)
// collects food while ghosts (indices 1..n) chase it.
type GridState struct {
	layout   *Layout    // Static walls, shared by all states of a game
	rules    *Rules     // Shared, never modified
	pacman   Position   // Controlled agent position
	ghosts   []Ghost    // Indexed by agent index - 1
	food     []Position // Replaced, never modified in place
	capsules []Position // Replaced, never modified in place
	score    float64
	won      bool
	lost     bool
}

// NewGridState builds the initial state of a game on the given layout.
func NewGridState(layout *Layout, rules *Rules) *GridState {
	if rules == nil {
		rules = NewStandardRules()
	}
	ghosts := make([]Ghost, len(layout.Ghosts))
	for i, p := range layout.Ghosts {
		ghosts[i] = Ghost{Start: p, Position: p}
	}
	return &GridState{
		layout:   layout,
		rules:    rules,
		pacman:   layout.Pacman,
		ghosts:   ghosts,
		food:     slices.Clone(layout.Food),
		capsules: slices.Clone(layout.Capsules),
	}
}

func (gs GridState) Copy() *GridState {
	// Deep copy ghosts, the only slice updated in place
	ghostsCopy := make([]Ghost, len(gs.ghosts))
	copy(ghostsCopy, gs.ghosts)

	return &GridState{
		layout:   gs.layout,
		rules:    gs.rules,
		pacman:   gs.pacman,
		ghosts:   ghostsCopy,
		food:     gs.food,
		capsules: gs.capsules,
		score:    gs.score,
		won:      gs.won,
		lost:     gs.lost,
	}
}

func (gs *GridState) NumAgents() int {
	return 1 + len(gs.ghosts)
}

func (gs *GridState) IsWin() bool {
	return gs.won
}

func (gs *GridState) IsLose() bool {
	return gs.lost
}

// LegalActions returns the moves of an agent that do not run into a wall.
// Only the controlled agent may Stop. Finished games have no legal actions.
func (gs *GridState) LegalActions(agent int) []Action {
	if gs.won || gs.lost || agent < 0 || agent >= gs.NumAgents() {
		return nil
	}

	from := gs.position(agent)
	actions := []Action{}
	for _, direction := range Directions {
		if !gs.layout.IsWall(from.Add(Vector(direction))) {
			actions = append(actions, direction)
		}
	}
	if agent == Controlled {
		actions = append(actions, Stop)
	}
	return actions
}

func (gs *GridState) Successor(agent int, action Action) (State, error) {
	if agent < 0 || agent >= gs.NumAgents() {
		return nil, fmt.Errorf("%w: agent %d in a game of %d agents", ErrInvalidAgent, agent, gs.NumAgents())
	}
	if gs.won || gs.lost {
		return nil, ErrGameOver
	}
	if utils.FindIndex(gs.LegalActions(agent), action) < 0 {
		return nil, fmt.Errorf("%w: agent %d cannot play %s", ErrIllegalAction, agent, action)
	}

	next := gs.Copy()
	if agent == Controlled {
		next.movePacman(action)
	} else {
		next.moveGhost(agent-1, action)
	}
	next.checkCollisions()
	return next, nil
}

func (gs *GridState) movePacman(action Action) {
	gs.pacman = gs.pacman.Add(Vector(action))
	gs.score -= gs.rules.TimePenalty

	if i := utils.FindIndex(gs.food, gs.pacman); i >= 0 {
		gs.food = utils.Without(gs.food, i)
		gs.score += gs.rules.FoodScore
		if len(gs.food) == 0 {
			gs.won = true
			gs.score += gs.rules.WinBonus
		}
	}

	if i := utils.FindIndex(gs.capsules, gs.pacman); i >= 0 {
		gs.capsules = utils.Without(gs.capsules, i)
		for j := range gs.ghosts {
			gs.ghosts[j].ScaredTimer = gs.rules.ScaredTime
		}
	}
}

func (gs *GridState) moveGhost(i int, action Action) {
	ghost := &gs.ghosts[i]
	ghost.Position = ghost.Position.Add(Vector(action))
	if ghost.ScaredTimer > 0 {
		ghost.ScaredTimer--
	}
}

// checkCollisions resolves ghosts sharing the controlled agent's cell. A win
// on the same move takes precedence over being caught.
func (gs *GridState) checkCollisions() {
	for i := range gs.ghosts {
		ghost := &gs.ghosts[i]
		if ghost.Position != gs.pacman {
			continue
		}
		if ghost.Scared() {
			gs.score += gs.rules.GhostScore
			ghost.Position = ghost.Start
			ghost.ScaredTimer = 0
			continue
		}
		if !gs.won && !gs.lost {
			gs.lost = true
			gs.score -= gs.rules.LosePenalty
		}
	}
}

func (gs *GridState) position(agent int) Position {
	if agent == Controlled {
		return gs.pacman
	}
	return gs.ghosts[agent-1].Position
}

func (gs *GridState) Score() float64 {
	return gs.score
}

func (gs *GridState) PacmanPosition() Position {
	return gs.pacman
}

func (gs *GridState) Food() []Position {
	return slices.Clone(gs.food)
}

func (gs *GridState) Ghosts() []Ghost {
	return slices.Clone(gs.ghosts)
}

func (gs *GridState) Capsules() []Position {
	return slices.Clone(gs.capsules)
}

func (gs *GridState) Layout() *Layout {
	return gs.layout
}

// Cell returns the layout symbol shown at p, agents drawn over items. Scared
// ghosts are drawn as 'S'.
func (gs *GridState) Cell(p Position) rune {
	if gs.layout.IsWall(p) {
		return '%'
	}
	for _, ghost := range gs.ghosts {
		if ghost.Position == p {
			if ghost.Scared() {
				return 'S'
			}
			return 'G'
		}
	}
	switch {
	case gs.pacman == p:
		return 'P'
	case slices.Contains(gs.capsules, p):
		return 'o'
	case slices.Contains(gs.food, p):
		return '.'
	}
	return ' '
}

func (gs *GridState) String() string {
	var b strings.Builder
	for y := 0; y < gs.layout.Height; y++ {
		for x := 0; x < gs.layout.Width; x++ {
			b.WriteRune(gs.Cell(Position{X: x, Y: y}))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Score: %.0f\n", gs.score)
	return b.String()
}
