package agent

import (
	"fmt"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"golang.org/x/exp/rand"
)

const (
	attackProbability = 0.8
	fleeProbability   = 0.8
)

type randomGhost struct {
	index int
	rng   *rand.Rand
}

func (g *randomGhost) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions(g.index)
	if len(actions) == 0 {
		return "", metrics.SearchMetric{}, fmt.Errorf("ghost %d: %w", g.index, game.ErrNoLegalActions)
	}
	return actions[g.rng.Intn(len(actions))], metrics.SearchMetric{Strategy: "random"}, nil
}

// directionalGhost moves towards the controlled agent, or away from it while
// scared, with some probability and uniformly at random otherwise.
type directionalGhost struct {
	index  int
	rng    *rand.Rand
	attack float64
	flee   float64
}

func (g *directionalGhost) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	metric := metrics.SearchMetric{Strategy: "directional"}
	actions := state.LegalActions(g.index)
	if len(actions) == 0 {
		return "", metric, fmt.Errorf("ghost %d: %w", g.index, game.ErrNoLegalActions)
	}

	f, ok := state.(game.Features)
	if !ok {
		panic("unexpected state type")
	}
	ghost := f.Ghosts()[g.index-1]
	pacman := f.PacmanPosition()

	var best []game.Action
	bestDistance := 0
	for _, action := range actions {
		d := game.ManhattanDistance(ghost.Position.Add(game.Vector(action)), pacman)
		if ghost.Scared() {
			d = -d
		}
		switch {
		case len(best) == 0 || d < bestDistance:
			best = []game.Action{action}
			bestDistance = d
		case d == bestDistance:
			best = append(best, action)
		}
	}

	p := g.attack
	if ghost.Scared() {
		p = g.flee
	}
	if g.rng.Float64() < p {
		return best[g.rng.Intn(len(best))], metric, nil
	}
	return actions[g.rng.Intn(len(actions))], metric, nil
}

// NewGhost builds the adversary playing as agent index.
func NewGhost(kind string, index int, rng *rand.Rand) (Agent, error) {
	if index < 1 {
		return nil, fmt.Errorf("ghost index %d: %w", index, game.ErrInvalidAgent)
	}
	switch kind {
	case "random":
		return &randomGhost{index: index, rng: rng}, nil
	case "directional":
		return &directionalGhost{index: index, rng: rng, attack: attackProbability, flee: fleeProbability}, nil
	default:
		return nil, fmt.Errorf("%w: ghost %q", ErrUnknownAgent, kind)
	}
}
