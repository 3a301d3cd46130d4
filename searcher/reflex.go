package searcher

import (
	"fmt"

	"multiagent/game"

	"golang.org/x/exp/rand"
)

// Reflex looks a single ply ahead and scores each successor with
// game.EvaluateReflex, ignoring how adversaries would respond.
type Reflex struct {
	rng *rand.Rand
}

func NewReflex(rng *rand.Rand) *Reflex {
	if rng == nil {
		panic("Must specify a random source")
	}
	return &Reflex{rng: rng}
}

// FindNextMove returns a uniformly random action among the best scored.
func (r *Reflex) FindNextMove(state game.State) (game.Action, error) {
	actions := state.LegalActions(game.Controlled)
	if len(actions) == 0 {
		return "", fmt.Errorf("reflex: %w", game.ErrNoLegalActions)
	}

	var best []game.Action
	bestScore := 0.0
	for _, action := range actions {
		successor, err := state.Successor(game.Controlled, action)
		if err != nil {
			return "", fmt.Errorf("reflex playing %s: %w", action, err)
		}
		score := game.EvaluateReflex(successor)
		switch {
		case len(best) == 0 || score > bestScore:
			best = []game.Action{action}
			bestScore = score
		case score == bestScore:
			best = append(best, action)
		}
	}
	return best[r.rng.Intn(len(best))], nil
}
