package agent

import (
	"errors"
	"fmt"
	"time"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher"

	"golang.org/x/exp/rand"
)

var ErrUnknownAgent = errors.New("unknown agent")

type Agent interface {
	// FindMove returns the agent's action and performance metrics (if collected) from choosing it
	FindMove(state game.State) (game.Action, metrics.SearchMetric, error)
}

type searchAgent struct {
	searcher *searcher.Searcher
}

func (a *searchAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	result, err := a.searcher.Search(state)
	if err != nil {
		return "", metrics.SearchMetric{}, err
	}
	return result.Action, result.Metric, nil
}

type reflexAgent struct {
	reflex *searcher.Reflex
}

func (a *reflexAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	start := time.Now()
	action, err := a.reflex.FindNextMove(state)
	if err != nil {
		return "", metrics.SearchMetric{}, err
	}
	return action, metrics.SearchMetric{Strategy: "reflex", Depth: 1, Duration: time.Since(start)}, nil
}

// NewPacman builds the controlled agent. Strategy is reflex or a search
// strategy name; depth and evaluation only apply to search strategies.
func NewPacman(strategy string, depth int, evaluation string, rng *rand.Rand) (Agent, error) {
	if strategy == "reflex" {
		return &reflexAgent{reflex: searcher.NewReflex(rng)}, nil
	}

	s, err := searcher.ParseStrategy(strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownAgent, err)
	}
	if depth <= 0 {
		return nil, fmt.Errorf("%s agent with depth %d: %w", strategy, depth, searcher.ErrInvalidDepth)
	}
	evaluate, err := game.LookupEvaluation(evaluation)
	if err != nil {
		return nil, err
	}

	return &searchAgent{
		searcher: searcher.NewSearcher(s,
			searcher.WithDepth(depth),
			searcher.WithEvaluationFn(evaluate),
			searcher.WithMetrics(),
		),
	}, nil
}
