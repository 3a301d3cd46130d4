package engine

import (
	"errors"
	"fmt"
	"time"

	"multiagent/agent"
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/meta"

	"github.com/rs/zerolog/log"
)

// Observer is called after every move with the resulting state.
type Observer func(step, agent int, action game.Action, state *game.GridState)

type Option func(e *Local)

type Local struct {
	state    *game.GridState
	agents   []agent.Agent
	maxMoves int
	seed     uint64
	observer Observer
}

func WithMaxMoves(maxMoves int) Option {
	return func(e *Local) {
		if maxMoves > 0 {
			e.maxMoves = maxMoves
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(e *Local) {
		e.observer = observer
	}
}

// WithSeed records the seed the game was generated from in its metric.
func WithSeed(seed uint64) Option {
	return func(e *Local) {
		e.seed = seed
	}
}

// LocalEngine plays agents[i] as agent i of the game.
func LocalEngine(agents []agent.Agent, state *game.GridState, options ...Option) *Local {
	if len(agents) != state.NumAgents() {
		panic("number of agents does not match number of agents in the game")
	}

	e := &Local{
		state:    state,
		agents:   agents,
		maxMoves: meta.MAX_MOVES,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Local) State() *game.GridState {
	return e.state
}

// Run executes the entire game loop until the game is over.
func (e *Local) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	startTime := time.Now()
	log.Info().Msgf("starting game with %d agents", len(e.agents))

	moves := 0
	var moveMetrics []metrics.MoveMetric
	current := game.Controlled
	for !e.state.IsWin() && !e.state.IsLose() && moves < e.maxMoves {
		action, metric, err := e.agents[current].FindMove(e.state)
		if err != nil {
			if current != game.Controlled && errors.Is(err, game.ErrNoLegalActions) {
				log.Debug().Int("agent", current).Msg("no legal action, passing")
				current = e.next(current)
				continue
			}
			return metrics.GameMetric{}, moveMetrics, fmt.Errorf("agent %d at move %d: %w", current, moves+1, err)
		}

		next, err := e.state.Successor(current, action)
		if err != nil {
			return metrics.GameMetric{}, moveMetrics, fmt.Errorf("agent %d at move %d: %w", current, moves+1, err)
		}
		e.state = next.(*game.GridState)
		moves++

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         moves,
			Agent:        current,
			SearchMetric: metric,
		})
		if e.observer != nil {
			e.observer(moves, current, action, e.state)
		}
		current = e.next(current)
	}

	outcome := Timeout
	if e.state.IsWin() {
		outcome = Win
	} else if e.state.IsLose() {
		outcome = Lose
	}
	endTime := time.Now()
	log.Info().Msgf("game over after %d moves: %s with score %.0f", moves, outcome, e.state.Score())

	return metrics.GameMetric{
		Seed:       e.seed,
		Outcome:    outcome,
		Score:      e.state.Score(),
		StartTime:  startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(startTime),
		TotalMoves: moves,
	}, moveMetrics, nil
}

func (e *Local) next(current int) int {
	return (current + 1) % len(e.agents)
}
