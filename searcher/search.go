package searcher

import (
	"errors"
	"fmt"
	"math"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/meta"

	"github.com/rs/zerolog/log"
)

var ErrInvalidDepth = errors.New("invalid search depth")

// window holds the alpha-beta bounds. It is passed by value so a node's
// updates never leak to its siblings.
type window struct {
	alpha float64 // Best value the maximizer can already guarantee
	beta  float64 // Best value a minimizer can already guarantee
}

var fullWindow = window{alpha: math.Inf(-1), beta: math.Inf(1)}

type tree struct {
	strategy Strategy
	limit    int
	evaluate game.Evaluate
	agents   int
	metrics  metrics.Collector
}

// rotate returns the agent to move after agent, incrementing the depth
// when a full round has been played.
func (t *tree) rotate(agent, depth int) (int, int) {
	next := agent + 1
	if next == t.agents {
		return 0, depth + 1
	}
	return next, depth
}

func (t *tree) evaluation(state game.State) float64 {
	t.metrics.AddEvaluation()
	return t.evaluate(state)
}

func (t *tree) value(agent, depth int, state game.State, w window) (float64, error) {
	t.metrics.AddNode()
	if agent < 0 || agent >= t.agents {
		return 0, fmt.Errorf("agent %d of %d: %w", agent, t.agents, game.ErrInvalidAgent)
	}

	if state.IsWin() || state.IsLose() || depth >= t.limit {
		return t.evaluation(state), nil
	}
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return t.evaluation(state), nil
	}

	nextAgent, nextDepth := t.rotate(agent, depth)
	expanded := 0
	child := func(i int, w window) (float64, error) {
		expanded++
		successor, err := state.Successor(agent, actions[i])
		if err != nil {
			return 0, fmt.Errorf("agent %d playing %s: %w", agent, actions[i], err)
		}
		return t.value(nextAgent, nextDepth, successor, w)
	}

	var v float64
	var err error
	if agent == game.Controlled {
		v, err = t.strategy.decide(len(actions), w, child)
	} else {
		v, err = t.strategy.respond(len(actions), w, child)
	}
	if err != nil {
		return 0, err
	}
	t.metrics.AddPrunes(len(actions) - expanded)
	return v, nil
}

type Option func(s *Searcher)

// Searcher chooses actions for agent 0. It holds configuration only, so one
// Searcher may serve any number of states.
type Searcher struct {
	strategy Strategy
	depth    int
	evaluate game.Evaluate
	metrics  bool
}

type Result struct {
	Action     game.Action
	Value      float64
	Candidates []ActionValue // Root actions in legal order; alpha-beta values may be bounds
	Metric     metrics.SearchMetric
}

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = true
	}
}

func NewSearcher(strategy Strategy, options ...Option) *Searcher {
	if strategy == nil {
		panic("Must specify a search strategy")
	}
	s := &Searcher{ // Default values
		strategy: strategy,
		depth:    meta.DEPTH,
		evaluate: game.EvaluateScore,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) Strategy() Strategy {
	return s.strategy
}

func (s *Searcher) Depth() int {
	return s.depth
}

func (s *Searcher) newTree(state game.State) *tree {
	collector := metrics.NewDummyCollector()
	if s.metrics {
		collector = metrics.NewCollector()
	}
	return &tree{
		strategy: s.strategy,
		limit:    s.depth,
		evaluate: s.evaluate,
		agents:   state.NumAgents(),
		metrics:  collector,
	}
}

// Search values every legal action of agent 0 and picks one with the
// strategy's tie-break.
func (s *Searcher) Search(state game.State) (Result, error) {
	actions := state.LegalActions(game.Controlled)
	if len(actions) == 0 {
		return Result{}, fmt.Errorf("%s search: %w", s.strategy, game.ErrNoLegalActions)
	}

	t := s.newTree(state)
	t.metrics.Start(s.strategy.String(), s.depth)
	t.metrics.AddNode()

	// Agent 0's own move is already taken by the successor
	agent, depth := t.rotate(game.Controlled, 0)
	w := fullWindow
	candidates := make([]ActionValue, 0, len(actions))
	for _, action := range actions {
		successor, err := state.Successor(game.Controlled, action)
		if err != nil {
			return Result{}, fmt.Errorf("%s search playing %s: %w", s.strategy, action, err)
		}
		v, err := t.value(agent, depth, successor, w)
		if err != nil {
			return Result{}, fmt.Errorf("%s search: %w", s.strategy, err)
		}
		candidates = append(candidates, ActionValue{Action: action, Value: v})
		w.alpha = max(w.alpha, v)
	}

	best := s.strategy.tieBreak()(candidates)
	metric := t.metrics.Complete()
	log.Debug().
		Str("strategy", s.strategy.String()).
		Int("depth", s.depth).
		Str("action", string(best.Action)).
		Float64("value", best.Value).
		Int("nodes", metric.Nodes).
		Int("prunes", metric.Prunes).
		Msg("search complete")

	return Result{
		Action:     best.Action,
		Value:      best.Value,
		Candidates: candidates,
		Metric:     metric,
	}, nil
}

func (s *Searcher) FindNextMove(state game.State) (game.Action, error) {
	result, err := s.Search(state)
	if err != nil {
		return "", err
	}
	return result.Action, nil
}

// Value returns the value of state when agent is about to move with depth
// full rounds already played.
func (s *Searcher) Value(state game.State, agent, depth int) (float64, error) {
	if depth < 0 || depth > s.depth {
		return 0, fmt.Errorf("depth %d outside [0, %d]: %w", depth, s.depth, ErrInvalidDepth)
	}
	return s.newTree(state).value(agent, depth, state, fullWindow)
}
