package searcher

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"multiagent/game"
)

var ErrUnknownStrategy = errors.New("unknown search strategy")

type ActionValue struct {
	Action game.Action
	Value  float64
}

// TieBreak picks the chosen root action among the candidates, which are
// listed in legal action order.
type TieBreak func(candidates []ActionValue) ActionValue

// FirstImprovement keeps an action only when its value is strictly greater
// than every earlier one, so the first optimal action in traversal order
// wins. Alpha-beta relies on it: a pruned candidate's value is only a bound
// and must never displace an exact earlier value.
func FirstImprovement(candidates []ActionValue) ActionValue {
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Value > best.Value {
			best = candidate
		}
	}
	return best
}

// MaxByValue returns the first maximal candidate by value.
func MaxByValue(candidates []ActionValue) ActionValue {
	return slices.MaxFunc(candidates, func(a, b ActionValue) int {
		return cmp.Compare(a.Value, b.Value)
	})
}

// expand values the i-th child of a node inside the given window.
type expand func(i int, w window) (float64, error)

// Strategy computes node values for the shared traversal. Agent 0 nodes are
// decided, adversary nodes are responded to.
type Strategy interface {
	fmt.Stringer
	decide(n int, w window, child expand) (float64, error)
	respond(n int, w window, child expand) (float64, error)
	tieBreak() TieBreak
}

var (
	Minimax    Strategy = minimax{}
	AlphaBeta  Strategy = alphaBeta{}
	Expectimax Strategy = expectimax{}
)

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "minimax", "minimaxagent":
		return Minimax, nil
	case "alphabeta", "alpha-beta", "alphabetaagent":
		return AlphaBeta, nil
	case "expectimax", "expectimaxagent":
		return Expectimax, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
}

type minimax struct{}

func (minimax) String() string     { return "minimax" }
func (minimax) tieBreak() TieBreak { return MaxByValue }

func (minimax) decide(n int, w window, child expand) (float64, error) {
	v := math.Inf(-1)
	for i := 0; i < n; i++ {
		value, err := child(i, w)
		if err != nil {
			return 0, err
		}
		v = max(v, value)
	}
	return v, nil
}

func (minimax) respond(n int, w window, child expand) (float64, error) {
	v := math.Inf(1)
	for i := 0; i < n; i++ {
		value, err := child(i, w)
		if err != nil {
			return 0, err
		}
		v = min(v, value)
	}
	return v, nil
}

type alphaBeta struct{}

func (alphaBeta) String() string     { return "alphabeta" }
func (alphaBeta) tieBreak() TieBreak { return FirstImprovement }

func (alphaBeta) decide(n int, w window, child expand) (float64, error) {
	v := math.Inf(-1)
	for i := 0; i < n; i++ {
		value, err := child(i, w)
		if err != nil {
			return 0, err
		}
		v = max(v, value)
		if v > w.beta { // The minimizer above already has something better
			return v, nil
		}
		w.alpha = max(w.alpha, v)
	}
	return v, nil
}

func (alphaBeta) respond(n int, w window, child expand) (float64, error) {
	v := math.Inf(1)
	for i := 0; i < n; i++ {
		value, err := child(i, w)
		if err != nil {
			return 0, err
		}
		v = min(v, value)
		if v < w.alpha {
			return v, nil
		}
		w.beta = min(w.beta, v)
	}
	return v, nil
}

type expectimax struct{}

func (expectimax) String() string     { return "expectimax" }
func (expectimax) tieBreak() TieBreak { return MaxByValue }

func (expectimax) decide(n int, w window, child expand) (float64, error) {
	return minimax{}.decide(n, w, child)
}

// respond treats every legal action of the adversary as equally likely.
func (expectimax) respond(n int, w window, child expand) (float64, error) {
	sum := 0.0
	for i := 0; i < n; i++ {
		value, err := child(i, w)
		if err != nil {
			return 0, err
		}
		sum += value
	}
	return sum / float64(n), nil
}
