package searcher

import (
	"fmt"

	"multiagent/game"

	"golang.org/x/exp/rand"
)

// mockState is an explicit game tree. Every agent sees the same actions at
// a node, so the tree shape alone decides who moves where.
type mockState struct {
	agents   int
	score    float64
	win      bool
	lose     bool
	actions  []game.Action
	children map[game.Action]*mockState
}

func (s *mockState) LegalActions(agent int) []game.Action {
	return s.actions
}

func (s *mockState) Successor(agent int, action game.Action) (game.State, error) {
	child, ok := s.children[action]
	if !ok {
		return nil, game.ErrIllegalAction
	}
	return child, nil
}

func (s *mockState) IsWin() bool {
	return s.win
}

func (s *mockState) IsLose() bool {
	return s.lose
}

func (s *mockState) NumAgents() int {
	return s.agents
}

func (s *mockState) Score() float64 {
	return s.score
}

func leaf(score float64) *mockState {
	return &mockState{score: score}
}

// node builds an inner node whose actions are named a0, a1, ...
func node(children ...*mockState) *mockState {
	s := &mockState{children: make(map[game.Action]*mockState, len(children))}
	for i, child := range children {
		action := game.Action(fmt.Sprintf("a%d", i))
		s.actions = append(s.actions, action)
		s.children[action] = child
	}
	return s
}

func root(agents int, children ...*mockState) *mockState {
	s := node(children...)
	s.agents = agents
	return s
}

// randomTree builds a tree of at most plies levels below it, with small
// integer scores so ties are common.
func randomTree(rng *rand.Rand, plies int) *mockState {
	s := leaf(float64(rng.Intn(10)))
	if plies == 0 {
		return s
	}
	switch rng.Intn(12) {
	case 0:
		s.win = true
		return s
	case 1:
		s.lose = true
		return s
	case 2: // No legal actions
		return s
	}

	children := make([]*mockState, 1+rng.Intn(3))
	for i := range children {
		children[i] = randomTree(rng, plies-1)
	}
	n := node(children...)
	n.score = s.score
	return n
}

func randomRoot(rng *rand.Rand, agents, depth int) *mockState {
	children := make([]*mockState, 2+rng.Intn(3))
	for i := range children {
		children[i] = randomTree(rng, agents*depth-1)
	}
	return root(agents, children...)
}
