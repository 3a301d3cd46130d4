package searcher

import (
	"math"
	"testing"

	"multiagent/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func search(t *testing.T, strategy Strategy, depth int, state game.State) Result {
	t.Helper()
	result, err := NewSearcher(strategy, WithDepth(depth), WithMetrics()).Search(state)
	require.NoError(t, err)
	return result
}

func TestRotate(t *testing.T) {
	t.Run("advancing through adversaries within a round", func(t *testing.T) {
		tr := &tree{agents: 3}
		agent, depth := tr.rotate(0, 0)
		require.Equal(t, 1, agent)
		require.Equal(t, 0, depth)

		agent, depth = tr.rotate(1, 0)
		require.Equal(t, 2, agent)
		require.Equal(t, 0, depth)
	})

	t.Run("wrapping to agent 0 increments depth", func(t *testing.T) {
		tr := &tree{agents: 3}
		agent, depth := tr.rotate(2, 1)
		require.Equal(t, 0, agent)
		require.Equal(t, 2, depth)
	})

	t.Run("single agent game", func(t *testing.T) {
		tr := &tree{agents: 1}
		agent, depth := tr.rotate(0, 0)
		require.Equal(t, 0, agent)
		require.Equal(t, 1, depth)
	})
}

func TestMinimax(t *testing.T) {
	t.Run("maximizing over the adversary's minimum", func(t *testing.T) {
		state := root(2,
			node(leaf(3), leaf(12), leaf(8)),
			node(leaf(2), leaf(4), leaf(6)),
			node(leaf(14), leaf(5), leaf(2)),
		)

		result := search(t, Minimax, 1, state)

		require.Equal(t, game.Action("a0"), result.Action)
		require.Equal(t, 3.0, result.Value)
		require.Equal(t, []ActionValue{{"a0", 3}, {"a1", 2}, {"a2", 2}}, result.Candidates)
		require.Equal(t, 13, result.Metric.Nodes, "Should count the root, 3 adversary nodes and 9 leaves")
		require.Equal(t, 9, result.Metric.Evaluations)
		require.Zero(t, result.Metric.Prunes)
	})

	t.Run("two adversaries move before depth increments", func(t *testing.T) {
		state := root(3,
			node(node(leaf(1), leaf(9)), node(leaf(7))),
			node(node(leaf(4)), node(leaf(5), leaf(6))),
		)

		result := search(t, Minimax, 1, state)

		require.Equal(t, game.Action("a1"), result.Action)
		require.Equal(t, 4.0, result.Value)
	})

	t.Run("single agent game searches depth rounds of its own moves", func(t *testing.T) {
		state := root(1,
			node(leaf(1), leaf(7)),
			node(leaf(5)),
		)

		result := search(t, Minimax, 2, state)

		require.Equal(t, game.Action("a0"), result.Action)
		require.Equal(t, 7.0, result.Value)
	})

	t.Run("first maximal action wins ties", func(t *testing.T) {
		state := root(2, node(leaf(1)), node(leaf(3)), node(leaf(3)))

		result := search(t, Minimax, 1, state)

		require.Equal(t, game.Action("a1"), result.Action)
	})
}

func TestAlphaBeta(t *testing.T) {
	t.Run("pruning a branch that cannot beat alpha", func(t *testing.T) {
		state := root(2,
			node(leaf(3), leaf(5)),
			node(leaf(1), leaf(9)),
		)

		minimax := search(t, Minimax, 1, state)
		alphaBeta := search(t, AlphaBeta, 1, state)

		require.Equal(t, minimax.Action, alphaBeta.Action)
		require.Equal(t, 3.0, alphaBeta.Value)
		require.Equal(t, 7, minimax.Metric.Nodes)
		require.Equal(t, 6, alphaBeta.Metric.Nodes, "Should skip the leaf worth 9")
		require.Equal(t, 1, alphaBeta.Metric.Prunes)
		require.Equal(t, 1.0, alphaBeta.Candidates[1].Value, "Should report the pruned branch's bound")
	})

	t.Run("equal to minimax on random trees", func(t *testing.T) {
		for seed := uint64(1); seed <= 300; seed++ {
			rng := rand.New(rand.NewSource(seed))
			agents := 1 + rng.Intn(3)
			depth := 1 + rng.Intn(3)
			state := randomRoot(rng, agents, depth)

			minimax := search(t, Minimax, depth, state)
			alphaBeta := search(t, AlphaBeta, depth, state)

			require.Equal(t, minimax.Action, alphaBeta.Action, "seed %d", seed)
			require.Equal(t, minimax.Value, alphaBeta.Value, "seed %d", seed)
			require.LessOrEqual(t, alphaBeta.Metric.Nodes, minimax.Metric.Nodes, "seed %d", seed)
		}
	})

	t.Run("pruning happens on some random tree", func(t *testing.T) {
		pruned := false
		for seed := uint64(1); seed <= 100 && !pruned; seed++ {
			rng := rand.New(rand.NewSource(seed))
			state := randomRoot(rng, 2, 2)
			pruned = search(t, AlphaBeta, 2, state).Metric.Prunes > 0
		}
		require.True(t, pruned)
	})
}

func TestExpectimax(t *testing.T) {
	t.Run("valuing a chance node at the mean", func(t *testing.T) {
		state := root(2,
			node(leaf(0), leaf(10)),
			node(leaf(4), leaf(4)),
		)

		expectimax := search(t, Expectimax, 1, state)
		minimax := search(t, Minimax, 1, state)

		require.Equal(t, game.Action("a0"), expectimax.Action)
		require.Equal(t, 5.0, expectimax.Value)
		require.Equal(t, game.Action("a1"), minimax.Action)
		require.Equal(t, 4.0, minimax.Value)
	})
}

func TestDepth(t *testing.T) {
	// a0 looks better after one round but loses in the next
	state := root(2,
		node(&mockState{score: 10, actions: []game.Action{"a0"}, children: map[game.Action]*mockState{
			"a0": node(leaf(-500)),
		}}),
		node(&mockState{score: 5, actions: []game.Action{"a0"}, children: map[game.Action]*mockState{
			"a0": node(leaf(5)),
		}}),
	)

	shallow := search(t, Minimax, 1, state)
	deep := search(t, Minimax, 2, state)

	require.Equal(t, game.Action("a0"), shallow.Action)
	require.Equal(t, 10.0, shallow.Value)
	require.Equal(t, game.Action("a1"), deep.Action)
	require.Equal(t, 5.0, deep.Value)
	require.GreaterOrEqual(t, deep.Metric.Nodes, shallow.Metric.Nodes)

	t.Run("node count never decreases with depth", func(t *testing.T) {
		for seed := uint64(1); seed <= 50; seed++ {
			rng := rand.New(rand.NewSource(seed))
			state := randomRoot(rng, 2, 3)
			for depth := 1; depth < 3; depth++ {
				shallow := search(t, Minimax, depth, state)
				deep := search(t, Minimax, depth+1, state)
				require.GreaterOrEqual(t, deep.Metric.Nodes, shallow.Metric.Nodes, "seed %d depth %d", seed, depth)
			}
		}
	})
}

func TestCutoffs(t *testing.T) {
	t.Run("cornered adversary is evaluated in place", func(t *testing.T) {
		cornered := leaf(7)
		state := root(2, cornered)

		for _, strategy := range []Strategy{Minimax, AlphaBeta, Expectimax} {
			result := search(t, strategy, 2, state)
			require.Equal(t, 7.0, result.Value, strategy.String())
			require.Equal(t, 1, result.Metric.Evaluations, strategy.String())
		}
	})

	t.Run("terminal states are not expanded", func(t *testing.T) {
		won := node(leaf(-100))
		won.win = true
		won.score = 50
		lost := node(leaf(100))
		lost.lose = true
		lost.score = -50
		state := root(2, won, lost)

		result := search(t, Minimax, 3, state)

		require.Equal(t, game.Action("a0"), result.Action)
		require.Equal(t, 50.0, result.Value)
		require.Equal(t, 3, result.Metric.Nodes)
	})

	t.Run("evaluation function is configurable", func(t *testing.T) {
		state := root(2, node(leaf(1)), node(leaf(2)))
		negate := func(s game.State) float64 { return -s.(*mockState).Score() }

		result, err := NewSearcher(Minimax, WithDepth(1), WithEvaluationFn(negate)).Search(state)

		require.NoError(t, err)
		require.Equal(t, game.Action("a0"), result.Action)
		require.Equal(t, -1.0, result.Value)
	})
}

func TestSearchErrors(t *testing.T) {
	t.Run("no legal root actions", func(t *testing.T) {
		state := root(2)

		_, err := NewSearcher(AlphaBeta).Search(state)

		require.ErrorIs(t, err, game.ErrNoLegalActions)
	})

	t.Run("successor failures propagate", func(t *testing.T) {
		broken := node(leaf(1))
		delete(broken.children, "a0")
		state := root(2, broken)

		for _, strategy := range []Strategy{Minimax, AlphaBeta, Expectimax} {
			_, err := NewSearcher(strategy).FindNextMove(state)
			require.ErrorIs(t, err, game.ErrIllegalAction, strategy.String())
		}
	})

	t.Run("metrics are empty unless requested", func(t *testing.T) {
		state := root(2, node(leaf(1)))

		result, err := NewSearcher(Minimax).Search(state)

		require.NoError(t, err)
		require.Equal(t, 0, result.Metric.Nodes)
	})
}

func TestValue(t *testing.T) {
	state := root(2, node(leaf(3), leaf(1)), node(leaf(2)))
	state.score = 99
	searcher := NewSearcher(Minimax, WithDepth(1))

	t.Run("valuing an inner node", func(t *testing.T) {
		inner := state.children["a0"]
		inner.agents = 2

		v, err := searcher.Value(inner, 1, 0)
		require.NoError(t, err)
		require.Equal(t, 1.0, v)
	})

	t.Run("node at the depth limit is evaluated", func(t *testing.T) {
		v, err := searcher.Value(state, 0, 1)
		require.NoError(t, err)
		require.Equal(t, 99.0, v)
	})

	t.Run("rejecting malformed invocations", func(t *testing.T) {
		_, err := searcher.Value(state, 2, 0)
		require.ErrorIs(t, err, game.ErrInvalidAgent)

		_, err = searcher.Value(state, -1, 0)
		require.ErrorIs(t, err, game.ErrInvalidAgent)

		_, err = searcher.Value(state, 0, 2)
		require.ErrorIs(t, err, ErrInvalidDepth)

		_, err = searcher.Value(state, 0, -1)
		require.ErrorIs(t, err, ErrInvalidDepth)
	})
}

func TestTieBreak(t *testing.T) {
	candidates := []ActionValue{{"a", 1}, {"b", 3}, {"c", 3}, {"d", 2}}

	assert.Equal(t, game.Action("b"), FirstImprovement(candidates).Action)
	assert.Equal(t, game.Action("b"), MaxByValue(candidates).Action)

	infinite := []ActionValue{{"a", math.Inf(-1)}, {"b", math.Inf(-1)}}
	assert.Equal(t, game.Action("a"), FirstImprovement(infinite).Action)
	assert.Equal(t, game.Action("a"), MaxByValue(infinite).Action)
}

func TestParseStrategy(t *testing.T) {
	for name, want := range map[string]Strategy{
		"minimax":        Minimax,
		"AlphaBeta":      AlphaBeta,
		"alpha-beta":     AlphaBeta,
		"expectimax":     Expectimax,
		"MinimaxAgent":   Minimax,
		"AlphaBetaAgent": AlphaBeta,
	} {
		got, err := ParseStrategy(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := ParseStrategy("mcts")
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestGridSearch(t *testing.T) {
	evaluations := map[string]game.Evaluate{"score": game.EvaluateScore, "better": game.EvaluateBetter}
	for name, evaluate := range evaluations {
		t.Run(name, func(t *testing.T) {
			for seed := uint64(1); seed <= 25; seed++ {
				rng := rand.New(rand.NewSource(seed))
				state, err := game.RandomState(5, 5, 3, 1, nil, rng)
				require.NoError(t, err)
				legal := state.LegalActions(game.Controlled)

				results := make(map[Strategy]Result)
				for _, strategy := range []Strategy{Minimax, AlphaBeta, Expectimax} {
					result, err := NewSearcher(strategy, WithDepth(2), WithEvaluationFn(evaluate)).Search(state)
					require.NoError(t, err)
					require.Contains(t, legal, result.Action, "seed %d %s", seed, strategy)
					results[strategy] = result
				}

				require.Equal(t, results[Minimax].Action, results[AlphaBeta].Action, "seed %d", seed)
				require.Equal(t, results[Minimax].Value, results[AlphaBeta].Value, "seed %d", seed)
			}
		})
	}
}
