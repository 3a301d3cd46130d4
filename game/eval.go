package game

import "fmt"

// Weights tune the blend of EvaluateBetter.
type Weights struct {
	Food         float64 // Per unit of distance to the nearest food
	FoodCount    float64 // Per remaining food
	Ghost        float64 // Over the distance to a harmless nearest ghost
	Danger       float64 // Flat penalty for a threatening ghost within DangerRadius
	DangerRadius int     // 0 disables the penalty
	Capsule      float64 // Over the distance to the nearest capsule
	Scared       float64 // Per scared move left, summed over ghosts
}

var DefaultWeights = Weights{
	Food:         1.5,
	FoodCount:    4,
	Ghost:        1,
	Danger:       10,
	DangerRadius: 1,
	Capsule:      1.5,
	Scared:       1,
}

// reflexGhostPenalty overrides the ghost term of EvaluateReflex when a ghost
// is adjacent.
const reflexGhostPenalty = -10

// EvaluateScore returns the intrinsic score of the state.
func EvaluateScore(s State) float64 {
	scorer, ok := s.(Scorer)
	if !ok {
		panic("unexpected state type")
	}
	return scorer.Score()
}

// EvaluateBetter blends progress, risk and opportunity with DefaultWeights.
var EvaluateBetter = NewBetterEvaluation(DefaultWeights)

// NewBetterEvaluation adds to the state score: a penalty on the distance to
// the nearest food and on the food left, a ghost term (see Weights), a bonus
// for a close capsule and a bonus for the time ghosts stay scared. Missing
// food, ghosts or capsules contribute nothing.
func NewBetterEvaluation(w Weights) Evaluate {
	return func(s State) float64 {
		f := features(s)
		pacman := f.PacmanPosition()
		score := f.Score()

		food := f.Food()
		if d, ok := nearest(pacman, food); ok {
			score -= w.Food * float64(d)
		}
		score -= w.FoodCount * float64(len(food))

		ghosts := f.Ghosts()
		score += w.ghostScore(pacman, ghosts)

		if d, ok := nearest(pacman, f.Capsules()); ok {
			score += inverse(w.Capsule, d)
		}

		scared := 0
		for _, ghost := range ghosts {
			scared += ghost.ScaredTimer
		}
		score += w.Scared * float64(scared)

		return score
	}
}

func (w Weights) ghostScore(pacman Position, ghosts []Ghost) float64 {
	ghost, d, ok := nearestGhost(pacman, ghosts)
	if !ok {
		return 0
	}
	if w.DangerRadius > 0 && !ghost.Scared() && d <= w.DangerRadius {
		return -w.Danger
	}
	return inverse(w.Ghost, d)
}

// EvaluateReflex scores a successor for the one-ply reflex policy: the
// reciprocal distance to the nearest food minus the reciprocal distance to
// the nearest ghost, with a hard penalty when a ghost is adjacent.
func EvaluateReflex(s State) float64 {
	f := features(s)
	pacman := f.PacmanPosition()
	score := f.Score()

	if d, ok := nearest(pacman, f.Food()); ok {
		score += inverse(1, d)
	}

	ghosts := f.Ghosts()
	positions := make([]Position, len(ghosts))
	for i, ghost := range ghosts {
		positions[i] = ghost.Position
	}
	if d, ok := nearest(pacman, positions); ok {
		if d <= 1 {
			score += reflexGhostPenalty
		} else {
			score -= inverse(1, d)
		}
	}

	return score
}

var evaluations = map[string]Evaluate{
	"score":                    EvaluateScore,
	"scoreEvaluationFunction":  EvaluateScore,
	"better":                   EvaluateBetter,
	"betterEvaluationFunction": EvaluateBetter,
}

// LookupEvaluation resolves an evaluation function by name.
func LookupEvaluation(name string) (Evaluate, error) {
	evaluate, ok := evaluations[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownEvaluation)
	}
	return evaluate, nil
}

func features(s State) Features {
	f, ok := s.(Features)
	if !ok {
		panic("unexpected state type")
	}
	return f
}

// nearest returns the smallest distance from p to any target, false if there
// are no targets.
func nearest(p Position, targets []Position) (int, bool) {
	if len(targets) == 0 {
		return 0, false
	}
	best := ManhattanDistance(p, targets[0])
	for _, target := range targets[1:] {
		best = min(best, ManhattanDistance(p, target))
	}
	return best, true
}

// nearestGhost prefers a threatening ghost among equally close ones.
func nearestGhost(p Position, ghosts []Ghost) (Ghost, int, bool) {
	if len(ghosts) == 0 {
		return Ghost{}, 0, false
	}
	closest := ghosts[0]
	best := ManhattanDistance(p, closest.Position)
	for _, ghost := range ghosts[1:] {
		d := ManhattanDistance(p, ghost.Position)
		if d < best || (d == best && closest.Scared() && !ghost.Scared()) {
			closest, best = ghost, d
		}
	}
	return closest, best, true
}

// inverse returns weight/d, or 0 when d is not positive.
func inverse(weight float64, d int) float64 {
	if d <= 0 {
		return 0
	}
	return weight / float64(d)
}
