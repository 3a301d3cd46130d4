package engine

import "multiagent/experiments/metrics"

const (
	Win     = "win"
	Lose    = "lose"
	Timeout = "timeout"
)

type Engine interface {
	// Run plays a game till it is won or lost or a max number of moves is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
