package experiments

import (
	"time"

	"multiagent/engine"
	"multiagent/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// Summary aggregates the games played by one agent config.
type Summary struct {
	Agent      metrics.AgentConfig
	Games      int
	Wins       int
	Losses     int
	MeanScore  float64
	Searches   int // Moves chosen by the controlled agent
	Nodes      int
	SearchTime time.Duration
}

// Throughput is the number of search nodes valued per second.
func (s Summary) Throughput() float64 {
	if s.SearchTime <= 0 {
		return 0
	}
	return float64(s.Nodes) / s.SearchTime.Seconds()
}

func (s Summary) Log() {
	log.Info().
		Int("agent", s.Agent.ID).
		Str("strategy", s.Agent.Strategy).
		Int("depth", s.Agent.Depth).
		Int("games", s.Games).
		Int("wins", s.Wins).
		Int("losses", s.Losses).
		Float64("meanScore", s.MeanScore).
		Float64("nodesPerSecond", s.Throughput()).
		Msg("agent summary")
}

func Summarize(configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) []Summary {
	summaries := make([]Summary, len(configs))
	index := make(map[int]int, len(configs)) // Agent id -> summary
	for i, config := range configs {
		summaries[i].Agent = config
		index[config.ID] = i
	}

	gameAgent := make(map[int]int, len(games)) // Game id -> summary
	for _, game := range games {
		i, ok := index[game.Agent]
		if !ok {
			continue
		}
		gameAgent[game.ID] = i
		s := &summaries[i]
		s.Games++
		s.MeanScore += game.Score
		switch game.Outcome {
		case engine.Win:
			s.Wins++
		case engine.Lose:
			s.Losses++
		}
	}
	for i := range summaries {
		if summaries[i].Games > 0 {
			summaries[i].MeanScore /= float64(summaries[i].Games)
		}
	}

	for _, move := range moves {
		i, ok := gameAgent[move.Game]
		if !ok || move.Agent != 0 {
			continue
		}
		s := &summaries[i]
		s.Searches++
		s.Nodes += move.Nodes
		s.SearchTime += move.Duration
	}
	return summaries
}
