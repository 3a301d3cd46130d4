package experiments

import (
	"fmt"

	"multiagent/agent"
	"multiagent/engine"
	"multiagent/experiments/metrics"
	"multiagent/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Seed offsets keep the random sources of one game independent.
const (
	pacmanStream = 1 << 32
	ghostStream  = 2 << 32
)

type job struct {
	game   int
	seed   uint64
	config metrics.AgentConfig
}

type outcome struct {
	game  metrics.GameMetric
	moves []metrics.MoveMetric
}

// Run plays every game of the experiment and stores the results under
// root. It returns the directory holding the CSV files.
func Run(config Config, root string) (string, error) {
	if err := config.Validate(); err != nil {
		return "", err
	}

	jobs := []job{}
	for _, agentConfig := range config.Agents {
		for i := 0; i < config.Games; i++ {
			jobs = append(jobs, job{game: len(jobs) + 1, seed: config.Seed + uint64(i), config: agentConfig})
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", config.Name, len(jobs))

	outcomes := make([]outcome, len(jobs))
	var g errgroup.Group
	g.SetLimit(config.Parallelism)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			log.Info().Msgf("starting game %d of %d with agent %d...", j.game, len(jobs), j.config.ID)
			gameMetric, moveMetrics, err := runGame(config, j)
			if err != nil {
				return fmt.Errorf("game %d with agent %d: %w", j.game, j.config.ID, err)
			}
			outcomes[i] = outcome{game: gameMetric, moves: moveMetrics}
			log.Info().Msgf("completed game %d of %d: %s", j.game, len(jobs), gameMetric.Outcome)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	log.Info().Msgf("completed %s experiment", config.Name)

	gameRecords := make([]metrics.GameRecord, 0, len(jobs))
	moveRecords := []metrics.MoveRecord{}
	for i, j := range jobs {
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         j.game,
			Agent:      j.config.ID,
			GameMetric: outcomes[i].game,
		})
		for _, mm := range outcomes[i].moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       j.game,
				MoveMetric: mm,
			})
		}
	}

	dir, err := store(config, root, gameRecords, moveRecords)
	if err != nil {
		return "", err
	}
	for _, summary := range Summarize(config.Agents, gameRecords, moveRecords) {
		summary.Log()
	}
	return dir, nil
}

func store(config Config, root string, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// NewGame builds the initial state of a game from the experiment's layout
// settings.
func NewGame(config Config, seed uint64) (*game.GridState, error) {
	if config.Layout == "" {
		return game.RandomState(config.Width, config.Height, config.Food, config.Ghosts, nil, rand.New(rand.NewSource(seed)))
	}

	layout, err := game.NamedLayout(config.Layout)
	if err != nil {
		layout, err = game.LoadLayout(config.Layout)
		if err != nil {
			return nil, err
		}
	}
	return game.NewGridState(layout, nil), nil
}

// NewAgents builds the controlled agent and one ghost agent per adversary.
func NewAgents(config metrics.AgentConfig, ghost string, ghosts int, seed uint64) ([]agent.Agent, error) {
	pacman, err := agent.NewPacman(config.Strategy, config.Depth, config.Evaluation, rand.New(rand.NewSource(seed+pacmanStream)))
	if err != nil {
		return nil, err
	}

	agents := []agent.Agent{pacman}
	for i := 1; i <= ghosts; i++ {
		a, err := agent.NewGhost(ghost, i, rand.New(rand.NewSource(seed+ghostStream*uint64(i))))
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

func runGame(config Config, j job) (metrics.GameMetric, []metrics.MoveMetric, error) {
	state, err := NewGame(config, j.seed)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	agents, err := NewAgents(j.config, config.Ghost, state.NumAgents()-1, j.seed)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	e := engine.LocalEngine(agents, state,
		engine.WithMaxMoves(config.MaxMoves),
		engine.WithSeed(j.seed),
	)
	return e.Run()
}
