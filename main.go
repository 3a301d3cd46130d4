package main

import (
	"flag"
	"io"
	"os"
	"time"

	"multiagent/display"
	"multiagent/engine"
	"multiagent/experiments"
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/meta"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	strategy := flag.String("strategy", meta.STRATEGY, "controlled agent: reflex, minimax, alphabeta or expectimax")
	depth := flag.Int("depth", meta.DEPTH, "search depth in full rounds")
	evaluation := flag.String("eval", meta.EVALUATION, "cutoff evaluation function: score or better")
	ghost := flag.String("ghost", meta.GHOST, "ghost agent: random or directional")
	layout := flag.String("layout", "", "named layout or layout file, random if empty")
	width := flag.Int("width", meta.WIDTH, "random layout width")
	height := flag.Int("height", meta.HEIGHT, "random layout height")
	food := flag.Int("food", meta.FOOD, "food on a random layout")
	ghosts := flag.Int("ghosts", meta.GHOSTS, "ghosts on a random layout")
	games := flag.Int("games", meta.GAMES, "number of games to play")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "seed of the first game")
	maxMoves := flag.Int("max-moves", meta.MAX_MOVES, "max agent moves per game")
	render := flag.Bool("render", false, "draw the board after every move")
	configPath := flag.String("config", "", "run the YAML experiment file instead of single games")
	out := flag.String("out", "results", "directory for experiment results")
	verbose := flag.Bool("verbose", false, "log search details")
	flag.Parse()

	setupLogging(*verbose)

	if *configPath != "" {
		config, err := experiments.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load experiment")
		}
		dir, err := experiments.Run(config, *out)
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		log.Info().Msgf("stored results in %s", dir)
		return
	}

	config := experiments.DefaultConfig()
	config.Layout = *layout
	config.Width = *width
	config.Height = *height
	config.Food = *food
	config.Ghosts = *ghosts
	config.Ghost = *ghost
	config.MaxMoves = *maxMoves
	pacman := metrics.AgentConfig{ID: 1, Strategy: *strategy, Depth: *depth, Evaluation: *evaluation}

	wins := 0
	for i := 0; i < *games; i++ {
		gameSeed := *seed + uint64(i)
		gameMetric, err := play(config, pacman, gameSeed, *render)
		if err != nil {
			log.Fatal().Err(err).Uint64("seed", gameSeed).Msg("game failed")
		}
		if gameMetric.Outcome == engine.Win {
			wins++
		}
		log.Info().Msgf("game %d of %d: %s with score %.0f in %d moves", i+1, *games, gameMetric.Outcome, gameMetric.Score, gameMetric.TotalMoves)
	}
	log.Info().Msgf("won %d of %d games", wins, *games)
}

func play(config experiments.Config, pacman metrics.AgentConfig, seed uint64, render bool) (metrics.GameMetric, error) {
	state, err := experiments.NewGame(config, seed)
	if err != nil {
		return metrics.GameMetric{}, err
	}
	agents, err := experiments.NewAgents(pacman, config.Ghost, state.NumAgents()-1, seed)
	if err != nil {
		return metrics.GameMetric{}, err
	}

	options := []engine.Option{engine.WithMaxMoves(config.MaxMoves), engine.WithSeed(seed)}
	if render {
		if err := display.Render(os.Stdout, state); err != nil {
			return metrics.GameMetric{}, err
		}
		options = append(options, engine.WithObserver(renderer(os.Stdout)))
	}

	gameMetric, _, err := engine.LocalEngine(agents, state, options...).Run()
	return gameMetric, err
}

// renderer draws the board after every move of the controlled agent.
func renderer(w io.Writer) engine.Observer {
	return func(step, current int, action game.Action, state *game.GridState) {
		if current != game.Controlled {
			return
		}
		if err := display.Render(w, state); err != nil {
			log.Warn().Err(err).Int("step", step).Msg("failed to render")
		}
	}
}

func setupLogging(verbose bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
