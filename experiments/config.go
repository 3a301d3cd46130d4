package experiments

import (
	"errors"
	"fmt"
	"os"

	"multiagent/experiments/metrics"
	"multiagent/meta"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid experiment config")

// Config describes an experiment: every agent config plays Games games, and
// game i of every agent is generated from the same seed.
type Config struct {
	Name        string                `yaml:"name"`
	Games       int                   `yaml:"games"` // Per agent config
	Seed        uint64                `yaml:"seed"`
	Parallelism int                   `yaml:"parallelism"`
	Layout      string                `yaml:"layout"` // Named layout or layout file, random if empty
	Width       int                   `yaml:"width"`
	Height      int                   `yaml:"height"`
	Food        int                   `yaml:"food"`
	Ghosts      int                   `yaml:"ghosts"`
	Ghost       string                `yaml:"ghost"` // Ghost agent kind
	MaxMoves    int                   `yaml:"maxMoves"`
	Agents      []metrics.AgentConfig `yaml:"agents"`
}

func DefaultConfig() Config {
	return Config{
		Name:        "experiment",
		Games:       meta.GAMES,
		Seed:        1,
		Parallelism: 1,
		Width:       meta.WIDTH,
		Height:      meta.HEIGHT,
		Food:        meta.FOOD,
		Ghosts:      meta.GHOSTS,
		Ghost:       meta.GHOST,
		MaxMoves:    meta.MAX_MOVES,
	}
}

// LoadConfig reads a YAML experiment file. Missing fields keep their
// default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidConfig)
	}
	if c.Games <= 0 {
		return fmt.Errorf("%w: %d games", ErrInvalidConfig, c.Games)
	}
	if c.Parallelism <= 0 {
		return fmt.Errorf("%w: parallelism %d", ErrInvalidConfig, c.Parallelism)
	}
	if c.Layout == "" && (c.Width <= 0 || c.Height <= 0) {
		return fmt.Errorf("%w: %dx%d grid", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Layout == "" && (c.Food < 0 || c.Ghosts < 0) {
		return fmt.Errorf("%w: %d food and %d ghosts", ErrInvalidConfig, c.Food, c.Ghosts)
	}
	if len(c.Agents) == 0 {
		return fmt.Errorf("%w: no agents", ErrInvalidConfig)
	}
	ids := make(map[int]bool, len(c.Agents))
	for _, agent := range c.Agents {
		if ids[agent.ID] {
			return fmt.Errorf("%w: duplicate agent id %d", ErrInvalidConfig, agent.ID)
		}
		ids[agent.ID] = true
	}
	return nil
}
