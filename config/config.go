package config

import (
	"io"
	"os"
	"time"

	"gameagent/agent"
	"gameagent/engine"
	"gameagent/meta"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoMatchups      = errors.New("there are no matchups to play")
	ErrInvalidMatchup  = errors.New("invalid matchup")
	ErrInteractiveOnly = errors.New("interactive strategies cannot play experiments")
)

const (
	defaultName   = "experiment"
	defaultOutput = "results"
	defaultGames  = 10
)

type MatchupConfig struct {
	Game     string        `yaml:"game"`
	Size     int           `yaml:"size"`
	Player1  string        `yaml:"player1"`
	Player2  string        `yaml:"player2"`
	Nodes    int64         `yaml:"nodes"`
	Movetime time.Duration `yaml:"movetime"`
}

type ExperimentConfig struct {
	Name        string          `yaml:"name"`
	Output      string          `yaml:"output"`
	Games       int             `yaml:"games"` // Per matchup
	Parallelism int             `yaml:"parallelism"`
	Seed        uint64          `yaml:"seed"`
	MetricsAddr string          `yaml:"metrics_addr"` // Prometheus listen address, empty to disable
	Matchups    []MatchupConfig `yaml:"matchups"`
}

func New(cfgPath string) (ExperimentConfig, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return ExperimentConfig{}, errors.Wrapf(err, "failed to open %s", cfgPath)
	}
	defer func() {
		_ = file.Close()
	}()
	return Parse(file)
}

// Parse decodes a YAML experiment, fills defaults and validates the matchups.
func Parse(r io.Reader) (ExperimentConfig, error) {
	cfg := ExperimentConfig{}
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return ExperimentConfig{}, errors.WithMessage(err, "decode config")
	}

	if cfg.Name == "" {
		cfg.Name = defaultName
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}
	if cfg.Games <= 0 {
		cfg.Games = defaultGames
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = meta.GO_ROUTINES
	}

	if len(cfg.Matchups) == 0 {
		return ExperimentConfig{}, ErrNoMatchups
	}
	for i, m := range cfg.Matchups {
		if err := m.validate(); err != nil {
			return ExperimentConfig{}, errors.WithMessagef(err, "matchup %d", i+1)
		}
	}
	return cfg, nil
}

func (m MatchupConfig) validate() error {
	if _, ok := engine.LookupGame(m.Game); !ok {
		return errors.WithMessagef(engine.ErrUnknownGame, "code %q", m.Game)
	}
	for _, code := range []string{m.Player1, m.Player2} {
		if _, ok := agent.Lookup(code); !ok {
			return errors.WithMessagef(agent.ErrUnknownStrategy, "code %q", code)
		}
		if code == "i" {
			return ErrInteractiveOnly
		}
	}
	if m.Size < 0 || m.Nodes < 0 || m.Movetime < 0 {
		return errors.WithMessage(ErrInvalidMatchup, "size and limits must not be negative")
	}
	return nil
}
