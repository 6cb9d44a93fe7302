package experiments

import (
	"context"

	"gameagent/agent"
	"gameagent/config"
	"gameagent/engine"
	"gameagent/experiments/metrics"
	"gameagent/game"
	"gameagent/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Report locates the stored files of a finished run.
type Report struct {
	Dir string
	metrics.Summary
}

// Progress counts finished games while a run is going. Safe for concurrent use.
type Progress struct {
	total     atomic.Int64
	completed atomic.Int64
}

type ProgressSnapshot struct {
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

func (p *Progress) Snapshot() ProgressSnapshot {
	return ProgressSnapshot{Completed: p.completed.Load(), Total: p.total.Load()}
}

type settings struct {
	sink     metrics.Sink
	progress *Progress
}

type Option func(s *settings)

// WithSink exports search and game metrics while games are played.
func WithSink(sink metrics.Sink) Option {
	return func(s *settings) {
		if sink != nil {
			s.sink = sink
		}
	}
}

func WithProgress(progress *Progress) Option {
	return func(s *settings) {
		if progress != nil {
			s.progress = progress
		}
	}
}

// gameJob is one scheduled game of a matchup.
type gameJob struct {
	id          int
	matchup     int         // Index into the experiment's matchups
	player1Seat game.Player // Seat of the matchup's first strategy
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
}

// Run plays every matchup of the experiment cfg.Games times, at most
// cfg.Parallelism games at once, and stores the records under
// <output>/<name>/<run id>. The first strategy of a matchup alternates seats,
// so each strategy starts half of the games.
func Run(ctx context.Context, cfg config.ExperimentConfig, options ...Option) (Report, error) {
	s := settings{ // Default values
		sink:     metrics.NewNopSink(),
		progress: &Progress{},
	}
	for _, option := range options {
		option(&s)
	}

	configs := matchupConfigs(cfg)
	jobs := scheduleGames(cfg)
	s.progress.total.Store(int64(len(jobs)))

	log.Info().Msgf("starting %s experiment with %d games...", cfg.Name, len(jobs))

	// Interleave matchups so slow ones do not all run last
	rng := rand.New(rand.NewSource(cfg.Seed))
	order := make([]gameJob, len(jobs))
	copy(order, jobs)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	results := make([]gameResult, len(jobs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Parallelism)
	for _, job := range order {
		job := job
		group.Go(func() error {
			result, err := runGame(groupCtx, cfg, job, s.sink)
			if err != nil {
				return errors.WithMessagef(err, "game %d of matchup %d", job.id, job.matchup+1)
			}
			results[job.id-1] = result
			done := s.progress.completed.Inc()
			log.Info().Msgf("completed game %d of %d (matchup %d) with winner: %s",
				done, len(jobs), job.matchup+1, result.record.Winner)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Report{}, err
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, r := range results {
		gameRecords = append(gameRecords, r.record)
		moveRecords = append(moveRecords, r.moves...)
	}
	return store(cfg.Output, cfg.Name, configs, gameRecords, moveRecords)
}

func matchupConfigs(cfg config.ExperimentConfig) []metrics.MatchupConfig {
	configs := make([]metrics.MatchupConfig, len(cfg.Matchups))
	for i, m := range cfg.Matchups {
		configs[i] = metrics.MatchupConfig{
			ID:       i + 1,
			Game:     m.Game,
			Size:     m.Size,
			Player1:  m.Player1,
			Player2:  m.Player2,
			Nodes:    m.Nodes,
			Movetime: m.Movetime,
		}
	}
	return configs
}

func scheduleGames(cfg config.ExperimentConfig) []gameJob {
	jobs := make([]gameJob, 0, len(cfg.Matchups)*cfg.Games)
	for mi := range cfg.Matchups {
		for i := 0; i < cfg.Games; i++ {
			seat := game.PlayerOne
			if i%2 == 1 {
				seat = game.PlayerTwo
			}
			jobs = append(jobs, gameJob{id: len(jobs) + 1, matchup: mi, player1Seat: seat})
		}
	}
	return jobs
}

// runGame plays a single game between the two strategies of a matchup.
func runGame(ctx context.Context, cfg config.ExperimentConfig, job gameJob, sink metrics.Sink) (gameResult, error) {
	m := cfg.Matchups[job.matchup]
	g, err := engine.NewGame(m.Game, m.Size, game.PlayerOne)
	if err != nil {
		return gameResult{}, err
	}

	limits := searcher.DefaultLimits().SetNodes(m.Nodes).SetMovetime(m.Movetime)
	seed := cfg.Seed + uint64(job.id)<<1
	agent1, err := agent.New(m.Player1, agent.Options{Limits: limits, Sink: sink, Seed: seed})
	if err != nil {
		return gameResult{}, err
	}
	agent2, err := agent.New(m.Player2, agent.Options{Limits: limits, Sink: sink, Seed: seed + 1})
	if err != nil {
		return gameResult{}, err
	}

	e, err := engine.New(g, map[game.Player]agent.Agent{
		job.player1Seat:            agent1,
		job.player1Seat.Opponent(): agent2,
	}, engine.WithSink(sink))
	if err != nil {
		return gameResult{}, err
	}

	_, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return gameResult{}, err
	}

	moves := make([]metrics.MoveRecord, len(moveMetrics))
	for i, mm := range moveMetrics {
		moves[i] = metrics.MoveRecord{Game: job.id, MoveMetric: mm}
	}
	return gameResult{
		record: metrics.GameRecord{
			ID:          job.id,
			Matchup:     job.matchup + 1,
			Player1Seat: job.player1Seat,
			GameMetric:  gameMetric,
		},
		moves: moves,
	}, nil
}

func store(root, name string, configs []metrics.MatchupConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (Report, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return Report{}, errors.WithMessage(err, "create experiment writer")
	}

	if err := writer.WriteMatchups(configs); err != nil {
		return Report{}, errors.WithMessage(err, "store matchups")
	}
	log.Info().Msg("stored matchups")

	if err := writer.WriteGameRecords(games); err != nil {
		return Report{}, errors.WithMessage(err, "store game records")
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return Report{}, errors.WithMessage(err, "store move records")
	}
	log.Info().Msg("stored move records")

	summaries := metrics.Summarize(configs, games)
	if err := writer.WriteSummary(name, summaries); err != nil {
		return Report{}, errors.WithMessage(err, "store summary")
	}

	return Report{
		Dir: writer.Dir(),
		Summary: metrics.Summary{
			RunID:    writer.RunID(),
			Name:     name,
			Matchups: summaries,
		},
	}, nil
}
