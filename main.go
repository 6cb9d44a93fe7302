package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"gameagent/agent"
	"gameagent/config"
	"gameagent/engine"
	"gameagent/experiments"
	"gameagent/experiments/metrics"
	"gameagent/meta"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	experiment := flag.Bool("experiment", false, "play the matchups of a config file instead of an interactive game")
	configPath := flag.String("config", "experiments.yml", "experiment config file")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "goroutines used by parallel minimax")
	flag.Parse()

	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level := zerolog.WarnLevel
	if *experiment {
		level = zerolog.InfoLevel
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if lvl, err := zerolog.ParseLevel(v); err == nil {
			level = lvl
		}
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := termenv.NewOutput(os.Stdout)
	if *experiment {
		if err := runExperiment(ctx, out, *configPath); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		return
	}

	in := bufio.NewReader(os.Stdin)
	if err := play(ctx, newPrompter(in, out), agent.Options{In: in, Out: out, Goroutines: *goroutines}); err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}
}

// play asks for a game and two strategies, then plays the game on the terminal.
func play(ctx context.Context, p *prompter, opts agent.Options) error {
	choice, err := p.pickGame()
	if err != nil {
		return err
	}
	g, err := engine.NewGame(choice.code, choice.size, choice.first)
	if err != nil {
		return err
	}
	agents, err := p.pickAgents(opts)
	if err != nil {
		return err
	}

	e, err := engine.New(g, agents, engine.WithOutput(p.out))
	if err != nil {
		return err
	}
	winner, _, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	p.announce(winner)
	return nil
}

func runExperiment(ctx context.Context, out *termenv.Output, path string) error {
	cfg, err := config.New(path)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPrometheusSink(reg)
	if err != nil {
		return err
	}
	progress := &experiments.Progress{}

	group, groupCtx := errgroup.WithContext(ctx)
	serveCtx, stopServing := context.WithCancel(groupCtx)
	if cfg.MetricsAddr != "" {
		group.Go(func() error {
			return experiments.Serve(serveCtx, cfg.MetricsAddr, experiments.NewRouter(reg, progress))
		})
	}

	var report experiments.Report
	group.Go(func() error {
		defer stopServing()
		var err error
		report, err = experiments.Run(groupCtx, cfg, experiments.WithSink(sink), experiments.WithProgress(progress))
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	printReport(out, report)
	return nil
}
