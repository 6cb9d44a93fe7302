package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"gameagent/agent"
	"gameagent/experiments/metrics"
	"gameagent/game"
	"gameagent/meta"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrMissingAgent = errors.New("no agent for player")

// Engine drives one game between two agents.
type Engine struct {
	game       *game.Game
	agents     map[game.Player]agent.Agent
	out        io.Writer
	sink       metrics.Sink
	maxTurns   int
	maxInvalid int
}

type Option func(e *Engine)

// WithOutput prints instructions, moves and boards to w as the game goes.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

func WithSink(sink metrics.Sink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func New(g *game.Game, agents map[game.Player]agent.Agent, options ...Option) (*Engine, error) {
	for _, player := range []game.Player{game.PlayerOne, game.PlayerTwo} {
		if agents[player] == nil {
			return nil, errors.WithMessage(ErrMissingAgent, player.String())
		}
	}

	e := &Engine{ // Default values
		game:       g,
		agents:     agents,
		out:        io.Discard,
		sink:       metrics.NewNopSink(),
		maxTurns:   meta.MAX_TURNS,
		maxInvalid: meta.MAX_INVALID_MOVES,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run plays until the game is over or the turn cap is reached. The winner is
// None on a tie or when the game was cut short.
func (e *Engine) Run(ctx context.Context) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	g := e.game
	startTime := time.Now()

	fmt.Fprintln(e.out, g.Instructions)
	fmt.Fprintln(e.out, g.Current)
	log.Info().Msgf("%s: player %s is starting", g.Name, g.Current.Player())

	var moveMetrics []metrics.MoveMetric
	turn := 1
	for !g.IsOver() && turn <= e.maxTurns {
		player := g.Current.Player()

		fmt.Fprintln(e.out, "The current available moves are:")
		for _, move := range g.Current.LegalMoves() {
			fmt.Fprintln(e.out, move)
		}

		move, searchMetric, err := e.pickMove(ctx, player)
		if err != nil {
			return game.None, metrics.GameMetric{}, moveMetrics, errors.WithMessagef(err, "turn %d, player %s", turn, player)
		}
		if err := g.Apply(move); err != nil {
			return game.None, metrics.GameMetric{}, moveMetrics, errors.WithMessagef(err, "turn %d, player %s", turn, player)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			Move:         move.String(),
			SearchMetric: searchMetric,
		})

		fmt.Fprintf(e.out, "%s made the move %s. The game's state is now:\n%s\n", player, move, g.Current)
		log.Debug().Msgf("turn %d: %s played %s after %d nodes", turn, player, move, searchMetric.Nodes)
		turn++
	}

	winner := g.Winner()
	switch {
	case g.IsWinner(game.PlayerOne):
		fmt.Fprintln(e.out, "Player 1 is the winner!")
	case g.IsWinner(game.PlayerTwo):
		fmt.Fprintln(e.out, "Player 2 is the winner!")
	case g.IsOver():
		fmt.Fprintln(e.out, "It's a tie!")
	default:
		fmt.Fprintf(e.out, "Stopped after %d turns with no winner.\n", e.maxTurns)
		log.Warn().Msgf("%s stopped after %d turns", g.Name, e.maxTurns)
	}

	endTime := time.Now()
	gameMetric := metrics.GameMetric{
		StartingPlayer: g.First,
		Winner:         winner,
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       endTime.Sub(startTime),
		TotalMoves:     len(moveMetrics),
	}
	e.sink.ObserveGame(gameMetric)
	return winner, gameMetric, moveMetrics, nil
}

// pickMove asks the player's agent again while it proposes illegal moves, up
// to maxInvalid times.
func (e *Engine) pickMove(ctx context.Context, player game.Player) (game.Move, metrics.SearchMetric, error) {
	a := e.agents[player]
	for attempt := 1; ; attempt++ {
		move, metric, err := a.FindMove(ctx, e.game)
		if err != nil {
			return nil, metric, err
		}
		if move != nil && e.game.Current.IsLegal(move) {
			return move, metric, nil
		}
		log.Warn().Msgf("player %s proposed an invalid move %v (attempt %d)", player, move, attempt)
		if attempt >= e.maxInvalid {
			return nil, metric, game.InvalidMove(move)
		}
	}
}
