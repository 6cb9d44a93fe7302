package engine

import (
	"bytes"
	"context"
	"testing"

	"gameagent/agent"
	"gameagent/experiments/metrics"
	"gameagent/game"
	"gameagent/game/stonehenge"
	"gameagent/game/subtract"
	"gameagent/game/tictactoe"
	"gameagent/searcher"

	"github.com/stretchr/testify/require"
)

// scriptedAgent plays the given moves in order and repeats the last one.
type scriptedAgent struct {
	moves []game.Move
	calls int
}

func (a *scriptedAgent) FindMove(_ context.Context, _ *game.Game) (game.Move, metrics.SearchMetric, error) {
	move := a.moves[min(a.calls, len(a.moves)-1)]
	a.calls++
	return move, metrics.SearchMetric{Strategy: "scripted", Nodes: 1}, nil
}

type countingSink struct {
	games []metrics.GameMetric
}

func (s *countingSink) ObserveSearch(metrics.SearchMetric) {}

func (s *countingSink) ObserveGame(m metrics.GameMetric) {
	s.games = append(s.games, m)
}

func TestEngineRun(t *testing.T) {
	ctx := context.Background()

	t.Run("playing a subtract game between minimax agents", func(t *testing.T) {
		g, err := subtract.NewGame(10, game.PlayerOne)
		require.NoError(t, err)
		out := &bytes.Buffer{}
		sink := &countingSink{}
		e, err := New(g, map[game.Player]agent.Agent{
			game.PlayerOne: agent.FromSearcher(searcher.NewRecursiveMinimax()),
			game.PlayerTwo: agent.FromSearcher(searcher.NewIterativeMinimax()),
		}, WithOutput(out), WithSink(sink))
		require.NoError(t, err)

		winner, gameMetric, moveMetrics, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.PlayerTwo, winner, "10 is a losing total for the first player")
		require.True(t, g.IsOver())
		require.Equal(t, game.PlayerOne, gameMetric.StartingPlayer)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, game.PlayerOne, moveMetrics[0].Player)
		require.Equal(t, "recursive_minimax", moveMetrics[0].Strategy)
		require.Equal(t, game.PlayerTwo, moveMetrics[1].Player)
		require.Len(t, sink.games, 1, "Finished game should be reported once")

		require.Contains(t, out.String(), subtract.Instructions)
		require.Contains(t, out.String(), "The current available moves are:")
		require.Contains(t, out.String(), "p1 made the move")
		require.Contains(t, out.String(), "Player 2 is the winner!")
	})

	t.Run("announcing a tie", func(t *testing.T) {
		// X O X
		// X O O
		// O X _
		board := tictactoe.Board{game.PlayerOne, game.PlayerTwo, game.PlayerOne, game.PlayerOne, game.PlayerTwo, game.PlayerTwo, game.PlayerTwo, game.PlayerOne, game.None}
		g := game.NewGame(tictactoe.Name, tictactoe.Instructions, tictactoe.FromBoard(board, game.PlayerOne))
		out := &bytes.Buffer{}
		e, err := New(g, map[game.Player]agent.Agent{
			game.PlayerOne: agent.FromSearcher(searcher.NewRoughOutcome()),
			game.PlayerTwo: agent.FromSearcher(searcher.NewRoughOutcome()),
		}, WithOutput(out))
		require.NoError(t, err)

		winner, gameMetric, _, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.None, winner)
		require.Equal(t, 1, gameMetric.TotalMoves)
		require.Contains(t, out.String(), "It's a tie!")
	})

	t.Run("asking again after an invalid move", func(t *testing.T) {
		g, err := subtract.NewGame(1, game.PlayerOne)
		require.NoError(t, err)
		p1 := &scriptedAgent{moves: []game.Move{subtract.Move(4), subtract.Move(1)}}
		e, err := New(g, map[game.Player]agent.Agent{game.PlayerOne: p1, game.PlayerTwo: p1})
		require.NoError(t, err)

		winner, _, moveMetrics, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.PlayerOne, winner)
		require.Equal(t, 2, p1.calls, "Agent should be asked once more after an invalid move")
		require.Equal(t, "1", moveMetrics[0].Move)
	})

	t.Run("failing after too many invalid moves", func(t *testing.T) {
		g, err := subtract.NewGame(3, game.PlayerOne)
		require.NoError(t, err)
		p1 := &scriptedAgent{moves: []game.Move{subtract.Move(2)}}
		e, err := New(g, map[game.Player]agent.Agent{game.PlayerOne: p1, game.PlayerTwo: p1})
		require.NoError(t, err)

		_, _, _, err = e.Run(ctx)

		require.ErrorIs(t, err, game.ErrInvalidMove)
		require.Equal(t, 3, p1.calls)
		require.Equal(t, 3, g.Current.(subtract.State).Total(), "Game should not change")
	})

	t.Run("stopping at the turn cap", func(t *testing.T) {
		g, err := subtract.NewGame(10, game.PlayerOne)
		require.NoError(t, err)
		ones := &scriptedAgent{moves: []game.Move{subtract.Move(1)}}
		out := &bytes.Buffer{}
		e, err := New(g, map[game.Player]agent.Agent{game.PlayerOne: ones, game.PlayerTwo: ones}, WithMaxTurns(4), WithOutput(out))
		require.NoError(t, err)

		winner, gameMetric, _, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.None, winner)
		require.Equal(t, 4, gameMetric.TotalMoves)
		require.Equal(t, 6, g.Current.(subtract.State).Total())
		require.Contains(t, out.String(), "Stopped after 4 turns")
	})

	t.Run("passing agent errors on", func(t *testing.T) {
		g, err := subtract.NewGame(10, game.PlayerOne)
		require.NoError(t, err)
		limited := searcher.NewRecursiveMinimax(searcher.WithLimits(searcher.DefaultLimits().SetNodes(2)))
		e, err := New(g, map[game.Player]agent.Agent{
			game.PlayerOne: agent.FromSearcher(limited),
			game.PlayerTwo: agent.FromSearcher(limited),
		})
		require.NoError(t, err)

		_, _, _, err = e.Run(ctx)

		require.ErrorIs(t, err, searcher.ErrSearchStopped)
	})
}

func TestNew(t *testing.T) {
	g := tictactoe.NewGame(game.PlayerOne)

	_, err := New(g, map[game.Player]agent.Agent{game.PlayerOne: &scriptedAgent{}})

	require.ErrorIs(t, err, ErrMissingAgent)
}

func TestGames(t *testing.T) {
	t.Run("starting every registered game", func(t *testing.T) {
		for _, info := range Games {
			g, err := NewGame(info.Code, 0, game.PlayerTwo)
			require.NoError(t, err, info.Code)
			require.Equal(t, info.Name, g.Name)
			require.Equal(t, game.PlayerTwo, g.First)
			require.False(t, g.IsOver())
		}
	})

	t.Run("using the given size", func(t *testing.T) {
		g, err := NewGame("h", 3, game.PlayerOne)
		require.NoError(t, err)
		require.Equal(t, 3, g.Current.(stonehenge.State).Side())
	})

	t.Run("rejecting bad input", func(t *testing.T) {
		_, err := NewGame("x", 0, game.PlayerOne)
		require.ErrorIs(t, err, ErrUnknownGame)

		_, err = NewGame("h", 9, game.PlayerOne)
		require.ErrorIs(t, err, stonehenge.ErrInvalidSide)
	})

	t.Run("describing the codes", func(t *testing.T) {
		require.Equal(t, "'s': Subtract Square, 'h': Stonehenge, 't': Tic-Tac-Toe", DescribeGames())
	})
}
