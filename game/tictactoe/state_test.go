package tictactoe

import (
	"testing"

	"gameagent/game"

	"github.com/stretchr/testify/require"
)

const (
	x = game.PlayerOne
	o = game.PlayerTwo
)

func TestPlay(t *testing.T) {
	t.Run("marking a cell", func(t *testing.T) {
		state := NewState(game.PlayerOne)

		next, err := state.Play(Move(4))

		require.NoError(t, err)
		require.Equal(t, x, next.(State).Board()[4])
		require.Equal(t, o, next.Player())
		require.Len(t, next.LegalMoves(), 8)
		require.Equal(t, game.None, state.Board()[4], "Receiver should not change")
	})

	t.Run("rejecting a marked cell", func(t *testing.T) {
		state := FromBoard(Board{x}, o)

		_, err := state.Play(Move(0))
		require.ErrorIs(t, err, game.ErrInvalidMove)
		_, err = state.Play(Move(9))
		require.ErrorIs(t, err, game.ErrInvalidMove)
	})
}

func TestIsLegal(t *testing.T) {
	t.Run("accepting exactly the listed moves", func(t *testing.T) {
		state := FromBoard(Board{x, o}, x)

		for i := 0; i < 10; i++ {
			require.Equal(t, i >= 2 && i < 9, state.IsLegal(Move(i)), "cell %d", i)
		}
		require.False(t, state.IsLegal(nil))
	})

	t.Run("refusing empty cells once the game is won", func(t *testing.T) {
		state := FromBoard(Board{x, o, 0, o, x, 0, 0, 0, x}, o)

		require.False(t, state.IsLegal(Move(2)))
	})
}

func TestWinner(t *testing.T) {
	t.Run("three in a diagonal", func(t *testing.T) {
		state := FromBoard(Board{x, o, 0, o, x, 0, 0, 0, x}, o)

		require.True(t, state.IsTerminal())
		require.Equal(t, x, state.Winner())
		require.Empty(t, state.LegalMoves(), "A won game has no moves left")
	})

	t.Run("full board without a line is a tie", func(t *testing.T) {
		state := FromBoard(Board{x, o, x, x, o, o, o, x, x}, o)

		require.True(t, state.IsTerminal())
		require.Equal(t, game.None, state.Winner())
	})

	t.Run("game in progress", func(t *testing.T) {
		state := FromBoard(Board{x, o}, x)

		require.False(t, state.IsTerminal())
		require.Equal(t, game.None, state.Winner())
	})
}

func TestString(t *testing.T) {
	state := FromBoard(Board{x, 0, 0, 0, o}, x)
	require.Equal(t, "X 1 2\n3 O 5\n6 7 8", state.String())
}
