package searcher

import (
	"context"
	"testing"

	"gameagent/experiments/metrics"
	"gameagent/game"
	"gameagent/game/tictactoe"

	"github.com/stretchr/testify/require"
)

func TestRandom(t *testing.T) {
	state := tictactoe.NewState(game.PlayerOne)

	t.Run("playing only legal moves", func(t *testing.T) {
		r := NewRandom(7)
		for i := 0; i < 50; i++ {
			result, err := r.Search(context.Background(), state)
			require.NoError(t, err)
			require.True(t, state.IsLegal(result.Move), "Move %s should be legal", result.Move)
			require.EqualValues(t, 1, result.Metric.Nodes)
		}
	})

	t.Run("repeating choices for the same seed", func(t *testing.T) {
		a, b := NewRandom(42), NewRandom(42)
		for i := 0; i < 20; i++ {
			got, err := a.Search(context.Background(), state)
			require.NoError(t, err)
			want, err := b.Search(context.Background(), state)
			require.NoError(t, err)
			require.Equal(t, want.Move, got.Move)
		}
	})

	t.Run("naming the strategy in metrics", func(t *testing.T) {
		result, err := NewRandom(1, WithName("r")).Search(context.Background(), state)
		require.NoError(t, err)
		require.Equal(t, "r", result.Metric.Strategy)
	})

	t.Run("reporting finished searches to the sink", func(t *testing.T) {
		sink := &mockSink{}
		_, err := NewRandom(1, WithMetrics(sink), WithName("r")).Search(context.Background(), state)
		require.NoError(t, err)
		require.Len(t, sink.searches, 1)
		require.Equal(t, "r", sink.searches[0].Strategy)
	})

	t.Run("refusing a finished game", func(t *testing.T) {
		_, err := NewRandom(1).Search(context.Background(), leaf(x, e))
		require.ErrorIs(t, err, ErrNoLegalMove)
	})
}

type mockSink struct {
	searches []metrics.SearchMetric
}

func (m *mockSink) ObserveSearch(metric metrics.SearchMetric) {
	m.searches = append(m.searches, metric)
}

func (m *mockSink) ObserveGame(metrics.GameMetric) {}
