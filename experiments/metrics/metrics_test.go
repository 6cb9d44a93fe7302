package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gameagent/game"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting nodes and the deepest ply", func(t *testing.T) {
		c := NewCollector()
		c.Start("mr", 1)

		require.EqualValues(t, 1, c.AddNode(0))
		require.EqualValues(t, 2, c.AddNode(3))
		require.EqualValues(t, 3, c.AddNode(2))

		m := c.Complete()
		require.Equal(t, "mr", m.Strategy)
		require.Equal(t, 1, m.Goroutines)
		require.EqualValues(t, 3, m.Nodes)
		require.Equal(t, 3, m.MaxDepth)
	})

	t.Run("sharing between goroutines", func(t *testing.T) {
		c := NewCollector()
		c.Start("mp", 8)

		counts := make([][]int64, 8)
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 1000; i++ {
					counts[g] = append(counts[g], c.AddNode(g))
				}
			}(g)
		}
		wg.Wait()

		require.EqualValues(t, 8000, c.Nodes())
		seen := make(map[int64]bool, 8000)
		for _, cs := range counts {
			for _, n := range cs {
				require.False(t, seen[n], "Count %d returned twice", n)
				seen[n] = true
			}
		}
		require.Len(t, seen, 8000, "Every count from 1 to 8000 should be returned once")
		require.Equal(t, 7, c.Complete().MaxDepth)
	})

	t.Run("resetting on start", func(t *testing.T) {
		c := NewCollector()
		c.Start("mr", 1)
		c.AddNode(5)
		c.Start("mi", 1)

		require.Zero(t, c.Nodes())
		require.Zero(t, c.Complete().MaxDepth)
	})
}

var (
	testConfigs = []MatchupConfig{
		{ID: 1, Game: "s", Size: 10, Player1: "mr", Player2: "ro"},
		{ID: 2, Game: "t", Player1: "mi", Player2: "r", Nodes: 500, Movetime: 250 * time.Millisecond},
	}
	testRecords = []GameRecord{
		{ID: 1, Matchup: 1, Player1Seat: game.PlayerOne, GameMetric: GameMetric{StartingPlayer: game.PlayerOne, Winner: game.PlayerOne, TotalMoves: 3}},
		{ID: 2, Matchup: 1, Player1Seat: game.PlayerTwo, GameMetric: GameMetric{StartingPlayer: game.PlayerOne, Winner: game.PlayerOne, TotalMoves: 4}},
		{ID: 3, Matchup: 2, Player1Seat: game.PlayerOne, GameMetric: GameMetric{StartingPlayer: game.PlayerTwo, Winner: game.None, TotalMoves: 9}},
	}
)

func TestSummarize(t *testing.T) {
	got := Summarize(testConfigs, testRecords)

	require.Equal(t, []MatchupSummary{
		{Matchup: 1, Game: "s", Player1: "mr", Player2: "ro", Games: 2, Player1Wins: 1, Player2Wins: 1, FirstToMoveWins: 2},
		{Matchup: 2, Game: "t", Player1: "mi", Player2: "r", Games: 1, Ties: 1},
	}, got)
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "unit")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "unit", w.RunID()), w.Dir())

	require.NoError(t, w.WriteMatchups(testConfigs))
	require.NoError(t, w.WriteGameRecords(testRecords))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game: 1,
		MoveMetric: MoveMetric{Step: 1, Player: game.PlayerOne, Move: "9",
			SearchMetric: SearchMetric{Strategy: "mr", Duration: time.Millisecond, Nodes: 12, MaxDepth: 4, Score: 1}},
	}}))
	require.NoError(t, w.WriteSummary("unit", Summarize(testConfigs, testRecords)))

	t.Run("writing csv files with headers", func(t *testing.T) {
		matchups := readCSV(t, filepath.Join(w.Dir(), "matchups.csv"))
		require.Equal(t, []string{"id", "game", "size", "player1", "player2", "nodes", "movetime"}, matchups[0])
		require.Equal(t, []string{"1", "s", "10", "mr", "ro", "0", "0s"}, matchups[1])
		require.Equal(t, []string{"2", "t", "0", "mi", "r", "500", "250ms"}, matchups[2])

		games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, games, 4)
		require.Equal(t, "none", games[3][4], "Ties should be written with no winner")

		moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Equal(t, []string{"1", "1", "p1", "9", "mr", "1ms", "12", "4", "1"}, moves[1])
	})

	t.Run("writing the json summary", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(w.Dir(), "summary.json"))
		require.NoError(t, err)

		var summary Summary
		require.NoError(t, jsoniter.Unmarshal(data, &summary))
		require.Equal(t, w.RunID(), summary.RunID)
		require.Len(t, summary.Matchups, 2)
		require.Equal(t, 1, summary.Matchups[1].Ties)
	})
}

func TestPrometheusSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPrometheusSink(reg)
	require.NoError(t, err)

	sink.ObserveSearch(SearchMetric{Strategy: "mr", Nodes: 40, Duration: time.Millisecond})
	sink.ObserveSearch(SearchMetric{Strategy: "mr", Nodes: 2})
	sink.ObserveGame(GameMetric{Winner: game.PlayerTwo})

	require.Equal(t, 42.0, testutil.ToFloat64(sink.nodes.WithLabelValues("mr")))
	require.Equal(t, 1.0, testutil.ToFloat64(sink.games.WithLabelValues("p2")))

	_, err = NewPrometheusSink(reg)
	require.Error(t, err, "Registering the same metrics twice should fail")
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
