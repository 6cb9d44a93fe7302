package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gameagent/game"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

type MatchupConfig struct {
	ID       int
	Game     string
	Size     int
	Player1  string // Strategy code
	Player2  string // Strategy code
	Nodes    int64         // Node budget per move, 0 for none
	Movetime time.Duration // Time budget per move, 0 for none
}

type GameRecord struct {
	ID          int
	Matchup     int         // MatchupConfig.ID
	Player1Seat game.Player // Seat taken by the matchup's first strategy
	GameMetric
}

// Player1Won reports whether the matchup's first strategy won the game.
func (r GameRecord) Player1Won() bool {
	return r.Winner != game.None && r.Winner == r.Player1Seat
}

func (r GameRecord) Player2Won() bool {
	return r.Winner != game.None && r.Winner != r.Player1Seat
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type MatchupSummary struct {
	Matchup         int    `json:"matchup"`
	Game            string `json:"game"`
	Player1         string `json:"player1"`
	Player2         string `json:"player2"`
	Games           int    `json:"games"`
	Player1Wins     int    `json:"player1_wins"`
	Player2Wins     int    `json:"player2_wins"`
	Ties            int    `json:"ties"`
	FirstToMoveWins int    `json:"first_to_move_wins"`
}

type Summary struct {
	RunID    string           `json:"run_id"`
	Name     string           `json:"name"`
	Matchups []MatchupSummary `json:"matchups"`
}

// Summarize tallies game records per matchup, in matchup order.
func Summarize(configs []MatchupConfig, records []GameRecord) []MatchupSummary {
	index := make(map[int]int, len(configs))
	summaries := make([]MatchupSummary, len(configs))
	for i, c := range configs {
		index[c.ID] = i
		summaries[i] = MatchupSummary{Matchup: c.ID, Game: c.Game, Player1: c.Player1, Player2: c.Player2}
	}
	for _, r := range records {
		i, ok := index[r.Matchup]
		if !ok {
			continue
		}
		s := &summaries[i]
		s.Games++
		switch {
		case r.Player1Won():
			s.Player1Wins++
		case r.Player2Won():
			s.Player2Wins++
		default:
			s.Ties++
		}
		if r.Winner != game.None && r.Winner == r.StartingPlayer {
			s.FirstToMoveWins++
		}
	}
	return summaries
}

type Writer struct {
	runID   string
	baseDir string
}

// NewWriter creates <root>/<name>/<run id> for the files of one experiment run.
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.NewString()
	baseDir := filepath.Join(root, name, runID)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}

	return &Writer{
		runID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteMatchups(configs []MatchupConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			c.Game,
			strconv.Itoa(c.Size),
			c.Player1,
			c.Player2,
			strconv.FormatInt(c.Nodes, 10),
			c.Movetime.String(),
		})
	}
	return w.writeCSV("matchups.csv", []string{"id", "game", "size", "player1", "player2", "nodes", "movetime"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Matchup),
			r.Player1Seat.String(),
			r.StartingPlayer.String(),
			r.Winner.String(),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Duration.String(),
			strconv.Itoa(r.TotalMoves),
		})
	}
	header := []string{"id", "matchup", "player1_seat", "starting_player", "winner", "start_time", "end_time", "duration", "moves"}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Step),
			r.Player.String(),
			r.Move,
			r.Strategy,
			r.Duration.String(),
			strconv.FormatInt(r.Nodes, 10),
			strconv.Itoa(r.MaxDepth),
			strconv.Itoa(r.Score),
		})
	}
	header := []string{"game", "step", "player", "move", "strategy", "duration", "nodes", "max_depth", "score"}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) WriteSummary(name string, matchups []MatchupSummary) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(Summary{
		RunID:    w.runID,
		Name:     name,
		Matchups: matchups,
	}, "", "  ")
	if err != nil {
		return errors.WithMessage(err, "marshal summary")
	}
	if err := os.WriteFile(filepath.Join(w.baseDir, "summary.json"), data, 0644); err != nil {
		return errors.Wrap(err, "failed to write summary")
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", name)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, "failed to write %s header", name)
	}
	if err := writer.WriteAll(rows); err != nil {
		return errors.Wrapf(err, "failed to write %s rows", name)
	}
	return nil
}
