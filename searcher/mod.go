package searcher

import (
	"context"

	"gameagent/experiments/metrics"
	"gameagent/game"

	"github.com/pkg/errors"
)

// Scores of a position for the player to move in it
const (
	Win  = 1
	Tie  = 0
	Loss = -Win
)

// ErrNoLegalMove is returned when a strategy is asked to move in a finished game.
var ErrNoLegalMove = errors.New("no legal move: state is terminal")

// Searcher picks a move for the player to move in a state. The move is always
// one of state.LegalMoves().
type Searcher interface {
	Search(ctx context.Context, state game.State) (Result, error)
}

type Result struct {
	Move   game.Move
	Score  int // Value of the state for the player to move, see Win/Tie/Loss
	Metric metrics.SearchMetric
}

// rootMoves checks the precondition shared by every strategy: the game is not over.
func rootMoves(state game.State) ([]game.Move, error) {
	if state.IsTerminal() {
		return nil, ErrNoLegalMove
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, ErrNoLegalMove
	}
	return moves, nil
}

// terminalScore values a finished game for the player to move in it.
func terminalScore(state game.State) int {
	switch state.Winner() {
	case game.None:
		return Tie
	case state.Player():
		return Win
	default:
		return Loss
	}
}

func play(state game.State, move game.Move) (game.State, error) {
	child, err := state.Play(move)
	if err != nil {
		return nil, errors.WithMessagef(err, "play %s", move)
	}
	return child, nil
}
