package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidMove is returned by State.Play when the move is not one of the state's legal moves.
var ErrInvalidMove = errors.New("invalid move")

type Player int

const (
	None Player = iota
	PlayerOne
	PlayerTwo
)

func (p Player) Opponent() Player {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return None
	}
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "p1"
	case PlayerTwo:
		return "p2"
	default:
		return "none"
	}
}

// Move is an opaque, comparable value. Strategies only ever pick moves out of State.LegalMoves.
type Move interface {
	fmt.Stringer
}

// State should be immutable - operations on State always return a new copy
type State interface {
	fmt.Stringer
	// Player returns whose turn it is in this state
	Player() Player
	// LegalMoves returns every legal move in a fixed order, empty exactly when the state is terminal
	LegalMoves() []Move
	IsLegal(Move) bool
	// Play returns the state after the move, or an error wrapping ErrInvalidMove
	Play(Move) (State, error)
	IsTerminal() bool
	// Winner is only meaningful on terminal states, None means a tie
	Winner() Player
}

type Outcome int

const (
	Lose Outcome = -1
	Draw Outcome = 0
	Win  Outcome = 1
	// Unknown is an estimate that commits to nothing
	Unknown Outcome = 2
)

func (o Outcome) String() string {
	switch o {
	case Lose:
		return "lose"
	case Win:
		return "win"
	case Unknown:
		return "unknown"
	default:
		return "draw"
	}
}

// Estimator is implemented by states that can cheaply guess the outcome the
// player to move can force, without searching. Draw is a real estimate,
// Unknown is returned when there is none.
type Estimator interface {
	RoughOutcome() Outcome
}

// InvalidMove wraps ErrInvalidMove with the offending move.
func InvalidMove(move Move) error {
	if move == nil {
		return errors.WithMessage(ErrInvalidMove, "no move")
	}
	return errors.WithMessagef(ErrInvalidMove, "move %q", move.String())
}
