// Package subtract implements Subtract Square: players alternately subtract a
// positive square number from a shared total, and the player who brings the
// total to zero wins.
package subtract

import (
	"fmt"
	"strconv"

	"gameagent/game"

	"github.com/pkg/errors"
)

const Name = "Subtract Square"

const Instructions = "Players take turns subtracting square numbers from the starting number. " +
	"The winner is the person who subtracts to 0."

var ErrNegativeTotal = errors.New("starting total must not be negative")

// Move is the square number to subtract.
type Move int

func (m Move) String() string {
	return strconv.Itoa(int(m))
}

type State struct {
	player game.Player
	total  int
}

func NewState(total int, first game.Player) (State, error) {
	if total < 0 {
		return State{}, errors.WithMessagef(ErrNegativeTotal, "total %d", total)
	}
	if first == game.None {
		first = game.PlayerOne
	}
	return State{player: first, total: total}, nil
}

// NewGame starts a session at the given total.
func NewGame(total int, first game.Player) (*game.Game, error) {
	state, err := NewState(total, first)
	if err != nil {
		return nil, err
	}
	return game.NewGame(Name, Instructions, state), nil
}

func (s State) Total() int {
	return s.total
}

func (s State) Player() game.Player {
	return s.player
}

func (s State) LegalMoves() []game.Move {
	moves := []game.Move{}
	for i := 1; i*i <= s.total; i++ {
		moves = append(moves, Move(i*i))
	}
	return moves
}

func (s State) IsLegal(move game.Move) bool {
	m, ok := move.(Move)
	if !ok {
		return false
	}
	return m > 0 && int(m) <= s.total && isSquare(int(m))
}

func (s State) Play(move game.Move) (game.State, error) {
	if !s.IsLegal(move) {
		return nil, game.InvalidMove(move)
	}
	return State{
		player: s.player.Opponent(),
		total:  s.total - int(move.(Move)),
	}, nil
}

func (s State) IsTerminal() bool {
	return s.total == 0
}

// Winner is the player who took the last unit, i.e. the one not to move at zero.
func (s State) Winner() game.Player {
	if !s.IsTerminal() {
		return game.None
	}
	return s.player.Opponent()
}

// RoughOutcome guesses from the player to move: a square total is taken in
// one move, and a total whose every move leaves a square for the opponent is lost.
// Any other total is Unknown, the game cannot end in a draw.
func (s State) RoughOutcome() game.Outcome {
	if s.total == 0 {
		return game.Lose
	}
	if isSquare(s.total) {
		return game.Win
	}
	for i := 1; i*i <= s.total; i++ {
		if !isSquare(s.total - i*i) {
			return game.Unknown
		}
	}
	return game.Lose
}

func (s State) String() string {
	return fmt.Sprintf("Current total: %d; Next player: %s", s.total, s.player)
}

func isSquare(n int) bool {
	if n < 0 {
		return false
	}
	root := 0
	for root*root < n {
		root++
	}
	return root*root == n
}
