package game

import (
	"github.com/pkg/errors"
)

// Game holds the current state of one play session. Only the driver mutates
// it, by replacing Current after a legal move.
type Game struct {
	Name         string
	Instructions string
	First        Player // Player who made the first move
	Current      State
}

// NewGame initializes a session starting from the given state.
func NewGame(name, instructions string, initial State) *Game {
	return &Game{
		Name:         name,
		Instructions: instructions,
		First:        initial.Player(),
		Current:      initial,
	}
}

func (g *Game) IsOver() bool {
	return g.Current.IsTerminal()
}

// Winner returns the winner of a finished game, None on a tie or while the game is running.
func (g *Game) Winner() Player {
	if !g.IsOver() {
		return None
	}
	return g.Current.Winner()
}

func (g *Game) IsWinner(player Player) bool {
	return player != None && g.Winner() == player
}

// Apply plays the move on the current state and makes the result current.
func (g *Game) Apply(move Move) error {
	next, err := g.Current.Play(move)
	if err != nil {
		return errors.WithMessage(err, "apply move")
	}
	g.Current = next
	return nil
}
