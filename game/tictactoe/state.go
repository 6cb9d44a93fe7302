// Package tictactoe implements the 3x3 game, the only bundled game that can end in a tie.
package tictactoe

import (
	"strconv"
	"strings"

	"gameagent/game"
	"gameagent/utils"
)

const Name = "Tic-Tac-Toe"

const Instructions = "Players take turns marking cells 0-8 of a 3x3 grid. " +
	"Three marks in a row, column or diagonal win; a full grid is a tie."

var winConditions = [8][3]uint8{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Move is the cell position, 0 being top left.
type Move byte

func (m Move) String() string {
	return strconv.Itoa(int(m))
}

type Board [9]game.Player

type State struct {
	board  Board
	player game.Player
}

func NewState(first game.Player) State {
	if first == game.None {
		first = game.PlayerOne
	}
	return State{player: first}
}

// FromBoard builds a mid-game position.
func FromBoard(board Board, next game.Player) State {
	return State{board: board, player: next}
}

func NewGame(first game.Player) *game.Game {
	return game.NewGame(Name, Instructions, NewState(first))
}

func (s State) Board() Board {
	return s.board
}

func (s State) Player() game.Player {
	return s.player
}

func (s State) LegalMoves() []game.Move {
	moves := []game.Move{}
	if s.IsTerminal() {
		return moves
	}
	for i, cell := range s.board {
		if cell == game.None {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

func (s State) IsLegal(move game.Move) bool {
	return utils.Contains(s.LegalMoves(), move)
}

func (s State) Play(move game.Move) (game.State, error) {
	if !s.IsLegal(move) {
		return nil, game.InvalidMove(move)
	}
	next := s
	next.board[move.(Move)] = s.player
	next.player = s.player.Opponent()
	return next, nil
}

func (s State) IsTerminal() bool {
	if s.Winner() != game.None {
		return true
	}
	for _, cell := range s.board {
		if cell == game.None {
			return false
		}
	}
	return true
}

func (s State) Winner() game.Player {
	for _, condition := range winConditions {
		owner := s.board[condition[0]]
		if owner != game.None && owner == s.board[condition[1]] && owner == s.board[condition[2]] {
			return owner
		}
	}
	return game.None
}

func (s State) String() string {
	var sb strings.Builder
	for i, cell := range s.board {
		switch cell {
		case game.PlayerOne:
			sb.WriteByte('X')
		case game.PlayerTwo:
			sb.WriteByte('O')
		default:
			sb.WriteString(strconv.Itoa(i))
		}
		if (i+1)%3 == 0 {
			if i < 8 {
				sb.WriteByte('\n')
			}
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
