// Package stonehenge implements Stonehenge: players claim cells of a
// hexagonal board, a ley-line goes to the first player holding at least half
// of its cells, and the first player to hold at least half of all ley-lines wins.
package stonehenge

import (
	"fmt"
	"strings"

	"gameagent/game"
	"gameagent/utils"

	"github.com/pkg/errors"
)

const Name = "Stonehenge"

const Instructions = "Players take turns claiming cells. When a player captures at least half " +
	"of the cells in a ley-line, they capture that ley-line. The first player to capture " +
	"at least half of the ley-lines wins."

const (
	MinSide = 1
	MaxSide = 5
)

var ErrInvalidSide = errors.New("side length must be between 1 and 5")

// Move is the label of the cell to claim, 'A' for the first cell.
type Move byte

func (m Move) String() string {
	return string(rune(m))
}

type State struct {
	board  *board
	player game.Player
	cells  []game.Player // owner of each cell
	claims []game.Player // owner of each ley-line
}

func NewState(side int, first game.Player) (State, error) {
	if side < MinSide || side > MaxSide {
		return State{}, errors.WithMessagef(ErrInvalidSide, "side %d", side)
	}
	if first == game.None {
		first = game.PlayerOne
	}
	b := newBoard(side)
	return State{
		board:  b,
		player: first,
		cells:  make([]game.Player, len(b.coords)),
		claims: make([]game.Player, len(b.lines)),
	}, nil
}

// NewGame starts a session on a board of the given side length.
func NewGame(side int, first game.Player) (*game.Game, error) {
	state, err := NewState(side, first)
	if err != nil {
		return nil, err
	}
	return game.NewGame(Name, Instructions, state), nil
}

func (s State) Side() int {
	return s.board.side
}

func (s State) Player() game.Player {
	return s.player
}

// Claims returns how many ley-lines the player holds.
func (s State) Claims(player game.Player) int {
	count := 0
	for _, owner := range s.claims {
		if owner == player {
			count++
		}
	}
	return count
}

func (s State) LegalMoves() []game.Move {
	moves := []game.Move{}
	if s.IsTerminal() {
		return moves
	}
	for i, owner := range s.cells {
		if owner == game.None {
			moves = append(moves, label(i))
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
	cell := int(move.(Move)) - 'A'

	next := State{
		board:  s.board,
		player: s.player.Opponent(),
		cells:  append([]game.Player(nil), s.cells...),
		claims: append([]game.Player(nil), s.claims...),
	}
	next.cells[cell] = s.player
	for _, line := range s.board.cellLines[cell] {
		if next.claims[line] != game.None {
			continue
		}
		held := 0
		for _, c := range s.board.lines[line] {
			if next.cells[c] == s.player {
				held++
			}
		}
		if 2*held >= len(s.board.lines[line]) {
			next.claims[line] = s.player
		}
	}
	return next, nil
}

func (s State) IsTerminal() bool {
	if s.Winner() != game.None {
		return true
	}
	for _, owner := range s.cells {
		if owner == game.None {
			return false
		}
	}
	return true
}

func (s State) Winner() game.Player {
	total := len(s.claims)
	for _, p := range []game.Player{game.PlayerOne, game.PlayerTwo} {
		if 2*s.Claims(p) >= total {
			return p
		}
	}
	return game.None
}

// String draws the board with cell labels, owned cells as 1 or 2, followed by
// the ley-line markers of each direction (@ while unclaimed).
func (s State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Stonehenge (side %d), next player: %s\n", s.board.side, s.player)
	width := 2*(s.board.side+1) + s.board.side + 1
	for _, row := range s.board.rows() {
		line := []byte(strings.Repeat(" ", width))
		for _, i := range row {
			line[s.board.x(s.board.coords[i])] = s.cellMark(i)
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	for f, name := range []string{"-", "\\", "/"} {
		marks := make([]string, 0, len(s.board.families[f]))
		for _, line := range s.board.families[f] {
			marks = append(marks, claimMark(s.claims[line]))
		}
		fmt.Fprintf(&sb, "%s %s\n", name, strings.Join(marks, " "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (s State) cellMark(i int) byte {
	switch s.cells[i] {
	case game.PlayerOne:
		return '1'
	case game.PlayerTwo:
		return '2'
	default:
		return byte(label(i))
	}
}

func claimMark(owner game.Player) string {
	switch owner {
	case game.PlayerOne:
		return "1"
	case game.PlayerTwo:
		return "2"
	default:
		return "@"
	}
}

func label(i int) Move {
	return Move('A' + i)
}
