package engine

import (
	"fmt"
	"strings"

	"gameagent/game"
	"gameagent/game/stonehenge"
	"gameagent/game/subtract"
	"gameagent/game/tictactoe"
	"gameagent/meta"
	"gameagent/utils"

	"github.com/pkg/errors"
)

var ErrUnknownGame = errors.New("unknown game")

type GameInfo struct {
	Code        string
	Name        string
	SizePrompt  string // Empty when the game has no size
	DefaultSize int
	New         func(size int, first game.Player) (*game.Game, error)
}

// Games lists the playable games by their short code.
var Games = []GameInfo{
	{
		Code:        "s",
		Name:        subtract.Name,
		SizePrompt:  "Enter the number to subtract from",
		DefaultSize: meta.DEFAULT_SUBTRACT_TOTAL,
		New:         subtract.NewGame,
	},
	{
		Code:        "h",
		Name:        stonehenge.Name,
		SizePrompt:  fmt.Sprintf("Enter the side length of the board (%d-%d)", stonehenge.MinSide, stonehenge.MaxSide),
		DefaultSize: meta.DEFAULT_STONEHENGE_SIDE,
		New:         stonehenge.NewGame,
	},
	{
		Code: "t",
		Name: tictactoe.Name,
		New: func(_ int, first game.Player) (*game.Game, error) {
			return tictactoe.NewGame(first), nil
		},
	},
}

func LookupGame(code string) (GameInfo, bool) {
	return utils.FindFunc(Games, func(g GameInfo) bool { return g.Code == code })
}

// NewGame starts the game registered under code. A size of zero uses the
// game's default.
func NewGame(code string, size int, first game.Player) (*game.Game, error) {
	info, ok := LookupGame(code)
	if !ok {
		return nil, errors.WithMessagef(ErrUnknownGame, "code %q", code)
	}
	if size == 0 {
		size = info.DefaultSize
	}
	g, err := info.New(size, first)
	if err != nil {
		return nil, errors.WithMessagef(err, "new %s", info.Name)
	}
	return g, nil
}

// DescribeGames lists the registry as "'s': Subtract Square, 'h': Stonehenge, ...".
func DescribeGames() string {
	parts := make([]string, len(Games))
	for i, g := range Games {
		parts[i] = fmt.Sprintf("'%s': %s", g.Code, g.Name)
	}
	return strings.Join(parts, ", ")
}
