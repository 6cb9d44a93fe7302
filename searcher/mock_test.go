package searcher

import (
	"fmt"
	"strconv"

	"gameagent/game"
)

type mockMove int

func (m mockMove) String() string {
	return strconv.Itoa(int(m))
}

// mockState is a node of a hand-built game tree. Nodes without children are
// terminal and carry their winner. Move i leads to children[i].
type mockState struct {
	player   game.Player
	children []*mockState
	winner   game.Player
}

func leaf(player, winner game.Player) *mockState {
	return &mockState{player: player, winner: winner}
}

func node(player game.Player, children ...*mockState) *mockState {
	return &mockState{player: player, children: children}
}

func (m *mockState) Player() game.Player {
	return m.player
}

func (m *mockState) LegalMoves() []game.Move {
	moves := make([]game.Move, len(m.children))
	for i := range m.children {
		moves[i] = mockMove(i)
	}
	return moves
}

func (m *mockState) IsLegal(move game.Move) bool {
	i, ok := move.(mockMove)
	return ok && int(i) >= 0 && int(i) < len(m.children)
}

func (m *mockState) Play(move game.Move) (game.State, error) {
	if !m.IsLegal(move) {
		return nil, game.InvalidMove(move)
	}
	return m.children[move.(mockMove)], nil
}

func (m *mockState) IsTerminal() bool {
	return len(m.children) == 0
}

func (m *mockState) Winner() game.Player {
	return m.winner
}

func (m *mockState) String() string {
	return fmt.Sprintf("mock node, %d children, next player %s", len(m.children), m.player)
}
