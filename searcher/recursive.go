package searcher

import (
	"context"

	"gameagent/experiments/metrics"
	"gameagent/game"
)

// RecursiveMinimax searches the whole game tree below a state with negamax and
// plays the first move that reaches the best score. No pruning, no memoization.
type RecursiveMinimax struct {
	settings
}

func NewRecursiveMinimax(options ...Option) *RecursiveMinimax {
	return &RecursiveMinimax{settings: newSettings("recursive_minimax", options)}
}

func (m *RecursiveMinimax) Search(ctx context.Context, state game.State) (Result, error) {
	if _, err := rootMoves(state); err != nil {
		return Result{}, err
	}

	collector := metrics.NewCollector()
	collector.Start(m.name, 1)
	l := newLimiter(ctx, m.limits, collector)

	score, move, err := negamax(l, state, 0)
	if err != nil {
		return Result{}, err
	}
	return m.complete(move, score, collector), nil
}

// negamax returns the value of state for its player to move, and the first
// move achieving it (nil at leaves).
func negamax(l *limiter, state game.State, depth int) (int, game.Move, error) {
	if err := l.visit(depth); err != nil {
		return 0, nil, err
	}
	if state.IsTerminal() {
		return terminalScore(state), nil, nil
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return terminalScore(state), nil, nil
	}

	best := Loss - 1
	var bestMove game.Move
	for _, move := range moves {
		child, err := play(state, move)
		if err != nil {
			return 0, nil, err
		}
		score, _, err := negamax(l, child, depth+1)
		if err != nil {
			return 0, nil, err
		}
		if -score > best {
			best, bestMove = -score, move
		}
	}
	return best, bestMove, nil
}
