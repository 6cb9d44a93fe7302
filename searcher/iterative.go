package searcher

import (
	"context"

	"gameagent/experiments/metrics"
	"gameagent/game"
)

// IterativeMinimax runs the same search as RecursiveMinimax on a heap
// allocated stack of frames, so tree depth is not bounded by the goroutine
// stack. Both return the same move, score and node count for any state.
type IterativeMinimax struct {
	settings
}

func NewIterativeMinimax(options ...Option) *IterativeMinimax {
	return &IterativeMinimax{settings: newSettings("iterative_minimax", options)}
}

// frame is one node on the path from the root to the state being expanded.
type frame struct {
	state    game.State
	moves    []game.Move
	next     int // Index of the next move to expand
	best     int
	bestMove game.Move
}

func newFrame(state game.State, moves []game.Move) frame {
	return frame{state: state, moves: moves, best: Loss - 1}
}

func (f *frame) consider(score int, move game.Move) {
	if score > f.best {
		f.best, f.bestMove = score, move
	}
}

func (m *IterativeMinimax) Search(ctx context.Context, state game.State) (Result, error) {
	moves, err := rootMoves(state)
	if err != nil {
		return Result{}, err
	}

	collector := metrics.NewCollector()
	collector.Start(m.name, 1)
	l := newLimiter(ctx, m.limits, collector)
	if err := l.visit(0); err != nil {
		return Result{}, err
	}

	stack := make([]frame, 1, 32)
	stack[0] = newFrame(state, moves)
	for {
		top := &stack[len(stack)-1]

		if top.next < len(top.moves) {
			move := top.moves[top.next]
			top.next++

			child, err := play(top.state, move)
			if err != nil {
				return Result{}, err
			}
			if err := l.visit(len(stack)); err != nil {
				return Result{}, err
			}

			var childMoves []game.Move
			if !child.IsTerminal() {
				childMoves = child.LegalMoves()
			}
			if len(childMoves) == 0 {
				top.consider(-terminalScore(child), move)
				continue
			}
			stack = append(stack, newFrame(child, childMoves))
			continue
		}

		// Every child of top is scored, hand its value to the parent
		done := *top
		stack[len(stack)-1] = frame{}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return m.complete(done.bestMove, done.best, collector), nil
		}
		parent := &stack[len(stack)-1]
		parent.consider(-done.best, parent.moves[parent.next-1])
	}
}
