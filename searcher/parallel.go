package searcher

import (
	"context"
	"runtime"

	"gameagent/experiments/metrics"
	"gameagent/game"

	"golang.org/x/sync/errgroup"
)

// ParallelMinimax scores each child of the root on its own goroutine with the
// recursive search. States are immutable so subtrees share nothing but the
// node counter. The result matches RecursiveMinimax.
type ParallelMinimax struct {
	settings
	goroutines int
}

// NewParallelMinimax runs at most goroutines subtrees at once, or one per CPU
// when goroutines is not positive.
func NewParallelMinimax(goroutines int, options ...Option) *ParallelMinimax {
	if goroutines <= 0 {
		goroutines = runtime.NumCPU()
	}
	return &ParallelMinimax{
		settings:   newSettings("parallel_minimax", options),
		goroutines: goroutines,
	}
}

func (m *ParallelMinimax) Search(ctx context.Context, state game.State) (Result, error) {
	moves, err := rootMoves(state)
	if err != nil {
		return Result{}, err
	}

	collector := metrics.NewCollector()
	collector.Start(m.name, m.goroutines)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(m.goroutines)
	l := newLimiter(groupCtx, m.limits, collector)
	if err := l.visit(0); err != nil {
		return Result{}, err
	}

	scores := make([]int, len(moves))
	for i, move := range moves {
		i, move := i, move
		group.Go(func() error {
			child, err := play(state, move)
			if err != nil {
				return err
			}
			score, _, err := negamax(l, child, 1)
			if err != nil {
				return err
			}
			scores[i] = -score
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	return m.complete(moves[best], scores[best], collector), nil
}
