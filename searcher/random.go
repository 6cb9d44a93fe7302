package searcher

import (
	"context"
	"sync"

	"gameagent/experiments/metrics"
	"gameagent/game"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move. A fixed seed gives a fixed
// sequence of choices.
type Random struct {
	settings
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed uint64, options ...Option) *Random {
	return &Random{
		settings: newSettings("random", options),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) Search(ctx context.Context, state game.State) (Result, error) {
	moves, err := rootMoves(state)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, &StopError{Reason: StopInterrupt}
	}

	collector := metrics.NewCollector()
	collector.Start(r.name, 1)
	collector.AddNode(0)

	r.mu.Lock()
	move := moves[r.rng.Intn(len(moves))]
	r.mu.Unlock()
	return r.complete(move, Tie, collector), nil
}
