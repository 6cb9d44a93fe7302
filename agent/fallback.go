package agent

import (
	"context"

	"gameagent/experiments/metrics"
	"gameagent/game"
	"gameagent/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type fallbackAgent struct {
	primary Agent
	backup  Agent
}

// WithFallback plays with primary, and with backup for the moves where the
// primary search hits its node or time limit. Cancellation is not retried.
func WithFallback(primary, backup Agent) Agent {
	return &fallbackAgent{primary: primary, backup: backup}
}

func (a *fallbackAgent) FindMove(ctx context.Context, g *game.Game) (game.Move, metrics.SearchMetric, error) {
	move, metric, err := a.primary.FindMove(ctx, g)
	var stop *searcher.StopError
	if err == nil || !errors.As(err, &stop) || stop.Reason == searcher.StopInterrupt {
		return move, metric, err
	}

	log.Debug().Msgf("%v, falling back", err)
	return a.backup.FindMove(ctx, g)
}
