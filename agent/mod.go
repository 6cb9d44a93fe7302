package agent

import (
	"context"

	"gameagent/experiments/metrics"
	"gameagent/game"
	"gameagent/searcher"

	"github.com/pkg/errors"
)

type Agent interface {
	// FindMove returns a legal move for the player to move in g and the metrics
	// of the search that chose it. It must not change g.
	FindMove(ctx context.Context, g *game.Game) (game.Move, metrics.SearchMetric, error)
}

type searcherAgent struct {
	searcher searcher.Searcher
}

// FromSearcher lets a searcher play on the current state of a game.
func FromSearcher(s searcher.Searcher) Agent {
	return &searcherAgent{searcher: s}
}

func (a *searcherAgent) FindMove(ctx context.Context, g *game.Game) (game.Move, metrics.SearchMetric, error) {
	result, err := a.searcher.Search(ctx, g.Current)
	if err != nil {
		return nil, metrics.SearchMetric{}, errors.WithMessage(err, "search")
	}
	return result.Move, result.Metric, nil
}
