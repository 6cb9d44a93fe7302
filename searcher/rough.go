package searcher

import (
	"context"

	"gameagent/experiments/metrics"
	"gameagent/game"
)

// Classification of a move from the point of view of the player making it
type Classification int

const (
	ClassLose Classification = iota
	ClassUnknown
	ClassTie
	ClassWin
)

func (c Classification) String() string {
	switch c {
	case ClassLose:
		return "lose"
	case ClassTie:
		return "tie"
	case ClassWin:
		return "win"
	default:
		return "unknown"
	}
}

// rank orders classifications for selection: ties and unknowns are equal.
func (c Classification) rank() int {
	switch c {
	case ClassWin:
		return 2
	case ClassLose:
		return 0
	default:
		return 1
	}
}

func (c Classification) score() int {
	switch c {
	case ClassWin:
		return Win
	case ClassLose:
		return Loss
	default:
		return Tie
	}
}

// RoughOutcome is a cheap heuristic that looks at most two plies ahead. It
// plays the first move classified as a win, else the first that is not a
// loss, else the first move. It is not optimal.
type RoughOutcome struct {
	settings
}

func NewRoughOutcome(options ...Option) *RoughOutcome {
	return &RoughOutcome{settings: newSettings("rough_outcome", options)}
}

func (r *RoughOutcome) Search(ctx context.Context, state game.State) (Result, error) {
	moves, err := rootMoves(state)
	if err != nil {
		return Result{}, err
	}

	collector := metrics.NewCollector()
	collector.Start(r.name, 1)
	l := newLimiter(ctx, r.limits, collector)
	if err := l.visit(0); err != nil {
		return Result{}, err
	}

	mover := state.Player()
	bestClass := Classification(-1)
	var bestMove game.Move
	for _, move := range moves {
		child, err := play(state, move)
		if err != nil {
			return Result{}, err
		}
		class, err := classify(l, child, mover)
		if err != nil {
			return Result{}, err
		}
		if bestMove == nil || class.rank() > bestClass.rank() {
			bestClass, bestMove = class, move
		}
		if class == ClassWin {
			break
		}
	}
	return r.complete(bestMove, bestClass.score(), collector), nil
}

// classify reports how the move leading to child looks for mover.
func classify(l *limiter, child game.State, mover game.Player) (Classification, error) {
	if err := l.visit(1); err != nil {
		return ClassUnknown, err
	}
	if child.IsTerminal() {
		return fromWinner(child.Winner(), mover), nil
	}
	if estimator, ok := child.(game.Estimator); ok {
		// Estimates are for the opponent, who moves next
		switch estimator.RoughOutcome() {
		case game.Win:
			return ClassLose, nil
		case game.Lose:
			return ClassWin, nil
		case game.Draw:
			return ClassTie, nil
		default:
			return ClassUnknown, nil
		}
	}

	replies := child.LegalMoves()
	if len(replies) == 0 {
		return fromWinner(child.Winner(), mover), nil
	}
	allOver, allWon := true, true
	for _, reply := range replies {
		grandchild, err := play(child, reply)
		if err != nil {
			return ClassUnknown, err
		}
		if err := l.visit(2); err != nil {
			return ClassUnknown, err
		}
		if !grandchild.IsTerminal() {
			allOver, allWon = false, false
			continue
		}
		switch grandchild.Winner() {
		case mover:
		case game.None:
			allWon = false
		default:
			// The opponent has a winning reply
			return ClassLose, nil
		}
	}
	switch {
	case allWon:
		return ClassWin, nil
	case allOver:
		return ClassTie, nil
	default:
		return ClassUnknown, nil
	}
}

func fromWinner(winner, mover game.Player) Classification {
	switch winner {
	case mover:
		return ClassWin
	case game.None:
		return ClassTie
	default:
		return ClassLose
	}
}
