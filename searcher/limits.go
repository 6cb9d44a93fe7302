package searcher

import (
	"context"
	"strings"
	"time"

	"gameagent/experiments/metrics"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// ErrSearchStopped is matched by every error a limiter raises.
var ErrSearchStopped = errors.New("search stopped")

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1 // Context cancelled
	StopMovetime  StopReason = 2 // Time limit reached
	StopNodes     StopReason = 4 // Node limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopNodes, "Nodes"},
	}

	names := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			names = append(names, r.name)
		}
	}
	return strings.Join(names, "|")
}

type StopError struct {
	Reason StopReason
}

func (e *StopError) Error() string {
	return "search stopped: " + e.Reason.String()
}

func (e *StopError) Is(target error) bool {
	return target == ErrSearchStopped
}

// Limits of a single search, zero values mean no limit.
type Limits struct {
	Nodes    int64
	Movetime time.Duration
}

func DefaultLimits() *Limits {
	return &Limits{}
}

// Set the maximum number of states a search may examine
func (l *Limits) SetNodes(nodes int64) *Limits {
	l.Nodes = max(nodes, 0)
	return l
}

// Set the maximum time for a search
func (l *Limits) SetMovetime(movetime time.Duration) *Limits {
	l.Movetime = max(movetime, 0)
	return l
}

func (l *Limits) Infinite() bool {
	return l.Nodes == 0 && l.Movetime == 0
}

// Clock and context are polled every checkInterval nodes
const checkInterval = 1024

// limiter counts the nodes of one search and stops it once a limit is hit.
// Safe for concurrent use.
type limiter struct {
	ctx       context.Context
	limits    Limits
	deadline  time.Time
	collector metrics.Collector
	reason    atomic.Int32
}

func newLimiter(ctx context.Context, limits Limits, collector metrics.Collector) *limiter {
	l := &limiter{
		ctx:       ctx,
		limits:    limits,
		collector: collector,
	}
	if limits.Movetime > 0 {
		l.deadline = time.Now().Add(limits.Movetime)
	}
	return l
}

// visit records a node at the given ply below the root.
func (l *limiter) visit(depth int) error {
	nodes := l.collector.AddNode(depth)

	if l.limits.Nodes > 0 && nodes > l.limits.Nodes {
		l.stop(StopNodes)
	}
	if nodes == 1 || nodes%checkInterval == 0 {
		if l.ctx.Err() != nil {
			l.stop(StopInterrupt)
		}
		if !l.deadline.IsZero() && !time.Now().Before(l.deadline) {
			l.stop(StopMovetime)
		}
	}

	if reason := StopReason(l.reason.Load()); reason != StopNone {
		return &StopError{Reason: reason}
	}
	return nil
}

// stop keeps the first reason, later ones are dropped.
func (l *limiter) stop(reason StopReason) {
	l.reason.CompareAndSwap(int32(StopNone), int32(reason))
}
