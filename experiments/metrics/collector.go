package metrics

import (
	"time"

	"gameagent/game"

	"go.uber.org/atomic"
)

type SearchMetric struct {
	Strategy   string
	Goroutines int
	Duration   time.Duration
	Nodes      int64 // States examined, the root included
	MaxDepth   int   // Deepest ply reached below the root
	Score      int   // Value of the root for the player to move, when the strategy computes one
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player // None on a tie
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector counts the work of a single search. It is safe for concurrent use
// so parallel searches can share one.
type Collector interface {
	Start(strategy string, goroutines int)
	// AddNode counts a node and returns the count it brought the search to
	AddNode(depth int) int64
	Nodes() int64
	Complete() SearchMetric
}

type collector struct {
	strategy   string
	goroutines int
	startTime  time.Time
	nodes      atomic.Int64
	maxDepth   atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string, goroutines int) {
	m.startTime = time.Now()
	m.strategy = strategy
	m.goroutines = goroutines
	m.nodes.Store(0)
	m.maxDepth.Store(0)
}

func (m *collector) AddNode(depth int) int64 {
	nodes := m.nodes.Inc()
	for {
		current := m.maxDepth.Load()
		if int32(depth) <= current || m.maxDepth.CompareAndSwap(current, int32(depth)) {
			return nodes
		}
	}
}

func (m *collector) Nodes() int64 {
	return m.nodes.Load()
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:   m.strategy,
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Nodes:      m.nodes.Load(),
		MaxDepth:   int(m.maxDepth.Load()),
	}
}
