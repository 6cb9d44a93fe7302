package searcher

import (
	"gameagent/experiments/metrics"
	"gameagent/game"
)

type settings struct {
	name   string
	limits Limits
	sink   metrics.Sink
}

type Option func(s *settings)

// WithLimits bounds every search by a node count and/or wall-clock budget.
func WithLimits(limits *Limits) Option {
	return func(s *settings) {
		if limits != nil {
			s.limits = *limits
		}
	}
}

// WithMetrics reports the metric of every finished search to sink.
func WithMetrics(sink metrics.Sink) Option {
	return func(s *settings) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithName sets the strategy name reported in search metrics.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

func newSettings(name string, options []Option) settings {
	s := settings{ // Default values
		name:   name,
		limits: *DefaultLimits(),
		sink:   metrics.NewNopSink(),
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

func (s settings) Name() string {
	return s.name
}

func (s settings) complete(move game.Move, score int, collector metrics.Collector) Result {
	metric := collector.Complete()
	metric.Score = score
	s.sink.ObserveSearch(metric)
	return Result{Move: move, Score: score, Metric: metric}
}
