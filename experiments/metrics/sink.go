package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Sink receives finished metrics, e.g. to export them.
type Sink interface {
	ObserveSearch(SearchMetric)
	ObserveGame(GameMetric)
}

type nopSink struct{}

func NewNopSink() Sink {
	return nopSink{}
}

func (nopSink) ObserveSearch(SearchMetric) {}
func (nopSink) ObserveGame(GameMetric)     {}

type PrometheusSink struct {
	nodes    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	games    *prometheus.CounterVec
}

func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	s := &PrometheusSink{
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gameagent",
			Subsystem: "search",
			Name:      "nodes_total",
			Help:      "Game states examined by searches.",
		}, []string{"strategy"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gameagent",
			Subsystem: "search",
			Name:      "seconds",
			Help:      "Time spent choosing a move.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"strategy"}),
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gameagent",
			Name:      "games_total",
			Help:      "Finished games by winner.",
		}, []string{"winner"}),
	}
	for _, c := range []prometheus.Collector{s.nodes, s.duration, s.games} {
		if err := reg.Register(c); err != nil {
			return nil, errors.WithMessage(err, "register collector")
		}
	}
	return s, nil
}

func (s *PrometheusSink) ObserveSearch(m SearchMetric) {
	s.nodes.WithLabelValues(m.Strategy).Add(float64(m.Nodes))
	s.duration.WithLabelValues(m.Strategy).Observe(m.Duration.Seconds())
}

func (s *PrometheusSink) ObserveGame(m GameMetric) {
	s.games.WithLabelValues(m.Winner.String()).Inc()
}
