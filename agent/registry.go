package agent

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gameagent/experiments/metrics"
	"gameagent/searcher"
	"gameagent/utils"

	"github.com/pkg/errors"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// stdin is shared by every interactive player reading from the terminal.
var stdin = sync.OnceValue(func() *bufio.Reader {
	return bufio.NewReader(os.Stdin)
})

// Options are shared by every strategy the registry builds. Zero values fall
// back to stdin/stdout, unlimited searches and no metrics export. Interactive
// players given the same *bufio.Reader take turns reading from it.
type Options struct {
	In         io.Reader
	Out        io.Writer
	Limits     *searcher.Limits
	Sink       metrics.Sink
	Goroutines int    // Used by parallel minimax, 0 for one per CPU
	Seed       uint64 // Used by the random strategy
}

func (o Options) searcherOptions(code string) []searcher.Option {
	return []searcher.Option{
		searcher.WithName(code),
		searcher.WithLimits(o.Limits),
		searcher.WithMetrics(o.Sink),
	}
}

// limited falls back to the rough outcome heuristic when a limited search
// cannot finish.
func (o Options) limited(a Agent) Agent {
	if o.Limits == nil || o.Limits.Infinite() {
		return a
	}
	return WithFallback(a, FromSearcher(searcher.NewRoughOutcome(
		searcher.WithName("ro"),
		searcher.WithMetrics(o.Sink),
	)))
}

type Strategy struct {
	Code string
	Name string
	New  func(code string, opts Options) Agent
}

// Registry lists the playable strategies by their short code.
var Registry = []Strategy{
	{Code: "i", Name: "interactive", New: func(_ string, opts Options) Agent {
		in, out := opts.In, opts.Out
		if in == nil {
			in = stdin()
		}
		if out == nil {
			out = os.Stdout
		}
		return NewInteractive(in, out)
	}},
	{Code: "ro", Name: "rough outcome", New: func(code string, opts Options) Agent {
		return FromSearcher(searcher.NewRoughOutcome(opts.searcherOptions(code)...))
	}},
	{Code: "mr", Name: "recursive minimax", New: func(code string, opts Options) Agent {
		return opts.limited(FromSearcher(searcher.NewRecursiveMinimax(opts.searcherOptions(code)...)))
	}},
	{Code: "mi", Name: "iterative minimax", New: func(code string, opts Options) Agent {
		return opts.limited(FromSearcher(searcher.NewIterativeMinimax(opts.searcherOptions(code)...)))
	}},
	{Code: "mp", Name: "parallel minimax", New: func(code string, opts Options) Agent {
		return opts.limited(FromSearcher(searcher.NewParallelMinimax(opts.Goroutines, opts.searcherOptions(code)...)))
	}},
	{Code: "r", Name: "random", New: func(code string, opts Options) Agent {
		return FromSearcher(searcher.NewRandom(opts.Seed, opts.searcherOptions(code)...))
	}},
}

func Lookup(code string) (Strategy, bool) {
	return utils.FindFunc(Registry, func(s Strategy) bool { return s.Code == code })
}

// New builds the strategy registered under code.
func New(code string, opts Options) (Agent, error) {
	strategy, ok := Lookup(code)
	if !ok {
		return nil, errors.WithMessagef(ErrUnknownStrategy, "code %q", code)
	}
	return strategy.New(code, opts), nil
}

// Describe lists the registry as "'i': interactive, 'ro': rough outcome, ...".
func Describe() string {
	parts := make([]string, len(Registry))
	for i, s := range Registry {
		parts[i] = fmt.Sprintf("'%s': %s", s.Code, s.Name)
	}
	return strings.Join(parts, ", ")
}
