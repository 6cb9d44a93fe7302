package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gameagent/experiments/metrics"
	"gameagent/game"
	"gameagent/searcher"
	"gameagent/utils"

	"github.com/pkg/errors"
)

// Interactive asks a person for each move. Input lines are matched against the
// printed form of the legal moves.
type Interactive struct {
	in  *bufio.Reader
	out io.Writer
}

// NewInteractive uses in as is when it is a *bufio.Reader, so players and
// prompts sharing one reader each take only their own lines.
func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	return &Interactive{
		in:  reader,
		out: out,
	}
}

func (a *Interactive) FindMove(ctx context.Context, g *game.Game) (game.Move, metrics.SearchMetric, error) {
	if g.IsOver() {
		return nil, metrics.SearchMetric{}, searcher.ErrNoLegalMove
	}
	moves := g.Current.LegalMoves()
	start := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			return nil, metrics.SearchMetric{}, errors.WithMessage(err, "read move")
		}
		fmt.Fprint(a.out, "Enter a move: ")
		line, err := a.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, metrics.SearchMetric{}, errors.WithMessage(err, "read move")
		}

		text := strings.TrimSpace(line)
		move, ok := utils.FindFunc(moves, func(m game.Move) bool {
			return strings.EqualFold(m.String(), text)
		})
		if ok {
			return move, metrics.SearchMetric{
				Strategy:   "interactive",
				Goroutines: 1,
				Duration:   time.Since(start),
				Nodes:      1,
			}, nil
		}
		fmt.Fprintf(a.out, "%q is not one of the available moves.\n", text)
	}
}
