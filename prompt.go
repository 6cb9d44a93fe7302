package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gameagent/agent"
	"gameagent/engine"
	"gameagent/experiments"
	"gameagent/game"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
)

// prompter asks questions on the terminal until it gets a usable answer.
type prompter struct {
	in  *bufio.Reader
	out *termenv.Output
}

type gameChoice struct {
	code  string
	size  int
	first game.Player
}

func newPrompter(in *bufio.Reader, out *termenv.Output) *prompter {
	return &prompter{in: in, out: out}
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, p.out.String(question).Bold().String())
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.WithMessage(err, "read answer")
	}
	return strings.TrimSpace(line), nil
}

// askUntil repeats question until valid accepts the answer.
func (p *prompter) askUntil(question string, valid func(string) bool) (string, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return "", err
		}
		if valid(answer) {
			return answer, nil
		}
	}
}

func (p *prompter) pickGame() (gameChoice, error) {
	code, err := p.askUntil(fmt.Sprintf("Select the game you want to play (%s): ", engine.DescribeGames()), func(s string) bool {
		_, ok := engine.LookupGame(s)
		return ok
	})
	if err != nil {
		return gameChoice{}, err
	}

	info, _ := engine.LookupGame(code)
	size := 0
	if info.SizePrompt != "" {
		answer, err := p.askUntil(fmt.Sprintf("%s [%d]: ", info.SizePrompt, info.DefaultSize), func(s string) bool {
			if s == "" {
				return true
			}
			n, err := strconv.Atoi(s)
			return err == nil && n > 0
		})
		if err != nil {
			return gameChoice{}, err
		}
		if answer != "" {
			size, _ = strconv.Atoi(answer)
		}
	}

	first, err := p.ask("Type y if player 1 is to make the first move: ")
	if err != nil {
		return gameChoice{}, err
	}
	choice := gameChoice{code: code, size: size, first: game.PlayerTwo}
	if strings.EqualFold(first, "y") {
		choice.first = game.PlayerOne
	}
	return choice, nil
}

func (p *prompter) pickAgents(opts agent.Options) (map[game.Player]agent.Agent, error) {
	agents := map[game.Player]agent.Agent{}
	for i, player := range []game.Player{game.PlayerOne, game.PlayerTwo} {
		question := fmt.Sprintf("Select the strategy for Player %d (%s): ", i+1, agent.Describe())
		code, err := p.askUntil(question, func(s string) bool {
			_, ok := agent.Lookup(s)
			return ok
		})
		if err != nil {
			return nil, err
		}
		a, err := agent.New(code, opts)
		if err != nil {
			return nil, err
		}
		agents[player] = a
	}
	return agents, nil
}

func (p *prompter) announce(winner game.Player) {
	style := p.out.String(fmt.Sprintf("Game over, winner: %s", winner)).Bold()
	if winner == game.None {
		style = p.out.String("Game over with no winner").Faint()
	} else {
		style = style.Foreground(p.out.Color("2"))
	}
	fmt.Fprintln(p.out, style)
}

func printReport(out *termenv.Output, report experiments.Report) {
	fmt.Fprintln(out, out.String(fmt.Sprintf("Experiment %s (run %s)", report.Name, report.RunID)).Bold())
	for _, m := range report.Matchups {
		fmt.Fprintf(out, "  #%d %s: %s vs %s, %d games, %d-%d, %d ties, %d won by the first to move\n",
			m.Matchup, m.Game, m.Player1, m.Player2, m.Games, m.Player1Wins, m.Player2Wins, m.Ties, m.FirstToMoveWins)
	}
	fmt.Fprintln(out, out.String("Records stored in "+report.Dir).Faint())
}
