// Package terminal plays a single game over a pair of streams, one command
// per line. Besides the move commands it understands q to quit.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/commands"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

const prompt = "> "

type Player struct {
	board *mines.Board
	in    *bufio.Scanner
	out   io.Writer
	log   logrus.FieldLogger
}

func New(logger logrus.FieldLogger, b *mines.Board, r io.Reader, w io.Writer) *Player {
	return &Player{
		board: b,
		in:    bufio.NewScanner(r),
		out:   w,
		log:   logger,
	}
}

func (p *Player) render() {
	fmt.Fprintf(p.out, "mines left: %d\n", p.board.RemainingMines())
	fmt.Fprint(p.out, p.board.Grid().ToString(p.board.Width()))
}

// Run reads commands until the game ends, the input is exhausted, q is read
// or ctx is done. Bad commands are reported and the game goes on.
func (p *Player) Run(ctx context.Context) error {
	p.render()
	fmt.Fprint(p.out, prompt)

	for p.in.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(p.in.Text())
		switch line {
		case "":
			fmt.Fprint(p.out, prompt)
			continue
		case "q":
			fmt.Fprintln(p.out, "bye")
			return nil
		}

		if _, err := commands.Execute(p.board, line); err != nil {
			p.log.WithError(err).WithField("line", line).Debug("rejected command")
			fmt.Fprintf(p.out, "error: %s\n", err)
			fmt.Fprint(p.out, prompt)
			continue
		}

		p.render()
		switch p.board.Status() {
		case mines.Won:
			fmt.Fprintln(p.out, "you won!")
			return nil
		case mines.Lost:
			fmt.Fprintln(p.out, "boom! you lost")
			return nil
		}
		fmt.Fprint(p.out, prompt)
	}

	return p.in.Err()
}
