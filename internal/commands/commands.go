// Package commands implements the line-oriented move protocol shared by the
// batch endpoint, the websocket connection and the terminal player:
//
//	g         // fetch the game, changes nothing
//	o row col // reveal a cell
//	f row col // toggle a flag
//	c row col // chord a revealed number
package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
	ErrBadArgument    = errors.New("bad argument")
)

type Op string

const (
	Get    Op = "g"
	Reveal Op = "o"
	Flag   Op = "f"
	Chord  Op = "c"
)

// Maps known commands to number of arguments
var commandNargs = map[Op]int{
	Get:    0,
	Reveal: 2,
	Flag:   2,
	Chord:  2,
}

type Command struct {
	Op    Op
	Coord mines.Coord
}

// Result is what a single command did to the board. Outcome is set for
// reveals and chords, Flag for flag toggles.
type Result struct {
	Command Command
	Outcome *mines.RevealOutcome
	Flag    *mines.FlagToggle
}

// LineError reports which line of a batch could not be applied.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func parseCoord(args []string) (c mines.Coord, err error) {
	if c.Row, err = strconv.Atoi(args[0]); err != nil {
		return c, fmt.Errorf("%w: row must be an int", ErrBadArgument)
	}
	if c.Col, err = strconv.Atoi(args[1]); err != nil {
		return c, fmt.Errorf("%w: column must be an int", ErrBadArgument)
	}
	return c, nil
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}
	op := Op(parts[0])
	nargs, ok := commandNargs[op]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, ErrArgCount
	}
	cmd := Command{Op: op}
	if nargs == 2 {
		c, err := parseCoord(parts[1:])
		if err != nil {
			return Command{}, err
		}
		cmd.Coord = c
	}
	return cmd, nil
}

func Apply(b *mines.Board, cmd Command) (Result, error) {
	res := Result{Command: cmd}
	switch cmd.Op {
	case Get:
		return res, nil
	case Reveal:
		out, err := b.Reveal(cmd.Coord)
		if err != nil {
			return res, err
		}
		res.Outcome = &out
	case Flag:
		ft, err := b.ToggleFlag(cmd.Coord)
		if err != nil {
			return res, err
		}
		res.Flag = &ft
	case Chord:
		out, err := b.Chord(cmd.Coord)
		if err != nil {
			return res, err
		}
		res.Outcome = &out
	default:
		return res, ErrUnknownCommand
	}
	return res, nil
}

func Execute(b *mines.Board, line string) (Result, error) {
	cmd, err := Parse(line)
	if err != nil {
		return Result{}, err
	}
	return Apply(b, cmd)
}

// ExecuteBatch runs newline-separated commands in order. Blank lines are
// skipped. It stops after the command that ends the game. If a line cannot be
// applied a [*LineError] is returned; the lines before it stay applied.
func ExecuteBatch(b *mines.Board, text string) ([]Result, error) {
	var results []Result
	for i, line := range lines(strings.TrimSpace(text)) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		res, err := Execute(b, line)
		if err != nil {
			return results, &LineError{Line: i, Err: err}
		}
		results = append(results, res)
		if b.Status() != mines.InProgress {
			break
		}
	}
	return results, nil
}
