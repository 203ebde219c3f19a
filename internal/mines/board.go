package mines

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Status int8

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*s = InProgress
	case "won":
		*s = Won
	case "lost":
		*s = Lost
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

type cell struct {
	mine, revealed, flagged bool
	adjacent                int8 // valid once revealed
}

// Board is a single game. It is not safe for concurrent use.
type Board struct {
	width, height, mineCount int

	cells []cell
	mines []int // sorted cell indices

	safeCount    int
	revealedSafe int
	flags        int
	exploded     int // index of the mine that ended the game, -1 otherwise

	status Status
}

// New places mineCount mines uniformly at random on a width x height board.
// There is no safe first click: the very first reveal may hit a mine.
func New(width, height, mineCount int, rnd *rand.Rand) (*Board, error) {
	params := GameParams{Width: width, Height: height, MineCount: mineCount}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand()
	}
	b := newBoard(width, height, placeMines(width*height, mineCount, rnd))
	Log.WithField("params", params.Seed()).Debug("new board")
	return b, nil
}

func NewFromParams(params GameParams, rnd *rand.Rand) (*Board, error) {
	return New(params.Width, params.Height, params.MineCount, rnd)
}

/*
Pick count indices off the list of all cells. Each pick swaps the last
remaining candidate into the picked slot, so every subset of size count is
equally likely.
*/
func placeMines(n, count int, rnd *rand.Rand) []int {
	candidates := make([]int, n)
	for i := range candidates {
		candidates[i] = i
	}
	mines := make([]int, 0, count)
	k := n
	for range count {
		i := rnd.IntN(k)
		mines = append(mines, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	slices.Sort(mines)
	return mines
}

// newBoard expects mines to hold distinct in-bounds indices.
func newBoard(width, height int, mines []int) *Board {
	b := &Board{
		width:     width,
		height:    height,
		mineCount: len(mines),
		cells:     make([]cell, width*height),
		mines:     mines,
		safeCount: width*height - len(mines),
		exploded:  -1,
	}
	for _, i := range mines {
		b.cells[i].mine = true
	}
	return b
}

func (b *Board) Width() int { return b.width }
func (b *Board) Height() int { return b.height }
func (b *Board) MineCount() int { return b.mineCount }
func (b *Board) FlagCount() int { return b.flags }
func (b *Board) Status() Status { return b.status }
func (b *Board) Params() GameParams {
	return GameParams{Width: b.width, Height: b.height, MineCount: b.mineCount}
}

// RemainingMines is the counter shown to the player. It goes negative when
// there are more flags than mines.
func (b *Board) RemainingMines() int {
	return b.mineCount - b.flags
}

func (b *Board) InBounds(c Coord) bool {
	return 0 <= c.Row && c.Row < b.height && 0 <= c.Col && c.Col < b.width
}

func (b *Board) index(c Coord) int {
	return c.Row*b.width + c.Col
}

func (b *Board) coord(i int) Coord {
	return Coord{Row: i / b.width, Col: i % b.width}
}

// neighbors yields the indices of the up to 8 cells around i, clipped to the
// board.
func (b *Board) neighbors(i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		x, y := i%b.width, i/b.width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				xx, yy := x+dx, y+dy
				if (dx == 0 && dy == 0) ||
					xx < 0 || xx >= b.width || yy < 0 || yy >= b.height {
					continue
				}
				if !yield(yy*b.width + xx) {
					return
				}
			}
		}
	}
}

func (b *Board) Neighbors(c Coord) []Coord {
	if !b.InBounds(c) {
		return nil
	}
	var res []Coord
	for j := range b.neighbors(b.index(c)) {
		res = append(res, b.coord(j))
	}
	return res
}

func (b *Board) countAdjacent(i int) int8 {
	var n int8
	for j := range b.neighbors(i) {
		if b.cells[j].mine {
			n++
		}
	}
	return n
}

// Reveal opens the cell at c. Revealing a flagged or already revealed cell, or
// any cell once the game is over, changes nothing.
func (b *Board) Reveal(c Coord) (RevealOutcome, error) {
	if !b.InBounds(c) {
		return RevealOutcome{Status: b.status}, outOfRange(c)
	}
	out := RevealOutcome{Status: b.status}
	i := b.index(c)
	if b.status != InProgress || b.cells[i].flagged || b.cells[i].revealed {
		return out, nil
	}

	if b.cells[i].mine {
		b.explode(i, &out)
		return out, nil
	}

	b.flood(i, &out)

	if b.revealedSafe == b.safeCount {
		b.status = Won
		Log.WithField("params", b.Params().Seed()).Debug("game won")
	}
	out.Status = b.status
	return out, nil
}

/*
Open start and keep opening every unflagged, unopened neighbour of any
cell that turns out to have no mines around it. Cells are marked revealed
when pushed so nothing is queued twice.
*/
func (b *Board) flood(start int, out *RevealOutcome) {
	var barriers map[int]struct{}
	b.cells[start].revealed = true
	todo := []int{start}
	for len(todo) > 0 {
		i := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		n := b.countAdjacent(i)
		b.cells[i].adjacent = n
		b.revealedSafe++
		out.Revealed = append(out.Revealed, RevealedCell{b.coord(i), int(n)})
		if n != 0 {
			continue
		}

		for j := range b.neighbors(i) {
			nb := &b.cells[j]
			switch {
			case nb.revealed, nb.mine:
				// a zero cell has no mine neighbours; the check keeps mines
				// out of the flood regardless
			case nb.flagged:
				if barriers == nil {
					barriers = make(map[int]struct{})
				}
				if _, ok := barriers[j]; !ok {
					barriers[j] = struct{}{}
					out.Barriers = append(out.Barriers, b.coord(j))
				}
			default:
				nb.revealed = true
				todo = append(todo, j)
			}
		}
	}
}

/*
The player has landed on a mine. Expose every mine except the flagged ones
and point out the flags that were placed on safe cells.
*/
func (b *Board) explode(i int, out *RevealOutcome) {
	b.status = Lost
	b.exploded = i
	hit := b.coord(i)
	out.Exploded = &hit
	for _, j := range b.mines {
		if j != i && !b.cells[j].flagged {
			out.ExposedMines = append(out.ExposedMines, b.coord(j))
		}
	}
	for j := range b.cells {
		if b.cells[j].flagged && !b.cells[j].mine {
			out.WrongFlags = append(out.WrongFlags, b.coord(j))
		}
	}
	out.Status = Lost
	Log.WithFields(logrus.Fields{
		"params": b.Params().Seed(),
		"cell":   hit.String(),
	}).Debug("game lost")
}

// ToggleFlag flips the flag on an unrevealed cell while the game is running.
func (b *Board) ToggleFlag(c Coord) (FlagToggle, error) {
	if !b.InBounds(c) {
		return FlagToggle{}, outOfRange(c)
	}
	cl := &b.cells[b.index(c)]
	if b.status != InProgress || cl.revealed {
		return FlagToggle{Flagged: cl.flagged}, nil
	}
	cl.flagged = !cl.flagged
	if cl.flagged {
		b.flags++
		return FlagToggle{Changed: true, Flagged: true, Delta: 1}, nil
	}
	b.flags--
	return FlagToggle{Changed: true, Flagged: false, Delta: -1}, nil
}

// Chord reveals every unflagged neighbour of a revealed number once the
// player has placed as many flags around it as the number says.
func (b *Board) Chord(c Coord) (RevealOutcome, error) {
	if !b.InBounds(c) {
		return RevealOutcome{Status: b.status}, outOfRange(c)
	}
	out := RevealOutcome{Status: b.status}
	i := b.index(c)
	cl := b.cells[i]
	if b.status != InProgress || !cl.revealed || cl.adjacent == 0 {
		return out, nil
	}

	flags := 0
	targets := make([]int, 0, 8)
	for j := range b.neighbors(i) {
		if b.cells[j].flagged {
			flags++
		} else if !b.cells[j].revealed {
			targets = append(targets, j)
		}
	}
	if flags != int(cl.adjacent) {
		return out, nil
	}

	for _, j := range targets {
		o, err := b.Reveal(b.coord(j))
		if err != nil {
			return out, err
		}
		out.merge(o)
		if b.status != InProgress {
			break
		}
	}
	out.Status = b.status
	return out, nil
}

func (b *Board) state(i int) CellState {
	cl := b.cells[i]
	lost := b.status == Lost
	switch {
	case cl.revealed:
		return CellState(cl.adjacent)
	case lost && i == b.exploded:
		return ExplodedMine
	case lost && cl.flagged && cl.mine:
		return CorrectlyFlagged
	case lost && cl.flagged:
		return FalselyFlagged
	case lost && cl.mine:
		return UnflaggedMine
	case cl.flagged:
		return Flagged
	default:
		return Unknown
	}
}

// CellView reports what the player may know about c. Mine locations stay
// hidden until the game is lost.
func (b *Board) CellView(c Coord) (CellView, error) {
	if !b.InBounds(c) {
		return CellView{}, outOfRange(c)
	}
	i := b.index(c)
	cl := b.cells[i]
	v := CellView{
		Revealed: cl.revealed,
		Flagged:  cl.flagged,
		State:    b.state(i),
	}
	if cl.revealed || b.status == Lost {
		mine := cl.mine
		v.Mine = &mine
	}
	if cl.revealed {
		n := int(cl.adjacent)
		v.Adjacent = &n
	}
	return v, nil
}

// Grid is the player's view of the whole board in row-major order.
func (b *Board) Grid() Grid {
	g := make(Grid, len(b.cells))
	for i := range b.cells {
		g[i] = b.state(i)
	}
	return g
}
