package mines

import "fmt"

type Coord struct {
	Row int `json:"row" schema:"row,required"`
	Col int `json:"col" schema:"col,required"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

type RevealedCell struct {
	Coord
	Adjacent int `json:"adjacent"`
}

// RevealOutcome lists the cells a single move changed. Barriers are the
// flagged cells that stopped a flood fill. On a loss Exploded is the mine
// that was hit, ExposedMines every other unflagged mine and WrongFlags the
// flags sitting on safe cells.
type RevealOutcome struct {
	Revealed     []RevealedCell `json:"revealed,omitempty"`
	Barriers     []Coord        `json:"barriers,omitempty"`
	Exploded     *Coord         `json:"exploded,omitempty"`
	ExposedMines []Coord        `json:"exposed_mines,omitempty"`
	WrongFlags   []Coord        `json:"wrong_flags,omitempty"`
	Status       Status         `json:"status"`
}

func (o RevealOutcome) Changed() bool {
	return len(o.Revealed) > 0 || o.Exploded != nil
}

func (o *RevealOutcome) merge(other RevealOutcome) {
	o.Revealed = append(o.Revealed, other.Revealed...)
	o.Barriers = append(o.Barriers, other.Barriers...)
	if other.Exploded != nil {
		o.Exploded = other.Exploded
		o.ExposedMines = other.ExposedMines
		o.WrongFlags = other.WrongFlags
	}
	o.Status = other.Status
}

// FlagToggle is returned by [Board.ToggleFlag]. Delta is +1 when a flag was
// placed, -1 when one was removed and 0 when nothing happened.
type FlagToggle struct {
	Changed bool `json:"changed"`
	Flagged bool `json:"flagged"`
	Delta   int  `json:"delta"`
}

type CellView struct {
	Revealed bool      `json:"revealed"`
	Flagged  bool      `json:"flagged"`
	Mine     *bool     `json:"mine,omitempty"`
	Adjacent *int      `json:"adjacent,omitempty"`
	State    CellState `json:"state"`
}
