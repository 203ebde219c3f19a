package mines

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func boardWith(width, height int, mines ...Coord) *Board {
	idx := make([]int, 0, len(mines))
	for _, c := range mines {
		idx = append(idx, c.Row*width+c.Col)
	}
	slices.Sort(idx)
	return newBoard(width, height, idx)
}

func reveal(t *testing.T, b *Board, row, col int) RevealOutcome {
	t.Helper()
	out, err := b.Reveal(Coord{row, col})
	require.NoError(t, err)
	return out
}

func flag(t *testing.T, b *Board, row, col int) FlagToggle {
	t.Helper()
	res, err := b.ToggleFlag(Coord{row, col})
	require.NoError(t, err)
	return res
}

func revealedCoords(o RevealOutcome) []Coord {
	res := make([]Coord, 0, len(o.Revealed))
	for _, rc := range o.Revealed {
		res = append(res, rc.Coord)
	}
	return res
}

func bruteForceCount(b *Board, c Coord) int {
	n := 0
	for _, i := range b.mines {
		m := b.coord(i)
		dr, dc := m.Row-c.Row, m.Col-c.Col
		if m != c && -1 <= dr && dr <= 1 && -1 <= dc && dc <= 1 {
			n++
		}
	}
	return n
}

func TestNewInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name                 string
		width, height, mines int
	}{
		{"zero width", 0, 5, 1},
		{"negative width", -1, 5, 1},
		{"zero height", 5, 0, 1},
		{"negative mines", 5, 5, -1},
		{"too many mines", 3, 3, 10},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := New(test.width, test.height, test.mines, rand.New(rand.NewPCG(1, 2)))
			assert.Nil(t, b)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestNewPlacesExactMineCount(t *testing.T) {
	tests := []GameParams{
		{Width: 1, Height: 1, MineCount: 0},
		{Width: 3, Height: 3, MineCount: 1},
		{Width: 9, Height: 9, MineCount: 10},
		{Width: 16, Height: 16, MineCount: 40},
		{Width: 30, Height: 16, MineCount: 99},
		{Width: 4, Height: 4, MineCount: 16},
	}
	r := rand.New(rand.NewPCG(1, 2))
	for _, params := range tests {
		t.Run(params.Seed(), func(t *testing.T) {
			for range 20 {
				b, err := NewFromParams(params, r)
				require.NoError(t, err)
				require.Len(t, b.mines, params.MineCount)

				seen := make(map[int]bool)
				for _, i := range b.mines {
					assert.True(t, b.InBounds(b.coord(i)), "mine %d out of bounds", i)
					assert.False(t, seen[i], "duplicate mine %d", i)
					seen[i] = true
				}

				mined := 0
				for _, cl := range b.cells {
					if cl.mine {
						mined++
					}
				}
				assert.Equal(t, params.MineCount, mined)
				assert.Equal(t, params.Cells()-params.MineCount, b.safeCount)
				assert.Equal(t, InProgress, b.Status())
			}
		})
	}
}

func TestNewNilRand(t *testing.T) {
	b, err := New(5, 5, 5, nil)
	require.NoError(t, err)
	assert.Len(t, b.mines, 5)
}

func TestPlaceMinesUniform(t *testing.T) {
	const trials = 4000
	r := rand.New(rand.NewPCG(3, 4))
	hits := make([]int, 4)
	for range trials {
		for _, i := range placeMines(4, 1, r) {
			hits[i]++
		}
	}
	for i, h := range hits {
		assert.InDelta(t, trials/4, h, 150, "cell %d picked %d times", i, h)
	}
}

func TestSingleCellNoMinesWins(t *testing.T) {
	b, err := New(1, 1, 0, nil)
	require.NoError(t, err)

	out := reveal(t, b, 0, 0)
	assert.Equal(t, Won, out.Status)
	assert.Equal(t, Won, b.Status())
	assert.Equal(t, []RevealedCell{{Coord{0, 0}, 0}}, out.Revealed)
}

func TestRevealNumberStops(t *testing.T) {
	b := boardWith(3, 3, Coord{1, 1})

	out := reveal(t, b, 0, 0)
	assert.Equal(t, []RevealedCell{{Coord{0, 0}, 1}}, out.Revealed)
	assert.Equal(t, InProgress, out.Status)

	v, err := b.CellView(Coord{0, 0})
	require.NoError(t, err)
	require.NotNil(t, v.Adjacent)
	assert.Equal(t, 1, *v.Adjacent)
	assert.Equal(t, CellState(1), v.State)

	for _, c := range []Coord{{0, 1}, {1, 0}, {2, 2}} {
		v, err := b.CellView(c)
		require.NoError(t, err)
		assert.False(t, v.Revealed, "%s", c)
	}
}

func TestRevealFloodsEmptyBoard(t *testing.T) {
	b := boardWith(3, 3)

	out := reveal(t, b, 0, 0)
	assert.Len(t, out.Revealed, 9)
	assert.Equal(t, Won, out.Status)
	for _, rc := range out.Revealed {
		assert.Equal(t, 0, rc.Adjacent)
	}
}

func TestFloodStopsAtMinesAndNumbers(t *testing.T) {
	b := boardWith(5, 5, Coord{4, 4})

	out := reveal(t, b, 0, 0)
	assert.Len(t, out.Revealed, 24)
	assert.Equal(t, Won, out.Status)
	assert.NotContains(t, revealedCoords(out), Coord{4, 4})

	v, err := b.CellView(Coord{4, 4})
	require.NoError(t, err)
	assert.False(t, v.Revealed)
	assert.Nil(t, v.Mine)
}

func TestFloodNeverRevisits(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for range 50 {
		b, err := New(16, 16, 20, r)
		require.NoError(t, err)

		for i, cl := range b.cells {
			if cl.mine || cl.revealed {
				continue
			}
			before := b.revealedSafe
			out := reveal(t, b, i/16, i%16)
			coords := revealedCoords(out)

			seen := make(map[Coord]bool)
			for _, c := range coords {
				assert.False(t, seen[c], "%s revealed twice", c)
				seen[c] = true
			}
			assert.Equal(t, before+len(coords), b.revealedSafe)
			if b.Status() != InProgress {
				break
			}
		}
		assert.Equal(t, Won, b.Status())
	}
}

func TestAdjacentMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	for range 20 {
		b, err := New(16, 16, 40, r)
		require.NoError(t, err)

		for i, cl := range b.cells {
			if !cl.mine {
				reveal(t, b, i/16, i%16)
			}
		}
		require.Equal(t, Won, b.Status())

		for i := range b.cells {
			c := b.coord(i)
			v, err := b.CellView(c)
			require.NoError(t, err)
			if b.cells[i].mine {
				assert.False(t, v.Revealed)
				continue
			}
			require.NotNil(t, v.Adjacent, "%s", c)
			assert.Equal(t, bruteForceCount(b, c), *v.Adjacent, "%s", c)
		}
	}
}

func TestFlagsBlockFlood(t *testing.T) {
	b := boardWith(5, 1)
	flag(t, b, 0, 2)

	out := reveal(t, b, 0, 0)
	assert.ElementsMatch(t, []Coord{{0, 0}, {0, 1}}, revealedCoords(out))
	assert.Equal(t, []Coord{{0, 2}}, out.Barriers)
	assert.Equal(t, InProgress, out.Status)

	v, err := b.CellView(Coord{0, 3})
	require.NoError(t, err)
	assert.False(t, v.Revealed)

	flag(t, b, 0, 2)
	out = reveal(t, b, 0, 4)
	assert.ElementsMatch(t, []Coord{{0, 2}, {0, 3}, {0, 4}}, revealedCoords(out))
	assert.Equal(t, Won, out.Status)
}

func TestBarrierReportedOnce(t *testing.T) {
	b := boardWith(3, 3, Coord{2, 2})
	flag(t, b, 1, 1)

	out := reveal(t, b, 0, 0)
	assert.Equal(t, []Coord{{1, 1}}, out.Barriers)
}

func TestRevealFlaggedIsNoop(t *testing.T) {
	b := boardWith(3, 3, Coord{1, 1})
	flag(t, b, 1, 1)
	flag(t, b, 0, 0)

	for _, c := range []Coord{{1, 1}, {0, 0}} {
		out, err := b.Reveal(c)
		require.NoError(t, err)
		assert.False(t, out.Changed())
		assert.Equal(t, InProgress, out.Status)
	}
	assert.Equal(t, InProgress, b.Status())
	assert.Equal(t, 0, b.revealedSafe)
}

func TestRevealTwiceIsNoop(t *testing.T) {
	b := boardWith(3, 3, Coord{1, 1})
	reveal(t, b, 0, 0)
	out := reveal(t, b, 0, 0)
	assert.False(t, out.Changed())
	assert.Equal(t, 1, b.revealedSafe)
}

func TestWinHappensOnce(t *testing.T) {
	b := boardWith(2, 1, Coord{0, 1})

	out := reveal(t, b, 0, 0)
	assert.Equal(t, Won, out.Status)

	out = reveal(t, b, 0, 1)
	assert.False(t, out.Changed())
	assert.Equal(t, Won, out.Status)
	assert.Equal(t, Won, b.Status())

	res := flag(t, b, 0, 1)
	assert.False(t, res.Changed)
	assert.Equal(t, 0, res.Delta)
}

func TestWinOnlyWhenAllSafeRevealed(t *testing.T) {
	b := boardWith(3, 1, Coord{0, 1})

	out := reveal(t, b, 0, 0)
	assert.Equal(t, InProgress, out.Status)
	out = reveal(t, b, 0, 2)
	assert.Equal(t, Won, out.Status)
}

func TestFullyMinedBoardIsUnwinnable(t *testing.T) {
	b, err := New(2, 2, 4, nil)
	require.NoError(t, err)
	out := reveal(t, b, 1, 1)
	assert.Equal(t, Lost, out.Status)
}

func TestLossExposesMines(t *testing.T) {
	b := boardWith(3, 3, Coord{0, 0}, Coord{2, 0}, Coord{2, 2})
	flag(t, b, 0, 0) // correct
	flag(t, b, 0, 1) // wrong
	reveal(t, b, 1, 2)

	out := reveal(t, b, 2, 2)
	assert.Equal(t, Lost, out.Status)
	require.NotNil(t, out.Exploded)
	assert.Equal(t, Coord{2, 2}, *out.Exploded)
	assert.Equal(t, []Coord{{2, 0}}, out.ExposedMines)
	assert.Equal(t, []Coord{{0, 1}}, out.WrongFlags)
	assert.Empty(t, out.Revealed)

	want := Grid{
		CorrectlyFlagged, FalselyFlagged, Unknown,
		Unknown, Unknown, 1,
		UnflaggedMine, Unknown, ExplodedMine,
	}
	assert.Equal(t, want, b.Grid())

	v, err := b.CellView(Coord{1, 1})
	require.NoError(t, err)
	require.NotNil(t, v.Mine)
	assert.False(t, *v.Mine)
	assert.Nil(t, v.Adjacent)
}

func TestBoardFrozenAfterLoss(t *testing.T) {
	b := boardWith(3, 3, Coord{1, 1})
	reveal(t, b, 1, 1)
	require.Equal(t, Lost, b.Status())

	before := b.Grid()
	for i := range b.cells {
		c := b.coord(i)
		out, err := b.Reveal(c)
		require.NoError(t, err)
		assert.False(t, out.Changed())
		assert.Equal(t, Lost, out.Status)

		res, err := b.ToggleFlag(c)
		require.NoError(t, err)
		assert.False(t, res.Changed)

		out, err = b.Chord(c)
		require.NoError(t, err)
		assert.False(t, out.Changed())
	}
	assert.Equal(t, before, b.Grid())
	assert.Equal(t, 0, b.FlagCount())
}

func TestCorrectFlagSurvivesWin(t *testing.T) {
	b := boardWith(3, 3, Coord{1, 1})
	flag(t, b, 1, 1)

	for i := range b.cells {
		c := b.coord(i)
		if c != (Coord{1, 1}) {
			reveal(t, b, c.Row, c.Col)
		}
	}
	assert.Equal(t, Won, b.Status())

	v, err := b.CellView(Coord{1, 1})
	require.NoError(t, err)
	assert.True(t, v.Flagged)
	assert.False(t, v.Revealed)
	assert.Nil(t, v.Mine)
	assert.Equal(t, Flagged, v.State)
}

func TestCellViewHidesMines(t *testing.T) {
	b := boardWith(2, 2, Coord{0, 0})
	for i := range b.cells {
		v, err := b.CellView(b.coord(i))
		require.NoError(t, err)
		assert.Nil(t, v.Mine)
		assert.Nil(t, v.Adjacent)
		assert.Equal(t, Unknown, v.State)
	}

	reveal(t, b, 1, 1)
	v, err := b.CellView(Coord{1, 1})
	require.NoError(t, err)
	require.NotNil(t, v.Mine)
	assert.False(t, *v.Mine)
	v, err = b.CellView(Coord{0, 0})
	require.NoError(t, err)
	assert.Nil(t, v.Mine)
}

func TestToggleFlag(t *testing.T) {
	b := boardWith(3, 3, Coord{1, 1})

	res := flag(t, b, 0, 0)
	assert.Equal(t, FlagToggle{Changed: true, Flagged: true, Delta: 1}, res)
	assert.Equal(t, 1, b.FlagCount())
	assert.Equal(t, 0, b.RemainingMines())

	res = flag(t, b, 2, 2)
	assert.Equal(t, 1, res.Delta)
	assert.Equal(t, -1, b.RemainingMines())

	res = flag(t, b, 0, 0)
	assert.Equal(t, FlagToggle{Changed: true, Flagged: false, Delta: -1}, res)
	assert.Equal(t, 0, b.RemainingMines())

	reveal(t, b, 0, 0)
	res = flag(t, b, 0, 0)
	assert.Equal(t, FlagToggle{}, res)
	assert.Equal(t, 1, b.FlagCount())
}

func TestOutOfRange(t *testing.T) {
	b := boardWith(3, 2)
	for _, c := range []Coord{{-1, 0}, {0, -1}, {2, 0}, {0, 3}, {100, 100}} {
		_, err := b.Reveal(c)
		assert.ErrorIs(t, err, ErrCoordinateOutOfRange)
		_, err = b.ToggleFlag(c)
		assert.ErrorIs(t, err, ErrCoordinateOutOfRange)
		_, err = b.Chord(c)
		assert.ErrorIs(t, err, ErrCoordinateOutOfRange)
		_, err = b.CellView(c)
		assert.ErrorIs(t, err, ErrCoordinateOutOfRange)
		assert.Nil(t, b.Neighbors(c))
	}
	assert.Equal(t, 0, b.revealedSafe)
	assert.Equal(t, InProgress, b.Status())
}

func TestNeighborsClipped(t *testing.T) {
	b := boardWith(3, 3)
	assert.Len(t, b.Neighbors(Coord{0, 0}), 3)
	assert.Len(t, b.Neighbors(Coord{0, 1}), 5)
	assert.Len(t, b.Neighbors(Coord{1, 1}), 8)
	assert.ElementsMatch(t,
		[]Coord{{0, 1}, {1, 0}, {1, 1}},
		b.Neighbors(Coord{0, 0}),
	)

	single := boardWith(1, 1)
	assert.Empty(t, single.Neighbors(Coord{0, 0}))
}

func TestChord(t *testing.T) {
	// . 1 *
	// . 1 1
	// . . .
	b := boardWith(3, 3, Coord{0, 2})
	reveal(t, b, 1, 1)

	out, err := b.Chord(Coord{1, 1})
	require.NoError(t, err)
	assert.False(t, out.Changed(), "no flags placed yet")

	flag(t, b, 0, 2)
	out, err = b.Chord(Coord{1, 1})
	require.NoError(t, err)
	assert.Len(t, out.Revealed, 7)
	assert.Equal(t, Won, out.Status)
}

func TestChordOnWrongFlagLoses(t *testing.T) {
	b := boardWith(3, 3, Coord{0, 2})
	reveal(t, b, 1, 1)
	flag(t, b, 0, 0)

	out, err := b.Chord(Coord{1, 1})
	require.NoError(t, err)
	assert.Equal(t, Lost, out.Status)
	require.NotNil(t, out.Exploded)
	assert.Equal(t, Coord{0, 2}, *out.Exploded)
	assert.Equal(t, []Coord{{0, 0}}, out.WrongFlags)
}

func TestChordIgnoresHiddenAndZeroCells(t *testing.T) {
	b := boardWith(3, 3)
	out, err := b.Chord(Coord{0, 0})
	require.NoError(t, err)
	assert.False(t, out.Changed())

	reveal(t, b, 0, 0)
	out, err = b.Chord(Coord{0, 0})
	require.NoError(t, err)
	assert.False(t, out.Changed())
}

func TestStatusText(t *testing.T) {
	for _, s := range []Status{InProgress, Won, Lost} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var got Status
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}

	var s Status
	assert.Error(t, s.UnmarshalText([]byte("paused")))
}
