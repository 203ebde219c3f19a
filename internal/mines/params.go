package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"strings"
)

type GameParams struct {
	Width     int `json:"width" schema:"width"`
	Height    int `json:"height" schema:"height"`
	MineCount int `json:"mine_count" schema:"mine_count"`
}

func (p GameParams) Cells() int {
	return p.Width * p.Height
}

// Validate allows a board that is entirely mines; such a game cannot be won.
func (p GameParams) Validate() error {
	switch {
	case p.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfiguration, p.Width)
	case p.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfiguration, p.Height)
	case p.MineCount < 0:
		return fmt.Errorf("%w: mine count must not be negative, got %d", ErrInvalidConfiguration, p.MineCount)
	case p.MineCount > p.Cells():
		return fmt.Errorf(
			"%w: %d mines do not fit on a %dx%d board",
			ErrInvalidConfiguration, p.MineCount, p.Width, p.Height,
		)
	}
	return nil
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (seed = "%s", n = %d, err = %w)`,
			seed, n, err,
		)
	}
	return p, nil
}

type Preset struct {
	Name string `json:"name"`
	GameParams
}

var Presets = []Preset{
	{"easy", GameParams{Width: 12, Height: 10, MineCount: 15}},
	{"medium", GameParams{Width: 20, Height: 16, MineCount: 40}},
	{"hard", GameParams{Width: 25, Height: 20, MineCount: 99}},
	{"surprise", GameParams{Width: 20, Height: 15, MineCount: 1}},
}

func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}
