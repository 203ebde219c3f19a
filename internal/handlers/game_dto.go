package handlers

import (
	"errors"
	"fmt"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrBoardTooLarge = errors.New("board too large")
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type CreateNewGameDTO struct {
	Preset string `schema:"preset"`
	mines.GameParams
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

// Params resolves the requested board. A preset wins over explicit sizes.
func (dto CreateNewGameDTO) Params(maxCells int) (mines.GameParams, error) {
	params := dto.GameParams
	if dto.Preset != "" {
		preset, ok := mines.PresetByName(dto.Preset)
		if !ok {
			return params, fmt.Errorf("%w: %q", ErrUnknownPreset, dto.Preset)
		}
		params = preset.GameParams
	}
	if err := params.Validate(); err != nil {
		return params, err
	}
	if params.Cells() > maxCells {
		return params, fmt.Errorf(
			"%w: %d cells, at most %d allowed",
			ErrBoardTooLarge, params.Cells(), maxCells,
		)
	}
	return params, nil
}

func ParsePosition(src map[string][]string) (mines.Coord, error) {
	var pos mines.Coord
	if err := dec.Decode(&pos, src); err != nil {
		return pos, fmt.Errorf("invalid cell position: %w", err)
	}
	return pos, nil
}

type GameDTO struct {
	GameID         string       `json:"game_id"`
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	MineCount      int          `json:"mine_count"`
	RemainingMines int          `json:"remaining_mines"`
	Status         mines.Status `json:"status"`
	Grid           [][]string   `json:"grid"`
	StartedAt      int64        `json:"started_at"`
}

func NewGameDTO(g *session.Game, b *mines.Board) *GameDTO {
	return &GameDTO{
		GameID:         g.ID(),
		Width:          b.Width(),
		Height:         b.Height(),
		MineCount:      b.MineCount(),
		RemainingMines: b.RemainingMines(),
		Status:         b.Status(),
		Grid:           b.Grid().Rows(b.Width()),
		StartedAt:      g.StartedAt().UnixMilli(),
	}
}

type MoveDTO struct {
	Game    *GameDTO             `json:"game"`
	Outcome *mines.RevealOutcome `json:"outcome,omitempty"`
	Flag    *mines.FlagToggle    `json:"flag,omitempty"`
}

type LineErrorDTO struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}
