package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/commands"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const maxBatchBytes = 64 << 10

type GameHandler struct {
	logger   logrus.FieldLogger
	store    *session.Store
	upgrader websocket.Upgrader
	maxCells int
}

func NewGameHandler(
	logger logrus.FieldLogger,
	store *session.Store,
	maxCells int,
) *GameHandler {
	handler := &GameHandler{
		logger:   logger,
		store:    store,
		maxCells: maxCells,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	return handler
}

func (g GameHandler) Presets(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.logger, http.StatusOK, mines.Presets)
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	params, err := dto.Params(g.maxCells)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	game, err := g.store.Create(params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.WithError(err).Error("unable to create a new game")
		return
	}

	var resp *GameDTO
	_ = game.Do(func(b *mines.Board) error {
		resp = NewGameDTO(game, b)
		return nil
	})
	sendJSONOrLog(w, g.logger, http.StatusCreated, resp)
}

func (g GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Game, bool) {
	game, err := g.store.Get(r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		sendErrorOrLog(w, g.logger, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.WithError(err).Error("unable to fetch game")
		return nil, false
	}
	return game, true
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	game, ok := g.lookup(w, r)
	if !ok {
		return
	}
	var dto *GameDTO
	_ = game.Do(func(b *mines.Board) error {
		dto = NewGameDTO(game, b)
		return nil
	})
	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := g.store.Delete(r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		sendErrorOrLog(w, g.logger, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g GameHandler) move(w http.ResponseWriter, r *http.Request, op commands.Op) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	game, ok := g.lookup(w, r)
	if !ok {
		return
	}

	var dto MoveDTO
	err = game.Do(func(b *mines.Board) error {
		res, err := commands.Apply(b, commands.Command{Op: op, Coord: pos})
		if err != nil {
			return err
		}
		dto = MoveDTO{
			Game:    NewGameDTO(game, b),
			Outcome: res.Outcome,
			Flag:    res.Flag,
		}
		return nil
	})
	if errors.Is(err, mines.ErrCoordinateOutOfRange) {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.WithError(err).Error("unable to apply move")
		return
	}

	if dto.Game.Status != mines.InProgress && dto.Outcome != nil && dto.Outcome.Changed() {
		g.logger.WithFields(logrus.Fields{
			"game_id": game.ID(),
			"status":  dto.Game.Status.String(),
		}).Info("game over")
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, commands.Reveal)
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, commands.Flag)
}

func (g GameHandler) Chord(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, commands.Chord)
}

// Batch accepts newline-separated commands in the request body, see
// [commands.ExecuteBatch]. A malformed line stops interpretation and the
// response is a [LineErrorDTO] with status 400; earlier lines stay applied.
func (g GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	game, ok := g.lookup(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBytes))
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	statusCode, reply := g.runBatch(game, string(body))
	sendJSONOrLog(w, g.logger, statusCode, reply)
}

func (g GameHandler) runBatch(game *session.Game, text string) (int, any) {
	var (
		statusCode int
		reply      any
	)
	_ = game.Do(func(b *mines.Board) error {
		_, err := commands.ExecuteBatch(b, text)
		var lineErr *commands.LineError
		if errors.As(err, &lineErr) {
			statusCode = http.StatusBadRequest
			reply = LineErrorDTO{Line: lineErr.Line, Error: lineErr.Err.Error()}
			return nil
		}
		statusCode = http.StatusOK
		reply = NewGameDTO(game, b)
		return nil
	})
	return statusCode, reply
}
