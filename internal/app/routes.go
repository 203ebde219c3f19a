package app

import (
	"github.com/vancomm/minesweeper-engine/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.logger, a.store, a.config.MaxCells)

	a.router.HandleFunc("GET /v1/presets", game.Presets)
	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE /v1/game/{id}", game.Delete)
	a.router.HandleFunc("POST /v1/game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("POST /v1/game/{id}/flag", game.Flag)
	a.router.HandleFunc("POST /v1/game/{id}/chord", game.Chord)
	a.router.HandleFunc("POST /v1/game/{id}/batch", game.Batch)
	a.router.HandleFunc("/v1/game/{id}/connect", game.ConnectWS)
}
