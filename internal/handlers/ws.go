package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// ConnectWS upgrades to a websocket. Every text frame is run as a batch of
// commands and answered with the game, or with a [LineErrorDTO].
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	game, ok := g.lookup(w, r)
	if !ok {
		return
	}
	c, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.WithError(err).Error("upgrade")
		return
	}
	defer c.Close()

	log := g.logger.WithField("game_id", game.ID())
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway,
			) {
				log.WithError(err).Warn("read")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		log.Debug("\t> ", string(message))

		_, reply := g.runBatch(game, string(message))
		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Error("write")
			break
		}
		log.Debug("\t< <game data>")
	}
}
