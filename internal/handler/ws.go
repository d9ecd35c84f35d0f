package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Nicman16/MiniMarketInnova/internal/sync"
)

// Terminals connect from LAN origins that are not known ahead of time, so
// the origin check is open.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WS upgrades the connection and hands it to the hub. The read pump runs on
// this goroutine; the handler returns when the terminal disconnects.
func WS(hub *sync.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("fallo el upgrade a websocket")
			return
		}

		cliente := sync.NewCliente(conn, c.GetHeader("User-Agent"))
		hub.Registrar(cliente)

		go cliente.EscribirPump()
		cliente.LeerPump(hub)
	}
}
