package sync

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// colaEnvio bounds the per-terminal outbound queue. A terminal that
	// cannot drain it in time is dropped rather than allowed to stall the
	// broadcaster.
	colaEnvio = 64

	escrituraTimeout = 10 * time.Second
	pongTimeout      = 60 * time.Second
	pingIntervalo    = (pongTimeout * 9) / 10
	maxMensaje       = 64 << 10
)

// Cliente is one live terminal connection. The hub owns the lifecycle: it
// is the only goroutine that sends on or closes enviar.
type Cliente struct {
	ID          string
	ConectadoEn time.Time
	UserAgent   string

	conn   *websocket.Conn
	enviar chan []byte

	// cerrado is touched only by the hub goroutine.
	cerrado bool
}

func NewCliente(conn *websocket.Conn, userAgent string) *Cliente {
	return &Cliente{
		ID:          uuid.NewString(),
		ConectadoEn: time.Now().UTC(),
		UserAgent:   userAgent,
		conn:        conn,
		enviar:      make(chan []byte, colaEnvio),
	}
}

// EscribirPump drains the outbound queue onto the socket and keeps the
// connection alive with ws-level pings. Exits when the hub closes enviar or
// a write fails; either way the socket is closed, which also unblocks
// LeerPump.
func (c *Cliente) EscribirPump() {
	ticker := time.NewTicker(pingIntervalo)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.enviar:
			_ = c.conn.SetWriteDeadline(time.Now().Add(escrituraTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(escrituraTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// LeerPump reads inbound frames and hands them to the hub. On any read
// error the terminal is unregistered — disconnection needs no cancellation
// beyond this.
func (c *Cliente) LeerPump(h *Hub) {
	defer func() {
		h.Desregistrar(c.ID)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMensaje)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Str("cliente", c.ID).Err(err).Msg("lectura ws interrumpida")
			}
			return
		}
		var msg Mensaje
		if err := json.Unmarshal(frame, &msg); err != nil {
			log.Warn().Str("cliente", c.ID).Err(err).Msg("frame inválido descartado")
			continue
		}
		h.Entrante(c.ID, msg)
	}
}
