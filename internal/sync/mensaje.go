// Package sync implements the real-time synchronization core: the registry
// of connected terminals and the broadcaster that turns one terminal's
// mutation into a catalog update plus a fan-out to every other terminal.
package sync

import (
	"encoding/json"
	"time"
)

// Event names are the wire contract the terminals already speak; they
// predate this server and must not change.
const (
	// server → client
	EventoProductosSync           = "productos-sync"
	EventoProductoAgregado        = "producto-agregado"
	EventoProductoActualizado     = "producto-actualizado"
	EventoProductoEliminado       = "producto-eliminado"
	EventoDispositivosConectados  = "dispositivos-conectados"
	EventoDispositivoConectado    = "dispositivo-conectado"
	EventoDispositivoDesconectado = "dispositivo-desconectado"
	EventoError                   = "error"
	EventoPong                    = "pong"

	// client → server
	EventoAgregarProducto    = "agregar-producto"
	EventoActualizarProducto = "actualizar-producto"
	EventoEliminarProducto   = "eliminar-producto"
	EventoCodigoEscaneado    = "codigo-escaneado" // relayed both directions
	EventoPing               = "ping"
)

// Mensaje is the JSON envelope for every frame in both directions.
type Mensaje struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Escaneo is the payload relayed when one terminal scans a barcode so a
// peer can react to it. Never persisted.
type Escaneo struct {
	Codigo      string    `json:"codigo"`
	Dispositivo string    `json:"dispositivo"`
	Timestamp   time.Time `json:"timestamp"`
}

func codificar(event string, data any) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(Mensaje{Event: event, Data: raw})
}
