package sync

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nicman16/MiniMarketInnova/internal/dto"
	"github.com/Nicman16/MiniMarketInnova/internal/model"
	"github.com/Nicman16/MiniMarketInnova/internal/service"
)

// Estadisticas mirrors the counters the original /api/stats endpoint exposed.
type Estadisticas struct {
	ProductosAgregados    int64     `json:"productosAgregados"`
	ProductosActualizados int64     `json:"productosActualizados"`
	Escaneos              int64     `json:"escaneos"`
	InicioServidor        time.Time `json:"inicioServidor"`
}

// Hub serializes every catalog mutation — whether it arrives over a socket
// or through REST — plus connection registration through one event loop.
// That single ordering gives the two guarantees the terminals depend on:
// broadcasts are delivered in apply order, and a joining terminal's snapshot
// is never torn against in-flight broadcasts.
//
// Sends to terminals are fire-and-forget onto bounded per-client queues; a
// queue that fills up costs that terminal its connection, never the loop.
type Hub struct {
	catalogo *service.CatalogoProductos
	eventos  chan evento
	clientes map[string]*Cliente

	conectados atomic.Int64

	agregados    atomic.Int64
	actualizados atomic.Int64
	escaneos     atomic.Int64
	inicio       time.Time
}

type evento any

type (
	evRegistrar    struct{ c *Cliente }
	evDesregistrar struct{ id string }
	evEntrante     struct {
		origen string
		msg    Mensaje
	}
	evOp struct {
		fn   func()
		done chan struct{}
	}
)

func NewHub(catalogo *service.CatalogoProductos) *Hub {
	return &Hub{
		catalogo: catalogo,
		eventos:  make(chan evento, 256),
		clientes: make(map[string]*Cliente),
		inicio:   time.Now().UTC(),
	}
}

// Run owns all hub state until ctx is cancelled. Everything below
// procesar() executes on this goroutine only.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, c := range h.clientes {
				c.cerrado = true
				close(c.enviar)
			}
			h.clientes = map[string]*Cliente{}
			h.conectados.Store(0)
			return
		case ev := <-h.eventos:
			h.procesar(ctx, ev)
		}
	}
}

// ── public API (safe from any goroutine) ─────────────────────────────────────

func (h *Hub) Registrar(c *Cliente)   { h.eventos <- evRegistrar{c: c} }
func (h *Hub) Desregistrar(id string) { h.eventos <- evDesregistrar{id: id} }
func (h *Hub) Entrante(origen string, msg Mensaje) {
	h.eventos <- evEntrante{origen: origen, msg: msg}
}

func (h *Hub) Conectados() int { return int(h.conectados.Load()) }

func (h *Hub) Estadisticas() Estadisticas {
	return Estadisticas{
		ProductosAgregados:    h.agregados.Load(),
		ProductosActualizados: h.actualizados.Load(),
		Escaneos:              h.escaneos.Load(),
		InicioServidor:        h.inicio,
	}
}

// CrearProducto inserts and broadcasts, serialized with socket traffic.
func (h *Hub) CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (model.Producto, error) {
	var p model.Producto
	err := h.ejecutar(ctx, func() { p = h.crearProducto(ctx, req) })
	return p, err
}

// ActualizarProducto replaces and broadcasts; an unknown id reports
// found=false and broadcasts nothing.
func (h *Hub) ActualizarProducto(ctx context.Context, req dto.ActualizarProductoRequest) (model.Producto, bool, error) {
	var (
		p  model.Producto
		ok bool
	)
	err := h.ejecutar(ctx, func() { p, ok = h.actualizarProducto(ctx, req) })
	return p, ok, err
}

// EliminarProducto removes and broadcasts the id; deleting an absent id is
// a no-op and broadcasts nothing.
func (h *Hub) EliminarProducto(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := h.ejecutar(ctx, func() { ok = h.eliminarProducto(ctx, id) })
	return ok, err
}

// AplicarVenta resolves the sale items, runs the caller's validation, and —
// only if both pass — decrements stock and broadcasts every touched
// product. All inside one loop turn, so a failed validation leaves no
// partial decrement and concurrent mutations cannot interleave.
func (h *Hub) AplicarVenta(ctx context.Context, items []dto.ItemVentaRequest, validar func([]model.VentaItem) error) ([]model.VentaItem, error) {
	var (
		resueltos []model.VentaItem
		opErr     error
	)
	err := h.ejecutar(ctx, func() {
		resueltos, opErr = h.catalogo.ResolverItems(items)
		if opErr != nil {
			return
		}
		if opErr = validar(resueltos); opErr != nil {
			return
		}
		for _, p := range h.catalogo.Descontar(ctx, resueltos) {
			h.difundir(EventoProductoActualizado, p)
		}
	})
	if err != nil {
		return nil, err
	}
	return resueltos, opErr
}

// RestaurarStock reverses a voided sale's decrement and broadcasts the
// updated products.
func (h *Hub) RestaurarStock(ctx context.Context, items []model.VentaItem) {
	_ = h.ejecutar(ctx, func() {
		for _, p := range h.catalogo.Restaurar(ctx, items) {
			h.difundir(EventoProductoActualizado, p)
		}
	})
}

// ejecutar runs fn inside the loop and waits for it.
func (h *Hub) ejecutar(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case h.eventos <- evOp{fn: fn, done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ── loop internals ───────────────────────────────────────────────────────────

func (h *Hub) procesar(ctx context.Context, ev evento) {
	switch e := ev.(type) {
	case evRegistrar:
		h.registrar(e.c)
	case evDesregistrar:
		h.desconectar(e.id, "desconexión")
	case evEntrante:
		h.procesarEntrante(ctx, e.origen, e.msg)
	case evOp:
		e.fn()
		close(e.done)
	}
}

// registrar adds the terminal and hands it its baseline: the full catalog
// snapshot plus the current peer count, before any later broadcast can
// reach it.
func (h *Hub) registrar(c *Cliente) {
	h.clientes[c.ID] = c
	h.conectados.Store(int64(len(h.clientes)))

	h.enviarA(c, EventoProductosSync, h.catalogo.Listar())
	h.enviarA(c, EventoDispositivosConectados, len(h.clientes))
	// Everyone, the newcomer included, hears about the connection — the
	// terminals treat it as a count refresh.
	h.difundir(EventoDispositivoConectado, len(h.clientes))

	log.Info().Str("cliente", c.ID).Str("user_agent", c.UserAgent).Msg("dispositivo conectado")
}

// desconectar removes the terminal and tells everyone the new count.
// Unregistering an unknown id is a no-op.
func (h *Hub) desconectar(id, motivo string) {
	c, ok := h.clientes[id]
	if !ok {
		return
	}
	c.cerrado = true
	close(c.enviar)
	delete(h.clientes, id)
	h.conectados.Store(int64(len(h.clientes)))

	log.Info().Str("cliente", id).Str("motivo", motivo).Int("conectados", len(h.clientes)).Msg("dispositivo desconectado")
	h.difundir(EventoDispositivoDesconectado, len(h.clientes))
}

// procesarEntrante is the mutation boundary: whatever a terminal's frame
// causes, failures are logged and reported back to that terminal only.
func (h *Hub) procesarEntrante(ctx context.Context, origen string, msg Mensaje) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("cliente", origen).Str("event", msg.Event).Interface("panic", r).Msg("fallo procesando mutación")
			h.errorA(origen, "Error al procesar "+msg.Event)
		}
	}()

	switch msg.Event {
	case EventoAgregarProducto:
		var req dto.CrearProductoRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil || req.Nombre == "" {
			h.errorA(origen, "Error al agregar producto")
			return
		}
		h.crearProducto(ctx, req)

	case EventoActualizarProducto:
		var req dto.ActualizarProductoRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			h.errorA(origen, "Error al actualizar producto")
			return
		}
		h.actualizarProducto(ctx, req)

	case EventoEliminarProducto:
		var idStr string
		if err := json.Unmarshal(msg.Data, &idStr); err != nil {
			h.errorA(origen, "Error al eliminar producto")
			return
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			h.errorA(origen, "Error al eliminar producto")
			return
		}
		h.eliminarProducto(ctx, id)

	case EventoCodigoEscaneado:
		var esc Escaneo
		if err := json.Unmarshal(msg.Data, &esc); err != nil {
			return
		}
		h.escaneos.Add(1)
		esc.Timestamp = time.Now().UTC()
		// Peer notification, not a state change: everyone except the
		// terminal that scanned.
		h.difundirExcepto(origen, EventoCodigoEscaneado, esc)
		log.Debug().Str("codigo", esc.Codigo).Str("origen", origen).Msg("código escaneado")

	case EventoPing:
		if c, ok := h.clientes[origen]; ok {
			h.enviarA(c, EventoPong, nil)
		}

	default:
		log.Debug().Str("event", msg.Event).Str("cliente", origen).Msg("evento desconocido ignorado")
	}
}

func (h *Hub) crearProducto(ctx context.Context, req dto.CrearProductoRequest) model.Producto {
	p := h.catalogo.Crear(ctx, req)
	h.agregados.Add(1)
	// Everyone gets it, the originator included: it reconciles its
	// optimistic copy by id.
	h.difundir(EventoProductoAgregado, p)
	log.Info().Str("producto", p.Nombre).Msg("producto agregado")
	return p
}

func (h *Hub) actualizarProducto(ctx context.Context, req dto.ActualizarProductoRequest) (model.Producto, bool) {
	p, ok := h.catalogo.Reemplazar(ctx, req)
	if !ok {
		// Unknown id: silent no-op, nothing broadcast.
		return model.Producto{}, false
	}
	h.actualizados.Add(1)
	h.difundir(EventoProductoActualizado, p)
	log.Info().Str("producto", p.Nombre).Msg("producto actualizado")
	return p, true
}

func (h *Hub) eliminarProducto(ctx context.Context, id uuid.UUID) bool {
	eliminado, ok := h.catalogo.Eliminar(ctx, id)
	if !ok {
		return false
	}
	h.difundir(EventoProductoEliminado, id.String())
	log.Info().Str("producto", eliminado.Nombre).Msg("producto eliminado")
	return true
}

// ── fan-out ──────────────────────────────────────────────────────────────────

func (h *Hub) difundir(event string, data any) {
	h.difundirExcepto("", event, data)
}

func (h *Hub) difundirExcepto(excluido, event string, data any) {
	frame, err := codificar(event, data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("no se pudo codificar difusión")
		return
	}
	for id, c := range h.clientes {
		if id == excluido {
			continue
		}
		h.enviarFrame(c, event, frame)
	}
}

func (h *Hub) enviarA(c *Cliente, event string, data any) {
	frame, err := codificar(event, data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("no se pudo codificar mensaje")
		return
	}
	h.enviarFrame(c, event, frame)
}

func (h *Hub) errorA(origen, detalle string) {
	if c, ok := h.clientes[origen]; ok {
		h.enviarA(c, EventoError, detalle)
	}
}

// enviarFrame queues without ever blocking the loop. A full queue means the
// terminal stopped draining: it is dropped so the rest keep their latency.
func (h *Hub) enviarFrame(c *Cliente, event string, frame []byte) {
	if c.cerrado {
		return
	}
	select {
	case c.enviar <- frame:
	default:
		log.Warn().Str("cliente", c.ID).Str("event", event).Msg("cola de envío llena; se descarta el cliente")
		h.desconectar(c.ID, "cola de envío llena")
	}
}
