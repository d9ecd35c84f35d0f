package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Nicman16/MiniMarketInnova/internal/apierror"
	"github.com/Nicman16/MiniMarketInnova/internal/dto"
	"github.com/Nicman16/MiniMarketInnova/internal/model"
	"github.com/Nicman16/MiniMarketInnova/internal/store"
)

// CatalogoProductos is the authoritative in-memory product catalog, kept in
// insertion order. Reads are safe from any goroutine; mutations must be
// serialized by the caller (the sync hub funnels every mutation — WS or
// REST — through its single event loop).
//
// Every mutation rewrites the "productos" collection wholesale. A failed
// snapshot write is logged and swallowed: memory is authoritative and a
// storage hiccup must not fail the operation.
type CatalogoProductos struct {
	mu        sync.RWMutex
	productos []model.Producto
	indice    map[uuid.UUID]int
	store     store.Store
}

func NewCatalogoProductos(st store.Store) *CatalogoProductos {
	return &CatalogoProductos{
		indice: make(map[uuid.UUID]int),
		store:  st,
	}
}

// Cargar loads the persisted catalog at startup.
func (c *CatalogoProductos) Cargar(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var productos []model.Producto
	if err := c.store.Load(ctx, store.ColProductos, &productos); err != nil {
		return fmt.Errorf("cargando productos: %w", err)
	}
	c.productos = productos
	c.indice = make(map[uuid.UUID]int, len(productos))
	for i, p := range productos {
		c.indice[p.ID] = i
	}
	return nil
}

// Listar returns a copy of the catalog in insertion order.
func (c *CatalogoProductos) Listar() []model.Producto {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Producto, len(c.productos))
	copy(out, c.productos)
	return out
}

func (c *CatalogoProductos) ObtenerPorID(id uuid.UUID) (model.Producto, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.indice[id]
	if !ok {
		return model.Producto{}, false
	}
	return c.productos[i], true
}

// Cantidad returns the number of products in the catalog.
func (c *CatalogoProductos) Cantidad() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.productos)
}

// Crear inserts a new product. The server assigns the identifier and the
// creation stamp; any id the terminal sent is discarded. There is no
// uniqueness check on codigoBarras — duplicates are allowed.
func (c *CatalogoProductos) Crear(ctx context.Context, req dto.CrearProductoRequest) model.Producto {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := model.Producto{
		ID:            uuid.New(),
		Nombre:        req.Nombre,
		Cantidad:      req.Cantidad,
		Precio:        req.Precio,
		CodigoBarras:  req.CodigoBarras,
		Categoria:     req.Categoria,
		Imagen:        req.Imagen,
		Modificado:    true,
		FechaCreacion: time.Now().UTC(),
	}
	c.indice[p.ID] = len(c.productos)
	c.productos = append(c.productos, p)
	c.persistir(ctx)
	return p
}

// Reemplazar replaces the stored product matching req.ID and stamps a new
// modification time. An unknown id is a silent no-op, not an error — the
// terminals rely on this.
func (c *CatalogoProductos) Reemplazar(ctx context.Context, req dto.ActualizarProductoRequest) (model.Producto, bool) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return model.Producto{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.indice[id]
	if !ok {
		return model.Producto{}, false
	}

	ahora := time.Now().UTC()
	p := c.productos[i]
	p.Nombre = req.Nombre
	p.Cantidad = req.Cantidad
	p.Precio = req.Precio
	p.CodigoBarras = req.CodigoBarras
	p.Categoria = req.Categoria
	p.Imagen = req.Imagen
	p.Modificado = true
	p.FechaActualizacion = &ahora
	c.productos[i] = p
	c.persistir(ctx)
	return p, true
}

// Eliminar removes the product if present and returns the captured copy for
// logging. A second delete of the same id is a no-op.
func (c *CatalogoProductos) Eliminar(ctx context.Context, id uuid.UUID) (model.Producto, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.indice[id]
	if !ok {
		return model.Producto{}, false
	}
	eliminado := c.productos[i]
	c.productos = append(c.productos[:i], c.productos[i+1:]...)
	delete(c.indice, id)
	for j := i; j < len(c.productos); j++ {
		c.indice[c.productos[j].ID] = j
	}
	c.persistir(ctx)
	return eliminado, true
}

// ResolverItems resolves sale items against the catalog without mutating it:
// existence and stock checks, price captured at sale time.
func (c *CatalogoProductos) ResolverItems(items []dto.ItemVentaRequest) ([]model.VentaItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	resueltos := make([]model.VentaItem, 0, len(items))
	for _, item := range items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, apierror.Validacion("producto_id inválido")
		}
		i, ok := c.indice[pid]
		if !ok {
			return nil, apierror.NoEncontrado(fmt.Sprintf("Producto %s no encontrado", item.ProductoID))
		}
		p := c.productos[i]
		if p.Cantidad < item.Cantidad {
			return nil, apierror.Conflicto(fmt.Sprintf("Stock insuficiente de %s: quedan %d", p.Nombre, p.Cantidad))
		}
		resueltos = append(resueltos, model.VentaItem{
			ProductoID:     p.ID,
			Nombre:         p.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: p.Precio,
			Subtotal:       p.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad))),
		})
	}
	return resueltos, nil
}

// Descontar applies the stock decrement for already-resolved items and
// returns the updated products. Callers must have validated stock via
// ResolverItems in the same serialized operation.
func (c *CatalogoProductos) Descontar(ctx context.Context, items []model.VentaItem) []model.Producto {
	return c.ajustarStock(ctx, items, -1)
}

// Restaurar reverses a sale's decrement (anulación) and returns the updated
// products.
func (c *CatalogoProductos) Restaurar(ctx context.Context, items []model.VentaItem) []model.Producto {
	return c.ajustarStock(ctx, items, 1)
}

func (c *CatalogoProductos) ajustarStock(ctx context.Context, items []model.VentaItem, signo int) []model.Producto {
	c.mu.Lock()
	defer c.mu.Unlock()

	ahora := time.Now().UTC()
	actualizados := make([]model.Producto, 0, len(items))
	for _, item := range items {
		i, ok := c.indice[item.ProductoID]
		if !ok {
			// Product deleted since the sale — nothing to adjust.
			continue
		}
		p := c.productos[i]
		p.Cantidad += signo * item.Cantidad
		p.FechaActualizacion = &ahora
		c.productos[i] = p
		actualizados = append(actualizados, p)
	}
	if len(actualizados) > 0 {
		c.persistir(ctx)
	}
	return actualizados
}

// persistir rewrites the collection; must be called with the lock held.
func (c *CatalogoProductos) persistir(ctx context.Context) {
	if err := c.store.Save(ctx, store.ColProductos, c.productos); err != nil {
		log.Error().Err(err).Msg("no se pudo persistir el catálogo")
	}
}
