package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nicman16/MiniMarketInnova/internal/apierror"
	"github.com/Nicman16/MiniMarketInnova/internal/dto"
	"github.com/Nicman16/MiniMarketInnova/internal/model"
	"github.com/Nicman16/MiniMarketInnova/internal/service"
	"github.com/Nicman16/MiniMarketInnova/internal/store"
)

func crear(t *testing.T, c *service.CatalogoProductos, nombre string, cantidad int, precio int64) model.Producto {
	t.Helper()
	return c.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:   nombre,
		Cantidad: cantidad,
		Precio:   decimal.NewFromInt(precio),
	})
}

func TestCrearProducto(t *testing.T) {
	catalogo := service.NewCatalogoProductos(store.NewMemoryStore())

	a := crear(t, catalogo, "Leche", 10, 1200)
	b := crear(t, catalogo, "Pan", 5, 800)

	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.Modificado)
	assert.False(t, a.FechaCreacion.IsZero())

	// Insertion order is the listing order.
	lista := catalogo.Listar()
	require.Len(t, lista, 2)
	assert.Equal(t, "Leche", lista[0].Nombre)
	assert.Equal(t, "Pan", lista[1].Nombre)
}

func TestCodigoBarrasDuplicadoPermitido(t *testing.T) {
	catalogo := service.NewCatalogoProductos(store.NewMemoryStore())
	ctx := context.Background()

	catalogo.Crear(ctx, dto.CrearProductoRequest{Nombre: "Leche entera", CodigoBarras: "7791234"})
	catalogo.Crear(ctx, dto.CrearProductoRequest{Nombre: "Leche descremada", CodigoBarras: "7791234"})
	assert.Equal(t, 2, catalogo.Cantidad())
}

func TestReemplazarProducto(t *testing.T) {
	catalogo := service.NewCatalogoProductos(store.NewMemoryStore())
	p := crear(t, catalogo, "Leche", 10, 1200)

	actualizado, ok := catalogo.Reemplazar(context.Background(), dto.ActualizarProductoRequest{
		ID:       p.ID.String(),
		Nombre:   "Leche entera",
		Cantidad: 8,
		Precio:   decimal.NewFromInt(1300),
	})
	require.True(t, ok)
	assert.Equal(t, "Leche entera", actualizado.Nombre)
	assert.Equal(t, 8, actualizado.Cantidad)
	require.NotNil(t, actualizado.FechaActualizacion)
	// La fecha de creación no cambia con la actualización.
	assert.Equal(t, p.FechaCreacion, actualizado.FechaCreacion)
}

func TestReemplazarDesconocidoEsNoOp(t *testing.T) {
	catalogo := service.NewCatalogoProductos(store.NewMemoryStore())
	crear(t, catalogo, "Leche", 10, 1200)

	_, ok := catalogo.Reemplazar(context.Background(), dto.ActualizarProductoRequest{
		ID:     uuid.NewString(),
		Nombre: "Fantasma",
	})
	assert.False(t, ok)
	assert.Equal(t, 1, catalogo.Cantidad())
}

func TestEliminarProductoIdempotente(t *testing.T) {
	catalogo := service.NewCatalogoProductos(store.NewMemoryStore())
	ctx := context.Background()
	a := crear(t, catalogo, "Leche", 10, 1200)
	crear(t, catalogo, "Pan", 5, 800)

	eliminado, ok := catalogo.Eliminar(ctx, a.ID)
	require.True(t, ok)
	assert.Equal(t, "Leche", eliminado.Nombre)

	_, ok = catalogo.Eliminar(ctx, a.ID)
	assert.False(t, ok)

	// El índice sigue siendo coherente tras el reacomodo.
	p, ok := catalogo.ObtenerPorID(catalogo.Listar()[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Pan", p.Nombre)
}

func TestResolverItems(t *testing.T) {
	catalogo := service.NewCatalogoProductos(store.NewMemoryStore())
	p := crear(t, catalogo, "Leche", 10, 1200)

	items, err := catalogo.ResolverItems([]dto.ItemVentaRequest{
		{ProductoID: p.ID.String(), Cantidad: 3},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Subtotal.Equal(decimal.NewFromInt(3600)))
	// Resolver no descuenta stock.
	actual, _ := catalogo.ObtenerPorID(p.ID)
	assert.Equal(t, 10, actual.Cantidad)
}

func TestResolverItemsErrores(t *testing.T) {
	catalogo := service.NewCatalogoProductos(store.NewMemoryStore())
	p := crear(t, catalogo, "Leche", 2, 1200)

	_, err := catalogo.ResolverItems([]dto.ItemVentaRequest{{ProductoID: "no-es-uuid", Cantidad: 1}})
	assert.Equal(t, apierror.KindValidacion, apierror.KindOf(err))

	_, err = catalogo.ResolverItems([]dto.ItemVentaRequest{{ProductoID: uuid.NewString(), Cantidad: 1}})
	assert.Equal(t, apierror.KindNoEncontrado, apierror.KindOf(err))

	_, err = catalogo.ResolverItems([]dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 3}})
	assert.Equal(t, apierror.KindConflicto, apierror.KindOf(err))
}

func TestDescontarYRestaurar(t *testing.T) {
	catalogo := service.NewCatalogoProductos(store.NewMemoryStore())
	ctx := context.Background()
	p := crear(t, catalogo, "Leche", 10, 1200)

	items := []model.VentaItem{{ProductoID: p.ID, Nombre: p.Nombre, Cantidad: 4, PrecioUnitario: p.Precio}}

	actualizados := catalogo.Descontar(ctx, items)
	require.Len(t, actualizados, 1)
	assert.Equal(t, 6, actualizados[0].Cantidad)

	restaurados := catalogo.Restaurar(ctx, items)
	require.Len(t, restaurados, 1)
	assert.Equal(t, 10, restaurados[0].Cantidad)
}

func TestCatalogoPersisteEntreInstancias(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	primero := service.NewCatalogoProductos(st)
	crear(t, primero, "Leche", 10, 1200)
	crear(t, primero, "Pan", 5, 800)

	segundo := service.NewCatalogoProductos(st)
	require.NoError(t, segundo.Cargar(ctx))
	assert.Equal(t, 2, segundo.Cantidad())
	lista := segundo.Listar()
	assert.Equal(t, "Leche", lista[0].Nombre)
}
