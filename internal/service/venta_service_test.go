package service_test

import (
	"context"
	"testing"
	"time"

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

// catalogoDirecto implements CatalogoVentas against the catalog without a
// hub in between: resolve, validate, then decrement, like the hub does
// inside its loop.
type catalogoDirecto struct{ cat *service.CatalogoProductos }

func (c *catalogoDirecto) AplicarVenta(ctx context.Context, items []dto.ItemVentaRequest, validar func([]model.VentaItem) error) ([]model.VentaItem, error) {
	resueltos, err := c.cat.ResolverItems(items)
	if err != nil {
		return nil, err
	}
	if err := validar(resueltos); err != nil {
		return nil, err
	}
	c.cat.Descontar(ctx, resueltos)
	return resueltos, nil
}

func (c *catalogoDirecto) RestaurarStock(ctx context.Context, items []model.VentaItem) {
	c.cat.Restaurar(ctx, items)
}

func newVentas(t *testing.T) (*service.VentaService, *service.CatalogoProductos, *service.CajaService) {
	t.Helper()
	st := store.NewMemoryStore()
	catalogo := service.NewCatalogoProductos(st)
	ledger := service.NewMovimientoLedger(st)
	caja := service.NewCajaService(ledger, st)
	ventas := service.NewVentaService(&catalogoDirecto{cat: catalogo}, caja, st)
	return ventas, catalogo, caja
}

func TestRegistrarVentaEfectivo(t *testing.T) {
	ventas, catalogo, caja := newVentas(t)
	ctx := context.Background()

	_, err := caja.Abrir(ctx, uuid.New(), "María", decimal.NewFromInt(10000))
	require.NoError(t, err)
	p := crear(t, catalogo, "Leche", 10, 1190)

	resp, err := ventas.Registrar(ctx, uuid.New(), "María", dto.RegistrarVentaRequest{
		Items:         []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 2}},
		MetodoPago:    model.PagoEfectivo,
		MontoRecibido: decimal.NewFromInt(3000),
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.NewFromInt(2380)))
	// IVA incluido: 2380 * 19 / 119 = 380.
	assert.True(t, resp.IVA.Equal(decimal.NewFromInt(380)), resp.IVA.String())
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(2000)))
	assert.True(t, resp.Vuelto.Equal(decimal.NewFromInt(620)))
	assert.Equal(t, model.VentaCompletada, resp.Estado)

	actual, _ := catalogo.ObtenerPorID(p.ID)
	assert.Equal(t, 8, actual.Cantidad)

	activa := caja.SesionActiva()
	require.NotNil(t, activa)
	assert.True(t, activa.VentasEfectivo.Equal(decimal.NewFromInt(2380)))
}

func TestRegistrarVentaMontoInsuficiente(t *testing.T) {
	ventas, catalogo, _ := newVentas(t)
	ctx := context.Background()
	p := crear(t, catalogo, "Leche", 10, 1200)

	_, err := ventas.Registrar(ctx, uuid.New(), "María", dto.RegistrarVentaRequest{
		Items:         []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 2}},
		MetodoPago:    model.PagoEfectivo,
		MontoRecibido: decimal.NewFromInt(1000),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidacion, apierror.KindOf(err))

	// La validación corre antes del descuento: el stock queda intacto.
	actual, _ := catalogo.ObtenerPorID(p.ID)
	assert.Equal(t, 10, actual.Cantidad)
}

func TestRegistrarVentaTarjetaSinMontoRecibido(t *testing.T) {
	ventas, catalogo, _ := newVentas(t)
	ctx := context.Background()
	p := crear(t, catalogo, "Leche", 10, 1200)

	resp, err := ventas.Registrar(ctx, uuid.New(), "María", dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago: model.PagoTarjeta,
	})
	require.NoError(t, err)
	assert.True(t, resp.Vuelto.IsZero())
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	ventas, catalogo, _ := newVentas(t)
	ctx := context.Background()
	p := crear(t, catalogo, "Leche", 1, 1200)

	_, err := ventas.Registrar(ctx, uuid.New(), "María", dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 5}},
		MetodoPago: model.PagoTarjeta,
	})
	assert.Equal(t, apierror.KindConflicto, apierror.KindOf(err))
}

func TestAnularVenta(t *testing.T) {
	ventas, catalogo, caja := newVentas(t)
	ctx := context.Background()

	_, err := caja.Abrir(ctx, uuid.New(), "María", decimal.NewFromInt(10000))
	require.NoError(t, err)
	p := crear(t, catalogo, "Leche", 10, 1190)

	resp, err := ventas.Registrar(ctx, uuid.New(), "María", dto.RegistrarVentaRequest{
		Items:         []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 2}},
		MetodoPago:    model.PagoEfectivo,
		MontoRecibido: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	anulada, err := ventas.Anular(ctx, resp.ID, "error de cobro")
	require.NoError(t, err)
	assert.Equal(t, model.VentaAnulada, anulada.Estado)

	// Stock restaurado y totales revertidos.
	actual, _ := catalogo.ObtenerPorID(p.ID)
	assert.Equal(t, 10, actual.Cantidad)
	assert.True(t, caja.SesionActiva().VentasEfectivo.IsZero())

	_, err = ventas.Anular(ctx, resp.ID, "otra vez")
	assert.Equal(t, apierror.KindConflicto, apierror.KindOf(err))

	_, err = ventas.Anular(ctx, uuid.New(), "no existe")
	assert.Equal(t, apierror.KindNoEncontrado, apierror.KindOf(err))
}

func TestVentasDia(t *testing.T) {
	ventas, catalogo, _ := newVentas(t)
	ctx := context.Background()
	p := crear(t, catalogo, "Leche", 10, 1200)

	_, err := ventas.Registrar(ctx, uuid.New(), "María", dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago: model.PagoTarjeta,
	})
	require.NoError(t, err)

	assert.Len(t, ventas.VentasDia(time.Now().UTC()), 1)
	assert.Empty(t, ventas.VentasDia(time.Now().UTC().AddDate(0, 0, -1)))
}
