package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Nicman16/MiniMarketInnova/internal/model"
	"github.com/Nicman16/MiniMarketInnova/internal/service"
)

func TestTotalEsperado(t *testing.T) {
	sesion := &model.SesionCaja{
		ID:            uuid.New(),
		MontoApertura: decimal.NewFromInt(100000),
		Estado:        "abierta",
	}
	movimientos := []model.MovimientoCaja{
		// The apertura entry never counts as a manual ingreso — the float
		// already enters through MontoApertura.
		{Tipo: model.MovimientoIngreso, Monto: decimal.NewFromInt(100000), Concepto: model.ConceptoApertura},
		{Tipo: model.MovimientoIngreso, Monto: decimal.NewFromInt(5000), Concepto: "Cambio de sencillo"},
		{Tipo: model.MovimientoEgreso, Monto: decimal.NewFromInt(2000), Concepto: "Pago proveedor"},
	}
	ventas := []model.Venta{
		{Total: decimal.NewFromInt(50000), MetodoPago: model.PagoEfectivo, Estado: model.VentaCompletada},
		{Total: decimal.NewFromInt(30000), MetodoPago: model.PagoTarjeta, Estado: model.VentaCompletada},
		// Anulada: excluded even in efectivo.
		{Total: decimal.NewFromInt(9999), MetodoPago: model.PagoEfectivo, Estado: model.VentaAnulada},
	}

	total := service.TotalEsperado(sesion, movimientos, ventas)
	// 100000 + 50000 + 5000 - 2000
	assert.True(t, total.Equal(decimal.NewFromInt(153000)), total.String())
}

func TestTotalEsperadoSinSesion(t *testing.T) {
	total := service.TotalEsperado(nil, nil, []model.Venta{
		{Total: decimal.NewFromInt(1000), MetodoPago: model.PagoEfectivo, Estado: model.VentaCompletada},
	})
	assert.True(t, total.Equal(decimal.NewFromInt(1000)))
}

func TestCalcularResumenDia(t *testing.T) {
	ventas := []model.Venta{
		{Total: decimal.NewFromInt(10000), MetodoPago: model.PagoEfectivo, Estado: model.VentaCompletada},
		{Total: decimal.NewFromInt(20000), MetodoPago: model.PagoTarjeta, Estado: model.VentaCompletada},
		{Total: decimal.NewFromInt(30000), MetodoPago: model.PagoTransferencia, Estado: model.VentaCompletada},
		{Total: decimal.NewFromInt(5000), MetodoPago: model.PagoEfectivo, Estado: model.VentaAnulada},
	}

	resumen := service.CalcularResumenDia(nil, nil, ventas)

	assert.Equal(t, 3, resumen.CantidadVentas)
	assert.True(t, resumen.TotalVentas.Equal(decimal.NewFromInt(60000)))
	assert.True(t, resumen.TicketPromedio.Equal(decimal.NewFromInt(20000)))
	assert.True(t, resumen.VentasEfectivo.Equal(decimal.NewFromInt(10000)))
	assert.True(t, resumen.VentasTarjeta.Equal(decimal.NewFromInt(20000)))
	assert.True(t, resumen.VentasTransferencia.Equal(decimal.NewFromInt(30000)))
	// Transferencia counts in TotalVentas but never reaches the drawer.
	assert.True(t, resumen.TotalEnCaja.Equal(decimal.NewFromInt(10000)))
}

func TestCalcularResumenDiaVacio(t *testing.T) {
	resumen := service.CalcularResumenDia(nil, nil, nil)
	assert.Equal(t, 0, resumen.CantidadVentas)
	assert.True(t, resumen.TicketPromedio.IsZero())
	assert.True(t, resumen.TotalEnCaja.IsZero())
}
