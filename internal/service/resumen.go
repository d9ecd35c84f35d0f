package service

import (
	"github.com/shopspring/decimal"

	"github.com/Nicman16/MiniMarketInnova/internal/dto"
	"github.com/Nicman16/MiniMarketInnova/internal/model"
)

// Reconciliation over already-validated data: pure functions, no mutation,
// no failure modes.

// TotalEsperado derives the expected cash in the drawer:
//
//	montoApertura + ventas en efectivo + ingresos manuales - egresos
//
// The system-generated apertura movement is excluded from the ingreso sum —
// the float already enters through montoApertura.
func TotalEsperado(sesion *model.SesionCaja, movimientos []model.MovimientoCaja, ventas []model.Venta) decimal.Decimal {
	apertura := decimal.Zero
	if sesion != nil {
		apertura = sesion.MontoApertura
	}
	ingresos, egresos := sumarMovimientos(movimientos)

	efectivo := decimal.Zero
	for _, v := range ventas {
		if v.Estado == model.VentaCompletada && v.MetodoPago == model.PagoEfectivo {
			efectivo = efectivo.Add(v.Total)
		}
	}
	return apertura.Add(efectivo).Add(ingresos).Sub(egresos)
}

// CalcularResumenDia builds the audit summary for one day from the open
// session, the day's movements, and the day's sales.
func CalcularResumenDia(sesion *model.SesionCaja, movimientos []model.MovimientoCaja, ventas []model.Venta) dto.ResumenDiaResponse {
	var (
		total         = decimal.Zero
		efectivo      = decimal.Zero
		tarjeta       = decimal.Zero
		transferencia = decimal.Zero
		cantidad      int
	)
	for _, v := range ventas {
		if v.Estado != model.VentaCompletada {
			continue
		}
		total = total.Add(v.Total)
		cantidad++
		switch v.MetodoPago {
		case model.PagoEfectivo:
			efectivo = efectivo.Add(v.Total)
		case model.PagoTarjeta:
			tarjeta = tarjeta.Add(v.Total)
		case model.PagoTransferencia:
			transferencia = transferencia.Add(v.Total)
		}
	}

	// Average ticket is 0 for an empty day, never a division by zero.
	promedio := decimal.Zero
	if cantidad > 0 {
		promedio = total.Div(decimal.NewFromInt(int64(cantidad))).Round(2)
	}

	ingresos, egresos := sumarMovimientos(movimientos)

	return dto.ResumenDiaResponse{
		TotalVentas:         total,
		CantidadVentas:      cantidad,
		TicketPromedio:      promedio,
		VentasEfectivo:      efectivo,
		VentasTarjeta:       tarjeta,
		VentasTransferencia: transferencia,
		Ingresos:            ingresos,
		Egresos:             egresos,
		TotalEnCaja:         TotalEsperado(sesion, movimientos, ventas),
		SesionActiva:        sesion,
	}
}

// sumarMovimientos totals manual ingresos (excluding the apertura entry) and
// egresos.
func sumarMovimientos(movimientos []model.MovimientoCaja) (ingresos, egresos decimal.Decimal) {
	ingresos, egresos = decimal.Zero, decimal.Zero
	for _, m := range movimientos {
		switch {
		case m.Tipo == model.MovimientoIngreso && m.Concepto != model.ConceptoApertura:
			ingresos = ingresos.Add(m.Monto)
		case m.Tipo == model.MovimientoEgreso:
			egresos = egresos.Add(m.Monto)
		}
	}
	return ingresos, egresos
}
