package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Nicman16/MiniMarketInnova/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"min=0"`
}

type CerrarCajaRequest struct {
	SesionID    string          `json:"sesion_id"    validate:"required,uuid"`
	MontoCierre decimal.Decimal `json:"monto_cierre" validate:"min=0"`
}

type MovimientoManualRequest struct {
	Tipo     string          `json:"tipo"     validate:"required,oneof=ingreso egreso"`
	Monto    decimal.Decimal `json:"monto"    validate:"required,gt=0"`
	Concepto string          `json:"concepto" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ResumenDiaResponse is the audit view for a day: sales by method, manual
// cash flow, and the expected drawer total for comparison against a count.
type ResumenDiaResponse struct {
	TotalVentas         decimal.Decimal   `json:"total_ventas"`
	CantidadVentas      int               `json:"cantidad_ventas"`
	TicketPromedio      decimal.Decimal   `json:"ticket_promedio"`
	VentasEfectivo      decimal.Decimal   `json:"ventas_efectivo"`
	VentasTarjeta       decimal.Decimal   `json:"ventas_tarjeta"`
	VentasTransferencia decimal.Decimal   `json:"ventas_transferencia"`
	Ingresos            decimal.Decimal   `json:"ingresos"`
	Egresos             decimal.Decimal   `json:"egresos"`
	TotalEnCaja         decimal.Decimal   `json:"total_en_caja"`
	SesionActiva        *model.SesionCaja `json:"sesion_activa,omitempty"`
}
