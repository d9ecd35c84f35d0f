package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods. Transferencia settles outside the physical drawer, so it
// is tallied in daily totals but never in the session's cash/card buckets.
const (
	PagoEfectivo      = "efectivo"
	PagoTarjeta       = "tarjeta"
	PagoTransferencia = "transferencia"
)

// Venta estados.
const (
	VentaCompletada = "completada"
	VentaAnulada    = "anulada"
)

// VentaItem captures the product reference and the unit price at sale time,
// so later price changes never rewrite history.
type VentaItem struct {
	ProductoID     uuid.UUID       `json:"productoId"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// Venta is immutable once completada, except for the transition to anulada.
// SesionID records the till session the sale was tallied into — nil when no
// session was open at the time. An anulación reverses that session's bucket
// only while it remains open.
type Venta struct {
	ID             uuid.UUID       `json:"id"`
	SesionID       *uuid.UUID      `json:"sesionId,omitempty"`
	Items          []VentaItem     `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	IVA            decimal.Decimal `json:"iva"`
	Total          decimal.Decimal `json:"total"`
	MetodoPago     string          `json:"metodoPago"`
	EmpleadoID     uuid.UUID       `json:"empleadoId"`
	EmpleadoNombre string          `json:"empleadoNombre"`
	Fecha          time.Time       `json:"fecha"`
	Estado         string          `json:"estado"`
}
