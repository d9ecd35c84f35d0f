package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SesionCaja represents the lifecycle of a till session.
// Estado: "abierta" | "cerrada". At most one session is "abierta" at any
// time system-wide; a closed session is terminal and never reopened.
type SesionCaja struct {
	ID             uuid.UUID       `json:"id"`
	EmpleadoID     uuid.UUID       `json:"empleadoId"`
	EmpleadoNombre string          `json:"empleadoNombre"`
	FechaApertura  time.Time       `json:"fechaApertura"`
	FechaCierre    *time.Time      `json:"fechaCierre,omitempty"`
	MontoApertura  decimal.Decimal `json:"montoApertura"`
	// MontoCierre is the amount the operator physically counted at close.
	// Advisory only: the system never compares it against the expected
	// total — any variance is the operator's responsibility.
	MontoCierre    *decimal.Decimal `json:"montoCierre,omitempty"`
	VentasEfectivo decimal.Decimal  `json:"ventasEfectivo"`
	VentasTarjeta  decimal.Decimal  `json:"ventasTarjeta"`
	Ingresos       decimal.Decimal  `json:"ingresos"`
	Egresos        decimal.Decimal  `json:"egresos"`
	Estado         string           `json:"estado"`
}

// Movimiento kinds. Movements are immutable ledger entries — corrections
// are modeled as compensating movements, never edits.
const (
	MovimientoIngreso = "ingreso"
	MovimientoEgreso  = "egreso"
)

// ConceptoApertura tags the system-generated ingreso written when a session
// opens, so the float is reconstructable from the ledger alone. The
// reconciliation engine excludes it from the manual-ingress sum.
const ConceptoApertura = "Apertura de caja"

// MovimientoCaja is an append-only manual cash event (deposit/withdrawal)
// against the session that was open at creation time.
type MovimientoCaja struct {
	ID             uuid.UUID       `json:"id"`
	SesionID       uuid.UUID       `json:"sesionId"`
	Tipo           string          `json:"tipo"` // ingreso | egreso
	Monto          decimal.Decimal `json:"monto"`
	Concepto       string          `json:"concepto"`
	Fecha          time.Time       `json:"fecha"`
	EmpleadoID     uuid.UUID       `json:"empleadoId"`
	EmpleadoNombre string          `json:"empleadoNombre"`
}
