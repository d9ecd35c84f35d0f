package model

import "github.com/google/uuid"

// Empleado roles.
const (
	RolAdmin      = "admin"
	RolSupervisor = "supervisor"
	RolVendedor   = "vendedor"
)

// Empleado is an operator identified by a 4+ digit PIN.
// PinHash is a bcrypt hash; the plain PIN is never stored or logged.
type Empleado struct {
	ID      uuid.UUID `json:"id"`
	Nombre  string    `json:"nombre"`
	Email   string    `json:"email"`
	Rol     string    `json:"rol"` // admin | supervisor | vendedor
	Activo  bool      `json:"activo"`
	PinHash string    `json:"pinHash"`
}
