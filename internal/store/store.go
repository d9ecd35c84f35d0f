// Package store abstracts durable persistence as whole-collection JSON
// snapshots. State lives in memory; every mutating operation rewrites its
// collection wholesale, and everything is loaded back at startup. There is
// no row-level schema and no partial write.
package store

import "context"

// Collection names. Each holds an ordered JSON array of the corresponding
// entities.
const (
	ColProductos   = "productos"
	ColSesiones    = "sesiones"
	ColMovimientos = "movimientos"
	ColVentas      = "ventas"
	ColEmpleados   = "empleados"
)

// Store is the durable snapshot store.
//
// Load unmarshals the collection into dest; a collection that has never been
// saved leaves dest untouched and returns nil. Save replaces the collection
// atomically with the JSON encoding of v.
type Store interface {
	Load(ctx context.Context, coleccion string, dest any) error
	Save(ctx context.Context, coleccion string, v any) error
	Close() error
}
