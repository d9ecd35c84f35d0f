package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog entry shared by every connected terminal.
// JSON field names match the wire format the terminals already speak.
//
// CodigoBarras is NOT unique: manually entered items may leave it empty and
// re-labelled merchandise can repeat a code. Uniqueness is by ID only.
type Producto struct {
	ID           uuid.UUID       `json:"id"`
	Nombre       string          `json:"nombre"`
	Cantidad     int             `json:"cantidad"`
	Precio       decimal.Decimal `json:"precio"`
	CodigoBarras string          `json:"codigoBarras"`
	Categoria    string          `json:"categoria"`
	Imagen       *string         `json:"imagen,omitempty"`
	// Modificado flags a locally-edited product for UI highlighting only;
	// it carries no server-side meaning.
	Modificado         bool       `json:"modificado"`
	FechaCreacion      time.Time  `json:"fechaCreacion"`
	FechaActualizacion *time.Time `json:"fechaActualizacion,omitempty"`
}
