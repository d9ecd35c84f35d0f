package dto

import "github.com/shopspring/decimal"

// CrearProductoRequest carries a catalog candidate. Any id supplied by the
// terminal is ignored — the server assigns identifiers.
type CrearProductoRequest struct {
	Nombre       string          `json:"nombre"       validate:"required,min=1"`
	Cantidad     int             `json:"cantidad"     validate:"min=0"`
	Precio       decimal.Decimal `json:"precio"       validate:"min=0"`
	CodigoBarras string          `json:"codigoBarras"`
	Categoria    string          `json:"categoria"`
	Imagen       *string         `json:"imagen"`
}

// ActualizarProductoRequest replaces the stored product wholesale.
type ActualizarProductoRequest struct {
	ID           string          `json:"id"           validate:"required,uuid"`
	Nombre       string          `json:"nombre"       validate:"required,min=1"`
	Cantidad     int             `json:"cantidad"     validate:"min=0"`
	Precio       decimal.Decimal `json:"precio"       validate:"min=0"`
	CodigoBarras string          `json:"codigoBarras"`
	Categoria    string          `json:"categoria"`
	Imagen       *string         `json:"imagen"`
}
