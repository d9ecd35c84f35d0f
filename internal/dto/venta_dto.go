package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Nicman16/MiniMarketInnova/internal/model"
)

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type RegistrarVentaRequest struct {
	Items         []ItemVentaRequest `json:"items"          validate:"required,min=1,dive"`
	MetodoPago    string             `json:"metodo_pago"    validate:"required,oneof=efectivo tarjeta transferencia"`
	MontoRecibido decimal.Decimal    `json:"monto_recibido" validate:"min=0"`
}

type VentaResponse struct {
	model.Venta
	Vuelto decimal.Decimal `json:"vuelto"`
}
