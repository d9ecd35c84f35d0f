package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nicman16/MiniMarketInnova/internal/apierror"
	"github.com/Nicman16/MiniMarketInnova/internal/dto"
	"github.com/Nicman16/MiniMarketInnova/internal/middleware"
	"github.com/Nicman16/MiniMarketInnova/internal/model"
	"github.com/Nicman16/MiniMarketInnova/internal/service"
)

type VentasHandler struct{ svc *service.VentaService }

func NewVentasHandler(svc *service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

func (h *VentasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	empleadoID, err := uuid.Parse(claims.EmpleadoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de empleado inválido"))
		return
	}

	resp, err := h.svc.Registrar(c.Request.Context(), empleadoID, claims.Nombre, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar returns the sales of a day (default: today) in creation order.
func (h *VentasHandler) Listar(c *gin.Context) {
	fecha, ok := fechaQuery(c)
	if !ok {
		return
	}
	ventas := h.svc.VentasDia(fecha)
	if ventas == nil {
		ventas = []model.Venta{}
	}
	c.JSON(http.StatusOK, ventas)
}

func (h *VentasHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	venta, err := h.svc.Anular(c.Request.Context(), id, c.Query("motivo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venta)
}
