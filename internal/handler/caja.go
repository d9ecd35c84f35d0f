package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nicman16/MiniMarketInnova/internal/apierror"
	"github.com/Nicman16/MiniMarketInnova/internal/dto"
	"github.com/Nicman16/MiniMarketInnova/internal/middleware"
	"github.com/Nicman16/MiniMarketInnova/internal/service"
)

type CajaHandler struct {
	caja   *service.CajaService
	ledger *service.MovimientoLedger
	ventas *service.VentaService
}

func NewCajaHandler(caja *service.CajaService, ledger *service.MovimientoLedger, ventas *service.VentaService) *CajaHandler {
	return &CajaHandler{caja: caja, ledger: ledger, ventas: ventas}
}

func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	empleadoID, err := uuid.Parse(claims.EmpleadoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de empleado inválido"))
		return
	}

	sesion, err := h.caja.Abrir(c.Request.Context(), empleadoID, claims.Nombre, req.MontoApertura)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sesion)
}

func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sesionID, err := uuid.Parse(req.SesionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("sesion_id inválido"))
		return
	}

	sesion, err := h.caja.Cerrar(c.Request.Context(), sesionID, req.MontoCierre)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sesion)
}

func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	empleadoID, _ := uuid.Parse(claims.EmpleadoID)

	mov, err := h.caja.RegistrarMovimiento(c.Request.Context(), req.Tipo, req.Monto, req.Concepto, empleadoID, claims.Nombre)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mov)
}

// Activa returns the open session, 404 when the drawer is closed.
func (h *CajaHandler) Activa(c *gin.Context) {
	sesion := h.caja.SesionActiva()
	if sesion == nil {
		c.JSON(http.StatusNotFound, apierror.New("Sin sesión activa"))
		return
	}
	c.JSON(http.StatusOK, sesion)
}

// Sesiones returns the session history, most recent first.
func (h *CajaHandler) Sesiones(c *gin.Context) {
	c.JSON(http.StatusOK, h.caja.Sesiones())
}

// Movimientos lists the manual movements of a day (default: today),
// most recent first.
func (h *CajaHandler) Movimientos(c *gin.Context) {
	fecha, ok := fechaQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.ledger.ListarPorDia(fecha))
}

// Resumen is the reconciliation view for a day: sales by payment method,
// manual cash flow, and the expected drawer total.
func (h *CajaHandler) Resumen(c *gin.Context) {
	fecha, ok := fechaQuery(c)
	if !ok {
		return
	}
	resumen := service.CalcularResumenDia(
		h.caja.SesionActiva(),
		h.ledger.ListarPorDia(fecha),
		h.ventas.VentasDia(fecha),
	)
	c.JSON(http.StatusOK, resumen)
}
