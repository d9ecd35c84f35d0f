package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nicman16/MiniMarketInnova/internal/dto"
	"github.com/Nicman16/MiniMarketInnova/internal/service"
)

type AuthHandler struct{ svc *service.AuthService }

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login authenticates an employee by id + PIN and returns a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Empleados lists the active staff so the login screen can offer a roster.
func (h *AuthHandler) Empleados(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Empleados(c.Request.Context()))
}

func (h *AuthHandler) CrearEmpleado(c *gin.Context) {
	var req dto.CrearEmpleadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearEmpleado(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
