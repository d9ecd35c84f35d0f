package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nicman16/MiniMarketInnova/internal/apierror"
	"github.com/Nicman16/MiniMarketInnova/internal/dto"
	"github.com/Nicman16/MiniMarketInnova/internal/service"
	"github.com/Nicman16/MiniMarketInnova/internal/sync"
)

// ProductosHandler exposes the catalog over REST. Reads hit the catalog
// directly; every mutation goes through the hub so connected terminals see
// it in the same order it was applied.
type ProductosHandler struct {
	hub      *sync.Hub
	catalogo *service.CatalogoProductos
}

func NewProductosHandler(hub *sync.Hub, catalogo *service.CatalogoProductos) *ProductosHandler {
	return &ProductosHandler{hub: hub, catalogo: catalogo}
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogo.Listar())
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	p, ok := h.catalogo.ObtenerPorID(id)
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.hub.CrearProducto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// The path is authoritative; a mismatched body id is rejected.
	if id := c.Param("id"); req.ID != "" && req.ID != id {
		c.JSON(http.StatusBadRequest, apierror.New("El id del cuerpo no coincide con la ruta"))
		return
	} else if req.ID == "" {
		req.ID = id
	}

	p, ok, err := h.hub.ActualizarProducto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	ok, err := h.hub.EliminarProducto(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	c.Status(http.StatusNoContent)
}
