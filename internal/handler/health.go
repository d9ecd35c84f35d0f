package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nicman16/MiniMarketInnova/internal/service"
	"github.com/Nicman16/MiniMarketInnova/internal/sync"
)

// Health reports liveness plus the two numbers an operator checks first:
// connected terminals and catalog size.
func Health(hub *sync.Hub, catalogo *service.CatalogoProductos) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":                 "ok",
			"dispositivosConectados": hub.Conectados(),
			"productos":              catalogo.Cantidad(),
			"timestamp":              time.Now().UTC(),
		})
	}
}

// Stats exposes the hub's lifetime counters.
func Stats(hub *sync.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := hub.Estadisticas()
		c.JSON(http.StatusOK, gin.H{
			"dispositivosConectados": hub.Conectados(),
			"productosAgregados":     stats.ProductosAgregados,
			"productosActualizados":  stats.ProductosActualizados,
			"escaneos":               stats.Escaneos,
			"inicioServidor":         stats.InicioServidor,
		})
	}
}
