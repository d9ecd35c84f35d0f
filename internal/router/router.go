package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nicman16/MiniMarketInnova/internal/config"
	"github.com/Nicman16/MiniMarketInnova/internal/handler"
	"github.com/Nicman16/MiniMarketInnova/internal/middleware"
	"github.com/Nicman16/MiniMarketInnova/internal/model"
	"github.com/Nicman16/MiniMarketInnova/internal/service"
	"github.com/Nicman16/MiniMarketInnova/internal/sync"
)

// Deps are the long-lived components main constructs before serving; the
// router only arranges them behind routes.
type Deps struct {
	Hub      *sync.Hub
	Catalogo *service.CatalogoProductos
	Auth     *service.AuthService
	Caja     *service.CajaService
	Ledger   *service.MovimientoLedger
	Ventas   *service.VentaService
}

// New wires all dependencies and returns a configured Gin engine.
func New(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	authH := handler.NewAuthHandler(d.Auth)
	productosH := handler.NewProductosHandler(d.Hub, d.Catalogo)
	cajaH := handler.NewCajaHandler(d.Caja, d.Ledger, d.Ventas)
	ventasH := handler.NewVentasHandler(d.Ventas)

	// ── Public surface (the terminals' legacy endpoints keep their paths) ────
	r.GET("/health", handler.Health(d.Hub, d.Catalogo))
	r.GET("/api/productos", productosH.Listar)
	r.GET("/api/stats", handler.Stats(d.Hub))
	r.GET("/ws", handler.WS(d.Hub))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.GET("/empleados", authH.Empleados)
	}

	// ── Protected routes ─────────────────────────────────────────────────────
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole(model.RolAdmin, model.RolSupervisor, model.RolVendedor)
	supervision := middleware.RequireRole(model.RolAdmin, model.RolSupervisor)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/ventas", todos, ventasH.Registrar)
		v1.GET("/ventas", todos, ventasH.Listar)
		v1.DELETE("/ventas/:id", supervision, ventasH.Anular)

		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.ObtenerPorID)
		prods := v1.Group("/productos", supervision)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
		}

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", todos, cajaH.Abrir)
			caja.POST("/cerrar", todos, cajaH.Cerrar)
			caja.POST("/movimiento", todos, cajaH.RegistrarMovimiento)
			caja.GET("/activa", todos, cajaH.Activa)
			caja.GET("/movimientos", todos, cajaH.Movimientos)
			caja.GET("/resumen", todos, cajaH.Resumen)
			caja.GET("/sesiones", supervision, cajaH.Sesiones)
		}

		v1.POST("/empleados", middleware.RequireRole(model.RolAdmin), authH.CrearEmpleado)
	}

	return r
}
