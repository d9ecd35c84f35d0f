package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nicman16/MiniMarketInnova/internal/apierror"
)

// limitador counts requests per client IP inside a sliding window. Each
// instance owns its window map; the login limiter and the general API
// limiter are independent instances with their own budgets.
type limitador struct {
	mu       sync.Mutex
	ventanas map[string]*ventana
	limite   int
	duracion time.Duration
	detalle  string
}

type ventana struct {
	cuenta int
	fin    time.Time
}

const depuracionIntervalo = 5 * time.Minute

func nuevoLimitador(limite int, duracion time.Duration, detalle string) *limitador {
	l := &limitador{
		ventanas: make(map[string]*ventana),
		limite:   limite,
		duracion: duracion,
		detalle:  detalle,
	}
	go l.depurar()
	return l
}

func (l *limitador) permitir(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ahora := time.Now()
	v, ok := l.ventanas[ip]
	if !ok || ahora.After(v.fin) {
		v = &ventana{fin: ahora.Add(l.duracion)}
		l.ventanas[ip] = v
	}
	v.cuenta++
	return v.cuenta <= l.limite
}

// depurar evicts expired windows so IPs that never return do not
// accumulate.
func (l *limitador) depurar() {
	ticker := time.NewTicker(depuracionIntervalo)
	defer ticker.Stop()

	for range ticker.C {
		ahora := time.Now()

		l.mu.Lock()
		depuradas := 0
		for ip, v := range l.ventanas {
			if ahora.After(v.fin) {
				delete(l.ventanas, ip)
				depuradas++
			}
		}
		restantes := len(l.ventanas)
		l.mu.Unlock()

		if depuradas > 0 {
			log.Debug().
				Int("depuradas", depuradas).
				Int("restantes", restantes).
				Msg("ventanas de rate limit depuradas")
		}
	}
}

func (l *limitador) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.permitir(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.detalle))
			return
		}
		c.Next()
	}
}

// RateLimiter caps requests per IP inside a sliding window.
func RateLimiter(limite int, duracion time.Duration) gin.HandlerFunc {
	return nuevoLimitador(limite, duracion, "Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}

// LoginRateLimiter keeps PIN brute force impractical: 20 attempts per
// minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return nuevoLimitador(20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.").handler()
}
