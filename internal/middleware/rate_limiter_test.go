package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Nicman16/MiniMarketInnova/internal/middleware"
)

func servidorLimitado(limite int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimiter(limite, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func pedir(r *gin.Engine) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w.Code
}

func TestRateLimiterCortaAlExcederLaVentana(t *testing.T) {
	r := servidorLimitado(2)

	assert.Equal(t, http.StatusOK, pedir(r))
	assert.Equal(t, http.StatusOK, pedir(r))
	assert.Equal(t, http.StatusTooManyRequests, pedir(r))
}

func TestRateLimiterInstanciasIndependientes(t *testing.T) {
	// Dos engines con el mismo límite: agotar uno no afecta al otro.
	a := servidorLimitado(1)
	b := servidorLimitado(1)

	assert.Equal(t, http.StatusOK, pedir(a))
	assert.Equal(t, http.StatusTooManyRequests, pedir(a))
	assert.Equal(t, http.StatusOK, pedir(b))
}
