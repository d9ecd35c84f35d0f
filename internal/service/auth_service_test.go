package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nicman16/MiniMarketInnova/internal/apierror"
	"github.com/Nicman16/MiniMarketInnova/internal/config"
	"github.com/Nicman16/MiniMarketInnova/internal/dto"
	"github.com/Nicman16/MiniMarketInnova/internal/service"
	"github.com/Nicman16/MiniMarketInnova/internal/store"
)

func newAuth(t *testing.T) *service.AuthService {
	t.Helper()
	cfg := &config.Config{JWTSecret: "secreto-de-prueba", JWTExpirationHours: 8}
	auth := service.NewAuthService(store.NewMemoryStore(), cfg)
	require.NoError(t, auth.Cargar(context.Background()))
	return auth
}

func empleadoPorNombre(t *testing.T, auth *service.AuthService, nombre string) dto.EmpleadoResponse {
	t.Helper()
	for _, e := range auth.Empleados(context.Background()) {
		if e.Nombre == nombre {
			return e
		}
	}
	t.Fatalf("empleado %q no encontrado", nombre)
	return dto.EmpleadoResponse{}
}

func TestCargarSiembraPlantilla(t *testing.T) {
	auth := newAuth(t)
	assert.Len(t, auth.Empleados(context.Background()), 4)
}

func TestLogin(t *testing.T) {
	auth := newAuth(t)
	admin := empleadoPorNombre(t, auth, "Administrador")

	resp, err := auth.Login(context.Background(), dto.LoginRequest{EmpleadoID: admin.ID, Pin: "1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "admin", resp.Empleado.Rol)
}

func TestLoginPinIncorrecto(t *testing.T) {
	auth := newAuth(t)
	admin := empleadoPorNombre(t, auth, "Administrador")

	_, err := auth.Login(context.Background(), dto.LoginRequest{EmpleadoID: admin.ID, Pin: "0001"})
	assert.Equal(t, apierror.KindPermiso, apierror.KindOf(err))
}

func TestLoginPinCorto(t *testing.T) {
	auth := newAuth(t)
	admin := empleadoPorNombre(t, auth, "Administrador")

	_, err := auth.Login(context.Background(), dto.LoginRequest{EmpleadoID: admin.ID, Pin: "12"})
	assert.Equal(t, apierror.KindValidacion, apierror.KindOf(err))
}

func TestLoginEmpleadoDesconocido(t *testing.T) {
	auth := newAuth(t)

	_, err := auth.Login(context.Background(), dto.LoginRequest{EmpleadoID: "0b938b39-3e0f-4d0e-8a56-92c6cbd97e9e", Pin: "1234"})
	assert.Equal(t, apierror.KindNoEncontrado, apierror.KindOf(err))

	_, err = auth.Login(context.Background(), dto.LoginRequest{EmpleadoID: "no-es-uuid", Pin: "1234"})
	assert.Equal(t, apierror.KindValidacion, apierror.KindOf(err))
}

func TestCrearEmpleadoYLogin(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()

	nuevo, err := auth.CrearEmpleado(ctx, dto.CrearEmpleadoRequest{
		Nombre: "Pedro Soto",
		Email:  "pedro@minimarket.com",
		Rol:    "vendedor",
		Pin:    "4321",
	})
	require.NoError(t, err)

	resp, err := auth.Login(ctx, dto.LoginRequest{EmpleadoID: nuevo.ID, Pin: "4321"})
	require.NoError(t, err)
	assert.Equal(t, "Pedro Soto", resp.Empleado.Nombre)
}
