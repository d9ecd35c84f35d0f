package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nicman16/MiniMarketInnova/internal/apierror"
	"github.com/Nicman16/MiniMarketInnova/internal/config"
	"github.com/Nicman16/MiniMarketInnova/internal/dto"
	"github.com/Nicman16/MiniMarketInnova/internal/model"
	"github.com/Nicman16/MiniMarketInnova/internal/store"
)

const pinMinimo = 4

// AuthService authenticates operators by employee + PIN and issues JWTs.
type AuthService struct {
	mu        sync.Mutex
	empleados []model.Empleado
	store     store.Store
	cfg       *config.Config
}

func NewAuthService(st store.Store, cfg *config.Config) *AuthService {
	return &AuthService{store: st, cfg: cfg}
}

// Cargar loads the staff list, seeding the demo roster on first run so a
// fresh install can log in.
func (s *AuthService) Cargar(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Load(ctx, store.ColEmpleados, &s.empleados); err != nil {
		return err
	}
	if len(s.empleados) > 0 {
		return nil
	}

	semilla := []struct{ nombre, email, rol, pin string }{
		{"Administrador", "admin@minimarket.com", model.RolAdmin, "1234"},
		{"María González", "maria@minimarket.com", model.RolVendedor, "5678"},
		{"Carlos Rodríguez", "carlos@minimarket.com", model.RolVendedor, "9999"},
		{"Ana López", "ana@minimarket.com", model.RolSupervisor, "0000"},
	}
	for _, e := range semilla {
		hash, err := bcrypt.GenerateFromPassword([]byte(e.pin), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		s.empleados = append(s.empleados, model.Empleado{
			ID:      uuid.New(),
			Nombre:  e.nombre,
			Email:   e.email,
			Rol:     e.rol,
			Activo:  true,
			PinHash: string(hash),
		})
	}
	log.Info().Int("empleados", len(s.empleados)).Msg("plantilla demo inicializada")
	return s.store.Save(ctx, store.ColEmpleados, s.empleados)
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if len(req.Pin) < pinMinimo {
		return nil, apierror.Validacion("El PIN debe tener al menos 4 dígitos")
	}
	id, err := uuid.Parse(req.EmpleadoID)
	if err != nil {
		return nil, apierror.Validacion("empleado_id inválido")
	}

	s.mu.Lock()
	var empleado *model.Empleado
	for i := range s.empleados {
		if s.empleados[i].ID == id && s.empleados[i].Activo {
			empleado = &s.empleados[i]
			break
		}
	}
	s.mu.Unlock()

	if empleado == nil {
		return nil, apierror.NoEncontrado("Empleado no encontrado o inactivo")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(empleado.PinHash), []byte(req.Pin)); err != nil {
		return nil, apierror.Permiso("PIN incorrecto")
	}

	token, err := s.generarToken(empleado)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		Empleado:    empleadoAResponse(empleado),
	}, nil
}

// Empleados lists active staff (PIN hashes never leave the service).
func (s *AuthService) Empleados(ctx context.Context) []dto.EmpleadoResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]dto.EmpleadoResponse, 0, len(s.empleados))
	for i := range s.empleados {
		if s.empleados[i].Activo {
			out = append(out, empleadoAResponse(&s.empleados[i]))
		}
	}
	return out
}

func (s *AuthService) CrearEmpleado(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	if len(req.Pin) < pinMinimo {
		return nil, apierror.Validacion("El PIN debe tener al menos 4 dígitos")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	empleado := model.Empleado{
		ID:      uuid.New(),
		Nombre:  req.Nombre,
		Email:   req.Email,
		Rol:     req.Rol,
		Activo:  true,
		PinHash: string(hash),
	}

	s.mu.Lock()
	s.empleados = append(s.empleados, empleado)
	if err := s.store.Save(ctx, store.ColEmpleados, s.empleados); err != nil {
		log.Error().Err(err).Msg("no se pudo persistir la plantilla")
	}
	s.mu.Unlock()

	resp := empleadoAResponse(&empleado)
	return &resp, nil
}

func (s *AuthService) generarToken(e *model.Empleado) (string, error) {
	claims := jwt.MapClaims{
		"empleado_id": e.ID.String(),
		"nombre":      e.Nombre,
		"rol":         e.Rol,
		"exp":         time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func empleadoAResponse(e *model.Empleado) dto.EmpleadoResponse {
	return dto.EmpleadoResponse{
		ID:     e.ID.String(),
		Nombre: e.Nombre,
		Email:  e.Email,
		Rol:    e.Rol,
		Activo: e.Activo,
	}
}
