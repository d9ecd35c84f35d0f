package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Nicman16/MiniMarketInnova/internal/apierror"
	"github.com/Nicman16/MiniMarketInnova/internal/model"
	"github.com/Nicman16/MiniMarketInnova/internal/store"
)

// CajaService is the state machine governing till sessions. It is the only
// writer of a session's running totals; the movement ledger reaches them
// exclusively through RegistrarMovimiento.
//
// Invariant: at most one session is "abierta" at any time, system-wide.
type CajaService struct {
	mu       sync.Mutex
	sesiones []model.SesionCaja
	ledger   *MovimientoLedger
	store    store.Store
}

func NewCajaService(ledger *MovimientoLedger, st store.Store) *CajaService {
	return &CajaService{ledger: ledger, store: st}
}

func (s *CajaService) Cargar(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx, store.ColSesiones, &s.sesiones)
}

// SesionActiva returns a copy of the open session, or nil.
func (s *CajaService) SesionActiva() *model.SesionCaja {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sesionAbierta()
}

// Sesiones returns the full session history, most recent opening first.
func (s *CajaService) Sesiones() []model.SesionCaja {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.SesionCaja, len(s.sesiones))
	for i, ses := range s.sesiones {
		out[len(s.sesiones)-1-i] = ses
	}
	return out
}

// Abrir opens a new session with all running totals at zero and records the
// opening float as an ingreso tagged "Apertura de caja", so the drawer is
// always reconstructable from the ledger plus sales.
func (s *CajaService) Abrir(ctx context.Context, empleadoID uuid.UUID, empleadoNombre string, montoApertura decimal.Decimal) (*model.SesionCaja, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sesionAbierta() != nil {
		return nil, apierror.Conflicto("Ya hay una sesión de caja abierta")
	}

	sesion := model.SesionCaja{
		ID:             uuid.New(),
		EmpleadoID:     empleadoID,
		EmpleadoNombre: empleadoNombre,
		FechaApertura:  time.Now().UTC(),
		MontoApertura:  montoApertura,
		VentasEfectivo: decimal.Zero,
		VentasTarjeta:  decimal.Zero,
		Ingresos:       decimal.Zero,
		Egresos:        decimal.Zero,
		Estado:         "abierta",
	}
	s.sesiones = append(s.sesiones, sesion)

	s.ledger.Append(ctx, model.MovimientoCaja{
		SesionID:       sesion.ID,
		Tipo:           model.MovimientoIngreso,
		Monto:          montoApertura,
		Concepto:       model.ConceptoApertura,
		EmpleadoID:     empleadoID,
		EmpleadoNombre: empleadoNombre,
	})
	s.aplicarMovimiento(sesion.ID, model.MovimientoIngreso, montoApertura)

	s.persistir(ctx)
	log.Info().Str("sesion_id", sesion.ID.String()).Str("empleado", empleadoNombre).Msg("caja abierta")
	return s.copiaDe(sesion.ID), nil
}

// Cerrar stamps the close and records the counted amount. The system never
// compares montoCierre against the expected total — variance is the
// operator's responsibility.
func (s *CajaService) Cerrar(ctx context.Context, sesionID uuid.UUID, montoCierre decimal.Decimal) (*model.SesionCaja, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indiceDe(sesionID)
	if !ok {
		return nil, apierror.NoEncontrado("Sesión no encontrada")
	}
	if s.sesiones[i].Estado == "cerrada" {
		return nil, apierror.Conflicto("La sesión ya está cerrada")
	}

	ahora := time.Now().UTC()
	s.sesiones[i].FechaCierre = &ahora
	s.sesiones[i].MontoCierre = &montoCierre
	s.sesiones[i].Estado = "cerrada"

	s.persistir(ctx)
	log.Info().
		Str("sesion_id", sesionID.String()).
		Str("monto_cierre", montoCierre.String()).
		Msg("caja cerrada")
	return s.copiaDe(sesionID), nil
}

// RegistrarMovimiento appends a manual ingreso/egreso to the ledger and
// updates the open session's running total. Rejected when no session is
// open: the historical behavior silently accepted orphan movements, which
// made them unattributable at reconciliation time.
func (s *CajaService) RegistrarMovimiento(ctx context.Context, tipo string, monto decimal.Decimal, concepto string, empleadoID uuid.UUID, empleadoNombre string) (*model.MovimientoCaja, error) {
	if monto.LessThanOrEqual(decimal.Zero) {
		return nil, apierror.Validacion("El monto debe ser mayor que cero")
	}
	if tipo != model.MovimientoIngreso && tipo != model.MovimientoEgreso {
		return nil, apierror.Validacion("Tipo de movimiento inválido")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sesion := s.sesionAbierta()
	if sesion == nil {
		return nil, apierror.SinSesion("No hay una sesión de caja abierta")
	}

	mov := s.ledger.Append(ctx, model.MovimientoCaja{
		SesionID:       sesion.ID,
		Tipo:           tipo,
		Monto:          monto,
		Concepto:       concepto,
		EmpleadoID:     empleadoID,
		EmpleadoNombre: empleadoNombre,
	})
	s.aplicarMovimiento(sesion.ID, tipo, monto)
	s.persistir(ctx)
	return &mov, nil
}

// RegistrarVenta tallies a completed sale into the open session's bucket for
// its payment method and stamps the session id on the sale, so a later
// anulación can find the session it belongs to. Transferencia settles
// outside the drawer: tracked in daily summaries, added to neither bucket.
//
// With no open session this is a silent no-op — preserved source behavior;
// the warn log is the only trace.
func (s *CajaService) RegistrarVenta(ctx context.Context, venta *model.Venta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sesion := s.sesionAbierta()
	if sesion == nil {
		log.Warn().
			Str("venta_id", venta.ID.String()).
			Msg("venta registrada sin sesión de caja abierta; no se actualiza ningún total")
		return
	}

	i, _ := s.indiceDe(sesion.ID)
	sesionID := sesion.ID
	venta.SesionID = &sesionID
	switch venta.MetodoPago {
	case model.PagoEfectivo:
		s.sesiones[i].VentasEfectivo = s.sesiones[i].VentasEfectivo.Add(venta.Total)
	case model.PagoTarjeta:
		s.sesiones[i].VentasTarjeta = s.sesiones[i].VentasTarjeta.Add(venta.Total)
	}
	s.persistir(ctx)
}

// AnularVenta reverses a sale's tally in the session that received it, as
// long as that session is still open. A sale tallied into an already closed
// session leaves every total untouched — the current session never absorbed
// it, and a closed session is history. The ledger is untouched either way:
// buckets are running totals owned by this service, not ledger entries.
func (s *CajaService) AnularVenta(ctx context.Context, venta *model.Venta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if venta.SesionID == nil {
		log.Warn().Str("venta_id", venta.ID.String()).Msg("anulación de venta sin sesión asociada; totales sin cambios")
		return
	}
	i, ok := s.indiceDe(*venta.SesionID)
	if !ok || s.sesiones[i].Estado != "abierta" {
		log.Warn().
			Str("venta_id", venta.ID.String()).
			Str("sesion_id", venta.SesionID.String()).
			Msg("la sesión de la venta ya está cerrada; totales sin cambios")
		return
	}

	switch venta.MetodoPago {
	case model.PagoEfectivo:
		s.sesiones[i].VentasEfectivo = s.sesiones[i].VentasEfectivo.Sub(venta.Total)
	case model.PagoTarjeta:
		s.sesiones[i].VentasTarjeta = s.sesiones[i].VentasTarjeta.Sub(venta.Total)
	}
	s.persistir(ctx)
}

// ── internals (callers hold s.mu) ────────────────────────────────────────────

func (s *CajaService) sesionAbierta() *model.SesionCaja {
	for i := range s.sesiones {
		if s.sesiones[i].Estado == "abierta" {
			copia := s.sesiones[i]
			return &copia
		}
	}
	return nil
}

func (s *CajaService) indiceDe(id uuid.UUID) (int, bool) {
	for i := range s.sesiones {
		if s.sesiones[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *CajaService) copiaDe(id uuid.UUID) *model.SesionCaja {
	i, ok := s.indiceDe(id)
	if !ok {
		return nil
	}
	copia := s.sesiones[i]
	return &copia
}

func (s *CajaService) aplicarMovimiento(sesionID uuid.UUID, tipo string, monto decimal.Decimal) {
	i, ok := s.indiceDe(sesionID)
	if !ok {
		return
	}
	if tipo == model.MovimientoIngreso {
		s.sesiones[i].Ingresos = s.sesiones[i].Ingresos.Add(monto)
	} else {
		s.sesiones[i].Egresos = s.sesiones[i].Egresos.Add(monto)
	}
}

func (s *CajaService) persistir(ctx context.Context) {
	if err := s.store.Save(ctx, store.ColSesiones, s.sesiones); err != nil {
		log.Error().Err(err).Msg("no se pudieron persistir las sesiones de caja")
	}
}
