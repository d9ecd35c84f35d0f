package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nicman16/MiniMarketInnova/internal/model"
	"github.com/Nicman16/MiniMarketInnova/internal/store"
)

// MovimientoLedger is the append-only record of manual cash events. There is
// no update or delete — corrections are compensating movements.
type MovimientoLedger struct {
	mu          sync.RWMutex
	movimientos []model.MovimientoCaja
	store       store.Store
}

func NewMovimientoLedger(st store.Store) *MovimientoLedger {
	return &MovimientoLedger{store: st}
}

func (l *MovimientoLedger) Cargar(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Load(ctx, store.ColMovimientos, &l.movimientos)
}

// Append assigns id and timestamp and records the movement.
func (l *MovimientoLedger) Append(ctx context.Context, m model.MovimientoCaja) model.MovimientoCaja {
	m.ID = uuid.New()
	m.Fecha = time.Now().UTC()

	l.mu.Lock()
	l.movimientos = append(l.movimientos, m)
	if err := l.store.Save(ctx, store.ColMovimientos, l.movimientos); err != nil {
		log.Error().Err(err).Msg("no se pudo persistir el libro de movimientos")
	}
	l.mu.Unlock()
	return m
}

// ListarPorDia returns the movements of the given day, most recent first.
func (l *MovimientoLedger) ListarPorDia(fecha time.Time) []model.MovimientoCaja {
	dia := fecha.UTC().Format("2006-01-02")

	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []model.MovimientoCaja
	// Appends are chronological, so walking backwards yields most-recent-first.
	for i := len(l.movimientos) - 1; i >= 0; i-- {
		if l.movimientos[i].Fecha.UTC().Format("2006-01-02") == dia {
			out = append(out, l.movimientos[i])
		}
	}
	return out
}

// PorSesion returns the movements belonging to one session, in append order.
func (l *MovimientoLedger) PorSesion(sesionID uuid.UUID) []model.MovimientoCaja {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []model.MovimientoCaja
	for _, m := range l.movimientos {
		if m.SesionID == sesionID {
			out = append(out, m)
		}
	}
	return out
}
