package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Nicman16/MiniMarketInnova/internal/apierror"
	"github.com/Nicman16/MiniMarketInnova/internal/dto"
	"github.com/Nicman16/MiniMarketInnova/internal/model"
	"github.com/Nicman16/MiniMarketInnova/internal/store"
)

// Retail prices are IVA-inclusive; the informational tax portion on the
// receipt is total * 19/119.
var (
	ivaSobreTotal = decimal.NewFromInt(19)
	cienMasIVA    = decimal.NewFromInt(119)
)

// CatalogoVentas is what a sale needs from the synchronized catalog: an
// atomic resolve-validate-decrement (so the stock update broadcasts in apply
// order) and its reverse for anulaciones. Implemented by the sync hub.
type CatalogoVentas interface {
	AplicarVenta(ctx context.Context, items []dto.ItemVentaRequest, validar func([]model.VentaItem) error) ([]model.VentaItem, error)
	RestaurarStock(ctx context.Context, items []model.VentaItem)
}

// VentaService records sales: inventory decrement and sale creation happen
// atomically, then the till session is tallied.
type VentaService struct {
	mu       sync.Mutex
	ventas   []model.Venta
	catalogo CatalogoVentas
	caja     *CajaService
	store    store.Store
}

func NewVentaService(catalogo CatalogoVentas, caja *CajaService, st store.Store) *VentaService {
	return &VentaService{catalogo: catalogo, caja: caja, store: st}
}

func (s *VentaService) Cargar(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx, store.ColVentas, &s.ventas)
}

// Registrar creates a completed sale. Payment sufficiency is validated
// inside the catalog's serialized apply step, so an insufficient payment
// never leaves a partial stock decrement behind.
func (s *VentaService) Registrar(ctx context.Context, empleadoID uuid.UUID, empleadoNombre string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	var total decimal.Decimal

	items, err := s.catalogo.AplicarVenta(ctx, req.Items, func(resueltos []model.VentaItem) error {
		total = decimal.Zero
		for _, it := range resueltos {
			total = total.Add(it.Subtotal)
		}
		if req.MetodoPago == model.PagoEfectivo && req.MontoRecibido.LessThan(total) {
			return apierror.Validacion(fmt.Sprintf("Monto recibido insuficiente: faltan %s", total.Sub(req.MontoRecibido)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	iva := total.Mul(ivaSobreTotal).Div(cienMasIVA).Round(2)
	venta := model.Venta{
		ID:             uuid.New(),
		Items:          items,
		Subtotal:       total.Sub(iva),
		IVA:            iva,
		Total:          total,
		MetodoPago:     req.MetodoPago,
		EmpleadoID:     empleadoID,
		EmpleadoNombre: empleadoNombre,
		Fecha:          time.Now().UTC(),
		Estado:         model.VentaCompletada,
	}

	// The tally stamps venta.SesionID, so it runs before the sale is stored.
	s.caja.RegistrarVenta(ctx, &venta)

	s.mu.Lock()
	s.ventas = append(s.ventas, venta)
	s.persistir(ctx)
	s.mu.Unlock()

	vuelto := decimal.Zero
	if req.MetodoPago == model.PagoEfectivo {
		vuelto = req.MontoRecibido.Sub(total)
	}
	return &dto.VentaResponse{Venta: venta, Vuelto: vuelto}, nil
}

// Anular voids a completed sale: stock is restored through the catalog (the
// updated products broadcast to every terminal) and the session tally is
// reversed. The sale record itself only flips estado.
func (s *VentaService) Anular(ctx context.Context, id uuid.UUID, motivo string) (*model.Venta, error) {
	s.mu.Lock()
	i := -1
	for j := range s.ventas {
		if s.ventas[j].ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		s.mu.Unlock()
		return nil, apierror.NoEncontrado("Venta no encontrada")
	}
	if s.ventas[i].Estado == model.VentaAnulada {
		s.mu.Unlock()
		return nil, apierror.Conflicto("La venta ya está anulada")
	}
	s.ventas[i].Estado = model.VentaAnulada
	venta := s.ventas[i]
	s.persistir(ctx)
	s.mu.Unlock()

	s.catalogo.RestaurarStock(ctx, venta.Items)
	s.caja.AnularVenta(ctx, &venta)

	log.Info().
		Str("venta_id", id.String()).
		Str("motivo", motivo).
		Msg("venta anulada")
	return &venta, nil
}

// VentasDia returns the sales of the given day in creation order.
func (s *VentaService) VentasDia(fecha time.Time) []model.Venta {
	dia := fecha.UTC().Format("2006-01-02")

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Venta
	for _, v := range s.ventas {
		if v.Fecha.UTC().Format("2006-01-02") == dia {
			out = append(out, v)
		}
	}
	return out
}

// persistir rewrites the collection; must be called with the lock held.
func (s *VentaService) persistir(ctx context.Context) {
	if err := s.store.Save(ctx, store.ColVentas, s.ventas); err != nil {
		log.Error().Err(err).Msg("no se pudieron persistir las ventas")
	}
}
