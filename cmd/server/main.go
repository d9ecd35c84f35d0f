package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nicman16/MiniMarketInnova/internal/config"
	"github.com/Nicman16/MiniMarketInnova/internal/router"
	"github.com/Nicman16/MiniMarketInnova/internal/service"
	"github.com/Nicman16/MiniMarketInnova/internal/store"
	"github.com/Nicman16/MiniMarketInnova/internal/sync"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	st, err := newStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open snapshot store")
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Services — loaded from the snapshot store before serving.
	catalogo := service.NewCatalogoProductos(st)
	ledger := service.NewMovimientoLedger(st)
	caja := service.NewCajaService(ledger, st)
	auth := service.NewAuthService(st, cfg)

	for nombre, cargar := range map[string]func(context.Context) error{
		"productos":   catalogo.Cargar,
		"movimientos": ledger.Cargar,
		"sesiones":    caja.Cargar,
		"empleados":   auth.Cargar,
	} {
		if err := cargar(ctx); err != nil {
			log.Fatal().Err(err).Str("coleccion", nombre).Msg("failed to load snapshot")
		}
	}

	// The hub owns all catalog mutations; it must be running before any
	// terminal connects or any REST mutation arrives.
	hub := sync.NewHub(catalogo)
	go hub.Run(ctx)

	ventas := service.NewVentaService(hub, caja, st)
	if err := ventas.Cargar(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load sales snapshot")
	}

	r := router.New(cfg, router.Deps{
		Hub:      hub,
		Catalogo: catalogo,
		Auth:     auth,
		Caja:     caja,
		Ledger:   ledger,
		Ventas:   ventas,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("MiniMarket Innova backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// newStore selects the snapshot driver from config.
func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "redis":
		return store.NewRedisStore(cfg.RedisURL)
	case "postgres":
		return store.NewPostgresStore(cfg.DatabaseURL)
	default:
		return store.NewMemoryStore(), nil
	}
}
