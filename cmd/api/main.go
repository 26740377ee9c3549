package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/guslozua/bitacora-api/internal/application/codigos"
	"github.com/guslozua/bitacora-api/internal/application/feriados"
	appguardias "github.com/guslozua/bitacora-api/internal/application/guardias"
	"github.com/guslozua/bitacora-api/internal/application/incidentes"
	"github.com/guslozua/bitacora-api/internal/application/liquidaciones"
	"github.com/guslozua/bitacora-api/internal/application/tarifas"
	"github.com/guslozua/bitacora-api/internal/infrastructure/postgres"
	httpRouter "github.com/guslozua/bitacora-api/internal/interfaces/http"
	"github.com/guslozua/bitacora-api/pkg/config"
	"github.com/guslozua/bitacora-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	codigoRepo := postgres.NewCodigoRepository(pool)
	tarifaRepo := postgres.NewTarifaRepository(pool)
	guardiaRepo := postgres.NewGuardiaRepository(pool)
	incidenteRepo := postgres.NewIncidenteRepository(pool)
	liquidacionRepo := postgres.NewLiquidacionRepository(pool)
	feriadoRepo := postgres.NewFeriadoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tarifaUC := tarifas.NewUseCase(tarifaRepo)
	codigoUC := codigos.NewUseCase(codigoRepo, feriadoRepo)
	guardiaUC := appguardias.NewUseCase(txRunner, guardiaRepo, incidenteRepo)
	incidenteUC := incidentes.NewUseCase(txRunner, incidenteRepo, guardiaRepo, codigoRepo, feriadoRepo, tarifaUC)
	liquidacionUC := liquidaciones.NewUseCase(txRunner, liquidacionRepo, incidenteRepo)
	feriadoUC := feriados.NewUseCase(feriadoRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TarifaUC:      tarifaUC,
		CodigoUC:      codigoUC,
		GuardiaUC:     guardiaUC,
		IncidenteUC:   incidenteUC,
		LiquidacionUC: liquidacionUC,
		FeriadoUC:     feriadoUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("servidor detenido")
}
