package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appreports "github.com/tu-usuario/farmacia-pro/internal/application/reports"
	appsales "github.com/tu-usuario/farmacia-pro/internal/application/sales"
	"github.com/tu-usuario/farmacia-pro/internal/application/usecase"
	infracache "github.com/tu-usuario/farmacia-pro/internal/infrastructure/cache"
	infrapdf "github.com/tu-usuario/farmacia-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/farmacia-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/farmacia-pro/internal/interfaces/http"
	"github.com/tu-usuario/farmacia-pro/pkg/config"
	"github.com/tu-usuario/farmacia-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	medicineRepo := postgres.NewMedicineRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de reportes: Redis si está configurado, Noop si no.
	var reportCache appreports.ReportCache = appreports.NoopReportCache{}
	if cfg.Redis.Addr != "" {
		redisCache, err := infracache.NewRedisReportCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, reportes sin cache")
		} else {
			defer redisCache.Close()
			reportCache = redisCache
		}
	}

	sessions := appsales.NewSessionStore()
	medicineUC := usecase.NewMedicineUseCase(medicineRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	cartUC := appsales.NewCartUseCase(medicineRepo, sessions)
	commitUC := appsales.NewCommitSaleUseCase(txRunner, sessions, customerRepo, log)
	saleQueryUC := appsales.NewSaleQueryUseCase(saleRepo)
	receiptUC := appsales.NewReceiptUseCase(saleRepo, medicineRepo, infrapdf.NewMarotoReceiptGenerator())
	reportUC := appreports.NewReportUseCase(reportRepo, reportCache)
	dashboardUC := appreports.NewDashboardUseCase(reportRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Farmacia Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MedicineUC:  medicineUC,
		CustomerUC:  customerUC,
		CartUC:      cartUC,
		CommitUC:    commitUC,
		SaleQueryUC: saleQueryUC,
		ReceiptUC:   receiptUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
