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
	"github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/inbound"
	"github.com/tu-usuario/almacen-api/internal/application/outbound"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/excel"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/almacen-api/internal/interfaces/http"
	"github.com/tu-usuario/almacen-api/pkg/config"
	"github.com/tu-usuario/almacen-api/pkg/logger"
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

	// Repos atados al pool (consultas); las mutaciones usan el TxRunner.
	lotRepo := postgres.NewLotRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	codeGroupRepo := postgres.NewCodeGroupRepository(pool)
	codeDetailRepo := postgres.NewCodeDetailRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := audit.NewLogRecorder(auditRepo, log)

	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}
	authUC := auth.NewAuthUseCase(userRepo, jwtCfg, recorder)
	inboundUC := inbound.NewUseCase(txRunner, lotRepo, recorder)
	outboundUC := outbound.NewUseCase(txRunner, movementRepo, recorder)
	stockUC := usecase.NewStockUseCase(reportRepo, balanceRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, recorder)
	menuUC := usecase.NewMenuUseCase(menuRepo, recorder)
	codeUC := usecase.NewCodeUseCase(codeGroupRepo, codeDetailRepo, recorder)
	userUC := usecase.NewUserUseCase(userRepo, recorder)
	auditUC := usecase.NewAuditUseCase(auditRepo)
	dashboardUC := usecase.NewDashboardUseCase(reportRepo)
	exporter := excel.NewExporter()

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
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InboundUC:   inboundUC,
		OutboundUC:  outboundUC,
		StockUC:     stockUC,
		ItemUC:      itemUC,
		MenuUC:      menuUC,
		CodeUC:      codeUC,
		UserUC:      userUC,
		AuditUC:     auditUC,
		DashboardUC: dashboardUC,
		Exporter:    exporter,
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
