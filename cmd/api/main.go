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

	"github.com/JaipaNero/Inventory-Management-System/internal/application/auth"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/ledger"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/usecase"
	"github.com/JaipaNero/Inventory-Management-System/internal/infrastructure/audit"
	infrapdf "github.com/JaipaNero/Inventory-Management-System/internal/infrastructure/pdf"
	"github.com/JaipaNero/Inventory-Management-System/internal/infrastructure/postgres"
	infraredis "github.com/JaipaNero/Inventory-Management-System/internal/infrastructure/redis"
	httpRouter "github.com/JaipaNero/Inventory-Management-System/internal/interfaces/http"
	"github.com/JaipaNero/Inventory-Management-System/pkg/config"
	"github.com/JaipaNero/Inventory-Management-System/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
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

	redisClient, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	// Repositorios sobre el pool (las escrituras del libro mayor van por TxRunner)
	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	securityLogRepo := postgres.NewSecurityLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditLogger := audit.NewSecurityEventLogger(securityLogRepo, log)
	loginLimiter := infraredis.NewLoginLimiter(redisClient,
		time.Duration(cfg.Auth.AttemptWindowMin)*time.Minute,
		time.Duration(cfg.Auth.LockoutMinutes)*time.Minute,
	)
	storeAccess := ledger.NewStoreAccessChecker(userRepo, auditLogger)

	// Núcleo del inventario: el registrador del libro mayor
	recorder := ledger.NewRecorder(txRunner, auditLogger)
	outgoingUC := ledger.NewOutgoingUseCase(itemRepo, recorder, storeAccess)

	authUC := auth.NewAuthUseCase(userRepo, loginLimiter, auditLogger,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		auth.Config{
			MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
			PasswordMaxDays:  cfg.Auth.PasswordMaxDays,
		},
	)
	storeUC := usecase.NewStoreUseCase(storeRepo, auditLogger)
	userUC := usecase.NewUserUseCase(userRepo, storeRepo, auditLogger)
	itemUC := usecase.NewItemUseCase(itemRepo, storeRepo, storeAccess, txRepo, txRunner, recorder, auditLogger)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := usecase.NewReportUseCase(reportRepo, txRepo, storeRepo, securityLogRepo, pdfGenerator, storeAccess)

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
		Title:    "Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		StoreUC:    storeUC,
		UserUC:     userUC,
		ItemUC:     itemUC,
		OutgoingUC: outgoingUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
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
