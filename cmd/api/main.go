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

	"github.com/ngtrphuong/ioe/internal/application/audit"
	"github.com/ngtrphuong/ioe/internal/application/auth"
	"github.com/ngtrphuong/ioe/internal/application/inventory"
	"github.com/ngtrphuong/ioe/internal/application/member"
	"github.com/ngtrphuong/ioe/internal/application/product"
	"github.com/ngtrphuong/ioe/internal/application/report"
	"github.com/ngtrphuong/ioe/internal/application/sales"
	"github.com/ngtrphuong/ioe/internal/application/transfer"
	"github.com/ngtrphuong/ioe/internal/infrastructure/barcode"
	inframail "github.com/ngtrphuong/ioe/internal/infrastructure/mail"
	infrapdf "github.com/ngtrphuong/ioe/internal/infrastructure/pdf"
	"github.com/ngtrphuong/ioe/internal/infrastructure/postgres"
	httpRouter "github.com/ngtrphuong/ioe/internal/interfaces/http"
	"github.com/ngtrphuong/ioe/pkg/config"
	"github.com/ngtrphuong/ioe/pkg/logger"
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

	// Repositorios sobre el pool (lecturas fuera de transacción)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	txnRepo := postgres.NewInventoryTransactionRepository(pool)
	checkRepo := postgres.NewInventoryCheckRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	levelRepo := postgres.NewMemberLevelRepository(pool)
	mtxRepo := postgres.NewMemberTransactionRepository(pool)
	logRepo := postgres.NewOperationLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Infraestructura externa
	mailer := inframail.NewMailer(cfg.Mail, log)
	barcodeClient := barcode.NewAliClient(cfg.Barcode.AppCode, cfg.Barcode.BaseURL, log)
	receipts := infrapdf.NewReceiptGenerator(cfg.App.Name)

	// Casos de uso
	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, productRepo, mailer)
	checkUC := inventory.NewCheckUseCase(txRunner, checkRepo, productRepo, adjustStockUC)
	evaluator := member.NewEvaluator(levelRepo)
	memberUC := member.NewMemberUseCase(txRunner, memberRepo, levelRepo, mtxRepo, evaluator)
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, productRepo, memberRepo, levelRepo, adjustStockUC, evaluator)
	productUC := product.NewProductUseCase(productRepo, categoryRepo, invRepo, barcodeClient)
	transferUC := transfer.NewTransferUseCase(productRepo, categoryRepo, invRepo, memberRepo, levelRepo, log)
	reportUC := report.NewReportUseCase(reportRepo, invRepo, productRepo)
	auditSvc := audit.NewService(logRepo)
	authUC := auth.NewAuthUseCase(userRepo, cfg.JWT, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // exportaciones CSV y PDF
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ioe POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		AdjustStock: adjustStockUC,
		CheckUC:     checkUC,
		SaleUC:      saleUC,
		MemberUC:    memberUC,
		TransferUC:  transferUC,
		ReportUC:    reportUC,
		AuditSvc:    auditSvc,

		InventoryRepo:   invRepo,
		TransactionRepo: txnRepo,
		MemberRepo:      memberRepo,
		Receipts:        receipts,

		JWTSecret: cfg.JWT.Secret,
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
