package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	appaudit "github.com/smeops/backend/internal/application/audit"
	appcatalog "github.com/smeops/backend/internal/application/catalog"
	appfinance "github.com/smeops/backend/internal/application/finance"
	appinventory "github.com/smeops/backend/internal/application/inventory"
	apppartner "github.com/smeops/backend/internal/application/partner"
	appreport "github.com/smeops/backend/internal/application/report"
	apptrade "github.com/smeops/backend/internal/application/trade"
	"github.com/smeops/backend/internal/infrastructure/cache"
	"github.com/smeops/backend/internal/infrastructure/config"
	"github.com/smeops/backend/internal/infrastructure/logger"
	"github.com/smeops/backend/internal/infrastructure/migration"
	"github.com/smeops/backend/internal/infrastructure/persistence"
	"github.com/smeops/backend/internal/interfaces/http/handler"
	"github.com/smeops/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer log.Sync()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version))

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	migrator, err := migration.New(cfg.Database.URL(), log)
	if err != nil {
		return err
	}
	if err := migrator.Up(); err != nil {
		return err
	}
	if err := migrator.Close(); err != nil {
		log.Warn("migrator close failed", zap.Error(err))
	}

	gormLevel := gormlogger.Warn
	if !cfg.IsProduction() {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, gormLevel))
	if err != nil {
		return err
	}
	defer db.Close()

	redisCache := cache.NewRedisCache(&cfg.Redis)
	defer redisCache.Close()

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	orderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	scope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	recorder := appaudit.NewRecorder(auditRepo, log)
	productService := appcatalog.NewProductService(productRepo, recorder, log)
	customerService := apppartner.NewCustomerService(customerRepo, recorder, log)
	supplierService := apppartner.NewSupplierService(supplierRepo, recorder, log)
	orderService := apptrade.NewSalesOrderService(scope, orderRepo, recorder, log)
	stockService := appinventory.NewStockService(scope.Inventory(), movementRepo, recorder, log)
	paymentService := appfinance.NewPaymentService(scope.Finance(), paymentRepo, customerRepo, supplierRepo, recorder, log)
	reportService := appreport.NewReportService(reportRepo, redisCache, log)

	handlers := router.Handlers{
		Product:    handler.NewProductHandler(productService, log),
		Customer:   handler.NewCustomerHandler(customerService, orderService, log),
		Supplier:   handler.NewSupplierHandler(supplierService, log),
		Stock:      handler.NewStockHandler(stockService, log),
		SalesOrder: handler.NewSalesOrderHandler(orderService, log),
		Payment:    handler.NewPaymentHandler(paymentService, log),
		Report:     handler.NewReportHandler(reportService, log),
		Audit:      handler.NewAuditHandler(recorder, log),
		Export:     handler.NewExportHandler(productService, orderService, stockService, paymentService, log),
		System:     handler.NewSystemHandler(db, redisCache, version, log),
	}

	engine := router.New(cfg, log, handlers)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.HTTP.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
