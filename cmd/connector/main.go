package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/application/catalogue"
	"github.com/erp/connector/internal/application/ordersync"
	"github.com/erp/connector/internal/application/pricing"
	"github.com/erp/connector/internal/infrastructure/config"
	"github.com/erp/connector/internal/infrastructure/esprinet"
	"github.com/erp/connector/internal/infrastructure/ftp"
	"github.com/erp/connector/internal/infrastructure/logger"
	"github.com/erp/connector/internal/infrastructure/persistence"
	"github.com/erp/connector/internal/infrastructure/scheduler"
	httpiface "github.com/erp/connector/internal/interfaces/http"
	"github.com/erp/connector/internal/interfaces/http/handler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Esprinet connector",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	taxRateRepo := persistence.NewGormTaxRateRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	supplierLinkRepo := persistence.NewGormSupplierLinkRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)

	// Distributor API gateway
	api := esprinet.NewAPI(cfg.API, log)

	// Application services
	catalogueWriter := persistence.NewGormCatalogueWriter(db.DB)
	resolver := catalogue.NewResolver(categoryRepo, taxRateRepo, supplierRepo, log)
	reconciler := catalogue.NewReconciler(productRepo, supplierLinkRepo, catalogueWriter, resolver, cfg.Sync, log)
	fetcher := ftp.NewFetcher(cfg.FTP, log)
	importer := catalogue.NewImporter(fetcher, reconciler, log)
	pricingService := pricing.NewService(productRepo, supplierLinkRepo, supplierRepo, api.Products, cfg.Sync, log)
	forwarder := ordersync.NewForwarder(salesOrderRepo, supplierLinkRepo, supplierRepo, api.Orders, log)

	// Periodic jobs
	jobs := scheduler.NewScheduler(cfg.Sync.JobTimeout, log)
	if cfg.Sync.CatalogueEnabled {
		jobs.Register(scheduler.JobFunc{
			JobName: "catalogue-import",
			Fn: func(ctx context.Context) error {
				_, err := importer.Run(ctx)
				return err
			},
		}, cfg.Sync.CatalogueInterval)
	}
	if cfg.Sync.PricingEnabled {
		jobs.Register(scheduler.JobFunc{
			JobName: "pricing-refresh",
			Fn: func(ctx context.Context) error {
				_, err := pricingService.Run(ctx)
				return err
			},
		}, cfg.Sync.PricingInterval)
	}
	jobs.Start()
	defer jobs.Stop()

	// HTTP interface
	engine := httpiface.NewRouter(httpiface.Handlers{
		Catalogue: handler.NewCatalogueHandler(importer, pricingService, log),
		Orders:    handler.NewOrderHandler(salesOrderRepo, forwarder, log),
		Health:    handler.NewHealthHandler(db),
	}, log)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: engine,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
