package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appsettlement "github.com/dukkan/backend/internal/application/settlement"
	"github.com/dukkan/backend/internal/domain/settlement"
	"github.com/dukkan/backend/internal/infrastructure/config"
	"github.com/dukkan/backend/internal/infrastructure/logger"
	"github.com/dukkan/backend/internal/infrastructure/persistence"
	"github.com/dukkan/backend/internal/interfaces/http/handler"
	"github.com/dukkan/backend/internal/interfaces/http/middleware"
	"github.com/dukkan/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

//	@title			Settlement API
//	@version		1.0
//	@description	Multi-currency debt and payment settlement service for a small-shop POS.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting settlement service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("driver", cfg.Database.Driver))

	gormLogLevel := gormlogger.Warn
	if cfg.App.Env == "development" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormLogLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	policy := settlement.ChangePolicy{
		DenominationsIQD: cfg.Settlement.DenominationsIQD,
		MinChangeIQD:     decimal.NewFromInt(cfg.Settlement.MinChangeIQD),
		MinChangeUSD:     decimal.NewFromInt(cfg.Settlement.MinChangeUSD),
	}

	scope := persistence.NewGormTransactionScope(db.DB)
	service := appsettlement.NewService(scope, log,
		appsettlement.WithChangePolicy(policy),
		appsettlement.WithDrawer(cfg.Settlement.Drawer),
		appsettlement.WithSettledCallback(func(ctx context.Context, n appsettlement.DebtSettledNotification) {
			log.Info("debt settled",
				zap.String("debt_id", n.DebtID.String()),
				zap.String("debtor", n.DebtorKey),
				zap.String("paid_usd", n.PaidUSD.String()),
				zap.String("paid_iqd", n.PaidIQD.String()))
		}),
	)

	// Conversions need a current rate from the first request on.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelSeed()
	if err := service.EnsureRate(seedCtx, decimal.NewFromFloat(cfg.Settlement.DefaultRate), "config"); err != nil {
		log.Fatal("Failed to seed exchange rate", zap.Error(err))
	}

	metrics := middleware.NewHTTPMetrics(cfg.App.Name)
	engine := router.NewEngine(router.EngineConfig{
		Logger:             log,
		Metrics:            metrics,
		CORS:               middleware.DefaultCORSConfig(),
		Environment:        cfg.App.Env,
		MaxBodyBytes:       cfg.HTTP.MaxBodyBytes,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
	})
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	router.NewRouter(engine).
		Register(handler.NewSettlementHandler(service, cfg.Settlement.FreezeRateOnCreate)).
		Register(handler.NewSystemHandler()).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
