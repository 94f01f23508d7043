package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nano867/prediction-crop/config"
	"github.com/Nano867/prediction-crop/database"
	"github.com/Nano867/prediction-crop/router"

	// Reference data
	"github.com/Nano867/prediction-crop/pkg/refdata"
	refdataRepoImp "github.com/Nano867/prediction-crop/pkg/refdata/repositoryImp"

	// Recommend
	recCtrlImp "github.com/Nano867/prediction-crop/pkg/recommend/controllerImp"
	recSvcImp "github.com/Nano867/prediction-crop/pkg/recommend/serviceImp"

	// Health
	healthCtrlImp "github.com/Nano867/prediction-crop/pkg/health/controllerImp"

	"github.com/Nano867/prediction-crop/pkg/advice"
	"github.com/Nano867/prediction-crop/pkg/middleware"
	"github.com/Nano867/prediction-crop/pkg/observability"
)

func main() {
	// 1) Config + logger
	boot := zap.Must(zap.NewProduction())
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal("config", zap.Error(err))
	}
	log, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		boot.Fatal("logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.AppConfig, log *zap.Logger) error {
	// 2) Optional SQLite reference data
	var db *gorm.DB
	opts := refdata.Options{
		File:     cfg.RefDataFile,
		TempsCSV: cfg.TempsCSV,
		TempsURL: cfg.TempsURL,
		Logger:   log,
	}
	if cfg.DBPath != "" {
		var err error
		if db, err = database.OpenSQLite(cfg.DBPath); err != nil {
			return err
		}
		opts.Store = refdataRepoImp.New(db)
	}

	// 3) Catalog
	cat, err := refdata.Load(ctx, opts)
	if err != nil {
		return err
	}
	metrics := observability.NewMetrics()
	metrics.Regions.Set(float64(len(cat.Regions())))
	metrics.Crops.Set(float64(len(cat.Crops())))
	metrics.Zones.Set(float64(len(cat.Zones())))
	log.Info("reference data ready",
		zap.Int("regions", len(cat.Regions())),
		zap.Int("crops", len(cat.Crops())),
		zap.Int("zones", len(cat.Zones())))

	// 4) Summaries (template fallback)
	var adv advice.Client
	if cfg.LLMEnabled() {
		adv = advice.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, log)
		log.Info("llm summaries enabled", zap.String("model", cfg.LLMModel))
	} else {
		adv = advice.NewTemplate()
	}

	// 5) Services/Controllers
	svc := recSvcImp.NewAdvisorService(cat, adv, metrics, log)
	rCtrl := recCtrlImp.New(svc)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, cat, clockwork.NewRealClock())

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLog(log))
	router.New(e, rCtrl, hCtrl)

	// 7) Start + graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return nil
}
