package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankitalia-service/internal/adapter/bancaditalia"
	"bankitalia-service/internal/adapter/postgres"
	"bankitalia-service/internal/handler"
	"bankitalia-service/internal/metrics"
	"bankitalia-service/internal/service"
	"bankitalia-service/internal/usecase"
	"bankitalia-service/pkg/config"
	"bankitalia-service/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log := logger.Init(cfg.Log.Level)

	log.Info("Starting app...")

	dbPool, err := postgres.InitDBPool(*cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize db pool: %v", err)
	}
	defer dbPool.Close()

	providerClient := bancaditalia.NewClient(
		cfg.Provider.BaseURL,
		cfg.Provider.Lang,
		time.Duration(cfg.Provider.TimeoutSeconds)*time.Second,
		log,
	)
	log.Info("Initialized Banca d'Italia client")

	db := postgres.NewPostgresRepo(dbPool, log)
	log.Info("Initialized database repository")

	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	rateService := service.NewRateService(providerClient, db, m, log)
	log.Info("Initialized service layer")

	rateUsecase := usecase.NewCurrencyUsecase(rateService, m, log)
	log.Info("Initialized usecase layer")

	rateHandler := handler.NewRateHandler(rateUsecase, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.GET("/healthz", rateHandler.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/rates", rateHandler.ListLatestRates)
	r.GET("/rates/refresh", rateHandler.RefreshRates)
	r.GET("/rates/:iso", rateHandler.GetRateByISOCode)

	r.GET("/currencies", rateHandler.ListCurrencies)
	r.GET("/currencies/refresh", rateHandler.RefreshCurrencies)

	c := cron.New()

	// The provider publishes new quotations on business days in the
	// afternoon (CET); refresh shortly after.
	_, err = c.AddFunc("0 17 * * 1-5", func() {
		log.Info("Scheduled rate refresh...")
		ctx := context.Background()
		if err := rateUsecase.RefreshRates(ctx); err != nil {
			log.Errorf("Scheduled rate refresh failed: %v", err)
		} else {
			log.Info("Scheduled rate refresh done")
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule rate refresh: %v", err)
	}

	c.Start()
	log.Info("Scheduler initialized, rates refresh on business days at 17:00")

	go func() {
		log.Info("Warming up dataset...")
		time.Sleep(2 * time.Second)
		ctx := context.Background()
		if err := rateUsecase.RefreshCurrencies(ctx); err != nil {
			log.Errorf("Currency registry warmup failed: %v", err)
		}
		if err := rateUsecase.RefreshRates(ctx); err != nil {
			log.Errorf("Rates warmup failed: %v", err)
		} else {
			log.Info("Warmup done")
		}
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	go func() {
		log.Infof("Server starting on port %s...", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Got shutdown signal...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Error server shutdown:", err)
	}
	log.Info("Server stopped")

	c.Stop()
	log.Info("Scheduler stopped")

	log.Info("Gracefully shut down")
}
