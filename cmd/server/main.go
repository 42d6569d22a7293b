package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/titanic/api/internal/config"
	"github.com/titanic/api/internal/handlers"
	"github.com/titanic/api/internal/middleware"
	"github.com/titanic/api/internal/model"
	"github.com/titanic/api/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Initialize logger with stdout sync
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Titanic Survival Prediction API starting...",
		zap.String("version", "1.0"),
		zap.String("environment", os.Getenv("GO_ENV")),
	)

	logger.Info("Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	logger.Info("Initializing telemetry...")
	shutdownTelemetry, err := telemetry.InitTracer(ctx, "titanic-api", cfg.OTLPEndpoint)
	if err != nil {
		// Log but don't fail, as collector might be down
		logger.Error("failed to initialize telemetry", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTelemetry(ctx); err != nil {
				logger.Error("failed to shutdown telemetry", zap.Error(err))
			}
		}()
	}

	// An absent or mismatched model artifact is a configuration error;
	// the server never starts without a scorable model.
	logger.Info("Loading model artifacts...", zap.String("dir", cfg.ModelDir))
	predictor, err := model.Load(cfg.ModelDir)
	if err != nil {
		logger.Fatal("failed to load model, run cmd/train first", zap.Error(err))
	}
	logger.Info("model loaded")

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	predictHandler := handlers.NewPredictHandler(predictor, logger)
	healthHandler := handlers.NewHealthHandler(predictor)

	router.GET("/", predictHandler.Home)
	router.GET("/health", healthHandler.Health)

	predict := router.Group("")
	predict.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimiter))
	{
		predict.POST("/predict", predictHandler.Predict)
		predict.POST("/predict_form", predictHandler.PredictForm)
	}

	// Static form page
	if _, err := os.Stat(cfg.WebDir); err == nil {
		router.StaticFile("/app", filepath.Join(cfg.WebDir, "index.html"))
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
