package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/dojo-api/api/swagger"
	"github.com/noah-isme/dojo-api/internal/handler"
	"github.com/noah-isme/dojo-api/internal/repository"
	"github.com/noah-isme/dojo-api/internal/service"
	"github.com/noah-isme/dojo-api/pkg/cache"
	"github.com/noah-isme/dojo-api/pkg/config"
	"github.com/noah-isme/dojo-api/pkg/database"
	"github.com/noah-isme/dojo-api/pkg/jobs"
	"github.com/noah-isme/dojo-api/pkg/logger"
	"github.com/noah-isme/dojo-api/pkg/payment"
)

// @title Dojo API
// @version 1.0.0
// @description Course enrollment backend for the Dojo martial-arts school
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logr.Fatal("failed to run migrations", zap.Error(err))
		}
		logr.Info("migrations applied")
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, class cache disabled", zap.Error(err))
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	gateway, err := payment.New(cfg.Payment)
	if err != nil {
		logr.Warn("payment processor not configured, intents will fail", zap.String("provider", cfg.Payment.Provider), zap.Error(err))
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), logr)
	auditQueue := auditSvc.Async(jobs.QueueConfig{Workers: 2, MaxRetries: 2})
	auditQueue.Start(ctx)
	defer auditQueue.Stop()

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Redis.ClassTTL, logr, redisClient != nil)
	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, auditSvc, validate, logr)
	classSvc := service.NewClassService(classRepo, cacheSvc, cfg.Redis.ClassTTL, auditSvc, validate, logr)
	selectionSvc := service.NewSelectionService(repository.NewSelectedClassRepository(db), classRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(
		repository.NewCheckoutRepository(db),
		repository.NewEnrollmentRepository(db),
		classSvc, metrics, auditSvc, validate, logr,
	)
	paymentSvc := service.NewPaymentService(gateway, cfg.Payment.Currency, repository.NewPaymentRepository(db), metrics, validate, logr)

	router := handler.NewRouter(handler.RouterConfig{
		EnableDocs:     cfg.Env != config.EnvProduction,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logr,
		Metrics:        metrics,
		Tokens:         authSvc,
		Users:          userSvc,
	}, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Users:       handler.NewUserHandler(userSvc),
		Classes:     handler.NewClassHandler(classSvc),
		Selections:  handler.NewSelectionHandler(selectionSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc),
		Payments:    handler.NewPaymentHandler(paymentSvc),
		System: handler.NewMetricsHandler(metrics, map[string]handler.Pinger{
			"database": db,
			"cache":    handler.PingFunc(cacheRepo.Ping),
		}, logr),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server shutdown", zap.Error(err))
	}
}
