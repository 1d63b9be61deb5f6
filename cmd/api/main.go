package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusware/tuition-api/internal/config"
	"github.com/campusware/tuition-api/internal/handler"
	"github.com/campusware/tuition-api/internal/logging"
	"github.com/campusware/tuition-api/internal/middleware"
	"github.com/campusware/tuition-api/internal/ratelimit"
	"github.com/campusware/tuition-api/internal/repository"
	"github.com/campusware/tuition-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("tuition-api", cfg.LogLevel, cfg.AppEnv)

	ctx := context.Background()
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	students := repository.NewStudentRepository(db)
	charges := repository.NewChargeRepository(db)
	payments := repository.NewPaymentRepository(db)
	reports := repository.NewReportRepository(db)
	idempotency := repository.NewIdempotencyRepository(db)

	tuitionSvc := service.NewTuitionService(students, charges, payments, reports)
	paymentSvc := service.NewPaymentService(students, charges, payments, db)
	chargeSvc := service.NewChargeService(students, charges, db)

	quota := ratelimit.NewMemoryStore(cfg.TuitionQueriesPerDay)

	jwtExpiry := time.Duration(cfg.JWTExpiryMinutes) * time.Minute
	authHandler := handler.NewAuthHandler(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret, jwtExpiry)
	tuitionHandler := handler.NewTuitionHandler(tuitionSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	adminHandler := handler.NewAdminHandler(chargeSvc, tuitionSvc)
	healthHandler := handler.NewHealthHandler(db)

	authMW := middleware.Auth(cfg.JWTSecret)
	rateLimitMW := middleware.RateLimit(quota)
	idempotencyMW := middleware.Idempotency(idempotency)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health/live", healthHandler.Liveness)
	mux.HandleFunc("GET /health/ready", healthHandler.Readiness)

	mux.HandleFunc("POST /api/v1/auth/token", authHandler.Token)

	mux.Handle("GET /api/v1/mobile/tuition", rateLimitMW(http.HandlerFunc(tuitionHandler.Query)))
	mux.Handle("GET /api/v1/banking/tuition", authMW(http.HandlerFunc(tuitionHandler.Query)))

	mux.Handle("POST /api/v1/pay", idempotencyMW(http.HandlerFunc(paymentHandler.Pay)))

	mux.Handle("POST /api/v1/admin/tuition", authMW(middleware.RequireAdmin(http.HandlerFunc(adminHandler.AddCharge))))
	mux.Handle("POST /api/v1/admin/tuition/batch", authMW(middleware.RequireAdmin(http.HandlerFunc(adminHandler.BatchUpload))))
	mux.Handle("GET /api/v1/admin/tuition/unpaid", authMW(middleware.RequireAdmin(http.HandlerFunc(adminHandler.Unpaid))))

	root := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr, "daily_query_limit", cfg.TuitionQueriesPerDay)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
