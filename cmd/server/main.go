// server runs the booking audit-log API over HTTP.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-audit/backend/internal/auditlog/access"
	audithandler "booking-audit/backend/internal/auditlog/handler"
	auditrepo "booking-audit/backend/internal/auditlog/repository"
	"booking-audit/backend/internal/auditlog/service"
	bookingrepo "booking-audit/backend/internal/booking/repository"
	"booking-audit/backend/internal/config"
	"booking-audit/backend/internal/db"
	membershiprepo "booking-audit/backend/internal/membership/repository"
	"booking-audit/backend/internal/security"
	"booking-audit/backend/internal/server"
	teleotel "booking-audit/backend/internal/telemetry/otel"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx := context.Background()

	providers, err := teleotel.NewProviders(ctx, cfg.OTLPEndpoint, "booking-audit-api", cfg.OTELInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	privateKey, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		log.Fatalf("jwt private key: %v", err)
	}
	publicKey, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("jwt public key: %v", err)
	}
	tokens := security.NewTokenProvider(privateKey, publicKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())

	bookings := bookingrepo.NewPostgresRepository(pool)
	memberships := membershiprepo.NewPostgresRepository(pool)
	entries := auditrepo.NewPostgresRepository(pool)

	checker := access.NewChecker(bookings, memberships)
	emitter := teleotel.NewEventEmitter(providers.LoggerProvider)

	svc, err := service.New(checker, entries, emitter, providers.MeterProvider)
	if err != nil {
		log.Fatalf("service: %v", err)
	}

	handler := server.NewHandler(server.Deps{
		Logger: logger,
		Tokens: tokens,
		Audit:  audithandler.NewServer(svc, logger),
		DBPing: pool.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("http server stopped")
}
