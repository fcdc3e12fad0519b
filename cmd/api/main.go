package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/contractlens/contractlens/internal/api/handlers"
	"github.com/contractlens/contractlens/internal/api/router"
	"github.com/contractlens/contractlens/internal/config"
	"github.com/contractlens/contractlens/internal/pkg/logger"
	"github.com/contractlens/contractlens/internal/pkg/validator"
	"github.com/contractlens/contractlens/internal/providers"
	"github.com/contractlens/contractlens/internal/repository/postgres"
	"github.com/contractlens/contractlens/internal/services"
	"github.com/contractlens/contractlens/migrations"
)

// @title ContractLens API
// @version 1.0
// @description AI-powered contract auditing for freelancers.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	log.WithFields(map[string]interface{}{
		"environment": cfg.Server.Environment,
		"driver":      cfg.Database.Driver,
	}).Info("Starting ContractLens API")

	store, err := postgres.New(cfg.Database)
	if err != nil {
		log.ErrorWithErr(err, "Failed to connect to database")
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(migrations.GetFS()); err != nil {
		log.ErrorWithErr(err, "Failed to apply migrations")
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(store)
	auditRepo := postgres.NewAuditRepository(store)

	accountService := services.NewAccountService(userRepo, cfg.Auth.BCryptCost, log)
	auditService := services.NewAuditService(auditRepo, userRepo, log)
	analyzer := providers.NewAnalyzer(cfg.Analysis, log)

	val := validator.New()

	h := &router.Handlers{
		Health:   handlers.NewHealthHandler(store, log),
		Auth:     handlers.NewAuthHandler(accountService, cfg, log, val),
		Account:  handlers.NewAccountHandler(accountService, log, val),
		Audit:    handlers.NewAuditHandler(auditService, log, val),
		Analysis: handlers.NewAnalysisHandler(analyzer, auditService, accountService, log, val),
		Billing:  handlers.NewBillingHandler(accountService, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(map[string]interface{}{"addr": srv.Addr}).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.ErrorWithErr(err, "HTTP server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.ErrorWithErr(err, "Forced shutdown")
		os.Exit(1)
	}

	log.Info("Server stopped")
}
