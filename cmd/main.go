package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Prashant-2024/Rental-App/internal/handler"
	"github.com/Prashant-2024/Rental-App/internal/repository"
	"github.com/Prashant-2024/Rental-App/internal/router"
	"github.com/Prashant-2024/Rental-App/pkg/config"
	"github.com/Prashant-2024/Rental-App/pkg/database"
	"github.com/Prashant-2024/Rental-App/pkg/jwtutil"
	"github.com/Prashant-2024/Rental-App/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rental-service",
		Short:         "REST API for tenants, managers and properties",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate()
		},
	})

	return root
}

// bootstrap loads configuration, the logger and the database handle
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.InitLogger(cfg); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.GetLogger()
	log.Info("Configuration loaded", cfg.LogConfig()...)

	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return nil, nil, nil, err
	}
	log.Info("Database connection established")

	return cfg, log, db, nil
}

func migrate() error {
	_, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Error("Migration failed", zap.Error(err))
		return err
	}
	log.Info("Database schema migrated")
	return nil
}

func serve(ctx context.Context) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := database.SetupJoinTables(db); err != nil {
		database.Close(db)
		return err
	}

	repo := repository.New(db, repository.Options{
		LookupTimeout:     cfg.Location.LookupTimeout,
		LookupConcurrency: cfg.Location.LookupConcurrency,
	})

	e := router.New(router.Dependencies{
		Logger:   log,
		JWT:      jwtutil.NewJWTUtil(cfg.JWT.SigningKey),
		Tenants:  handler.NewTenantHandler(repo),
		Managers: handler.NewManagerHandler(repo),
	})

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error("Server error", zap.Error(err))
			database.Close(db)
			return err
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		log.Error("Failed to close database", zap.Error(err))
		return err
	}

	log.Info("Server stopped")
	return nil
}
