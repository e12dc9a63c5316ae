package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledgerly/backend/internal/config"
	"github.com/ledgerly/backend/internal/database"
	"github.com/ledgerly/backend/internal/handler"
	loggerPkg "github.com/ledgerly/backend/internal/logger"
	"github.com/ledgerly/backend/internal/middleware"
	"github.com/ledgerly/backend/internal/repository"
	"github.com/ledgerly/backend/internal/router"
	"github.com/ledgerly/backend/internal/server"
	"github.com/ledgerly/backend/internal/service"

	_ "github.com/joho/godotenv/autoload"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, loggerService, err := loggerPkg.New(cfg)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, logger, cfg); err != nil {
		cancelMigrate()
		logger.Fatal().Err(err).Msg("failed to run database migrations")
	}
	cancelMigrate()

	srv, err := server.New(cfg, logger, loggerService)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewServices(srv, repos)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize services")
	}

	middlewares := middleware.NewMiddlewares(srv)
	handlers := handler.NewHandlers(srv, services)

	srv.SetupHTTPServer(router.New(srv, middlewares, handlers))

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if loggerService != nil {
		loggerService.Shutdown(5 * time.Second)
	}

	logger.Info().Msg("server stopped")
}
