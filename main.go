package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-cafe/job-portal/internal/config"
	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/golang-cafe/job-portal/internal/handler"
	"github.com/golang-cafe/job-portal/internal/server"
	"github.com/golang-cafe/job-portal/internal/template"
	"github.com/golang-cafe/job-portal/static"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("unable to load .env: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := database.GetDbConn(ctx, cfg)
	if err != nil {
		log.Fatalf("unable to connect to %s: %v", cfg.DatabaseDriver, err)
	}
	defer database.CloseDbConn(conn)

	svr := server.NewServer(
		cfg,
		conn,
		mux.NewRouter(),
		template.NewTemplate(static.Views),
	)
	defer svr.Close()

	logger := svr.Logger()
	if cfg.Migrate {
		applied, err := database.Migrate(ctx, conn)
		if err != nil {
			logger.Fatal().Err(err).Msg("unable to migrate database")
		}
		logger.Info().Strs("applied", applied).Msg("migrations done")
	}

	handler.RegisterRoutes(svr)

	if err := svr.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
	logger.Info().Msg("bye")
}
