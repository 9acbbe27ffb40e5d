package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-cafe/job-portal/internal/config"
	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/golang-cafe/job-portal/internal/meta"

	humanize "github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("unable to load .env: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := check(ctx, cfg); err != nil {
		log.Printf("Error de conexión a la base de datos: %v", err)
		for _, hint := range meta.Hints {
			log.Printf("  - %s", hint)
		}
		os.Exit(1)
	}
}

func check(ctx context.Context, cfg config.Config) error {
	log.Printf("checking %s database %s", cfg.DatabaseDriver, cfg.DatabaseName)
	conn, err := database.GetDbConn(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.CloseDbConn(conn)

	repo := meta.NewRepository(conn)
	if err := repo.Ping(ctx); err != nil {
		return err
	}
	tables, err := repo.Tables(ctx)
	if err != nil {
		return err
	}
	counts, err := repo.Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Conexión a la base de datos exitosa")
	fmt.Printf("tablas (%d):\n", len(tables))
	for _, t := range tables {
		fmt.Printf("  %s\n", t)
	}
	fmt.Printf("empresas: %s\n", humanize.Comma(counts.Companies))
	fmt.Printf("vacantes: %s\n", humanize.Comma(counts.Jobs))
	fmt.Printf("postulaciones: %s\n", humanize.Comma(counts.Applications))
	return nil
}
