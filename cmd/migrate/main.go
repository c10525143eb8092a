package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/fieldops/salesorder-api/internal/platform/migrations"
	platformpostgres "github.com/fieldops/salesorder-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot run migrations")
	}

	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}
	log.Printf("migrations applied")
}
