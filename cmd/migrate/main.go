// migrate aplica los scripts SQL embebidos sobre la base configurada.
//
// Uso: go run ./cmd/migrate [up|down]
// Por defecto ejecuta "up".
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Reposicion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Reposicion-api/pkg/config"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	n, err := postgres.Migrate(ctx, pool, direction, log.Zerolog())
	if err != nil {
		log.Error().Err(err).Msg("migración fallida")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Int("scripts", n).Str("direction", direction).Msg("migraciones aplicadas")
}
