// seed carga datos de demostración (catálogo, dos listas y solicitudes revisadas)
// en la base configurada. Puede ejecutarse varias veces sin duplicar filas.
//
// Uso: go run ./cmd/seed [restaurant_id]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/seed"
	"github.com/jhoicas/Reposicion-api/pkg/config"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

func main() {
	restaurantID := "00000000-0000-0000-0000-0000000000a1"
	if len(os.Args) > 1 {
		restaurantID = os.Args[1]
	}
	if _, err := uuid.Parse(restaurantID); err != nil {
		fmt.Fprintf(os.Stderr, "restaurant_id inválido: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool, "up", log.Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	data := seed.Demo(restaurantID, time.Now())
	if err := postgres.Seed(ctx, postgres.NewTxRunner(pool), data.Catalog, data.Lists, data.Submissions); err != nil {
		log.Fatal().Err(err).Msg("cargar datos de demostración")
	}
	for _, l := range data.Lists {
		log.Info().Str("list_id", l.ID).Str("name", l.Name).Int("items", len(l.Items)).Msg("lista cargada")
	}
	for _, s := range data.Submissions {
		log.Info().Str("submission_id", s.ID).Str("status", s.Status).Msg("solicitud cargada")
	}
}
