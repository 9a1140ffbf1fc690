package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate ejecuta los scripts "up" en orden o los "down" en orden inverso.
// Los scripts son idempotentes (IF [NOT] EXISTS).
func Migrate(ctx context.Context, q Querier, direction string, log zerolog.Logger) (int, error) {
	if direction != "up" && direction != "down" {
		return 0, fmt.Errorf("migrate: dirección %q inválida (up|down)", direction)
	}
	names, err := fs.Glob(migrationsFS, "migrations/*."+direction+".sql")
	if err != nil {
		return 0, fmt.Errorf("migrate: listar scripts: %w", err)
	}
	sort.Strings(names)
	if direction == "down" {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}

	for _, name := range names {
		b, err := migrationsFS.ReadFile(name)
		if err != nil {
			return 0, fmt.Errorf("migrate: leer %s: %w", name, err)
		}
		log.Info().Str("script", strings.TrimPrefix(name, "migrations/")).Msg("ejecutando migración")
		if _, err := q.Exec(ctx, string(b)); err != nil {
			return 0, fmt.Errorf("migrate: ejecutar %s: %w", name, err)
		}
	}
	return len(names), nil
}
