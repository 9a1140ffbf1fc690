package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Reposicion-api/internal/application/draft"
)

var _ draft.ScratchStore = (*ScratchStore)(nil)

// ScratchStore guarda borradores locales en la tabla draft_scratch (clave -> JSON).
type ScratchStore struct {
	q Querier
}

// NewScratchStore construye el almacén de borradores.
func NewScratchStore(q Querier) *ScratchStore {
	return &ScratchStore{q: q}
}

// Get devuelve el valor guardado y si la clave existe.
func (s *ScratchStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.q.QueryRow(ctx, `SELECT value FROM draft_scratch WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get draft scratch: %w", err)
	}
	return value, true, nil
}

// Set inserta o reemplaza el valor de la clave.
func (s *ScratchStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO draft_scratch (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, key, value)
	if err != nil {
		return fmt.Errorf("set draft scratch: %w", err)
	}
	return nil
}

// Delete elimina la clave; no falla si no existe.
func (s *ScratchStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM draft_scratch WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete draft scratch: %w", err)
	}
	return nil
}
