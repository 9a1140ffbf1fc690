// Package memory implementaciones en memoria de los puertos de infraestructura
// (desarrollo local sin base de datos y tests).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Reposicion-api/internal/application/draft"
)

var _ draft.ScratchStore = (*ScratchStore)(nil)

// ScratchStore mapa clave -> bytes protegido por mutex.
type ScratchStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewScratchStore construye un almacén vacío.
func NewScratchStore() *ScratchStore {
	return &ScratchStore{data: make(map[string][]byte)}
}

// Get devuelve una copia del valor y si la clave existe.
func (s *ScratchStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

// Set guarda una copia del valor.
func (s *ScratchStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete elimina la clave.
func (s *ScratchStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
