package draft

import (
	"context"
	"time"

	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// ScratchStore almacenamiento clave-valor local y de mejor esfuerzo para borradores.
// No es la fuente de verdad: el commit explícito lo es.
type ScratchStore interface {
	// Get devuelve el valor y si la clave existe.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// StockGateway subconjunto del servicio de registros que usa el Store al confirmar.
// Lo implementa repository.StockListRepository.
type StockGateway interface {
	UpdateQuantities(ctx context.Context, listID string, items []repository.QuantityUpdate) error
	Finalize(ctx context.Context, listID, submittedBy string) error
}

// Clock programa tareas diferidas. Se inyecta para que los tests controlen el tiempo.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer tarea programada cancelable (*time.Timer la implementa).
type Timer interface {
	Stop() bool
}

// SystemClock Clock respaldado por time.AfterFunc.
type SystemClock struct{}

// AfterFunc programa f tras d.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
