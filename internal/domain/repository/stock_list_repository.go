package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// QuantityUpdate nueva cantidad confirmada para una referencia de la lista.
type QuantityUpdate struct {
	StockItemRefID  string
	CurrentQuantity decimal.Decimal
}

// StockListRepository define el puerto hacia el servicio de registros de listas de stock (DIP).
type StockListRepository interface {
	// GetByID devuelve la lista con sus referencias y el insumo de catálogo anidado.
	// Devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.StockList, error)
	// UpdateQuantities escribe las cantidades actuales. Idempotente.
	UpdateQuantities(ctx context.Context, listID string, items []QuantityUpdate) error
	// Finalize marca la lista como enviada y registra la solicitud resultante.
	// Solo debe llamarse después de un UpdateQuantities exitoso.
	Finalize(ctx context.Context, listID, submittedBy string) error
}
