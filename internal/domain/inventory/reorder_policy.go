package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// ComputeOrderQuantity calcula la cantidad a pedir para una referencia dado el conteo actual.
//   - conteo >= mínimo: 0 (stock suficiente).
//   - unidad fija de reposición activa: una unidad completa (ej. caja de 24), sin importar el faltante.
//   - en otro caso: mínimo - conteo.
//
// Función pura y total; se reevalúa en cada cambio del borrador.
func ComputeOrderQuantity(ref entity.StockItemRef, current decimal.Decimal) decimal.Decimal {
	if current.GreaterThanOrEqual(ref.MinimumQuantity) {
		return decimal.Zero
	}
	if ref.HasFixedRestockUnit() {
		return *ref.FixedRestockUnitSize
	}
	gap := ref.MinimumQuantity.Sub(current)
	if gap.IsNegative() {
		return decimal.Zero
	}
	return gap
}

// NeedsRestock indica si el conteo está por debajo del mínimo.
func NeedsRestock(ref entity.StockItemRef, current decimal.Decimal) bool {
	return ComputeOrderQuantity(ref, current).IsPositive()
}
