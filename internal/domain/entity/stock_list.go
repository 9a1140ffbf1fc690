package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una lista de stock.
const (
	StockListStatusOpen      = "OPEN"      // en conteo
	StockListStatusSubmitted = "SUBMITTED" // conteo enviado a aprobación
)

// StockList colección nombrada de referencias de stock (ej. por área de cocina).
type StockList struct {
	ID           string
	RestaurantID string
	Name         string
	Status       string
	Items        []StockItemRef
	SubmittedAt  *time.Time
	UpdatedAt    time.Time
}

// StockItemRef vincula un CatalogItem a una lista concreta con sus umbrales locales.
// ID es la identidad de la referencia (distinta del ID de catálogo).
type StockItemRef struct {
	ID                   string
	CatalogItem          CatalogItem
	MinimumQuantity      decimal.Decimal
	CurrentQuantity      decimal.Decimal // último valor confirmado en el servidor
	UsesFixedRestockUnit bool
	FixedRestockUnitSize *decimal.Decimal // tamaño de caja/paquete; nil si no aplica
}

// HasFixedRestockUnit indica si la unidad fija de reposición debe aplicarse.
func (r StockItemRef) HasFixedRestockUnit() bool {
	return r.UsesFixedRestockUnit && r.FixedRestockUnitSize != nil && r.FixedRestockUnitSize.IsPositive()
}
