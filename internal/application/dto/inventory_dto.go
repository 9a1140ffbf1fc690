package dto

import "github.com/shopspring/decimal"

// ReplenishmentSuggestionResponse referencia bajo el mínimo con la cantidad sugerida de pedido.
type ReplenishmentSuggestionResponse struct {
	StockItemRefID  string          `json:"stock_item_ref_id"`
	CatalogItemID   string          `json:"catalog_item_id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"` // último conteo confirmado
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	DeficitPct      decimal.Decimal `json:"deficit_pct"`    // % del mínimo que falta
	OrderQuantity   decimal.Decimal `json:"order_quantity"` // según política (unidad fija o faltante)
	OutOfStock      bool            `json:"out_of_stock"`
	Priority        int             `json:"priority"` // 1 = más urgente
}

// ReplenishmentListResponse lista de reposición de una lista de stock.
type ReplenishmentListResponse struct {
	ListID   string                            `json:"list_id"`
	ListName string                            `json:"list_name"`
	Items    []ReplenishmentSuggestionResponse `json:"items"`
}
