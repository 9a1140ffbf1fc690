package dto

import "github.com/shopspring/decimal"

// DraftInputRequest body para PUT/POST de un conteo (texto libre: "12+6", "2,5"...).
type DraftInputRequest struct {
	RawText string `json:"raw_text"`
}

// DraftItemResponse estado de borrador de una referencia con su cantidad a pedir calculada.
type DraftItemResponse struct {
	StockItemRefID       string           `json:"stock_item_ref_id"`
	CatalogItemID        string           `json:"catalog_item_id"`
	Name                 string           `json:"name"`
	Unit                 string           `json:"unit"`
	MinimumQuantity      decimal.Decimal  `json:"minimum_quantity"`
	UsesFixedRestockUnit bool             `json:"uses_fixed_restock_unit"`
	FixedRestockUnitSize *decimal.Decimal `json:"fixed_restock_unit_size,omitempty"`
	RawText              string           `json:"raw_text"`
	DraftValue           decimal.Decimal  `json:"draft_value"`
	BaselineValue        decimal.Decimal  `json:"baseline_value"`
	Valid                bool             `json:"valid"`   // raw_text es interpretable
	Changed              bool             `json:"changed"` // draft_value != baseline_value
	OrderQuantity        decimal.Decimal  `json:"order_quantity"`
}

// DraftSummaryResponse contadores para insignias.
type DraftSummaryResponse struct {
	Total      int `json:"total"`
	Changed    int `json:"changed"`
	ToOrder    int `json:"to_order"`
	OutOfStock int `json:"out_of_stock"`
}

// DraftResponse vista completa del borrador de una lista.
type DraftResponse struct {
	ListID   string               `json:"list_id"`
	ListName string               `json:"list_name"`
	State    string               `json:"state"`
	Summary  DraftSummaryResponse `json:"summary"`
	Items    []DraftItemResponse  `json:"items"`
}
