package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsolidationRequest body para previsualizar/exportar una fusión de solicitudes.
type ConsolidationRequest struct {
	SubmissionIDs []string `json:"submission_ids"`
	Mode          string   `json:"mode,omitempty"`  // approved-only | full-report (solo /share)
	Title         string   `json:"title,omitempty"` // encabezado del texto o PDF
}

// ContributionResponse aporte de una solicitud a una línea consolidada.
type ContributionResponse struct {
	SubmissionID    string          `json:"submission_id"`
	SourceListName  string          `json:"source_list_name"`
	SubmittedByName string          `json:"submitted_by_name"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// ConsolidatedLineResponse línea del pedido consolidado.
type ConsolidatedLineResponse struct {
	CatalogItemID   string                 `json:"catalog_item_id"`
	CatalogItemName string                 `json:"catalog_item_name"`
	Unit            string                 `json:"unit"`
	TotalQuantity   decimal.Decimal        `json:"total_quantity"`
	Breakdown       []ContributionResponse `json:"breakdown"`
}

// ConsolidationPreviewResponse resultado de la previsualización (no se persiste).
type ConsolidationPreviewResponse struct {
	PreviewID     string                     `json:"preview_id"`
	GeneratedAt   time.Time                  `json:"generated_at"`
	SubmissionIDs []string                   `json:"submission_ids"`
	Lines         []ConsolidatedLineResponse `json:"lines"`
}

// SubmissionLineResponse línea de una solicitud.
type SubmissionLineResponse struct {
	StockItemRefID    string          `json:"stock_item_ref_id"`
	CatalogItemID     string          `json:"catalog_item_id"`
	CatalogItemName   string          `json:"catalog_item_name"`
	Unit              string          `json:"unit"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	LineStatus        string          `json:"line_status"`
}

// SubmissionResponse resumen de una solicitud para el selector de fusión.
type SubmissionResponse struct {
	ID              string                   `json:"id"`
	SourceListID    string                   `json:"source_list_id"`
	SourceListName  string                   `json:"source_list_name"`
	SubmittedByName string                   `json:"submitted_by_name"`
	Status          string                   `json:"status"`
	ApprovedLines   int                      `json:"approved_lines"`
	Lines           []SubmissionLineResponse `json:"lines"`
	CreatedAt       time.Time                `json:"created_at"`
}

// SubmissionListResponse lista paginada de solicitudes.
type SubmissionListResponse struct {
	Items []SubmissionResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
