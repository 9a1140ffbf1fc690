package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una línea de solicitud.
const (
	LineStatusPending  = "PENDING"
	LineStatusApproved = "APPROVED"
	LineStatusRejected = "REJECTED"
)

// Estados agregados de una solicitud (derivados de sus líneas en el flujo de aprobación).
const (
	SubmissionStatusPending  = "PENDING"
	SubmissionStatusApproved = "APPROVED"
	SubmissionStatusPartial  = "PARTIAL"
	SubmissionStatusRejected = "REJECTED"
)

// Submission registro inmutable de cantidades solicitadas para aprobación.
type Submission struct {
	ID              string
	RestaurantID    string
	SourceListID    string
	SourceListName  string
	SubmittedByName string
	Status          string
	Lines           []SubmissionLine
	CreatedAt       time.Time
}

// SubmissionLine línea de una solicitud. CatalogItemID es la identidad canónica
// usada al consolidar; StockItemRefID es local a la lista de origen.
type SubmissionLine struct {
	StockItemRefID    string
	CatalogItemID     string
	CatalogItemName   string
	Unit              string
	RequestedQuantity decimal.Decimal
	LineStatus        string
}

// ValidLineStatus indica si s es un estado de línea conocido.
func ValidLineStatus(s string) bool {
	switch s {
	case LineStatusPending, LineStatusApproved, LineStatusRejected:
		return true
	}
	return false
}

// ValidSubmissionStatus indica si s es un estado de solicitud conocido.
func ValidSubmissionStatus(s string) bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusPartial, SubmissionStatusRejected:
		return true
	}
	return false
}
