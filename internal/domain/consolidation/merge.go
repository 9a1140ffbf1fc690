// Package consolidation fusiona solicitudes aprobadas en un único pedido
// deduplicado por insumo de catálogo, conservando el origen de cada cantidad.
package consolidation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// Contribution aporte de una solicitud a una línea consolidada.
type Contribution struct {
	SubmissionID    string
	SourceListName  string
	SubmittedByName string
	Quantity        decimal.Decimal
}

// OrderLine línea del pedido consolidado. Se calcula en cada llamada y nunca se persiste.
// Invariante: TotalQuantity == suma de Breakdown[].Quantity.
type OrderLine struct {
	CatalogItemID   string
	CatalogItemName string
	Unit            string
	TotalQuantity   decimal.Decimal
	Breakdown       []Contribution
}

// Merge recorre las solicitudes en el orden recibido y agrupa sus líneas APPROVED
// por CatalogItemID (no por la referencia local de la lista). El orden de salida es
// el de primera aparición de cada insumo; el desglose respeta el orden de selección.
func Merge(submissions []entity.Submission) []OrderLine {
	lines := make([]OrderLine, 0)
	index := make(map[string]int)

	for _, sub := range submissions {
		for _, l := range sub.Lines {
			if l.LineStatus != entity.LineStatusApproved {
				continue
			}
			i, ok := index[l.CatalogItemID]
			if !ok {
				i = len(lines)
				index[l.CatalogItemID] = i
				lines = append(lines, OrderLine{
					CatalogItemID:   l.CatalogItemID,
					CatalogItemName: l.CatalogItemName,
					Unit:            l.Unit,
					TotalQuantity:   decimal.Zero,
				})
			}
			g := &lines[i]
			g.TotalQuantity = g.TotalQuantity.Add(l.RequestedQuantity)
			g.Breakdown = append(g.Breakdown, Contribution{
				SubmissionID:    sub.ID,
				SourceListName:  sub.SourceListName,
				SubmittedByName: sub.SubmittedByName,
				Quantity:        l.RequestedQuantity,
			})
		}
	}
	return lines
}
