package consolidation

import (
	"context"
	"time"

	domcons "github.com/jhoicas/Reposicion-api/internal/domain/consolidation"
)

// OrderPDFGenerator genera el documento imprimible de un pedido consolidado.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, doc OrderDocument) ([]byte, error)
}

// OrderDocument datos que necesita el generador de PDF.
type OrderDocument struct {
	Title       string
	GeneratedAt time.Time
	Sources     []string // "Lista (Responsable)" en orden de selección
	Lines       []domcons.OrderLine
}
