package repository

import (
	"context"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// SubmissionRepository puerto de lectura de solicitudes para consolidación.
// Todas las consultas se limitan a un restaurante.
type SubmissionRepository interface {
	// GetByIDs devuelve las solicitudes existentes del restaurante con sus líneas;
	// los IDs inexistentes o de otro restaurante se omiten. El orden del resultado no está garantizado.
	GetByIDs(ctx context.Context, restaurantID string, ids []string) ([]*entity.Submission, error)
	// ListByStatus lista solicitudes del restaurante (sin filtro si status es vacío), más recientes primero.
	ListByStatus(ctx context.Context, restaurantID, status string, limit, offset int) ([]*entity.Submission, error)
}
