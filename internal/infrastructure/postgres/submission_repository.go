package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.SubmissionRepository = (*SubmissionRepo)(nil)

// SubmissionRepo lectura de solicitudes y sus líneas (usable con pool o tx).
type SubmissionRepo struct {
	q Querier
}

// NewSubmissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubmissionRepository(q Querier) *SubmissionRepo {
	return &SubmissionRepo{q: q}
}

const submissionColumns = `id, restaurant_id, source_list_id, source_list_name, submitted_by_name, status, created_at`

// GetByIDs devuelve las solicitudes existentes del restaurante; los IDs desconocidos,
// mal formados o de otro restaurante se omiten.
func (r *SubmissionRepo) GetByIDs(ctx context.Context, restaurantID string, ids []string) ([]*entity.Submission, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []*entity.Submission{}, nil
	}
	if _, err := uuid.Parse(restaurantID); err != nil {
		return []*entity.Submission{}, nil
	}
	subs, err := r.scanSubmissions(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = ANY($1::uuid[]) AND restaurant_id = $2`,
		valid, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// ListByStatus lista solicitudes del restaurante, más recientes primero. status vacío = sin filtro.
func (r *SubmissionRepo) ListByStatus(ctx context.Context, restaurantID, status string, limit, offset int) ([]*entity.Submission, error) {
	if _, err := uuid.Parse(restaurantID); err != nil {
		return []*entity.Submission{}, nil
	}
	subs, err := r.scanSubmissions(ctx, `
		SELECT `+submissionColumns+` FROM submissions
		WHERE restaurant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`, restaurantID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubmissionRepo) scanSubmissions(ctx context.Context, query string, args ...any) ([]*entity.Submission, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Submission, 0)
	for rows.Next() {
		var s entity.Submission
		if err := rows.Scan(&s.ID, &s.RestaurantID, &s.SourceListID, &s.SourceListName, &s.SubmittedByName, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

// attachLines carga las líneas de todas las solicitudes en una sola consulta.
func (r *SubmissionRepo) attachLines(ctx context.Context, subs []*entity.Submission) error {
	if len(subs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(subs))
	byID := make(map[string]*entity.Submission, len(subs))
	for _, s := range subs {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}

	rows, err := r.q.Query(ctx, `
		SELECT submission_id, stock_item_ref_id, catalog_item_id, catalog_item_name, unit,
		       requested_quantity, line_status
		FROM submission_lines
		WHERE submission_id = ANY($1::uuid[])
		ORDER BY submission_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list submission lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			subID string
			l     entity.SubmissionLine
		)
		if err := rows.Scan(&subID, &l.StockItemRefID, &l.CatalogItemID, &l.CatalogItemName, &l.Unit,
			&l.RequestedQuantity, &l.LineStatus); err != nil {
			return fmt.Errorf("scan submission line: %w", err)
		}
		if s, ok := byID[subID]; ok {
			s.Lines = append(s.Lines, l)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate submission lines: %w", err)
	}
	return nil
}
