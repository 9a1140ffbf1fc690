package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var (
	_ repository.StockListRepository  = (*Records)(nil)
	_ repository.SubmissionRepository = (*Records)(nil)
)

// Records servicio de registros en memoria: listas de stock y solicitudes.
// Reproduce la semántica del adaptador PostgreSQL (UpdateQuantities reabre la
// lista; Finalize registra una solicitud PENDING con las cantidades a pedir).
type Records struct {
	mu          sync.RWMutex
	lists       map[string]*entity.StockList
	submissions []*entity.Submission
	now         func() time.Time
}

// NewRecords construye un registro vacío.
func NewRecords() *Records {
	return &Records{lists: make(map[string]*entity.StockList), now: time.Now}
}

// PutList inserta o reemplaza una lista.
func (r *Records) PutList(l entity.StockList) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.Status == "" {
		l.Status = entity.StockListStatusOpen
	}
	l.Items = append([]entity.StockItemRef(nil), l.Items...)
	r.lists[l.ID] = &l
}

// PutSubmission inserta una solicitud (ej. ya aprobada, para datos de ejemplo).
func (r *Records) PutSubmission(s entity.Submission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Lines = append([]entity.SubmissionLine(nil), s.Lines...)
	r.submissions = append(r.submissions, &s)
}

// GetByID devuelve una copia de la lista.
func (r *Records) GetByID(_ context.Context, id string) (*entity.StockList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.lists[id]
	if !ok {
		return nil, fmt.Errorf("lista %s: %w", id, domain.ErrNotFound)
	}
	cp := *l
	cp.Items = append([]entity.StockItemRef(nil), l.Items...)
	return &cp, nil
}

// UpdateQuantities escribe las cantidades; todo o nada.
func (r *Records) UpdateQuantities(_ context.Context, listID string, items []repository.QuantityUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lists[listID]
	if !ok {
		return fmt.Errorf("lista %s: %w", listID, domain.ErrNotFound)
	}
	pos := make(map[string]int, len(l.Items))
	for i, it := range l.Items {
		pos[it.ID] = i
	}
	for _, u := range items {
		if _, ok := pos[u.StockItemRefID]; !ok {
			return fmt.Errorf("referencia %s: %w", u.StockItemRefID, domain.ErrNotFound)
		}
		if u.CurrentQuantity.IsNegative() {
			return fmt.Errorf("%w: cantidad negativa para %s", domain.ErrInvalidQuantity, u.StockItemRefID)
		}
	}
	for _, u := range items {
		l.Items[pos[u.StockItemRefID]].CurrentQuantity = u.CurrentQuantity
	}
	l.Status = entity.StockListStatusOpen
	l.UpdatedAt = r.now()
	return nil
}

// Finalize marca la lista como enviada y registra la solicitud resultante.
func (r *Records) Finalize(_ context.Context, listID, submittedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lists[listID]
	if !ok {
		return fmt.Errorf("lista %s: %w", listID, domain.ErrNotFound)
	}
	now := r.now()
	sub := &entity.Submission{
		ID:              uuid.New().String(),
		RestaurantID:    l.RestaurantID,
		SourceListID:    l.ID,
		SourceListName:  l.Name,
		SubmittedByName: submittedBy,
		Status:          entity.SubmissionStatusPending,
		CreatedAt:       now,
	}
	for _, ref := range l.Items {
		qty := inventory.ComputeOrderQuantity(ref, ref.CurrentQuantity)
		if !qty.IsPositive() {
			continue
		}
		sub.Lines = append(sub.Lines, entity.SubmissionLine{
			StockItemRefID:    ref.ID,
			CatalogItemID:     ref.CatalogItem.ID,
			CatalogItemName:   ref.CatalogItem.Name,
			Unit:              ref.CatalogItem.Unit,
			RequestedQuantity: qty,
			LineStatus:        entity.LineStatusPending,
		})
	}
	r.submissions = append(r.submissions, sub)
	l.Status = entity.StockListStatusSubmitted
	l.SubmittedAt = &now
	l.UpdatedAt = now
	return nil
}

// GetByIDs devuelve copias de las solicitudes existentes del restaurante.
func (r *Records) GetByIDs(_ context.Context, restaurantID string, ids []string) ([]*entity.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]*entity.Submission, 0, len(ids))
	for _, s := range r.submissions {
		if want[s.ID] && s.RestaurantID == restaurantID {
			out = append(out, copySubmission(s))
		}
	}
	return out, nil
}

// ListByStatus lista solicitudes del restaurante, más recientes primero.
func (r *Records) ListByStatus(_ context.Context, restaurantID, status string, limit, offset int) ([]*entity.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var filtered []*entity.Submission
	for _, s := range r.submissions {
		if s.RestaurantID != restaurantID {
			continue
		}
		if status == "" || s.Status == status {
			filtered = append(filtered, copySubmission(s))
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })
	if offset >= len(filtered) {
		return []*entity.Submission{}, nil
	}
	filtered = filtered[offset:]
	if limit > 0 && limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func copySubmission(s *entity.Submission) *entity.Submission {
	cp := *s
	cp.Lines = append([]entity.SubmissionLine(nil), s.Lines...)
	return &cp
}
