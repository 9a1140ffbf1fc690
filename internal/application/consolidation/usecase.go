// Package consolidation orquesta la lectura de solicitudes y su fusión en un pedido
// consolidado (previsualización, texto compartible y PDF).
package consolidation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	domcons "github.com/jhoicas/Reposicion-api/internal/domain/consolidation"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// MaxSubmissions máximo de solicitudes por fusión.
const MaxSubmissions = 50

const defaultTitle = "Pedido consolidado"

// UseCase casos de uso de consolidación. No persiste nada: el pedido se recalcula en cada llamada.
type UseCase struct {
	submissions repository.SubmissionRepository
	formatter   *domcons.Formatter
	pdf         OrderPDFGenerator
	now         func() time.Time
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se exporta a PDF.
func NewUseCase(submissions repository.SubmissionRepository, formatter *domcons.Formatter, pdf OrderPDFGenerator) *UseCase {
	if formatter == nil {
		formatter = domcons.NewFormatter("es")
	}
	return &UseCase{
		submissions: submissions,
		formatter:   formatter,
		pdf:         pdf,
		now:         time.Now,
	}
}

// ListForMerge lista las solicitudes del restaurante candidatas a fusión filtradas por estado (vacío = todas).
func (uc *UseCase) ListForMerge(ctx context.Context, restaurantID, status string, page dto.PageRequest) (*dto.SubmissionListResponse, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "" && !entity.ValidSubmissionStatus(status) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, status)
	}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	list, err := uc.submissions.ListByStatus(ctx, restaurantID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("consolidation: listar solicitudes: %w", err)
	}
	out := &dto.SubmissionListResponse{
		Items: make([]dto.SubmissionResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, s := range list {
		out.Items = append(out.Items, toSubmissionResponse(s))
	}
	return out, nil
}

// Preview fusiona las solicitudes indicadas respetando el orden de selección.
func (uc *UseCase) Preview(ctx context.Context, restaurantID string, ids []string) (*dto.ConsolidationPreviewResponse, error) {
	subs, order, err := uc.load(ctx, restaurantID, ids)
	if err != nil {
		return nil, err
	}
	lines := domcons.Merge(subs)
	out := &dto.ConsolidationPreviewResponse{
		PreviewID:     uuid.New().String(),
		GeneratedAt:   uc.now().UTC(),
		SubmissionIDs: order,
		Lines:         make([]dto.ConsolidatedLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, toLineResponse(l))
	}
	return out, nil
}

// Share genera el texto compartible en el modo pedido (approved-only por defecto).
func (uc *UseCase) Share(ctx context.Context, restaurantID string, req dto.ConsolidationRequest) (string, error) {
	mode := domcons.ShareMode(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = domcons.ShareApprovedOnly
	}
	if !domcons.ValidShareMode(mode) {
		return "", fmt.Errorf("%w: modo %q no soportado", domain.ErrInvalidInput, req.Mode)
	}
	subs, _, err := uc.load(ctx, restaurantID, req.SubmissionIDs)
	if err != nil {
		return "", err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle
	}
	return uc.formatter.FormatShareableText(title, domcons.Merge(subs), subs, mode), nil
}

// PDF genera el pedido consolidado en PDF. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *UseCase) PDF(ctx context.Context, restaurantID string, req dto.ConsolidationRequest) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("%w: exportación PDF no configurada", domain.ErrConflict)
	}
	subs, _, err := uc.load(ctx, restaurantID, req.SubmissionIDs)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	doc := OrderDocument{
		Title:       strings.TrimSpace(req.Title),
		GeneratedAt: now,
		Lines:       domcons.Merge(subs),
	}
	if doc.Title == "" {
		doc.Title = defaultTitle
	}
	for _, s := range subs {
		doc.Sources = append(doc.Sources, fmt.Sprintf("%s (%s)", s.SourceListName, s.SubmittedByName))
	}
	b, err := uc.pdf.GenerateOrderPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("consolidation: generar pdf: %w", err)
	}
	return b, fmt.Sprintf("pedido_%s.pdf", now.Format("20060102_1504")), nil
}

// load deduplica los IDs, lee las solicitudes del restaurante y las devuelve en el orden pedido.
// Los IDs inexistentes, mal formados o de otro restaurante no aportan nada.
func (uc *UseCase) load(ctx context.Context, restaurantID string, ids []string) ([]entity.Submission, []string, error) {
	order := make([]string, 0, len(ids))
	valid := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		order = append(order, id)
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(order) == 0 {
		return nil, nil, fmt.Errorf("%w: seleccione al menos una solicitud", domain.ErrInvalidInput)
	}
	if len(order) > MaxSubmissions {
		return nil, nil, fmt.Errorf("%w: máximo %d solicitudes por fusión", domain.ErrInvalidInput, MaxSubmissions)
	}

	if len(valid) == 0 {
		return []entity.Submission{}, order, nil
	}
	found, err := uc.submissions.GetByIDs(ctx, restaurantID, valid)
	if err != nil {
		return nil, nil, fmt.Errorf("consolidation: obtener solicitudes: %w", err)
	}
	byID := make(map[string]*entity.Submission, len(found))
	for _, s := range found {
		if s != nil {
			byID[s.ID] = s
		}
	}
	subs := make([]entity.Submission, 0, len(byID))
	for _, id := range order {
		if s, ok := byID[id]; ok {
			subs = append(subs, *s)
		}
	}
	return subs, order, nil
}

func toLineResponse(l domcons.OrderLine) dto.ConsolidatedLineResponse {
	out := dto.ConsolidatedLineResponse{
		CatalogItemID:   l.CatalogItemID,
		CatalogItemName: l.CatalogItemName,
		Unit:            l.Unit,
		TotalQuantity:   l.TotalQuantity,
		Breakdown:       make([]dto.ContributionResponse, 0, len(l.Breakdown)),
	}
	for _, c := range l.Breakdown {
		out.Breakdown = append(out.Breakdown, dto.ContributionResponse{
			SubmissionID:    c.SubmissionID,
			SourceListName:  c.SourceListName,
			SubmittedByName: c.SubmittedByName,
			Quantity:        c.Quantity,
		})
	}
	return out
}

func toSubmissionResponse(s *entity.Submission) dto.SubmissionResponse {
	out := dto.SubmissionResponse{
		ID:              s.ID,
		SourceListID:    s.SourceListID,
		SourceListName:  s.SourceListName,
		SubmittedByName: s.SubmittedByName,
		Status:          s.Status,
		CreatedAt:       s.CreatedAt,
		Lines:           make([]dto.SubmissionLineResponse, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		if l.LineStatus == entity.LineStatusApproved {
			out.ApprovedLines++
		}
		out.Lines = append(out.Lines, dto.SubmissionLineResponse{
			StockItemRefID:    l.StockItemRefID,
			CatalogItemID:     l.CatalogItemID,
			CatalogItemName:   l.CatalogItemName,
			Unit:              l.Unit,
			RequestedQuantity: l.RequestedQuantity,
			LineStatus:        l.LineStatus,
		})
	}
	return out
}
