package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de una lista de stock a partir
// de lo confirmado en el servidor (sin borrador), priorizando los faltantes críticos.
type ReplenishmentUseCase struct {
	lists repository.StockListRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(lists repository.StockListRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{lists: lists}
}

// GenerateReplenishmentList devuelve las referencias bajo el mínimo con su cantidad a pedir.
// Orden: primero las agotadas, luego mayor déficit relativo al mínimo, luego nombre.
// Una lista de otro restaurante se reporta como inexistente.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, restaurantID, listID string) (*dto.ReplenishmentListResponse, error) {
	if listID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("replenishment: leer lista: %w", err)
	}
	if list.RestaurantID != restaurantID {
		return nil, fmt.Errorf("replenishment: lista %s: %w", listID, domain.ErrNotFound)
	}

	out := &dto.ReplenishmentListResponse{
		ListID:   list.ID,
		ListName: list.Name,
		Items:    make([]dto.ReplenishmentSuggestionResponse, 0),
	}
	for _, ref := range list.Items {
		order := inventory.ComputeOrderQuantity(ref, ref.CurrentQuantity)
		if !order.IsPositive() {
			continue
		}
		out.Items = append(out.Items, dto.ReplenishmentSuggestionResponse{
			StockItemRefID:  ref.ID,
			CatalogItemID:   ref.CatalogItem.ID,
			Name:            ref.CatalogItem.Name,
			Unit:            ref.CatalogItem.Unit,
			CurrentQuantity: ref.CurrentQuantity,
			MinimumQuantity: ref.MinimumQuantity,
			DeficitPct:      deficitPct(ref.MinimumQuantity, ref.CurrentQuantity),
			OrderQuantity:   order,
			OutOfStock:      !ref.CurrentQuantity.IsPositive(),
		})
	}

	sort.SliceStable(out.Items, func(i, j int) bool {
		a, b := out.Items[i], out.Items[j]
		if a.OutOfStock != b.OutOfStock {
			return a.OutOfStock
		}
		if !a.DeficitPct.Equal(b.DeficitPct) {
			return a.DeficitPct.GreaterThan(b.DeficitPct)
		}
		return a.Name < b.Name
	})

	// 1 = más urgente
	for i := range out.Items {
		out.Items[i].Priority = i + 1
	}
	return out, nil
}

// deficitPct porcentaje del mínimo que falta, con 2 decimales. min > current.
func deficitPct(min, current decimal.Decimal) decimal.Decimal {
	if !min.IsPositive() {
		return decimal.Zero
	}
	return min.Sub(current).Div(min).Mul(decimal.NewFromInt(100)).Round(2)
}
