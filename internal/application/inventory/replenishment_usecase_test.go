package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/application/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/memory"
)

const restaurant = "rest-1"

func ref(id, name, min, current string) entity.StockItemRef {
	return entity.StockItemRef{
		ID:              id,
		CatalogItem:     entity.CatalogItem{ID: "cat-" + id, Name: name, Unit: "kg"},
		MinimumQuantity: decimal.RequireFromString(min),
		CurrentQuantity: decimal.RequireFromString(current),
	}
}

func TestGenerateReplenishmentList_Prioridad(t *testing.T) {
	records := memory.NewRecords()
	caja := decimal.NewFromInt(24)
	cerveza := ref("r4", "Cerveza", "48", "40")
	cerveza.UsesFixedRestockUnit = true
	cerveza.FixedRestockUnitSize = &caja
	records.PutList(entity.StockList{ID: "l1", RestaurantID: restaurant, Name: "Barra", Items: []entity.StockItemRef{
		ref("r1", "Tomate", "10", "8"), // 20%
		ref("r2", "Sal", "2", "2"),     // suficiente
		ref("r3", "Limón", "4", "0"),   // agotado
		cerveza,                        // 16.67%
		ref("r5", "Aceite", "5", "1"),  // 80%
	}})

	uc := inventory.NewReplenishmentUseCase(records)
	out, err := uc.GenerateReplenishmentList(context.Background(), restaurant, "l1")
	require.NoError(t, err)

	assert.Equal(t, "Barra", out.ListName)
	require.Len(t, out.Items, 4)
	names := []string{out.Items[0].Name, out.Items[1].Name, out.Items[2].Name, out.Items[3].Name}
	assert.Equal(t, []string{"Limón", "Aceite", "Tomate", "Cerveza"}, names)
	for i, it := range out.Items {
		assert.Equal(t, i+1, it.Priority)
	}
	assert.True(t, out.Items[0].OutOfStock)
	assert.Equal(t, "80", out.Items[1].DeficitPct.String())
	assert.Equal(t, "2", out.Items[2].OrderQuantity.String())
	assert.Equal(t, "24", out.Items[3].OrderQuantity.String(), "unidad fija completa")
}

func TestGenerateReplenishmentList_SinFaltantes(t *testing.T) {
	records := memory.NewRecords()
	records.PutList(entity.StockList{ID: "l1", RestaurantID: restaurant, Name: "Cocina", Items: []entity.StockItemRef{ref("r1", "Sal", "1", "3")}})

	out, err := inventory.NewReplenishmentUseCase(records).GenerateReplenishmentList(context.Background(), restaurant, "l1")
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}

func TestGenerateReplenishmentList_Errores(t *testing.T) {
	uc := inventory.NewReplenishmentUseCase(memory.NewRecords())

	_, err := uc.GenerateReplenishmentList(context.Background(), restaurant, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GenerateReplenishmentList(context.Background(), restaurant, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerateReplenishmentList_OtroRestaurante(t *testing.T) {
	records := memory.NewRecords()
	records.PutList(entity.StockList{ID: "l1", RestaurantID: restaurant, Name: "Cocina", Items: []entity.StockItemRef{ref("r1", "Sal", "4", "0")}})

	_, err := inventory.NewReplenishmentUseCase(records).GenerateReplenishmentList(context.Background(), "rest-2", "l1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
