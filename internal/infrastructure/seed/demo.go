// Package seed contiene datos de demostración: dos listas de un restaurante
// y solicitudes ya revisadas, listas para fusionar.
package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// Data conjunto de registros a cargar.
type Data struct {
	Catalog     []entity.CatalogItem
	Lists       []entity.StockList
	Submissions []entity.Submission
}

// ns espacio de nombres para IDs deterministas (misma semilla, mismos IDs).
var ns = uuid.MustParse("6f1c1f9e-5a43-4c1e-9a55-0b7d3c2b9e10")

// ID devuelve el UUID determinista asociado a name.
func ID(name string) string {
	return uuid.NewSHA1(ns, []byte(name)).String()
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Demo construye los datos de demostración para restaurantID con marcas de tiempo relativas a now.
func Demo(restaurantID string, now time.Time) Data {
	catalog := []entity.CatalogItem{
		{ID: ID("cat:tomate"), Name: "Tomate", Unit: "kg"},
		{ID: ID("cat:cebolla"), Name: "Cebolla", Unit: "kg"},
		{ID: ID("cat:aceite"), Name: "Aceite de oliva", Unit: "lt"},
		{ID: ID("cat:cerveza"), Name: "Cerveza", Unit: "un"},
		{ID: ID("cat:limon"), Name: "Limón", Unit: "kg"},
		{ID: ID("cat:sal"), Name: "Sal", Unit: "kg"},
	}
	byKey := map[string]entity.CatalogItem{}
	for _, c := range catalog {
		byKey[c.ID] = c
	}
	ref := func(list, item, min, current string) entity.StockItemRef {
		return entity.StockItemRef{
			ID:              ID("ref:" + list + ":" + item),
			CatalogItem:     byKey[ID("cat:"+item)],
			MinimumQuantity: qty(min),
			CurrentQuantity: qty(current),
		}
	}
	caja := qty("24")
	cerveza := ref("barra", "cerveza", "48", "30")
	cerveza.UsesFixedRestockUnit = true
	cerveza.FixedRestockUnitSize = &caja

	cocina := entity.StockList{
		ID:           ID("list:cocina"),
		RestaurantID: restaurantID,
		Name:         "Cocina",
		Status:       entity.StockListStatusOpen,
		UpdatedAt:    now,
		Items: []entity.StockItemRef{
			ref("cocina", "tomate", "10", "4"),
			ref("cocina", "cebolla", "5", "5"),
			ref("cocina", "aceite", "6", "2.5"),
			ref("cocina", "sal", "2", "1"),
		},
	}
	barra := entity.StockList{
		ID:           ID("list:barra"),
		RestaurantID: restaurantID,
		Name:         "Barra",
		Status:       entity.StockListStatusOpen,
		UpdatedAt:    now,
		Items: []entity.StockItemRef{
			cerveza,
			ref("barra", "limon", "3", "1"),
			ref("barra", "tomate", "2", "0"),
		},
	}

	line := func(list entity.StockList, idx int, q, status string) entity.SubmissionLine {
		r := list.Items[idx]
		return entity.SubmissionLine{
			StockItemRefID:    r.ID,
			CatalogItemID:     r.CatalogItem.ID,
			CatalogItemName:   r.CatalogItem.Name,
			Unit:              r.CatalogItem.Unit,
			RequestedQuantity: qty(q),
			LineStatus:        status,
		}
	}
	subs := []entity.Submission{
		{
			ID: ID("sub:cocina:1"), RestaurantID: restaurantID, SourceListID: cocina.ID, SourceListName: cocina.Name,
			SubmittedByName: "Ana", Status: entity.SubmissionStatusPartial, CreatedAt: now.Add(-3 * time.Hour),
			Lines: []entity.SubmissionLine{
				line(cocina, 0, "6", entity.LineStatusApproved),
				line(cocina, 2, "3.5", entity.LineStatusApproved),
				line(cocina, 3, "1", entity.LineStatusRejected),
			},
		},
		{
			ID: ID("sub:barra:1"), RestaurantID: restaurantID, SourceListID: barra.ID, SourceListName: barra.Name,
			SubmittedByName: "Luis", Status: entity.SubmissionStatusApproved, CreatedAt: now.Add(-2 * time.Hour),
			Lines: []entity.SubmissionLine{
				line(barra, 0, "24", entity.LineStatusApproved),
				line(barra, 1, "2", entity.LineStatusApproved),
				line(barra, 2, "2", entity.LineStatusApproved),
			},
		},
		{
			ID: ID("sub:cocina:2"), RestaurantID: restaurantID, SourceListID: cocina.ID, SourceListName: cocina.Name,
			SubmittedByName: "Ana", Status: entity.SubmissionStatusPending, CreatedAt: now.Add(-time.Hour),
			Lines: []entity.SubmissionLine{
				line(cocina, 0, "2", entity.LineStatusPending),
			},
		},
	}
	return Data{Catalog: catalog, Lists: []entity.StockList{cocina, barra}, Submissions: subs}
}
