package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// Seed inserta catálogo, listas y solicitudes en una sola transacción.
// Es idempotente: las filas existentes (misma clave) se conservan.
func Seed(ctx context.Context, tx *TxRunner, catalog []entity.CatalogItem, lists []entity.StockList, subs []entity.Submission) error {
	return tx.Run(ctx, func(q Querier) error {
		for _, c := range catalog {
			_, err := q.Exec(ctx, `
				INSERT INTO catalog_items (id, name, unit) VALUES ($1, $2, $3)
				ON CONFLICT (id) DO NOTHING`, c.ID, c.Name, c.Unit)
			if err != nil {
				return fmt.Errorf("seed catalog item %s: %w", c.Name, err)
			}
		}
		for _, l := range lists {
			if err := seedList(ctx, q, l); err != nil {
				return err
			}
		}
		for _, s := range subs {
			if err := seedSubmission(ctx, q, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedList(ctx context.Context, q Querier, l entity.StockList) error {
	_, err := q.Exec(ctx, `
		INSERT INTO stock_lists (id, restaurant_id, name, status, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		l.ID, l.RestaurantID, l.Name, l.Status, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("seed stock list %s: %w", l.Name, err)
	}
	for i, r := range l.Items {
		_, err := q.Exec(ctx, `
			INSERT INTO stock_item_refs
				(id, stock_list_id, catalog_item_id, position, minimum_quantity, current_quantity,
				 uses_fixed_restock_unit, fixed_restock_unit_size)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			r.ID, l.ID, r.CatalogItem.ID, i, r.MinimumQuantity, r.CurrentQuantity,
			r.UsesFixedRestockUnit, r.FixedRestockUnitSize)
		if err != nil {
			return fmt.Errorf("seed stock item ref %s: %w", r.CatalogItem.Name, err)
		}
	}
	return nil
}

func seedSubmission(ctx context.Context, q Querier, s entity.Submission) error {
	tag, err := q.Exec(ctx, `
		INSERT INTO submissions (id, restaurant_id, source_list_id, source_list_name, submitted_by_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		s.ID, s.RestaurantID, s.SourceListID, s.SourceListName, s.SubmittedByName, s.Status, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("seed submission %s: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil // ya existía con sus líneas
	}
	for i, ln := range s.Lines {
		_, err := q.Exec(ctx, `
			INSERT INTO submission_lines
				(submission_id, position, stock_item_ref_id, catalog_item_id, catalog_item_name, unit, requested_quantity, line_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.ID, i, ln.StockItemRefID, ln.CatalogItemID, ln.CatalogItemName, ln.Unit, ln.RequestedQuantity, ln.LineStatus)
		if err != nil {
			return fmt.Errorf("seed submission line: %w", err)
		}
	}
	return nil
}
