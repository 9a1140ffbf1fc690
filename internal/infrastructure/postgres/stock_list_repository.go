package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.StockListRepository = (*StockListRepo)(nil)

// StockListRepo implementación de StockListRepository sobre PostgreSQL.
// Las escrituras que tocan varias tablas corren dentro de TxRunner.
type StockListRepo struct {
	q  Querier
	tx *TxRunner
}

// NewStockListRepository construye el adaptador. tx se usa para Finalize.
func NewStockListRepository(q Querier, tx *TxRunner) *StockListRepo {
	return &StockListRepo{q: q, tx: tx}
}

// GetByID devuelve la lista con sus referencias en orden de posición.
func (r *StockListRepo) GetByID(ctx context.Context, id string) (*entity.StockList, error) {
	return getStockList(ctx, r.q, id, false)
}

// UpdateQuantities escribe las cantidades confirmadas y reabre la lista para conteo.
// Repetir el mismo payload deja el mismo estado.
func (r *StockListRepo) UpdateQuantities(ctx context.Context, listID string, items []repository.QuantityUpdate) error {
	return r.tx.Run(ctx, func(q Querier) error {
		if _, err := lockStockList(ctx, q, listID); err != nil {
			return err
		}
		const upd = `
			UPDATE stock_item_refs SET current_quantity = $3, updated_at = now()
			WHERE id = $1 AND stock_list_id = $2`
		for _, it := range items {
			if it.CurrentQuantity.IsNegative() {
				return fmt.Errorf("%w: cantidad negativa para %s", domain.ErrInvalidQuantity, it.StockItemRefID)
			}
			tag, err := q.Exec(ctx, upd, it.StockItemRefID, listID, it.CurrentQuantity)
			if err != nil {
				if isInvalidText(err) {
					return fmt.Errorf("referencia %s: %w", it.StockItemRefID, domain.ErrNotFound)
				}
				return fmt.Errorf("update stock item ref: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("referencia %s: %w", it.StockItemRefID, domain.ErrNotFound)
			}
		}
		_, err := q.Exec(ctx, `UPDATE stock_lists SET status = $2, updated_at = now() WHERE id = $1`,
			listID, entity.StockListStatusOpen)
		if err != nil {
			return fmt.Errorf("reopen stock list: %w", err)
		}
		return nil
	})
}

// Finalize marca la lista como enviada y registra una solicitud PENDING con las
// cantidades a pedir calculadas sobre lo confirmado. Las líneas sin pedido se omiten.
func (r *StockListRepo) Finalize(ctx context.Context, listID, submittedBy string) error {
	return r.tx.Run(ctx, func(q Querier) error {
		name, err := lockStockList(ctx, q, listID)
		if err != nil {
			return err
		}
		list, err := getStockList(ctx, q, listID, true)
		if err != nil {
			return err
		}

		subID := uuid.New().String()
		_, err = q.Exec(ctx, `
			INSERT INTO submissions (id, restaurant_id, source_list_id, source_list_name, submitted_by_name, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, now())`,
			subID, list.RestaurantID, listID, name, submittedBy, entity.SubmissionStatusPending)
		if err != nil {
			return fmt.Errorf("insert submission: %w", err)
		}

		const ins = `
			INSERT INTO submission_lines
				(submission_id, position, stock_item_ref_id, catalog_item_id, catalog_item_name, unit, requested_quantity, line_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		pos := 0
		for _, ref := range list.Items {
			qty := inventory.ComputeOrderQuantity(ref, ref.CurrentQuantity)
			if !qty.IsPositive() {
				continue
			}
			_, err := q.Exec(ctx, ins, subID, pos, ref.ID, ref.CatalogItem.ID, ref.CatalogItem.Name,
				ref.CatalogItem.Unit, qty, entity.LineStatusPending)
			if err != nil {
				return fmt.Errorf("insert submission line: %w", err)
			}
			pos++
		}

		_, err = q.Exec(ctx, `
			UPDATE stock_lists SET status = $2, submitted_at = now(), updated_at = now() WHERE id = $1`,
			listID, entity.StockListStatusSubmitted)
		if err != nil {
			return fmt.Errorf("finalize stock list: %w", err)
		}
		return nil
	})
}

// lockStockList bloquea la fila de la lista (SELECT FOR UPDATE) y devuelve su nombre.
func lockStockList(ctx context.Context, q Querier, listID string) (string, error) {
	var name string
	err := q.QueryRow(ctx, `SELECT name FROM stock_lists WHERE id = $1 FOR UPDATE`, listID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return "", fmt.Errorf("lista %s: %w", listID, domain.ErrNotFound)
		}
		return "", fmt.Errorf("lock stock list: %w", err)
	}
	return name, nil
}

func getStockList(ctx context.Context, q Querier, id string, inTx bool) (*entity.StockList, error) {
	var l entity.StockList
	err := q.QueryRow(ctx, `
		SELECT id, restaurant_id, name, status, submitted_at, updated_at
		FROM stock_lists WHERE id = $1`, id).Scan(
		&l.ID, &l.RestaurantID, &l.Name, &l.Status, &l.SubmittedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, fmt.Errorf("lista %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get stock list: %w", err)
	}

	query := `
		SELECT r.id, c.id, c.name, c.unit, r.minimum_quantity, r.current_quantity,
		       r.uses_fixed_restock_unit, r.fixed_restock_unit_size
		FROM stock_item_refs r
		JOIN catalog_items c ON c.id = r.catalog_item_id
		WHERE r.stock_list_id = $1
		ORDER BY r.position, r.id`
	if inTx {
		query += ` FOR SHARE OF r`
	}
	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list stock item refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ref  entity.StockItemRef
			size decimal.NullDecimal
		)
		if err := rows.Scan(
			&ref.ID, &ref.CatalogItem.ID, &ref.CatalogItem.Name, &ref.CatalogItem.Unit,
			&ref.MinimumQuantity, &ref.CurrentQuantity, &ref.UsesFixedRestockUnit, &size,
		); err != nil {
			return nil, fmt.Errorf("scan stock item ref: %w", err)
		}
		if size.Valid {
			v := size.Decimal
			ref.FixedRestockUnitSize = &v
		}
		l.Items = append(l.Items, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock item refs: %w", err)
	}
	return &l, nil
}
