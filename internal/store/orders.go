package store

import (
	"context"
	"fmt"

	"github.com/xtrajank/groceries/internal/models"
	"github.com/xtrajank/groceries/internal/util"
)

// ArchiveOrder stores one order with its line items and payment in a
// single transaction and returns the archive row id.
func (s *Store) ArchiveOrder(ctx context.Context, runID string, order *models.Order) (int64, error) {
	if order.Payment == nil {
		return 0, fmt.Errorf("order %d has no payment", order.ID)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var archiveID int64
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO order_archive (run_id, order_id, order_date, customer_id, sum)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		runID, order.ID, order.Date, order.Customer.ID, order.Sum.StringFixed(2)).Scan(&archiveID)
	if err != nil {
		return 0, fmt.Errorf("failed to archive order %d: %w", order.ID, err)
	}

	for _, li := range order.LineItems {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_archive_items (archive_id, item_id, description, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			archiveID, li.Item.ID, li.Item.Description, li.Quantity, li.Item.Price.StringFixed(2))
		if err != nil {
			return 0, fmt.Errorf("failed to archive item %d of order %d: %w", li.Item.ID, order.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO order_archive_payments (archive_id, method, amount, detail)
		VALUES ($1, $2, $3, $4)`,
		archiveID, order.Payment.Method().String(), order.Payment.Amount.StringFixed(2), order.Payment.Details.Describe())
	if err != nil {
		return 0, fmt.Errorf("failed to archive payment of order %d: %w", order.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return archiveID, nil
}

// ArchiveOrders archives every order and stops at the first failure. It
// returns how many orders were stored.
func (s *Store) ArchiveOrders(ctx context.Context, runID string, orders []*models.Order) (int, error) {
	ctx, span := util.StartSpan(ctx, "Store.ArchiveOrders")
	defer span.End()

	for i, order := range orders {
		if _, err := s.ArchiveOrder(ctx, runID, order); err != nil {
			return i, err
		}
		util.OrdersArchivedTotal.Inc()
	}
	return len(orders), nil
}

// CountArchived returns how many orders a run archived.
func (s *Store) CountArchived(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM order_archive WHERE run_id = $1", runID)
	return n, err
}
